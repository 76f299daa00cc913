/*
Package catalog defines the obligation catalog: named, categorized recurrence
rules with lead times.

PURPOSE:
  Definitions are configuration, not code - they are created and edited by
  the practice's administrators, persisted as JSON, and consumed by the
  recurrence engine. A definition is soft-identified by ID: edits keep the
  ID stable, and deleting one removes future projections only (historical
  dates are never retracted).

KEY CONCEPTS:
  - ObligationDefinition: id + title + category + lead time + recurrence rule
  - Category: reporting | banking | payroll | internal
  - DefaultCatalog: the seed set shipped for a new practice

SEE ALSO:
  - factory.go: JSON conversion with defaulting
  - schedule.go: Horizon projection into concrete deadlines
*/
package catalog

import (
	"time"

	"github.com/warp/compliance-engine/engine"
)

// =============================================================================
// OBLIGATION DEFINITION
// =============================================================================

type Category string

const (
	CategoryReporting Category = "reporting"
	CategoryBanking   Category = "banking"
	CategoryPayroll   Category = "payroll"
	CategoryInternal  Category = "internal"
)

// ObligationDefinition is one catalog entry. LeadDays is how many days before
// the deadline work should start.
type ObligationDefinition struct {
	ID       string
	Title    string
	Category Category
	LeadDays int
	Rule     engine.RecurrenceRule
}

// =============================================================================
// DEFAULT CATALOG - Seed definitions for a new practice
// =============================================================================

// DefaultCatalog returns the standard obligation set: monthly bank and
// document work, insurance self-checks, simplified-regime advances and the
// annual declaration, quarterly VAT, payroll runs, the tourist levy, and the
// annual reports.
func DefaultCatalog() []ObligationDefinition {
	return []ObligationDefinition{
		{
			ID:       "bank-statement",
			Title:    "Bank statement request",
			Category: CategoryBanking,
			LeadDays: 0,
			Rule:     engine.Monthly{Day: 1},
		},
		{
			ID:       "docs-request",
			Title:    "Primary documents request",
			Category: CategoryInternal,
			LeadDays: 0,
			Rule:     engine.Monthly{Day: 1},
		},
		{
			ID:       "insurance-self-check",
			Title:    "Insurance contributions self-check",
			Category: CategoryInternal,
			LeadDays: 3,
			Rule:     engine.Monthly{Day: 20},
		},
		{
			ID:       "usn-advance",
			Title:    "USN advance payment",
			Category: CategoryReporting,
			LeadDays: 7,
			Rule:     engine.Quarterly{Months: []time.Month{time.April, time.July, time.October}, Day: 25},
		},
		{
			ID:       "usn-declaration",
			Title:    "USN annual declaration",
			Category: CategoryReporting,
			LeadDays: 14,
			Rule:     engine.Annual{Month: time.April, Day: 30},
		},
		{
			ID:       "vat-declaration",
			Title:    "VAT reporting",
			Category: CategoryReporting,
			LeadDays: 7,
			Rule: engine.Quarterly{
				Months: []time.Month{time.January, time.April, time.July, time.October},
				Day:    25,
			},
		},
		{
			ID:       "salary-advance",
			Title:    "Salary advance payment",
			Category: CategoryPayroll,
			LeadDays: 2,
			Rule:     engine.Monthly{Day: 10},
		},
		{
			ID:       "salary-main",
			Title:    "Salary main payment",
			Category: CategoryPayroll,
			LeadDays: 2,
			Rule:     engine.Monthly{Day: 25},
		},
		{
			ID:       "tourist-levy",
			Title:    "Tourist levy",
			Category: CategoryReporting,
			LeadDays: 3,
			Rule:     engine.Monthly{Day: 25},
		},
		{
			ID:       "annual-accounting",
			Title:    "Annual accounting report",
			Category: CategoryReporting,
			LeadDays: 21,
			// Filed in the year following the reporting year.
			Rule: engine.Annual{Month: time.March, Day: 31},
		},
		{
			ID:       "annual-personnel",
			Title:    "Annual personnel report",
			Category: CategoryReporting,
			LeadDays: 7,
			Rule:     engine.Annual{Month: time.March, Day: 1},
		},
	}
}
