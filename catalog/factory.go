/*
factory.go - JSON to obligation definition conversion

PURPOSE:
  Catalog definitions are configured by non-developers and stored as JSON.
  This factory converts between the JSON shape and the typed definition,
  applying the coercion policy: unknown categories default to internal,
  negative lead times to zero, out-of-range days are clamped into 1..31,
  and an unknown rule type falls back to a monthly day-1 rule.

JSON SCHEMA:
  {
    "id": "usn-advance",
    "title": "USN advance payment",
    "category": "reporting",
    "lead_days": 7,
    "rule": {"type": "quarterly", "months": [4, 7, 10], "day": 25}
  }

SEE ALSO:
  - definitions.go: Typed definition
  - engine/recurrence.go: Rule sum type
*/
package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/compliance-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// DefinitionJSON is the persisted/wire representation of a definition.
type DefinitionJSON struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	LeadDays int      `json:"lead_days"`
	Rule     RuleJSON `json:"rule"`
}

// RuleJSON is the tagged-union wire form of a recurrence rule.
type RuleJSON struct {
	Type       string `json:"type"` // monthly, quarterly, annual, custom_months
	Day        int    `json:"day"`
	Months     []int  `json:"months,omitempty"`
	Month      int    `json:"month,omitempty"`
	YearOffset int    `json:"year_offset,omitempty"`
}

// =============================================================================
// CONVERSION
// =============================================================================

// ParseDefinition parses a JSON string into a typed definition.
func ParseDefinition(jsonStr string) (ObligationDefinition, error) {
	var dj DefinitionJSON
	if err := json.Unmarshal([]byte(jsonStr), &dj); err != nil {
		return ObligationDefinition{}, fmt.Errorf("failed to parse definition JSON: %w", err)
	}
	return FromJSON(dj), nil
}

// FromJSON converts the wire form to a typed definition, coercing rather
// than rejecting malformed fields.
func FromJSON(dj DefinitionJSON) ObligationDefinition {
	def := ObligationDefinition{
		ID:       dj.ID,
		Title:    dj.Title,
		Category: parseCategory(dj.Category),
		LeadDays: dj.LeadDays,
		Rule:     parseRule(dj.Rule),
	}
	if def.LeadDays < 0 {
		def.LeadDays = 0
	}
	return def
}

// ToJSON converts a typed definition to its wire form.
func ToJSON(def ObligationDefinition) DefinitionJSON {
	return DefinitionJSON{
		ID:       def.ID,
		Title:    def.Title,
		Category: string(def.Category),
		LeadDays: def.LeadDays,
		Rule:     ruleToJSON(def.Rule),
	}
}

func parseCategory(s string) Category {
	switch Category(s) {
	case CategoryReporting, CategoryBanking, CategoryPayroll, CategoryInternal:
		return Category(s)
	default:
		return CategoryInternal
	}
}

func parseRule(rj RuleJSON) engine.RecurrenceRule {
	day := engine.ClampDay(rj.Day)

	switch engine.RuleKind(rj.Type) {
	case engine.KindQuarterly:
		return engine.Quarterly{Months: parseMonths(rj.Months), Day: day}
	case engine.KindAnnual:
		return engine.Annual{Month: parseMonth(rj.Month), Day: day, YearOffset: rj.YearOffset}
	case engine.KindCustomMonths:
		return engine.CustomMonths{Months: parseMonths(rj.Months), Day: day}
	case engine.KindMonthly:
		return engine.Monthly{Day: day}
	default:
		// Unknown rule type: the safest recurrence is monthly on day 1.
		return engine.Monthly{Day: 1}
	}
}

func ruleToJSON(rule engine.RecurrenceRule) RuleJSON {
	switch r := rule.(type) {
	case engine.Monthly:
		return RuleJSON{Type: string(engine.KindMonthly), Day: r.Day}
	case engine.Quarterly:
		return RuleJSON{Type: string(engine.KindQuarterly), Day: r.Day, Months: monthsToInts(r.Months)}
	case engine.Annual:
		return RuleJSON{Type: string(engine.KindAnnual), Day: r.Day, Month: int(r.Month), YearOffset: r.YearOffset}
	case engine.CustomMonths:
		return RuleJSON{Type: string(engine.KindCustomMonths), Day: r.Day, Months: monthsToInts(r.Months)}
	default:
		return RuleJSON{Type: string(engine.KindMonthly), Day: 1}
	}
}

func parseMonths(raw []int) []time.Month {
	var months []time.Month
	for _, m := range raw {
		if m >= 1 && m <= 12 {
			months = append(months, time.Month(m))
		}
	}
	return months
}

func parseMonth(m int) time.Month {
	if m >= 1 && m <= 12 {
		return time.Month(m)
	}
	return time.January
}

func monthsToInts(months []time.Month) []int {
	out := make([]int, len(months))
	for i, m := range months {
		out[i] = int(m)
	}
	return out
}
