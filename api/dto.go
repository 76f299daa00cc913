/*
dto.go - Request/response data structures

PURPOSE:
  Wire shapes for the HTTP API. The engine's own data-model types carry JSON
  tags and go over the wire directly; the types here exist only where the
  request or response does not map 1:1 onto an engine type (date strings,
  envelope fields, composite responses).

CONVENTIONS:
  - Dates travel as "YYYY-MM-DD" strings
  - Field names are lowerCamel to match the engine types

SEE ALSO:
  - handlers.go: Handler implementations using these types
  - catalog/factory.go: DefinitionJSON, the catalog wire form
*/
package api

import (
	"github.com/warp/compliance-engine/catalog"
	"github.com/warp/compliance-engine/engine"
)

// =============================================================================
// RECURRENCE
// =============================================================================

// ExpandRequest asks for the concrete deadlines a rule produces.
type ExpandRequest struct {
	Rule          catalog.RuleJSON `json:"rule"`
	HorizonStart  string           `json:"horizonStart"` // YYYY-MM-DD
	HorizonMonths int              `json:"horizonMonths"`
}

type ExpandResponse struct {
	Dates []engine.Date `json:"dates"`
}

// =============================================================================
// CATALOG
// =============================================================================

// ReplaceCatalogRequest carries the full definition list; the stored catalog
// is replaced wholesale.
type ReplaceCatalogRequest struct {
	Definitions []catalog.DefinitionJSON `json:"definitions"`
}

// =============================================================================
// CLIENTS AND TASKS
// =============================================================================

// UpsertClientRequest creates or supersedes a client profile. Only ClientID is
// required; omitted attribute groups take their normalized defaults.
type UpsertClientRequest struct {
	ClientID     string              `json:"clientId"`
	EntityType   string              `json:"entityType"`
	TaxRegime    string              `json:"taxRegime"`
	VATMode      string              `json:"vatMode"`
	Payroll      engine.Payroll      `json:"payroll"`
	Special      engine.SpecialFlags `json:"special"`
	BankAccounts int                 `json:"bankAccounts"`
}

// CreateTaskRequest adds a tracked work item to a client. ID is optional; the
// server generates one when absent. DueDate is optional YYYY-MM-DD.
type CreateTaskRequest struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	DueDate string `json:"dueDate"`
}

// =============================================================================
// COMPOSITE RESPONSES
// =============================================================================

// RiskResponse bundles the findings with their aggregate score.
type RiskResponse struct {
	ClientID string               `json:"clientId"`
	Findings []engine.RiskFinding `json:"findings"`
	Score    engine.RiskScore     `json:"score"`
}

// CoverageResponse is the reconciliation partition plus its summary stats.
type CoverageResponse struct {
	ClientID       string                `json:"clientId"`
	Result         engine.CoverageResult `json:"result"`
	Stats          engine.CoverageStats  `json:"stats"`
	CoveredPercent string                `json:"coveredPercent"`
}

// ObligationsResponse is the derived obligation set for a client.
type ObligationsResponse struct {
	ClientID    string                     `json:"clientId"`
	Obligations []engine.DerivedObligation `json:"obligations"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
