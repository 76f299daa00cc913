/*
Package engine provides the compliance obligation core.

PURPOSE:
  This package contains the pure transformations at the heart of the
  bookkeeping dashboard: deriving the obligations a client owes from their
  regulatory profile, expanding recurrence rules into concrete deadlines,
  checking the profile for consistency risks, and reconciling derived
  obligations against the work items actually being tracked.

KEY CONCEPTS IN THIS FILE (types.go):
  - DerivedObligation: A recurring duty the client owes, with a traceable reason
  - RiskFinding: A severity-tagged consistency problem
  - TrackedItem: An externally supplied work item (task)
  - CoverageResult: Partition of derived obligations into covered/missing/extra

DESIGN PRINCIPLES:
  1. Purity: Every function here is total and deterministic; equal inputs
     produce equal outputs, so callers may memoize freely.
  2. Coercion over rejection: Malformed inputs default to the most
     conservative value instead of raising errors.
  3. Traceability: Every derived obligation names the profile attribute
     that triggered it.

SEE ALSO:
  - derive.go: Profile to obligations derivation
  - recurrence.go: Rule to calendar-date expansion
  - risk.go: Consistency findings and scoring
  - coverage.go: Fuzzy reconciliation against tracked items
*/
package engine

// =============================================================================
// DERIVED OBLIGATION - A duty derived from the regulatory profile
// =============================================================================

// ObligationSource identifies which profile area produced an obligation.
type ObligationSource string

const (
	SourceTax     ObligationSource = "TAX"
	SourcePayroll ObligationSource = "PAYROLL"
	SourceBank    ObligationSource = "BANK"
	SourceSpecial ObligationSource = "SPECIAL"
)

// Periodicity is the coarse cadence of an obligation.
type Periodicity string

const (
	PeriodMonthly   Periodicity = "MONTHLY"
	PeriodQuarterly Periodicity = "QUARTERLY"
	PeriodYearly    Periodicity = "YEARLY"
	PeriodAdHoc     Periodicity = "ADHOC"
)

// DerivedObligation is recomputed on every derivation call and never persisted
// as a source of truth. Key is stable and semantic (e.g. "tax.usn.advance").
type DerivedObligation struct {
	Key         string           `json:"key"`
	Title       string           `json:"title"`
	Source      ObligationSource `json:"source"`
	Reason      string           `json:"reason"`
	Periodicity Periodicity      `json:"periodicity"`
}

// =============================================================================
// RISK FINDING - Severity-tagged consistency problem
// =============================================================================

type RiskKind string

const (
	RiskInconsistent RiskKind = "INCONSISTENT"
	RiskMissing      RiskKind = "MISSING"
)

// RiskFinding is ephemeral, recomputed alongside derived obligations.
// Severity runs 1 (note) to 4 (almost certainly a data error).
type RiskFinding struct {
	Kind     RiskKind `json:"kind"`
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Details  string   `json:"details"`
	Severity int      `json:"severity"`
}

// =============================================================================
// TRACKED ITEM - Externally supplied work item
// =============================================================================

// TrackedItem is opaque to the engine beyond these fields. DueDate may be zero
// when the surrounding system has not scheduled the task.
type TrackedItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	DueDate Date   `json:"dueDate,omitempty"`
}

// =============================================================================
// COVERAGE RESULT - Partition of derived obligations
// =============================================================================

// CoveredObligation is a derived obligation with the tracked items that match
// it. One obligation may map to many items (e.g. a task per month).
type CoveredObligation struct {
	Obligation DerivedObligation `json:"obligation"`
	Matches    []TrackedItem     `json:"matches"`
}

// CoverageResult partitions derived obligations and tracked items. Every
// derived obligation lands in exactly one of Present/Missing; every tracked
// item is either matched by some Present entry or listed in Unexpected.
type CoverageResult struct {
	Present    []CoveredObligation `json:"present"`
	Missing    []DerivedObligation `json:"missing"`
	Unexpected []TrackedItem       `json:"unexpected"`
}
