/*
risk.go - Consistency checks and risk scoring

PURPOSE:
  Runs independent sanity checks over a profile and its derived obligation
  set, and collapses the findings into a 0..100 score with a coarse label.

SCORING:
  score = clamp(maxSeverity*20 + sumSeverity*2, 0, 100)

  One severe finding alone crosses into a high band via the max term, while
  many minor findings accumulate through the additive term. Labels:
  >=80 CRITICAL, >=50 HIGH, >=20 MEDIUM, else LOW.

SEE ALSO:
  - derive.go: Produces the derived set checked here
*/
package engine

// Finding keys follow the risk.<kind>.<subject> convention.
const (
	KeyRiskPayrollHeadcount = "risk.inconsistent.payroll.headcount"
	KeyRiskVATRegime        = "risk.inconsistent.vat.regime"
	KeyRiskNoObligations    = "risk.missing.obligations"
)

// Check evaluates every consistency rule on every call; rules are independent
// and order of findings is deterministic.
func Check(profile RegulatoryProfile, derived []DerivedObligation) []RiskFinding {
	p := profile.Normalize()

	var findings []RiskFinding

	if p.Payroll.Enabled && p.Payroll.Headcount <= 0 {
		findings = append(findings, RiskFinding{
			Kind:     RiskInconsistent,
			Key:      KeyRiskPayrollHeadcount,
			Title:    "Payroll enabled but headcount is zero",
			Details:  "payroll.enabled=true and payroll.headcount<=0",
			Severity: 3,
		})
	}

	// VAT under the income-only simplified regime is unusual but not
	// impossible: flag, don't block.
	if p.TaxRegime == RegimeSimplifiedIncome && p.VATMode != VATNone {
		findings = append(findings, RiskFinding{
			Kind:     RiskInconsistent,
			Key:      KeyRiskVATRegime,
			Title:    "VAT enabled on the income-only simplified regime",
			Details:  "taxRegime=" + string(p.TaxRegime) + " and vatMode=" + string(p.VATMode),
			Severity: 2,
		})
	}

	if len(derived) == 0 {
		findings = append(findings, RiskFinding{
			Kind:     RiskMissing,
			Key:      KeyRiskNoObligations,
			Title:    "No obligations derived",
			Details:  "Derived obligation list is empty. Profile data is almost certainly incomplete.",
			Severity: 4,
		})
	}

	return findings
}

// =============================================================================
// SCORING
// =============================================================================

type RiskLabel string

const (
	LabelLow      RiskLabel = "LOW"
	LabelMedium   RiskLabel = "MEDIUM"
	LabelHigh     RiskLabel = "HIGH"
	LabelCritical RiskLabel = "CRITICAL"
)

type RiskScore struct {
	Value int       `json:"value"`
	Label RiskLabel `json:"label"`
}

// Score collapses findings into an aggregate value and label. Adding a
// finding of severity >= 1 never decreases the score.
func Score(findings []RiskFinding) RiskScore {
	maxSeverity, sumSeverity := 0, 0
	for _, f := range findings {
		if f.Severity > maxSeverity {
			maxSeverity = f.Severity
		}
		sumSeverity += f.Severity
	}

	value := maxSeverity*20 + sumSeverity*2
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return RiskScore{Value: value, Label: labelFor(value)}
}

func labelFor(value int) RiskLabel {
	switch {
	case value >= 80:
		return LabelCritical
	case value >= 50:
		return LabelHigh
	case value >= 20:
		return LabelMedium
	default:
		return LabelLow
	}
}
