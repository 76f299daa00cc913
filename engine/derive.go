/*
derive.go - Obligation derivation from the regulatory profile

PURPOSE:
  Maps a client's regulatory profile to the canonical set of recurring
  obligations that client owes. Each rule is evaluated independently and
  appends zero, one or two entries; output order is deterministic:
  TAX block, then PAYROLL, then BANK, then SPECIAL.

TRACEABILITY:
  Every emitted entry's Reason names the exact profile attribute and value
  that triggered it, for audit and for the risk checker.

INVARIANT:
  The bank-statement obligation is unconditional, so every profile derives
  at least one obligation. If that ever breaks, the risk checker's MISSING
  finding fires at severity 4.

SEE ALSO:
  - profile.go: Input type and normalization
  - risk.go: Consistency checks over the derived set
*/
package engine

// Obligation keys are stable and semantic; downstream stores key caches and
// coverage snapshots on them.
const (
	KeyUSNAdvance    = "tax.usn.advance"
	KeyUSNYear       = "tax.usn.year"
	KeyProfitTax     = "tax.osno.profit"
	KeyVATReporting  = "tax.vat.reporting"
	KeyPayrollSalary = "payroll.salary"
	KeyBankStatement = "bank.statement.request"
	KeyTouristLevy   = "special.tourist.levy"
)

// Derive computes the ordered obligation set for a profile. The profile is
// normalized internally, so callers may pass raw store output.
func Derive(profile RegulatoryProfile) []DerivedObligation {
	p := profile.Normalize()

	var out []DerivedObligation

	// TAX
	if p.TaxRegime.IsSimplified() {
		out = append(out,
			DerivedObligation{
				Key:         KeyUSNAdvance,
				Title:       "USN advance payment",
				Source:      SourceTax,
				Reason:      "taxRegime=" + string(p.TaxRegime),
				Periodicity: PeriodQuarterly,
			},
			DerivedObligation{
				Key:         KeyUSNYear,
				Title:       "USN annual declaration",
				Source:      SourceTax,
				Reason:      "taxRegime=" + string(p.TaxRegime),
				Periodicity: PeriodYearly,
			},
		)
	} else {
		out = append(out, DerivedObligation{
			Key:         KeyProfitTax,
			Title:       "Corporate profit tax",
			Source:      SourceTax,
			Reason:      "taxRegime=" + string(RegimeGeneral),
			Periodicity: PeriodQuarterly,
		})
	}

	// VAT applies independently of the regime branch: a general-regime client
	// and a VAT-liable simplified-regime client both carry it.
	if p.VATMode != VATNone {
		out = append(out, DerivedObligation{
			Key:         KeyVATReporting,
			Title:       "VAT reporting",
			Source:      SourceTax,
			Reason:      "vatMode=" + string(p.VATMode),
			Periodicity: PeriodQuarterly,
		})
	}

	// PAYROLL
	if p.Payroll.Enabled {
		out = append(out, DerivedObligation{
			Key:         KeyPayrollSalary,
			Title:       "Payroll run",
			Source:      SourcePayroll,
			Reason:      "payroll.enabled=true",
			Periodicity: PeriodMonthly,
		})
	}

	// BANK - unconditional: every client has at least one obligation.
	out = append(out, DerivedObligation{
		Key:         KeyBankStatement,
		Title:       "Bank statement request",
		Source:      SourceBank,
		Reason:      "bankAccounts>=1",
		Periodicity: PeriodMonthly,
	})

	// SPECIAL
	if p.Special.TouristLevy {
		out = append(out, DerivedObligation{
			Key:         KeyTouristLevy,
			Title:       "Tourist levy",
			Source:      SourceSpecial,
			Reason:      "special.touristLevy=true",
			Periodicity: PeriodMonthly,
		})
	}

	return out
}
