package engine_test

import (
	"testing"

	"github.com/warp/compliance-engine/engine"
)

func keysOf(obs []engine.DerivedObligation) []string {
	keys := make([]string, len(obs))
	for i, ob := range obs {
		keys[i] = ob.Key
	}
	return keys
}

func expectKeys(t *testing.T, obs []engine.DerivedObligation, want []string) {
	t.Helper()
	got := keysOf(obs)
	if len(got) != len(want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected keys %v, got %v", want, got)
		}
	}
}

// =============================================================================
// DERIVATION RULES
// =============================================================================

func TestDerive_SimplifiedRegimeWithPayroll(t *testing.T) {
	// GIVEN: A simplified income-minus-expense client, no VAT, payroll enabled
	// WHEN: Deriving obligations
	// THEN: USN advance + annual declaration + payroll + bank statement,
	//       in TAX, PAYROLL, BANK order

	profile := engine.RegulatoryProfile{
		ClientID:     "client-1",
		EntityType:   engine.EntityLegalEntity,
		TaxRegime:    engine.RegimeSimplifiedIncomeExpense,
		VATMode:      engine.VATNone,
		Payroll:      engine.Payroll{Enabled: true},
		BankAccounts: 1,
	}

	obs := engine.Derive(profile)

	expectKeys(t, obs, []string{
		engine.KeyUSNAdvance,
		engine.KeyUSNYear,
		engine.KeyPayrollSalary,
		engine.KeyBankStatement,
	})
}

func TestDerive_GeneralRegime(t *testing.T) {
	// GIVEN: A general-regime client with standard VAT, no payroll
	// WHEN: Deriving
	// THEN: Profit tax + VAT reporting + bank statement; no USN entries

	profile := engine.RegulatoryProfile{
		ClientID:  "client-2",
		TaxRegime: engine.RegimeGeneral,
		VATMode:   engine.VATStandard,
	}

	obs := engine.Derive(profile)

	expectKeys(t, obs, []string{
		engine.KeyProfitTax,
		engine.KeyVATReporting,
		engine.KeyBankStatement,
	})
}

func TestDerive_VATIndependentOfRegime(t *testing.T) {
	// GIVEN: A simplified-income client that is nonetheless VAT-liable
	// WHEN: Deriving
	// THEN: Both USN entries AND VAT reporting appear

	profile := engine.RegulatoryProfile{
		ClientID:  "client-3",
		TaxRegime: engine.RegimeSimplifiedIncome,
		VATMode:   engine.VATReduced,
	}

	obs := engine.Derive(profile)

	expectKeys(t, obs, []string{
		engine.KeyUSNAdvance,
		engine.KeyUSNYear,
		engine.KeyVATReporting,
		engine.KeyBankStatement,
	})
}

func TestDerive_BankStatementUnconditional(t *testing.T) {
	// GIVEN: A zero-value profile
	// WHEN: Deriving
	// THEN: The bank statement obligation is present, so the set is never empty

	obs := engine.Derive(engine.RegulatoryProfile{ClientID: "client-4"})

	if len(obs) == 0 {
		t.Fatal("derived set must never be empty")
	}
	found := false
	for _, ob := range obs {
		if ob.Key == engine.KeyBankStatement {
			found = true
			if ob.Source != engine.SourceBank {
				t.Errorf("bank statement source: expected BANK, got %s", ob.Source)
			}
		}
	}
	if !found {
		t.Error("bank statement obligation missing")
	}
}

func TestDerive_TouristLevy(t *testing.T) {
	// GIVEN: A client flagged for the tourist levy
	// WHEN: Deriving
	// THEN: The SPECIAL entry appears last

	profile := engine.RegulatoryProfile{
		ClientID:  "client-5",
		TaxRegime: engine.RegimeGeneral,
		Special:   engine.SpecialFlags{TouristLevy: true},
	}

	obs := engine.Derive(profile)

	last := obs[len(obs)-1]
	if last.Key != engine.KeyTouristLevy {
		t.Errorf("expected tourist levy last, got %s", last.Key)
	}
	if last.Source != engine.SourceSpecial {
		t.Errorf("expected SPECIAL source, got %s", last.Source)
	}
}

func TestDerive_ReasonsNameTriggeringAttribute(t *testing.T) {
	// GIVEN: A simplified client with VAT and payroll
	// WHEN: Deriving
	// THEN: Each entry's reason names the exact attribute and value

	profile := engine.RegulatoryProfile{
		ClientID:  "client-6",
		TaxRegime: engine.RegimeSimplifiedIncome,
		VATMode:   engine.VATStandard,
		Payroll:   engine.Payroll{Enabled: true, Headcount: 3},
	}

	reasons := map[string]string{}
	for _, ob := range engine.Derive(profile) {
		reasons[ob.Key] = ob.Reason
	}

	cases := map[string]string{
		engine.KeyUSNAdvance:    "taxRegime=simplified_income",
		engine.KeyVATReporting:  "vatMode=standard",
		engine.KeyPayrollSalary: "payroll.enabled=true",
		engine.KeyBankStatement: "bankAccounts>=1",
	}
	for key, want := range cases {
		if reasons[key] != want {
			t.Errorf("%s: expected reason %q, got %q", key, want, reasons[key])
		}
	}
}

func TestDerive_UnknownRegimeCoercedToGeneral(t *testing.T) {
	// GIVEN: A profile with a garbage tax regime
	// WHEN: Deriving
	// THEN: It behaves as a general-regime client (coercion, not rejection)

	profile := engine.RegulatoryProfile{ClientID: "client-7", TaxRegime: "flat_tax_9000"}

	obs := engine.Derive(profile)

	expectKeys(t, obs, []string{engine.KeyProfitTax, engine.KeyBankStatement})
}

// =============================================================================
// NORMALIZATION
// =============================================================================

func TestNormalize_CoercesUnknownsAndClamps(t *testing.T) {
	// GIVEN: A profile full of malformed fields
	// WHEN: Normalizing
	// THEN: Unknown enums default, negatives clamp, headcount is left alone

	p := engine.RegulatoryProfile{
		ClientID:     "client-8",
		EntityType:   "llc?",
		TaxRegime:    "bogus",
		VATMode:      "maybe",
		BankAccounts: -2,
		Payroll:      engine.Payroll{Enabled: true, Headcount: -5, PayDays: []int{0, 10, 99}},
	}.Normalize()

	if p.EntityType != engine.EntityLegalEntity {
		t.Errorf("entity type: expected legal_entity, got %s", p.EntityType)
	}
	if p.TaxRegime != engine.RegimeGeneral {
		t.Errorf("tax regime: expected general, got %s", p.TaxRegime)
	}
	if p.VATMode != engine.VATNone {
		t.Errorf("vat mode: expected none, got %s", p.VATMode)
	}
	if p.BankAccounts != 0 {
		t.Errorf("bank accounts: expected 0, got %d", p.BankAccounts)
	}
	if p.Payroll.Headcount != -5 {
		t.Errorf("headcount must not be clamped: got %d", p.Payroll.Headcount)
	}
	if p.Payroll.PayDays[0] != 1 || p.Payroll.PayDays[2] != 31 {
		t.Errorf("pay days not clamped: %v", p.Payroll.PayDays)
	}
}
