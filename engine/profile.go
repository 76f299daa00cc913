/*
profile.go - Regulatory profile and its normalization boundary

PURPOSE:
  Defines the per-client snapshot of regulatory attributes that drives
  obligation derivation, and the single place where loose input is coerced
  into well-formed values.

NORMALIZATION BOUNDARY:
  The source system read nested, loosely-typed records with ad-hoc field
  fallbacks scattered through the logic. Here all defaulting happens ONCE,
  in Normalize(), before a profile reaches derivation, risk checking or
  reconciliation:
    - unknown/missing tax regime  -> general regime (requires no special
      derivation, the most conservative branch)
    - unknown/missing VAT mode    -> no VAT
    - unknown/missing entity type -> legal entity
    - negative bank account count -> zero

  Headcount is NOT clamped: payroll enabled with headcount <= 0 is a risk
  finding, not an input error.

LIFECYCLE:
  Created at client onboarding, mutated only through explicit profile edits,
  superseded rather than deleted while the client exists.

SEE ALSO:
  - derive.go: Consumes normalized profiles
  - risk.go: Consistency checks over profiles
*/
package engine

import "time"

// =============================================================================
// ENUMERATIONS
// =============================================================================

type EntityType string

const (
	EntitySoleProprietor EntityType = "sole_proprietor"
	EntityLegalEntity    EntityType = "legal_entity"
)

type TaxRegime string

const (
	// RegimeSimplifiedIncomeExpense taxes income minus expenses.
	RegimeSimplifiedIncomeExpense TaxRegime = "simplified_income_expense"
	// RegimeSimplifiedIncome taxes gross income only.
	RegimeSimplifiedIncome TaxRegime = "simplified_income"
	// RegimeGeneral is the full general regime.
	RegimeGeneral TaxRegime = "general"
)

// IsSimplified reports whether the regime is one of the simplified variants.
func (r TaxRegime) IsSimplified() bool {
	return r == RegimeSimplifiedIncomeExpense || r == RegimeSimplifiedIncome
}

type VATMode string

const (
	VATNone     VATMode = "none"
	VATReduced  VATMode = "reduced"
	VATStandard VATMode = "standard"
)

// =============================================================================
// REGULATORY PROFILE
// =============================================================================

// Payroll captures the employment block of a profile. PayDays lists the
// days-of-month salary is paid on (informational; not used by derivation).
type Payroll struct {
	Enabled   bool  `json:"enabled"`
	Headcount int   `json:"headcount"`
	PayDays   []int `json:"payDays,omitempty"`
}

// SpecialFlags are the boolean levies/regimes a client may be subject to.
type SpecialFlags struct {
	TouristLevy            bool `json:"touristLevy"`
	Excise                 bool `json:"excise"`
	ControlledTransactions bool `json:"controlledTransactions"`
}

// RegulatoryProfile is the per-client snapshot driving obligation derivation.
type RegulatoryProfile struct {
	ClientID     string       `json:"clientId"`
	EntityType   EntityType   `json:"entityType"`
	TaxRegime    TaxRegime    `json:"taxRegime"`
	VATMode      VATMode      `json:"vatMode"`
	Payroll      Payroll      `json:"payroll"`
	Special      SpecialFlags `json:"special"`
	BankAccounts int          `json:"bankAccounts"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Normalize applies all defaulting in one pass. Derivation, risk checking and
// reconciliation assume their profile input has been through here.
func (p RegulatoryProfile) Normalize() RegulatoryProfile {
	switch p.TaxRegime {
	case RegimeSimplifiedIncomeExpense, RegimeSimplifiedIncome, RegimeGeneral:
	default:
		p.TaxRegime = RegimeGeneral
	}

	switch p.VATMode {
	case VATNone, VATReduced, VATStandard:
	default:
		p.VATMode = VATNone
	}

	switch p.EntityType {
	case EntitySoleProprietor, EntityLegalEntity:
	default:
		p.EntityType = EntityLegalEntity
	}

	if p.BankAccounts < 0 {
		p.BankAccounts = 0
	}

	days := p.Payroll.PayDays[:0:0]
	for _, d := range p.Payroll.PayDays {
		days = append(days, ClampDay(d))
	}
	p.Payroll.PayDays = days

	return p
}

// DefaultProfile returns the onboarding default: a legal entity on the
// income-minus-expense simplified regime, no VAT, no payroll, one bank account.
func DefaultProfile(clientID string) RegulatoryProfile {
	return RegulatoryProfile{
		ClientID:     clientID,
		EntityType:   EntityLegalEntity,
		TaxRegime:    RegimeSimplifiedIncomeExpense,
		VATMode:      VATNone,
		BankAccounts: 1,
	}
}
