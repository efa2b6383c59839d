package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxResult is the outcome of one settlement calculation. Every intermediate
// figure is exposed so callers can render a stage-by-stage breakdown.
type TaxResult struct {
	// Stage 1-2: income
	TotalIncome               decimal.Decimal `yaml:"total_income" json:"total_income"`
	EmploymentIncomeDeduction decimal.Decimal `yaml:"employment_income_deduction" json:"employment_income_deduction"`
	EmploymentIncome          decimal.Decimal `yaml:"employment_income" json:"employment_income"`

	// Stage 3: income deductions
	PersonalDeduction    decimal.Decimal `yaml:"personal_deduction" json:"personal_deduction"`
	CardSpendDeduction   decimal.Decimal `yaml:"card_spend_deduction" json:"card_spend_deduction"`
	PensionDeduction     decimal.Decimal `yaml:"pension_deduction" json:"pension_deduction"`
	HousingDeduction     decimal.Decimal `yaml:"housing_deduction" json:"housing_deduction"`
	TotalIncomeDeduction decimal.Decimal `yaml:"total_income_deduction" json:"total_income_deduction"`

	// Stage 4-5: tax base and gross tax
	TaxableIncome decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	CalculatedTax decimal.Decimal `yaml:"calculated_tax" json:"calculated_tax"`

	// Stage 6: credits
	MedicalCredit   decimal.Decimal `yaml:"medical_credit" json:"medical_credit"`
	EducationCredit decimal.Decimal `yaml:"education_credit" json:"education_credit"`
	PensionCredit   decimal.Decimal `yaml:"pension_credit" json:"pension_credit"`
	DonationCredit  decimal.Decimal `yaml:"donation_credit" json:"donation_credit"`
	RentCredit      decimal.Decimal `yaml:"rent_credit" json:"rent_credit"`
	// CardSpendCredit is reserved and always zero.
	CardSpendCredit decimal.Decimal `yaml:"card_spend_credit" json:"card_spend_credit"`
	TotalTaxCredit  decimal.Decimal `yaml:"total_tax_credit" json:"total_tax_credit"`

	// Stage 7: settlement
	DeterminedTax decimal.Decimal `yaml:"determined_tax" json:"determined_tax"`
	WithheldTax   decimal.Decimal `yaml:"withheld_tax" json:"withheld_tax"`
	// RefundOrPayment is positive for a refund and negative for a balance due.
	RefundOrPayment decimal.Decimal `yaml:"refund_or_payment" json:"refund_or_payment"`
	// EffectiveTaxRate is a percentage of total income.
	EffectiveTaxRate decimal.Decimal `yaml:"effective_tax_rate" json:"effective_tax_rate"`

	RuleSetVersion string    `yaml:"rule_set_version" json:"rule_set_version"`
	CalculatedAt   time.Time `yaml:"calculated_at" json:"calculated_at"`
}

// IsRefund reports whether the settlement results in money returned to the taxpayer
func (r *TaxResult) IsRefund() bool {
	return r.RefundOrPayment.IsPositive()
}

// ValidationOutcome is the structured result of a single validator check
type ValidationOutcome struct {
	Valid    bool     `yaml:"valid" json:"valid"`
	Reason   string   `yaml:"reason,omitempty" json:"reason,omitempty"`
	Warnings []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// PeerBucket holds reference averages for taxpayers in a salary band.
// A salary belongs to the bucket when Lower <= salary < Upper.
type PeerBucket struct {
	Key                  string          `yaml:"key" json:"key"`
	Lower                decimal.Decimal `yaml:"lower" json:"lower"`
	Upper                decimal.Decimal `yaml:"upper" json:"upper"`
	AveragePension       decimal.Decimal `yaml:"average_pension" json:"average_pension"`
	AverageMedical       decimal.Decimal `yaml:"average_medical" json:"average_medical"`
	AverageCardDeduction decimal.Decimal `yaml:"average_card_deduction" json:"average_card_deduction"`
	AverageRefund        decimal.Decimal `yaml:"average_refund" json:"average_refund"`
}

// Contains reports whether salary falls inside the bucket's range
func (b PeerBucket) Contains(salary decimal.Decimal) bool {
	return salary.GreaterThanOrEqual(b.Lower) && salary.LessThan(b.Upper)
}

// SettlementReport bundles a calculation with its advisory output for formatters
type SettlementReport struct {
	Input       *TaxInput                    `yaml:"input" json:"input"`
	Result      *TaxResult                   `yaml:"result" json:"result"`
	Validation  map[string]ValidationOutcome `yaml:"validation,omitempty" json:"validation,omitempty"`
	Suggestions []SimulationScenario         `yaml:"suggestions,omitempty" json:"suggestions,omitempty"`
	PeerBucket  *PeerBucket                  `yaml:"peer_bucket,omitempty" json:"peer_bucket,omitempty"`
	Insights    []string                     `yaml:"insights,omitempty" json:"insights,omitempty"`
}
