package domain

import (
	"github.com/shopspring/decimal"
)

// Relationship identifies how a dependent is related to the taxpayer
type Relationship string

const (
	RelationshipSpouse     Relationship = "spouse"
	RelationshipAscendant  Relationship = "ascendant"
	RelationshipDescendant Relationship = "descendant"
	RelationshipSibling    Relationship = "sibling"
	RelationshipOther      Relationship = "other"
)

// HousingMode selects which housing benefit applies to the taxpayer
type HousingMode string

const (
	HousingNone HousingMode = "none"
	HousingRent HousingMode = "rent"
	HousingLoan HousingMode = "loan"
)

// TaxpayerProfile holds the personal facts about the filer that affect the personal deduction
type TaxpayerProfile struct {
	Name         string `yaml:"name,omitempty" json:"name,omitempty"`
	BirthYear    int    `yaml:"birth_year" json:"birth_year" validate:"gte=1900,lte=2100"`
	Disabled     bool   `yaml:"disabled" json:"disabled"`
	SingleParent bool   `yaml:"single_parent" json:"single_parent"`
}

// Dependent represents a family member claimed by the taxpayer
type Dependent struct {
	Name           string          `yaml:"name" json:"name" validate:"required"`
	Relationship   Relationship    `yaml:"relationship" json:"relationship" validate:"oneof=spouse ascendant descendant sibling other"`
	BirthYear      int             `yaml:"birth_year" json:"birth_year" validate:"gte=1900,lte=2100"`
	Disabled       bool            `yaml:"disabled" json:"disabled"`
	AnnualIncome   decimal.Decimal `yaml:"annual_income" json:"annual_income" validate:"gte=0"`
	LivingTogether bool            `yaml:"living_together" json:"living_together"`
}

// IncomeData holds the employment figures for the settlement year
type IncomeData struct {
	Salary      decimal.Decimal `yaml:"salary" json:"salary" validate:"gte=0"`
	OtherIncome decimal.Decimal `yaml:"other_income" json:"other_income" validate:"gte=0"`
	WithheldTax decimal.Decimal `yaml:"withheld_tax" json:"withheld_tax" validate:"gte=0"`
}

// CardSpend holds annual card and cash-receipt usage per deduction category
type CardSpend struct {
	Credit            decimal.Decimal `yaml:"credit" json:"credit" validate:"gte=0"`
	Debit             decimal.Decimal `yaml:"debit" json:"debit" validate:"gte=0"`
	CashReceipt       decimal.Decimal `yaml:"cash_receipt" json:"cash_receipt" validate:"gte=0"`
	TraditionalMarket decimal.Decimal `yaml:"traditional_market" json:"traditional_market" validate:"gte=0"`
	PublicTransport   decimal.Decimal `yaml:"public_transport" json:"public_transport" validate:"gte=0"`
}

// Total returns the sum of every card category
func (c CardSpend) Total() decimal.Decimal {
	return c.Credit.Add(c.Debit).Add(c.CashReceipt).Add(c.TraditionalMarket).Add(c.PublicTransport)
}

// MedicalExpense holds medical spend. ElderlyOrDisabled and Infertility are
// subsets of Total that are credited without threshold or ceiling.
type MedicalExpense struct {
	Total             decimal.Decimal `yaml:"total" json:"total" validate:"gte=0"`
	ElderlyOrDisabled decimal.Decimal `yaml:"elderly_or_disabled" json:"elderly_or_disabled" validate:"gte=0"`
	Infertility       decimal.Decimal `yaml:"infertility" json:"infertility" validate:"gte=0"`
}

// Special returns the portion of medical spend credited at the special rate
func (m MedicalExpense) Special() decimal.Decimal {
	return m.ElderlyOrDisabled.Add(m.Infertility)
}

// ChildrenEducation holds tuition paid for children by school level
type ChildrenEducation struct {
	Kindergarten decimal.Decimal `yaml:"kindergarten" json:"kindergarten" validate:"gte=0"`
	Elementary   decimal.Decimal `yaml:"elementary" json:"elementary" validate:"gte=0"`
	University   decimal.Decimal `yaml:"university" json:"university" validate:"gte=0"`
}

// EducationExpense holds education spend for the taxpayer and dependents
type EducationExpense struct {
	Self     decimal.Decimal   `yaml:"self" json:"self" validate:"gte=0"`
	Children ChildrenEducation `yaml:"children" json:"children"`
	Disabled decimal.Decimal   `yaml:"disabled" json:"disabled" validate:"gte=0"`
}

// PensionPayment holds the two private pension contribution streams
type PensionPayment struct {
	PensionSavings decimal.Decimal `yaml:"pension_savings" json:"pension_savings" validate:"gte=0"`
	IRP            decimal.Decimal `yaml:"irp" json:"irp" validate:"gte=0"`
}

// Total returns the combined contribution of both streams
func (p PensionPayment) Total() decimal.Decimal {
	return p.PensionSavings.Add(p.IRP)
}

// HousingData describes the taxpayer's housing situation. Only the fields
// relevant to Mode are consulted.
type HousingData struct {
	Mode         HousingMode     `yaml:"mode" json:"mode" validate:"omitempty,oneof=none rent loan"`
	MonthlyRent  decimal.Decimal `yaml:"monthly_rent,omitempty" json:"monthly_rent,omitempty" validate:"gte=0"`
	LoanInterest decimal.Decimal `yaml:"loan_interest,omitempty" json:"loan_interest,omitempty" validate:"gte=0"`
	// LongTermLoan selects the higher loan-interest ceiling.
	LongTermLoan bool `yaml:"long_term_loan,omitempty" json:"long_term_loan,omitempty"`
}

// DonationData holds donations by category
type DonationData struct {
	Political decimal.Decimal `yaml:"political" json:"political" validate:"gte=0"`
	Religious decimal.Decimal `yaml:"religious" json:"religious" validate:"gte=0"`
	General   decimal.Decimal `yaml:"general" json:"general" validate:"gte=0"`
}

// TaxInput aggregates everything the settlement pipeline needs for one taxpayer
type TaxInput struct {
	Profile    TaxpayerProfile  `yaml:"profile" json:"profile"`
	Income     IncomeData       `yaml:"income" json:"income"`
	Dependents []Dependent      `yaml:"dependents" json:"dependents" validate:"dive"`
	CardSpend  CardSpend        `yaml:"card_spend" json:"card_spend"`
	Medical    MedicalExpense   `yaml:"medical" json:"medical"`
	Education  EducationExpense `yaml:"education" json:"education"`
	Pension    PensionPayment   `yaml:"pension" json:"pension"`
	Housing    HousingData      `yaml:"housing" json:"housing"`
	Donation   DonationData     `yaml:"donation" json:"donation"`
}

// Clone returns a copy of the input that shares no mutable state with the receiver
func (in *TaxInput) Clone() *TaxInput {
	if in == nil {
		return nil
	}
	out := *in
	if in.Dependents != nil {
		out.Dependents = append([]Dependent(nil), in.Dependents...)
	}
	return &out
}

// NominalAge returns the age used for settlement purposes: the tax year minus
// the birth year plus one.
func NominalAge(taxYear, birthYear int) int {
	return taxYear - birthYear + 1
}
