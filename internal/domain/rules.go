package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bracket is one interval of a piecewise-linear schedule. The final bracket
// of a sequence is treated as unbounded regardless of UpperBound.
type Bracket struct {
	UpperBound decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	Offset     decimal.Decimal `yaml:"offset" json:"offset"`
}

// RuleTable holds every jurisdiction constant for one tax year.
// An engine clones the table it is given and never mutates it afterwards.
type RuleTable struct {
	Version     string `yaml:"version" json:"version"`
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	LastUpdated string `yaml:"last_updated,omitempty" json:"last_updated,omitempty"`

	Employment EmploymentRules `yaml:"employment" json:"employment"`
	Personal   PersonalRules   `yaml:"personal" json:"personal"`
	Card       CardRules       `yaml:"card" json:"card"`
	Medical    MedicalRules    `yaml:"medical" json:"medical"`
	Education  EducationRules  `yaml:"education" json:"education"`
	Pension    PensionRules    `yaml:"pension" json:"pension"`
	Housing    HousingRules    `yaml:"housing" json:"housing"`
	Donation   DonationRules   `yaml:"donation" json:"donation"`
	Tax        TaxRules        `yaml:"tax" json:"tax"`
	Validation ValidationRules `yaml:"validation" json:"validation"`
}

// EmploymentRules describe the employment income deduction schedule
type EmploymentRules struct {
	Brackets []Bracket       `yaml:"brackets" json:"brackets"`
	Ceiling  decimal.Decimal `yaml:"ceiling" json:"ceiling"`
}

// PersonalRules describe per-head deductions and dependent eligibility
type PersonalRules struct {
	Basic                 decimal.Decimal `yaml:"basic" json:"basic"`
	ElderlySurcharge      decimal.Decimal `yaml:"elderly_surcharge" json:"elderly_surcharge"`
	DisabledSurcharge     decimal.Decimal `yaml:"disabled_surcharge" json:"disabled_surcharge"`
	SingleParentSurcharge decimal.Decimal `yaml:"single_parent_surcharge" json:"single_parent_surcharge"`
	ChildMaxAge           int             `yaml:"child_max_age" json:"child_max_age"`
	ParentMinAge          int             `yaml:"parent_min_age" json:"parent_min_age"`
	ElderlyMinAge         int             `yaml:"elderly_min_age" json:"elderly_min_age"`
	DependentIncomeLimit  decimal.Decimal `yaml:"dependent_income_limit" json:"dependent_income_limit"`
}

// CardRules describe the card-spend income deduction
type CardRules struct {
	ThresholdRate       decimal.Decimal `yaml:"threshold_rate" json:"threshold_rate"`
	CreditRate          decimal.Decimal `yaml:"credit_rate" json:"credit_rate"`
	DebitRate           decimal.Decimal `yaml:"debit_rate" json:"debit_rate"`
	MarketRate          decimal.Decimal `yaml:"market_rate" json:"market_rate"`
	TransportRate       decimal.Decimal `yaml:"transport_rate" json:"transport_rate"`
	BaseCap             decimal.Decimal `yaml:"base_cap" json:"base_cap"`
	MarketExtraCap      decimal.Decimal `yaml:"market_extra_cap" json:"market_extra_cap"`
	TransportExtraCap   decimal.Decimal `yaml:"transport_extra_cap" json:"transport_extra_cap"`
	HighIncomeThreshold decimal.Decimal `yaml:"high_income_threshold" json:"high_income_threshold"`
}

// MedicalRules describe the medical expense credit
type MedicalRules struct {
	ThresholdRate  decimal.Decimal `yaml:"threshold_rate" json:"threshold_rate"`
	Rate           decimal.Decimal `yaml:"rate" json:"rate"`
	SpecialRate    decimal.Decimal `yaml:"special_rate" json:"special_rate"`
	GeneralCeiling decimal.Decimal `yaml:"general_ceiling" json:"general_ceiling"`
}

// EducationRules describe the education credit. A nil ceiling means uncapped.
type EducationRules struct {
	Rate                decimal.Decimal  `yaml:"rate" json:"rate"`
	SelfCeiling         *decimal.Decimal `yaml:"self_ceiling,omitempty" json:"self_ceiling,omitempty"`
	KindergartenCeiling *decimal.Decimal `yaml:"kindergarten_ceiling,omitempty" json:"kindergarten_ceiling,omitempty"`
	ElementaryCeiling   *decimal.Decimal `yaml:"elementary_ceiling,omitempty" json:"elementary_ceiling,omitempty"`
	UniversityCeiling   *decimal.Decimal `yaml:"university_ceiling,omitempty" json:"university_ceiling,omitempty"`
	DisabledCeiling     *decimal.Decimal `yaml:"disabled_ceiling,omitempty" json:"disabled_ceiling,omitempty"`
}

// PensionRules describe the private pension credit
type PensionRules struct {
	LowIncomeRate      decimal.Decimal `yaml:"low_income_rate" json:"low_income_rate"`
	HighIncomeRate     decimal.Decimal `yaml:"high_income_rate" json:"high_income_rate"`
	SalaryThreshold    decimal.Decimal `yaml:"salary_threshold" json:"salary_threshold"`
	CombinedCeiling    decimal.Decimal `yaml:"combined_ceiling" json:"combined_ceiling"`
	SavingsOnlyCeiling decimal.Decimal `yaml:"savings_only_ceiling" json:"savings_only_ceiling"`
}

// HousingRules describe the rent credit and the loan-interest deduction
type HousingRules struct {
	RentRate            decimal.Decimal `yaml:"rent_rate" json:"rent_rate"`
	RentCeiling         decimal.Decimal `yaml:"rent_ceiling" json:"rent_ceiling"`
	RentSalaryLimit     decimal.Decimal `yaml:"rent_salary_limit" json:"rent_salary_limit"`
	LoanCeiling         decimal.Decimal `yaml:"loan_ceiling" json:"loan_ceiling"`
	LongTermLoanCeiling decimal.Decimal `yaml:"long_term_loan_ceiling" json:"long_term_loan_ceiling"`
}

// DonationRules describe the donation credit. Income shares are applied to employment income.
type DonationRules struct {
	PoliticalRate        decimal.Decimal `yaml:"political_rate" json:"political_rate"`
	ReligiousRate        decimal.Decimal `yaml:"religious_rate" json:"religious_rate"`
	GeneralRate          decimal.Decimal `yaml:"general_rate" json:"general_rate"`
	PoliticalIncomeShare decimal.Decimal `yaml:"political_income_share" json:"political_income_share"`
	ReligiousIncomeShare decimal.Decimal `yaml:"religious_income_share" json:"religious_income_share"`
	GeneralIncomeShare   decimal.Decimal `yaml:"general_income_share" json:"general_income_share"`
}

// TaxRules hold the progressive income tax schedule
type TaxRules struct {
	Brackets []Bracket `yaml:"brackets" json:"brackets"`
}

// ValidationRules hold the sanity limits used by input validation
type ValidationRules struct {
	MaxSalary            decimal.Decimal `yaml:"max_salary" json:"max_salary"`
	MaxDependents        int             `yaml:"max_dependents" json:"max_dependents"`
	MinAge               int             `yaml:"min_age" json:"min_age"`
	MaxAge               int             `yaml:"max_age" json:"max_age"`
	PensionSanityCeiling decimal.Decimal `yaml:"pension_sanity_ceiling" json:"pension_sanity_ceiling"`
	CardSalaryMultiple   decimal.Decimal `yaml:"card_salary_multiple" json:"card_salary_multiple"`
}

// Validate checks the structural soundness of the table
func (rt *RuleTable) Validate() error {
	if rt.TaxYear <= 0 {
		return fmt.Errorf("tax year must be positive, got %d", rt.TaxYear)
	}
	if err := validateBrackets("employment", rt.Employment.Brackets); err != nil {
		return err
	}
	if err := validateBrackets("tax", rt.Tax.Brackets); err != nil {
		return err
	}
	if rt.Employment.Ceiling.IsNegative() {
		return fmt.Errorf("employment ceiling cannot be negative")
	}
	if rt.Personal.ChildMaxAge >= rt.Personal.ParentMinAge {
		return fmt.Errorf("child max age %d must be below parent min age %d", rt.Personal.ChildMaxAge, rt.Personal.ParentMinAge)
	}
	return nil
}

func validateBrackets(name string, brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%s brackets cannot be empty", name)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("%s bracket %d has negative rate", name, i)
		}
		if i == len(brackets)-1 {
			break
		}
		if !b.UpperBound.IsPositive() {
			return fmt.Errorf("%s bracket %d upper bound must be positive", name, i)
		}
		if i > 0 && !b.UpperBound.GreaterThan(brackets[i-1].UpperBound) {
			return fmt.Errorf("%s bracket %d upper bound %s is not ascending", name, i, b.UpperBound)
		}
	}
	return nil
}

// Clone returns a deep copy of the table
func (rt *RuleTable) Clone() *RuleTable {
	if rt == nil {
		return nil
	}
	out := *rt
	out.Employment.Brackets = append([]Bracket(nil), rt.Employment.Brackets...)
	out.Tax.Brackets = append([]Bracket(nil), rt.Tax.Brackets...)
	out.Education.SelfCeiling = cloneDecimalPtr(rt.Education.SelfCeiling)
	out.Education.KindergartenCeiling = cloneDecimalPtr(rt.Education.KindergartenCeiling)
	out.Education.ElementaryCeiling = cloneDecimalPtr(rt.Education.ElementaryCeiling)
	out.Education.UniversityCeiling = cloneDecimalPtr(rt.Education.UniversityCeiling)
	out.Education.DisabledCeiling = cloneDecimalPtr(rt.Education.DisabledCeiling)
	return &out
}

func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
