package domain

import (
	"github.com/shopspring/decimal"
)

// SimulationScenario is a named what-if change to a base input
type SimulationScenario struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Changes     InputPatch `yaml:"changes" json:"changes"`
	// Impact is the refund delta versus the base input, filled in by the simulator.
	Impact decimal.Decimal `yaml:"impact" json:"impact"`
}

// InputPatch names the sections of a TaxInput a scenario may override.
// Nil fields leave the base value untouched.
type InputPatch struct {
	Profile    *ProfilePatch   `yaml:"profile,omitempty" json:"profile,omitempty"`
	Income     *IncomePatch    `yaml:"income,omitempty" json:"income,omitempty"`
	Dependents *[]Dependent    `yaml:"dependents,omitempty" json:"dependents,omitempty"`
	CardSpend  *CardSpendPatch `yaml:"card_spend,omitempty" json:"card_spend,omitempty"`
	Medical    *MedicalPatch   `yaml:"medical,omitempty" json:"medical,omitempty"`
	Education  *EducationPatch `yaml:"education,omitempty" json:"education,omitempty"`
	Pension    *PensionPatch   `yaml:"pension,omitempty" json:"pension,omitempty"`
	Housing    *HousingPatch   `yaml:"housing,omitempty" json:"housing,omitempty"`
	Donation   *DonationPatch  `yaml:"donation,omitempty" json:"donation,omitempty"`
}

// ProfilePatch overrides individual TaxpayerProfile fields
type ProfilePatch struct {
	BirthYear    *int  `yaml:"birth_year,omitempty" json:"birth_year,omitempty"`
	Disabled     *bool `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	SingleParent *bool `yaml:"single_parent,omitempty" json:"single_parent,omitempty"`
}

// IncomePatch overrides individual IncomeData fields
type IncomePatch struct {
	Salary      *decimal.Decimal `yaml:"salary,omitempty" json:"salary,omitempty"`
	OtherIncome *decimal.Decimal `yaml:"other_income,omitempty" json:"other_income,omitempty"`
	WithheldTax *decimal.Decimal `yaml:"withheld_tax,omitempty" json:"withheld_tax,omitempty"`
}

// CardSpendPatch overrides individual card spend categories
type CardSpendPatch struct {
	Credit            *decimal.Decimal `yaml:"credit,omitempty" json:"credit,omitempty"`
	Debit             *decimal.Decimal `yaml:"debit,omitempty" json:"debit,omitempty"`
	CashReceipt       *decimal.Decimal `yaml:"cash_receipt,omitempty" json:"cash_receipt,omitempty"`
	TraditionalMarket *decimal.Decimal `yaml:"traditional_market,omitempty" json:"traditional_market,omitempty"`
	PublicTransport   *decimal.Decimal `yaml:"public_transport,omitempty" json:"public_transport,omitempty"`
}

// MedicalPatch overrides individual MedicalExpense fields
type MedicalPatch struct {
	Total             *decimal.Decimal `yaml:"total,omitempty" json:"total,omitempty"`
	ElderlyOrDisabled *decimal.Decimal `yaml:"elderly_or_disabled,omitempty" json:"elderly_or_disabled,omitempty"`
	Infertility       *decimal.Decimal `yaml:"infertility,omitempty" json:"infertility,omitempty"`
}

// EducationPatch replaces Children as a whole when set.
type EducationPatch struct {
	Self     *decimal.Decimal   `yaml:"self,omitempty" json:"self,omitempty"`
	Children *ChildrenEducation `yaml:"children,omitempty" json:"children,omitempty"`
	Disabled *decimal.Decimal   `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// PensionPatch overrides either pension contribution stream
type PensionPatch struct {
	PensionSavings *decimal.Decimal `yaml:"pension_savings,omitempty" json:"pension_savings,omitempty"`
	IRP            *decimal.Decimal `yaml:"irp,omitempty" json:"irp,omitempty"`
}

// HousingPatch overrides individual HousingData fields, including the mode
type HousingPatch struct {
	Mode         *HousingMode     `yaml:"mode,omitempty" json:"mode,omitempty"`
	MonthlyRent  *decimal.Decimal `yaml:"monthly_rent,omitempty" json:"monthly_rent,omitempty"`
	LoanInterest *decimal.Decimal `yaml:"loan_interest,omitempty" json:"loan_interest,omitempty"`
	LongTermLoan *bool            `yaml:"long_term_loan,omitempty" json:"long_term_loan,omitempty"`
}

// DonationPatch overrides individual donation categories
type DonationPatch struct {
	Political *decimal.Decimal `yaml:"political,omitempty" json:"political,omitempty"`
	Religious *decimal.Decimal `yaml:"religious,omitempty" json:"religious,omitempty"`
	General   *decimal.Decimal `yaml:"general,omitempty" json:"general,omitempty"`
}

// Apply returns a new input with the patch merged over base. Top-level
// sections are merged one field deep; base is never modified.
func (p InputPatch) Apply(base *TaxInput) *TaxInput {
	out := base.Clone()
	if out == nil {
		out = &TaxInput{}
	}

	if p.Profile != nil {
		setInt(&out.Profile.BirthYear, p.Profile.BirthYear)
		setBool(&out.Profile.Disabled, p.Profile.Disabled)
		setBool(&out.Profile.SingleParent, p.Profile.SingleParent)
	}
	if p.Income != nil {
		setDecimal(&out.Income.Salary, p.Income.Salary)
		setDecimal(&out.Income.OtherIncome, p.Income.OtherIncome)
		setDecimal(&out.Income.WithheldTax, p.Income.WithheldTax)
	}
	if p.Dependents != nil {
		out.Dependents = append([]Dependent(nil), (*p.Dependents)...)
	}
	if p.CardSpend != nil {
		setDecimal(&out.CardSpend.Credit, p.CardSpend.Credit)
		setDecimal(&out.CardSpend.Debit, p.CardSpend.Debit)
		setDecimal(&out.CardSpend.CashReceipt, p.CardSpend.CashReceipt)
		setDecimal(&out.CardSpend.TraditionalMarket, p.CardSpend.TraditionalMarket)
		setDecimal(&out.CardSpend.PublicTransport, p.CardSpend.PublicTransport)
	}
	if p.Medical != nil {
		setDecimal(&out.Medical.Total, p.Medical.Total)
		setDecimal(&out.Medical.ElderlyOrDisabled, p.Medical.ElderlyOrDisabled)
		setDecimal(&out.Medical.Infertility, p.Medical.Infertility)
	}
	if p.Education != nil {
		setDecimal(&out.Education.Self, p.Education.Self)
		if p.Education.Children != nil {
			out.Education.Children = *p.Education.Children
		}
		setDecimal(&out.Education.Disabled, p.Education.Disabled)
	}
	if p.Pension != nil {
		setDecimal(&out.Pension.PensionSavings, p.Pension.PensionSavings)
		setDecimal(&out.Pension.IRP, p.Pension.IRP)
	}
	if p.Housing != nil {
		if p.Housing.Mode != nil {
			out.Housing.Mode = *p.Housing.Mode
		}
		setDecimal(&out.Housing.MonthlyRent, p.Housing.MonthlyRent)
		setDecimal(&out.Housing.LoanInterest, p.Housing.LoanInterest)
		setBool(&out.Housing.LongTermLoan, p.Housing.LongTermLoan)
	}
	if p.Donation != nil {
		setDecimal(&out.Donation.Political, p.Donation.Political)
		setDecimal(&out.Donation.Religious, p.Donation.Religious)
		setDecimal(&out.Donation.General, p.Donation.General)
	}
	return out
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Amount is a convenience for building patch values.
func Amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DecimalPtr returns a pointer to a copy of d.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
