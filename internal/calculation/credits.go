package calculation

import (
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// MedicalCredit credits general medical spend above 3% of salary at the base
// rate (capped), and elderly/disabled and infertility spend at the special rate
// with no threshold or cap.
func MedicalCredit(rules domain.MedicalRules, salary decimal.Decimal, expense domain.MedicalExpense) decimal.Decimal {
	threshold := salary.Mul(rules.ThresholdRate)
	special := expense.Special()
	general := expense.Total.Sub(special)

	generalExcess := money.NonNegative(general.Sub(threshold))
	generalCredit := money.Min(generalExcess.Mul(rules.Rate), rules.GeneralCeiling.Mul(rules.Rate))
	specialCredit := special.Mul(rules.SpecialRate)
	return generalCredit.Add(specialCredit)
}

// EducationCredit clamps each education category to its ceiling and credits the sum
func EducationCredit(rules domain.EducationRules, expense domain.EducationExpense) decimal.Decimal {
	eligible := money.Cap(expense.Self, rules.SelfCeiling).
		Add(money.Cap(expense.Children.Kindergarten, rules.KindergartenCeiling)).
		Add(money.Cap(expense.Children.Elementary, rules.ElementaryCeiling)).
		Add(money.Cap(expense.Children.University, rules.UniversityCeiling)).
		Add(money.Cap(expense.Disabled, rules.DisabledCeiling))
	return eligible.Mul(rules.Rate)
}

// PensionCreditRate returns the rate applied to pension contributions for a salary
func PensionCreditRate(rules domain.PensionRules, salary decimal.Decimal) decimal.Decimal {
	if salary.LessThanOrEqual(rules.SalaryThreshold) {
		return rules.LowIncomeRate
	}
	return rules.HighIncomeRate
}

// PensionCredit credits pension savings and IRP contributions up to the combined ceiling
func PensionCredit(rules domain.PensionRules, salary decimal.Decimal, payment domain.PensionPayment) decimal.Decimal {
	eligible := money.Min(payment.Total(), rules.CombinedCeiling)
	return eligible.Mul(PensionCreditRate(rules, salary))
}

// RentCredit credits annualized monthly rent for salaries at or below the limit
func RentCredit(rules domain.HousingRules, salary, monthlyRent decimal.Decimal) decimal.Decimal {
	if salary.GreaterThan(rules.RentSalaryLimit) {
		return decimal.Zero
	}
	annualRent := monthlyRent.Mul(decimal.NewFromInt(12))
	return money.Min(annualRent.Mul(rules.RentRate), rules.RentCeiling)
}

// HousingLoanDeduction clamps loan interest to the ceiling chosen by the caller's long-term flag
func HousingLoanDeduction(rules domain.HousingRules, interest decimal.Decimal, longTerm bool) decimal.Decimal {
	ceiling := rules.LoanCeiling
	if longTerm {
		ceiling = rules.LongTermLoanCeiling
	}
	return money.Min(interest, ceiling)
}

// DonationCredit clamps each donation category to its share of employment income
// and credits it at the category rate.
func DonationCredit(rules domain.DonationRules, employmentIncome decimal.Decimal, donation domain.DonationData) decimal.Decimal {
	credit := func(amount, share, rate decimal.Decimal) decimal.Decimal {
		return money.Min(amount, employmentIncome.Mul(share)).Mul(rate)
	}
	return credit(donation.Political, rules.PoliticalIncomeShare, rules.PoliticalRate).
		Add(credit(donation.Religious, rules.ReligiousIncomeShare, rules.ReligiousRate)).
		Add(credit(donation.General, rules.GeneralIncomeShare, rules.GeneralRate))
}
