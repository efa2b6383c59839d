package calculation

import (
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// EmploymentIncomeDeduction returns the deduction allowed against gross salary.
// The result never exceeds the salary because every tier rate is below 1.
func EmploymentIncomeDeduction(rules domain.EmploymentRules, salary decimal.Decimal) decimal.Decimal {
	if !salary.IsPositive() {
		return decimal.Zero
	}
	deduction := EvaluateBracket(salary, rules.Brackets, OffsetAdd)
	return money.Min(deduction, rules.Ceiling)
}

// EmploymentIncome returns salary less the employment income deduction
func EmploymentIncome(rules domain.EmploymentRules, salary decimal.Decimal) decimal.Decimal {
	return money.NonNegative(salary.Sub(EmploymentIncomeDeduction(rules, salary)))
}
