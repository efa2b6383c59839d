package calculation

import (
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// SettlementEngine runs the seven-stage year-end settlement for one rule set.
// It holds no mutable state after construction and is safe for concurrent use.
type SettlementEngine struct {
	rules  *domain.RuleTable
	Logger Logger
}

// NewSettlementEngine creates an engine for the default rule set
func NewSettlementEngine() *SettlementEngine {
	return &SettlementEngine{
		rules:  DefaultRuleTable(),
		Logger: NopLogger{},
	}
}

// NewSettlementEngineWithRules creates an engine for a caller-supplied rule set.
// The table is validated and copied; later changes by the caller have no effect.
func NewSettlementEngineWithRules(rules *domain.RuleTable) (*SettlementEngine, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule table is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule table %s: %w", rules.Version, err)
	}
	return &SettlementEngine{
		rules:  rules.Clone(),
		Logger: NopLogger{},
	}, nil
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (se *SettlementEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// Rules returns a copy of the engine's rule table
func (se *SettlementEngine) Rules() *domain.RuleTable {
	return se.rules.Clone()
}

// TaxYear returns the settlement year the engine targets
func (se *SettlementEngine) TaxYear() int {
	return se.rules.TaxYear
}

// Calculate settles one taxpayer. Input is not validated here; negative
// amounts produce unspecified results and should be rejected by the caller.
func (se *SettlementEngine) Calculate(input *domain.TaxInput) *domain.TaxResult {
	rt := se.rules
	salary := input.Income.Salary
	r := &domain.TaxResult{
		WithheldTax:    input.Income.WithheldTax,
		RuleSetVersion: rt.Version,
	}

	// 1. total income
	r.TotalIncome = salary.Add(input.Income.OtherIncome)

	// 2. employment income
	r.EmploymentIncomeDeduction = EmploymentIncomeDeduction(rt.Employment, salary)
	r.EmploymentIncome = money.NonNegative(salary.Sub(r.EmploymentIncomeDeduction))
	se.Logger.Debugf("employment: salary=%s deduction=%s income=%s", salary, r.EmploymentIncomeDeduction, r.EmploymentIncome)

	// 3. income deductions
	r.PersonalDeduction = PersonalDeduction(rt.Personal, rt.TaxYear, input.Profile, input.Dependents)
	r.CardSpendDeduction = CardSpendDeduction(rt.Card, salary, input.CardSpend)
	r.PensionDeduction = input.Pension.Total()
	r.HousingDeduction = decimal.Zero
	if input.Housing.Mode == domain.HousingLoan && input.Housing.LoanInterest.IsPositive() {
		r.HousingDeduction = HousingLoanDeduction(rt.Housing, input.Housing.LoanInterest, input.Housing.LongTermLoan)
	}
	r.TotalIncomeDeduction = r.PersonalDeduction.
		Add(r.CardSpendDeduction).
		Add(r.PensionDeduction).
		Add(r.HousingDeduction)
	se.Logger.Debugf("deductions: personal=%s card=%s pension=%s housing=%s total=%s",
		r.PersonalDeduction, r.CardSpendDeduction, r.PensionDeduction, r.HousingDeduction, r.TotalIncomeDeduction)

	// 4. taxable income
	r.TaxableIncome = money.NonNegative(r.EmploymentIncome.Sub(r.TotalIncomeDeduction))

	// 5. gross tax, the only rounding before settlement
	r.CalculatedTax = money.Floor(money.NonNegative(EvaluateBracket(r.TaxableIncome, rt.Tax.Brackets, OffsetSubtract)))
	se.Logger.Debugf("tax base: taxable=%s calculated=%s", r.TaxableIncome, r.CalculatedTax)

	// 6. credits
	r.MedicalCredit = MedicalCredit(rt.Medical, salary, input.Medical)
	r.EducationCredit = EducationCredit(rt.Education, input.Education)
	r.PensionCredit = PensionCredit(rt.Pension, salary, input.Pension)
	r.DonationCredit = DonationCredit(rt.Donation, r.EmploymentIncome, input.Donation)
	r.RentCredit = decimal.Zero
	if input.Housing.Mode == domain.HousingRent && input.Housing.MonthlyRent.IsPositive() {
		r.RentCredit = RentCredit(rt.Housing, salary, input.Housing.MonthlyRent)
	}
	r.CardSpendCredit = decimal.Zero
	r.TotalTaxCredit = r.MedicalCredit.
		Add(r.EducationCredit).
		Add(r.PensionCredit).
		Add(r.DonationCredit).
		Add(r.RentCredit).
		Add(r.CardSpendCredit)
	se.Logger.Debugf("credits: medical=%s education=%s pension=%s donation=%s rent=%s total=%s",
		r.MedicalCredit, r.EducationCredit, r.PensionCredit, r.DonationCredit, r.RentCredit, r.TotalTaxCredit)

	// 7. settlement
	r.DeterminedTax = money.NonNegative(r.CalculatedTax.Sub(r.TotalTaxCredit))
	r.RefundOrPayment = r.WithheldTax.Sub(r.DeterminedTax)
	r.EffectiveTaxRate = decimal.Zero
	if r.TotalIncome.IsPositive() {
		r.EffectiveTaxRate = r.DeterminedTax.Div(r.TotalIncome).Mul(decimal.NewFromInt(100))
	}
	r.CalculatedAt = nowFunc()

	se.Logger.Infof("settlement complete: determined=%s withheld=%s refund=%s", r.DeterminedTax, r.WithheldTax, r.RefundOrPayment)
	return r
}
