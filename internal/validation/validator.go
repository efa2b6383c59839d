// Package validation provides pre-flight checks for settlement input.
// Checks never fail with a Go error: every outcome is a value the caller
// inspects before deciding whether to run the settlement.
package validation

import (
	"errors"
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// ErrInvalidInput is wrapped by every error returned from Report.Err
var ErrInvalidInput = errors.New("invalid input")

// Validator checks input sections against the limits of one rule table
type Validator struct {
	rules *domain.RuleTable
}

// NewValidator creates a validator for the given rule table
func NewValidator(rules *domain.RuleTable) *Validator {
	return &Validator{rules: rules}
}

func pass(warnings ...string) domain.ValidationOutcome {
	return domain.ValidationOutcome{Valid: true, Warnings: warnings}
}

func fail(format string, args ...any) domain.ValidationOutcome {
	return domain.ValidationOutcome{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// ValidateSalary checks that salary is within [0, max salary]
func (v *Validator) ValidateSalary(salary decimal.Decimal) domain.ValidationOutcome {
	if salary.IsNegative() {
		return fail("salary cannot be negative")
	}
	if salary.GreaterThan(v.rules.Validation.MaxSalary) {
		return fail("salary exceeds the supported maximum of %s", money.Format(v.rules.Validation.MaxSalary))
	}
	return pass()
}

// ValidateAge checks a nominal age against the supported range
func (v *Validator) ValidateAge(age int) domain.ValidationOutcome {
	if age < v.rules.Validation.MinAge || age > v.rules.Validation.MaxAge {
		return fail("age %d is outside %d-%d", age, v.rules.Validation.MinAge, v.rules.Validation.MaxAge)
	}
	return pass()
}

// ValidateDependents checks the dependent count and name uniqueness, and warns
// about dependents whose income exceeds the eligibility limit.
func (v *Validator) ValidateDependents(dependents []domain.Dependent) domain.ValidationOutcome {
	if len(dependents) > v.rules.Validation.MaxDependents {
		return fail("at most %d dependents can be registered, got %d", v.rules.Validation.MaxDependents, len(dependents))
	}

	seen := make(map[string]struct{}, len(dependents))
	for _, dep := range dependents {
		if _, dup := seen[dep.Name]; dup {
			return fail("dependent %q is registered more than once", dep.Name)
		}
		seen[dep.Name] = struct{}{}
	}

	var warnings []string
	limit := v.rules.Personal.DependentIncomeLimit
	for _, dep := range dependents {
		if dep.AnnualIncome.GreaterThan(limit) {
			warnings = append(warnings, fmt.Sprintf("dependent %q has income above %s and will not be deducted", dep.Name, money.Format(limit)))
		}
	}
	return pass(warnings...)
}

// ValidateCardSpend rejects negative categories and totals implausibly large for the salary
func (v *Validator) ValidateCardSpend(salary decimal.Decimal, spend domain.CardSpend) domain.ValidationOutcome {
	categories := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"credit", spend.Credit},
		{"debit", spend.Debit},
		{"cash receipt", spend.CashReceipt},
		{"traditional market", spend.TraditionalMarket},
		{"public transport", spend.PublicTransport},
	}
	for _, c := range categories {
		if c.amount.IsNegative() {
			return fail("%s spend cannot be negative", c.name)
		}
	}

	limit := salary.Mul(v.rules.Validation.CardSalaryMultiple)
	if spend.Total().GreaterThan(limit) {
		return fail("card spend %s exceeds %s times salary", money.Format(spend.Total()), v.rules.Validation.CardSalaryMultiple)
	}
	return pass()
}

// ValidateMedical checks that the special subset fits inside the total
func (v *Validator) ValidateMedical(expense domain.MedicalExpense) domain.ValidationOutcome {
	if expense.Total.IsNegative() || expense.ElderlyOrDisabled.IsNegative() || expense.Infertility.IsNegative() {
		return fail("medical expenses cannot be negative")
	}
	if expense.Special().GreaterThan(expense.Total) {
		return fail("elderly/disabled and infertility expenses (%s) exceed total medical expenses (%s)",
			money.Format(expense.Special()), money.Format(expense.Total))
	}
	return pass()
}

// ValidatePension rejects negative contributions and totals above the sanity ceiling
func (v *Validator) ValidatePension(payment domain.PensionPayment) domain.ValidationOutcome {
	if payment.PensionSavings.IsNegative() || payment.IRP.IsNegative() {
		return fail("pension contributions cannot be negative")
	}
	if payment.Total().GreaterThan(v.rules.Validation.PensionSanityCeiling) {
		out := fail("pension contributions %s exceed %s", money.Format(payment.Total()), money.Format(v.rules.Validation.PensionSanityCeiling))
		out.Warnings = []string{fmt.Sprintf("only %s of combined contributions is credited", money.Format(v.rules.Pension.CombinedCeiling))}
		return out
	}
	return pass()
}

// Section names used as Report keys
const (
	SectionSalary     = "salary"
	SectionAge        = "age"
	SectionDependents = "dependents"
	SectionCardSpend  = "card_spend"
	SectionMedical    = "medical"
	SectionPension    = "pension"
)

// Report collects the outcome of every section check for one input
type Report struct {
	Outcomes map[string]domain.ValidationOutcome
}

// ValidateInput runs every section check
func (v *Validator) ValidateInput(input *domain.TaxInput) Report {
	return Report{Outcomes: map[string]domain.ValidationOutcome{
		SectionSalary:     v.ValidateSalary(input.Income.Salary),
		SectionAge:        v.ValidateAge(domain.NominalAge(v.rules.TaxYear, input.Profile.BirthYear)),
		SectionDependents: v.ValidateDependents(input.Dependents),
		SectionCardSpend:  v.ValidateCardSpend(input.Income.Salary, input.CardSpend),
		SectionMedical:    v.ValidateMedical(input.Medical),
		SectionPension:    v.ValidatePension(input.Pension),
	}}
}

// Valid reports whether every section passed
func (r Report) Valid() bool {
	for _, o := range r.Outcomes {
		if !o.Valid {
			return false
		}
	}
	return true
}

// Warnings returns all warnings in section order
func (r Report) Warnings() []string {
	var out []string
	for _, name := range sectionOrder {
		out = append(out, r.Outcomes[name].Warnings...)
	}
	return out
}

var sectionOrder = []string{SectionSalary, SectionAge, SectionDependents, SectionCardSpend, SectionMedical, SectionPension}

// Sections returns the section names in reporting order
func Sections() []string {
	return append([]string(nil), sectionOrder...)
}

// Err combines every failed section into one error, or returns nil
func (r Report) Err() error {
	var err error
	for _, name := range sectionOrder {
		o, ok := r.Outcomes[name]
		if !ok || o.Valid {
			continue
		}
		err = multierr.Append(err, fmt.Errorf("%w: %s: %s", ErrInvalidInput, name, o.Reason))
	}
	return err
}
