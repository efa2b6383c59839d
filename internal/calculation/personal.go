package calculation

import (
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// PersonalDeduction sums the per-head deduction for the taxpayer and every
// eligible dependent. Duplicate dependents are not detected here.
func PersonalDeduction(rules domain.PersonalRules, taxYear int, profile domain.TaxpayerProfile, dependents []domain.Dependent) decimal.Decimal {
	total := rules.Basic
	if profile.Disabled {
		total = total.Add(rules.DisabledSurcharge)
	}
	if profile.SingleParent {
		total = total.Add(rules.SingleParentSurcharge)
	}
	if age, ok := knownAge(taxYear, profile.BirthYear); ok && age >= rules.ElderlyMinAge {
		total = total.Add(rules.ElderlySurcharge)
	}

	for _, dep := range dependents {
		if !IsEligibleDependent(rules, taxYear, dep) {
			continue
		}
		total = total.Add(dependentDeduction(rules, taxYear, dep))
	}
	return total
}

// IsEligibleDependent applies the income ceiling and the relationship-specific age rule
func IsEligibleDependent(rules domain.PersonalRules, taxYear int, dep domain.Dependent) bool {
	if dep.AnnualIncome.GreaterThan(rules.DependentIncomeLimit) {
		return false
	}
	age, ok := knownAge(taxYear, dep.BirthYear)
	isChildAge := ok && age <= rules.ChildMaxAge
	isParentAge := ok && age >= rules.ParentMinAge

	switch dep.Relationship {
	case domain.RelationshipSpouse:
		return true
	case domain.RelationshipDescendant:
		return isChildAge || dep.Disabled
	case domain.RelationshipAscendant:
		return isParentAge
	case domain.RelationshipSibling:
		return isChildAge || isParentAge || dep.Disabled
	default:
		return false
	}
}

func dependentDeduction(rules domain.PersonalRules, taxYear int, dep domain.Dependent) decimal.Decimal {
	amount := rules.Basic
	if dep.Disabled {
		amount = amount.Add(rules.DisabledSurcharge)
	}
	if age, ok := knownAge(taxYear, dep.BirthYear); ok && age >= rules.ElderlyMinAge {
		amount = amount.Add(rules.ElderlySurcharge)
	}
	return amount
}

// knownAge returns the nominal age, or false when no birth year was recorded.
// An unknown age never satisfies an age rule.
func knownAge(taxYear, birthYear int) (int, bool) {
	if birthYear <= 0 {
		return 0, false
	}
	return domain.NominalAge(taxYear, birthYear), true
}
