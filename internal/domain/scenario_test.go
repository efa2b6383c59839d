package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() *TaxInput {
	return &TaxInput{
		Profile: TaxpayerProfile{BirthYear: 1985},
		Income:  IncomeData{Salary: decimal.NewFromInt(60_000_000), WithheldTax: decimal.NewFromInt(4_000_000)},
		Dependents: []Dependent{
			{Name: "child", Relationship: RelationshipDescendant, BirthYear: 2016},
		},
		CardSpend: CardSpend{Credit: decimal.NewFromInt(12_000_000), Debit: decimal.NewFromInt(3_000_000)},
		Education: EducationExpense{
			Self:     decimal.NewFromInt(1_000_000),
			Children: ChildrenEducation{Elementary: decimal.NewFromInt(2_000_000)},
		},
		Housing: HousingData{Mode: HousingRent, MonthlyRent: decimal.NewFromInt(600_000)},
	}
}

func TestInputPatchApplyMergesOneLevelDeep(t *testing.T) {
	base := sampleInput()
	patch := InputPatch{
		Income:    &IncomePatch{Salary: Amount(65_000_000)},
		CardSpend: &CardSpendPatch{TraditionalMarket: Amount(1_000_000)},
	}

	out := patch.Apply(base)

	assert.True(t, decimal.NewFromInt(65_000_000).Equal(out.Income.Salary))
	assert.True(t, decimal.NewFromInt(4_000_000).Equal(out.Income.WithheldTax), "unpatched income fields are kept")
	assert.True(t, decimal.NewFromInt(12_000_000).Equal(out.CardSpend.Credit), "unpatched card fields are kept")
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(out.CardSpend.TraditionalMarket))
	assert.Equal(t, base.Housing, out.Housing)
	assert.Len(t, out.Dependents, 1)
}

func TestInputPatchApplyDoesNotMutateBase(t *testing.T) {
	base := sampleInput()
	deps := []Dependent{{Name: "spouse", Relationship: RelationshipSpouse, BirthYear: 1986}}
	patch := InputPatch{Dependents: &deps}

	out := patch.Apply(base)
	out.Dependents[0].Name = "changed"

	require.Len(t, base.Dependents, 1)
	assert.Equal(t, "child", base.Dependents[0].Name)
	assert.Equal(t, "spouse", deps[0].Name, "patch slice is copied too")
	assert.True(t, decimal.NewFromInt(60_000_000).Equal(base.Income.Salary))
}

func TestInputPatchReplacesChildrenEducationWhole(t *testing.T) {
	base := sampleInput()
	patch := InputPatch{Education: &EducationPatch{
		Children: &ChildrenEducation{University: decimal.NewFromInt(5_000_000)},
	}}

	out := patch.Apply(base)

	assert.True(t, out.Education.Children.Elementary.IsZero(), "nested children record is replaced, not merged")
	assert.True(t, decimal.NewFromInt(5_000_000).Equal(out.Education.Children.University))
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(out.Education.Self))
}

func TestInputPatchHousingMode(t *testing.T) {
	loan := HousingLoan
	long := true
	out := InputPatch{Housing: &HousingPatch{Mode: &loan, LoanInterest: Amount(9_000_000), LongTermLoan: &long}}.Apply(sampleInput())

	assert.Equal(t, HousingLoan, out.Housing.Mode)
	assert.True(t, out.Housing.LongTermLoan)
	assert.True(t, decimal.NewFromInt(600_000).Equal(out.Housing.MonthlyRent), "rent value is kept but unused in loan mode")
}

func TestNominalAge(t *testing.T) {
	assert.Equal(t, 36, NominalAge(2025, 1990))
	assert.Equal(t, 1, NominalAge(2025, 2025))
}
