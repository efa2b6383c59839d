package calculation

import (
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// RULE SET ASSUMPTIONS (2025 income, filed in 2026):
//
// 1. Employment income deduction is expressed as amount × rate + offset,
//    capped at 20,000,000. The 15% tier ends at 42,500,000 so the schedule
//    stays continuous while a 50,000,000 salary deducts exactly 12,000,000.
//
// 2. Age is nominal: tax year − birth year + 1.
//
// 3. Card spend over 25% of salary is deductible. The high-income cap halving
//    applies strictly above 70,000,000.
//
// 4. Donation ceilings are shares of employment income, not total income.

// DefaultTaxYear is the settlement year targeted by DefaultRuleTable.
const DefaultTaxYear = 2025

// DefaultRuleTable returns the rule set for the 2025 settlement year
func DefaultRuleTable() *domain.RuleTable {
	return &domain.RuleTable{
		Version:     "2025.1",
		TaxYear:     DefaultTaxYear,
		Description: "Year-end settlement rules for 2025 employment income",
		LastUpdated: "2025-01-01",
		Employment: domain.EmploymentRules{
			Brackets: []domain.Bracket{
				{UpperBound: won(5_000_000), Rate: decimal.NewFromFloat(0.70), Offset: decimal.Zero},
				{UpperBound: won(15_000_000), Rate: decimal.NewFromFloat(0.40), Offset: won(1_500_000)},
				{UpperBound: won(42_500_000), Rate: decimal.NewFromFloat(0.15), Offset: won(5_250_000)},
				{UpperBound: won(100_000_000), Rate: decimal.NewFromFloat(0.05), Offset: won(9_500_000)},
				{UpperBound: decimal.Zero, Rate: decimal.NewFromFloat(0.02), Offset: won(12_500_000)},
			},
			Ceiling: won(20_000_000),
		},
		Personal: domain.PersonalRules{
			Basic:                 won(1_500_000),
			ElderlySurcharge:      won(1_000_000),
			DisabledSurcharge:     won(2_000_000),
			SingleParentSurcharge: won(1_000_000),
			ChildMaxAge:           20,
			ParentMinAge:          60,
			ElderlyMinAge:         70,
			DependentIncomeLimit:  won(1_000_000),
		},
		Card: domain.CardRules{
			ThresholdRate:       decimal.NewFromFloat(0.25),
			CreditRate:          decimal.NewFromFloat(0.15),
			DebitRate:           decimal.NewFromFloat(0.30),
			MarketRate:          decimal.NewFromFloat(0.40),
			TransportRate:       decimal.NewFromFloat(0.40),
			BaseCap:             won(3_000_000),
			MarketExtraCap:      won(1_000_000),
			TransportExtraCap:   won(1_000_000),
			HighIncomeThreshold: won(70_000_000),
		},
		Medical: domain.MedicalRules{
			ThresholdRate:  decimal.NewFromFloat(0.03),
			Rate:           decimal.NewFromFloat(0.15),
			SpecialRate:    decimal.NewFromFloat(0.20),
			GeneralCeiling: won(7_000_000),
		},
		Education: domain.EducationRules{
			Rate:                decimal.NewFromFloat(0.15),
			KindergartenCeiling: wonPtr(3_000_000),
			ElementaryCeiling:   wonPtr(3_000_000),
			UniversityCeiling:   wonPtr(9_000_000),
		},
		Pension: domain.PensionRules{
			LowIncomeRate:      decimal.NewFromFloat(0.165),
			HighIncomeRate:     decimal.NewFromFloat(0.132),
			SalaryThreshold:    won(55_000_000),
			CombinedCeiling:    won(9_000_000),
			SavingsOnlyCeiling: won(6_000_000),
		},
		Housing: domain.HousingRules{
			RentRate:            decimal.NewFromFloat(0.17),
			RentCeiling:         won(7_500_000),
			RentSalaryLimit:     won(70_000_000),
			LoanCeiling:         won(18_000_000),
			LongTermLoanCeiling: won(20_000_000),
		},
		Donation: domain.DonationRules{
			PoliticalRate:        decimal.NewFromFloat(0.15),
			ReligiousRate:        decimal.NewFromFloat(0.15),
			GeneralRate:          decimal.NewFromFloat(0.20),
			PoliticalIncomeShare: decimal.NewFromFloat(0.10),
			ReligiousIncomeShare: decimal.NewFromFloat(0.10),
			GeneralIncomeShare:   decimal.NewFromFloat(0.30),
		},
		Tax: domain.TaxRules{
			Brackets: []domain.Bracket{
				{UpperBound: won(14_000_000), Rate: decimal.NewFromFloat(0.06), Offset: decimal.Zero},
				{UpperBound: won(50_000_000), Rate: decimal.NewFromFloat(0.15), Offset: won(1_260_000)},
				{UpperBound: won(88_000_000), Rate: decimal.NewFromFloat(0.24), Offset: won(5_760_000)},
				{UpperBound: won(150_000_000), Rate: decimal.NewFromFloat(0.35), Offset: won(15_440_000)},
				{UpperBound: won(300_000_000), Rate: decimal.NewFromFloat(0.38), Offset: won(19_940_000)},
				{UpperBound: won(500_000_000), Rate: decimal.NewFromFloat(0.40), Offset: won(25_940_000)},
				{UpperBound: won(1_000_000_000), Rate: decimal.NewFromFloat(0.42), Offset: won(35_940_000)},
				{UpperBound: decimal.Zero, Rate: decimal.NewFromFloat(0.45), Offset: won(65_940_000)},
			},
		},
		Validation: domain.ValidationRules{
			MaxSalary:            won(1_000_000_000),
			MaxDependents:        20,
			MinAge:               0,
			MaxAge:               120,
			PensionSanityCeiling: won(20_000_000),
			CardSalaryMultiple:   decimal.NewFromInt(3),
		},
	}
}

func won(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func wonPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
