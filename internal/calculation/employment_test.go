package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEmploymentIncomeDeduction(t *testing.T) {
	rules := DefaultRuleTable().Employment

	tests := []struct {
		name        string
		salary      decimal.Decimal
		expected    decimal.Decimal
		description string
	}{
		{"zero salary", decimal.Zero, decimal.Zero, "nothing to deduct"},
		{"small salary", d(1_000), d(700), "70% tier never exceeds salary"},
		{"first tier edge", d(5_000_000), d(3_500_000), "5M × 70%"},
		{"second tier", d(10_000_000), d(5_500_000), "10M × 40% + 1.5M"},
		{"second tier edge", d(15_000_000), d(7_500_000), "15M × 40% + 1.5M"},
		{"third tier", d(30_000_000), d(9_750_000), "30M × 15% + 5.25M"},
		{"third tier edge", d(42_500_000), d(11_625_000), "42.5M × 15% + 5.25M"},
		{"fourth tier", d(50_000_000), d(12_000_000), "50M × 5% + 9.5M"},
		{"fourth tier edge", d(100_000_000), d(14_500_000), "100M × 5% + 9.5M"},
		{"fifth tier", d(200_000_000), d(16_500_000), "200M × 2% + 12.5M"},
		{"ceiling reached", d(375_000_000), d(20_000_000), "2% tier meets the ceiling"},
		{"above ceiling", d(500_000_000), d(20_000_000), "clamped to 20M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertWon(t, tt.expected, EmploymentIncomeDeduction(rules, tt.salary), tt.description)
		})
	}
}

func TestEmploymentIncome(t *testing.T) {
	rules := DefaultRuleTable().Employment
	assertWon(t, d(38_000_000), EmploymentIncome(rules, d(50_000_000)), "50M salary")
	assertWon(t, decimal.Zero, EmploymentIncome(rules, decimal.Zero), "zero salary")
}
