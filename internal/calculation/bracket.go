package calculation

import (
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// OffsetSign selects how a bracket's fixed offset combines with amount × rate
type OffsetSign int

const (
	// OffsetAdd is used by deduction schedules: amount × rate + offset.
	OffsetAdd OffsetSign = iota
	// OffsetSubtract is used by progressive tax schedules: amount × rate − offset.
	OffsetSubtract
)

// EvaluateBracket finds the first bracket whose upper bound is at least amount
// and applies its linear formula. The last bracket matches any amount, so a
// non-empty schedule always yields a value.
func EvaluateBracket(amount decimal.Decimal, brackets []domain.Bracket, sign OffsetSign) decimal.Decimal {
	for i, b := range brackets {
		if i < len(brackets)-1 && amount.GreaterThan(b.UpperBound) {
			continue
		}
		base := amount.Mul(b.Rate)
		if sign == OffsetSubtract {
			return base.Sub(b.Offset)
		}
		return base.Add(b.Offset)
	}
	return decimal.Zero
}
