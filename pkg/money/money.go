// Package money holds helpers for won amounts carried as decimals.
// Won has no minor unit, so rounding always targets whole won.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// FromInt creates a won amount from an integer
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Parse creates a won amount from a string such as "1500000" or "1,500,000"
func Parse(value string) (decimal.Decimal, error) {
	clean := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != ',' && value[i] != '_' {
			clean = append(clean, value[i])
		}
	}
	return decimal.NewFromString(string(clean))
}

// Floor truncates toward negative infinity to whole won
func Floor(d decimal.Decimal) decimal.Decimal {
	return d.Floor()
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// NonNegative clamps negative amounts to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	return Max(d, decimal.Zero)
}

// Cap limits d to ceiling. A nil ceiling leaves d unchanged.
func Cap(d decimal.Decimal, ceiling *decimal.Decimal) decimal.Decimal {
	if ceiling == nil {
		return d
	}
	return Min(d, *ceiling)
}

// Format renders an amount rounded to whole won with thousands grouping, e.g. "1,215,000"
func Format(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

// FormatWon renders an amount with the won sign, e.g. "₩1,215,000" or "-₩1,215,000"
func FormatWon(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-₩" + Format(d.Neg())
	}
	return "₩" + Format(d)
}

// FormatPercent renders a percentage with two decimals, e.g. "8.36%"
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
