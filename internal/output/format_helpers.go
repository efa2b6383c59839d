package output

import (
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as won with thousands grouping.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.FormatWon(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return money.FormatPercent(amount) }
