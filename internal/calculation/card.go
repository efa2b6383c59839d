package calculation

import (
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// CardDeductionBreakdown shows how the excess over the minimum usage threshold
// was consumed and which cap applied.
type CardDeductionBreakdown struct {
	Threshold          decimal.Decimal
	Excess             decimal.Decimal
	CreditDeduction    decimal.Decimal
	DebitDeduction     decimal.Decimal
	MarketDeduction    decimal.Decimal
	TransportDeduction decimal.Decimal
	Uncapped           decimal.Decimal
	Cap                decimal.Decimal
	Deduction          decimal.Decimal
}

// CardSpendDeduction returns the card-spend income deduction
func CardSpendDeduction(rules domain.CardRules, salary decimal.Decimal, spend domain.CardSpend) decimal.Decimal {
	return CardSpendBreakdown(rules, salary, spend).Deduction
}

// CardSpendBreakdown computes the card deduction step by step. The excess is
// consumed credit first, then debit and cash receipts, then traditional
// market, then public transport. The order decides which rate applies to the
// marginal spend and must not change.
func CardSpendBreakdown(rules domain.CardRules, salary decimal.Decimal, spend domain.CardSpend) CardDeductionBreakdown {
	b := CardDeductionBreakdown{
		Threshold: salary.Mul(rules.ThresholdRate),
	}
	total := spend.Total()
	if total.LessThanOrEqual(b.Threshold) {
		return b
	}
	b.Excess = total.Sub(b.Threshold)

	remaining := b.Excess
	consume := func(available, rate decimal.Decimal) decimal.Decimal {
		used := money.Min(remaining, available)
		remaining = remaining.Sub(used)
		return used.Mul(rate)
	}
	b.CreditDeduction = consume(spend.Credit, rules.CreditRate)
	b.DebitDeduction = consume(spend.Debit.Add(spend.CashReceipt), rules.DebitRate)
	b.MarketDeduction = consume(spend.TraditionalMarket, rules.MarketRate)
	b.TransportDeduction = consume(spend.PublicTransport, rules.TransportRate)

	b.Uncapped = b.CreditDeduction.Add(b.DebitDeduction).Add(b.MarketDeduction).Add(b.TransportDeduction)

	b.Cap = rules.BaseCap.
		Add(money.Min(b.MarketDeduction, rules.MarketExtraCap)).
		Add(money.Min(b.TransportDeduction, rules.TransportExtraCap))
	if salary.GreaterThan(rules.HighIncomeThreshold) {
		b.Cap = money.Min(b.Cap, rules.BaseCap.Div(decimal.NewFromInt(2)))
	}

	b.Deduction = money.Min(b.Uncapped, b.Cap)
	return b
}

// CardOptimization summarizes how far a taxpayer is from the best card deduction
type CardOptimization struct {
	CurrentDeduction     decimal.Decimal `json:"current_deduction"`
	MaxPossibleDeduction decimal.Decimal `json:"max_possible_deduction"`
	Suggestions          []string        `json:"suggestions"`
}

// cardSwitchMinGain is the smallest deduction gain worth suggesting a credit-to-debit switch for.
var cardSwitchMinGain = decimal.NewFromInt(10_000)

// CardSpendOptimization suggests spend changes that would raise the card deduction
func CardSpendOptimization(rules domain.CardRules, salary decimal.Decimal, spend domain.CardSpend) CardOptimization {
	current := CardSpendDeduction(rules, salary, spend)
	opt := CardOptimization{
		CurrentDeduction:     current,
		MaxPossibleDeduction: rules.BaseCap.Add(rules.MarketExtraCap).Add(rules.TransportExtraCap),
		Suggestions:          []string{},
	}
	if salary.GreaterThan(rules.HighIncomeThreshold) {
		opt.MaxPossibleDeduction = rules.BaseCap.Div(decimal.NewFromInt(2))
	}

	if spend.Credit.GreaterThan(spend.Debit) {
		switched := spend
		switched.Debit = spend.Credit.Add(spend.Debit)
		switched.Credit = decimal.Zero
		gain := CardSpendDeduction(rules, salary, switched).Sub(current)
		if gain.GreaterThan(cardSwitchMinGain) {
			opt.Suggestions = append(opt.Suggestions,
				fmt.Sprintf("Paying with debit instead of credit adds about %s to the card deduction", money.Format(gain)))
		}
	}

	if spend.TraditionalMarket.LessThan(rules.MarketExtraCap) {
		gap := rules.MarketExtraCap.Sub(spend.TraditionalMarket)
		opt.Suggestions = append(opt.Suggestions,
			fmt.Sprintf("Spending %s more at traditional markets opens the full market allowance", money.Format(gap)))
	}
	return opt
}
