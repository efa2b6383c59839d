package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console-lite" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.SettlementReport) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	r := report.Result
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "YEAR-END SETTLEMENT SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Taxable Income: %s\n", FormatCurrency(r.TaxableIncome))
	fmt.Fprintf(&buf, "Determined Tax: %s\n", FormatCurrency(r.DeterminedTax))
	fmt.Fprintf(&buf, "Withheld Tax:   %s\n", FormatCurrency(r.WithheldTax))
	fmt.Fprintf(&buf, "%s %s (effective rate %s)\n", settlementLabel(r), FormatCurrency(r.RefundOrPayment.Abs()), FormatPercentage(r.EffectiveTaxRate))
	if len(report.Suggestions) > 0 {
		best := report.Suggestions[0]
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Top suggestion: %s (+%s)\n", best.Name, FormatCurrency(best.Impact))
	}
	return buf.Bytes(), nil
}

func settlementLabel(r *domain.TaxResult) string {
	switch {
	case r.IsRefund():
		return "Refund:"
	case r.RefundOrPayment.IsZero():
		return "Settled:"
	default:
		return "Amount Due:"
	}
}
