package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the stage-by-stage settlement breakdown
// followed by validation notes, suggestions and peer insights.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string      { return "console" }
func (c ConsoleVerboseFormatter) Extension() string { return "txt" }

func (c ConsoleVerboseFormatter) Format(report *domain.SettlementReport) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	r := report.Result
	var buf bytes.Buffer
	line := strings.Repeat("=", 60)

	fmt.Fprintln(&buf, line)
	fmt.Fprintln(&buf, "DETAILED YEAR-END TAX SETTLEMENT")
	fmt.Fprintln(&buf, line)
	if report.Input != nil && report.Input.Profile.Name != "" {
		fmt.Fprintf(&buf, "Taxpayer: %s\n", report.Input.Profile.Name)
	}
	fmt.Fprintf(&buf, "Rule set: %s\n", r.RuleSetVersion)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	row(&buf, "Total income", r.TotalIncome)
	row(&buf, "Employment income deduction", r.EmploymentIncomeDeduction.Neg())
	row(&buf, "Employment income", r.EmploymentIncome)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INCOME DEDUCTIONS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	row(&buf, "Personal", r.PersonalDeduction)
	row(&buf, "Card spend", r.CardSpendDeduction)
	row(&buf, "Pension", r.PensionDeduction)
	row(&buf, "Housing loan interest", r.HousingDeduction)
	row(&buf, "Total", r.TotalIncomeDeduction)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TAX")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	row(&buf, "Taxable income", r.TaxableIncome)
	row(&buf, "Calculated tax", r.CalculatedTax)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TAX CREDITS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	row(&buf, "Medical", r.MedicalCredit)
	row(&buf, "Education", r.EducationCredit)
	row(&buf, "Pension", r.PensionCredit)
	row(&buf, "Donation", r.DonationCredit)
	row(&buf, "Monthly rent", r.RentCredit)
	row(&buf, "Total", r.TotalTaxCredit)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SETTLEMENT")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	row(&buf, "Determined tax", r.DeterminedTax)
	row(&buf, "Withheld tax", r.WithheldTax)
	row(&buf, strings.TrimSuffix(settlementLabel(r), ":"), r.RefundOrPayment.Abs())
	fmt.Fprintf(&buf, "  %-30s %18s\n", "Effective tax rate", FormatPercentage(r.EffectiveTaxRate))

	if len(report.Validation) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "VALIDATION")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		names := make([]string, 0, len(report.Validation))
		for name := range report.Validation {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			outcome := report.Validation[name]
			status := "ok"
			if !outcome.Valid {
				status = "FAILED: " + outcome.Reason
			}
			fmt.Fprintf(&buf, "  %-12s %s\n", name, status)
			for _, w := range outcome.Warnings {
				fmt.Fprintf(&buf, "  %-12s warning: %s\n", "", w)
			}
		}
	}

	if len(report.Suggestions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "OPTIMIZATION SUGGESTIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for i, s := range report.Suggestions {
			fmt.Fprintf(&buf, "  %d. %s: +%s\n", i+1, s.Name, FormatCurrency(s.Impact))
			if s.Description != "" {
				fmt.Fprintf(&buf, "     %s\n", s.Description)
			}
		}
	}

	if report.PeerBucket != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "PEER COMPARISON (%s)\n", report.PeerBucket.Key)
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		row(&buf, "Average pension", report.PeerBucket.AveragePension)
		row(&buf, "Average medical", report.PeerBucket.AverageMedical)
		row(&buf, "Average refund", report.PeerBucket.AverageRefund)
		for _, insight := range report.Insights {
			fmt.Fprintf(&buf, "  * %s\n", insight)
		}
	}
	return buf.Bytes(), nil
}

func row(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-30s %18s\n", label, FormatCurrency(amount))
}
