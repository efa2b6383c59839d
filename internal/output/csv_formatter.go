package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per settlement figure, in pipeline order.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.SettlementReport) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no result")
	}
	r := report.Result
	rows := []struct {
		stage string
		item  string
		value decimal.Decimal
	}{
		{"income", "total_income", r.TotalIncome},
		{"income", "employment_income_deduction", r.EmploymentIncomeDeduction},
		{"income", "employment_income", r.EmploymentIncome},
		{"deduction", "personal", r.PersonalDeduction},
		{"deduction", "card_spend", r.CardSpendDeduction},
		{"deduction", "pension", r.PensionDeduction},
		{"deduction", "housing", r.HousingDeduction},
		{"deduction", "total", r.TotalIncomeDeduction},
		{"tax", "taxable_income", r.TaxableIncome},
		{"tax", "calculated_tax", r.CalculatedTax},
		{"credit", "medical", r.MedicalCredit},
		{"credit", "education", r.EducationCredit},
		{"credit", "pension", r.PensionCredit},
		{"credit", "donation", r.DonationCredit},
		{"credit", "rent", r.RentCredit},
		{"credit", "card_spend", r.CardSpendCredit},
		{"credit", "total", r.TotalTaxCredit},
		{"settlement", "determined_tax", r.DeterminedTax},
		{"settlement", "withheld_tax", r.WithheldTax},
		{"settlement", "refund_or_payment", r.RefundOrPayment},
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Stage", "Item", "Amount"}); err != nil {
		return nil, err
	}
	for _, rw := range rows {
		if err := w.Write([]string{rw.stage, rw.item, rw.value.StringFixed(0)}); err != nil {
			return nil, err
		}
	}
	if err := w.Write([]string{"settlement", "effective_tax_rate", r.EffectiveTaxRate.StringFixed(4)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
