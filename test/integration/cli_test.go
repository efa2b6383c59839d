package integration

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/yearend-calculator/internal/calculation"
	"github.com/rpgo/yearend-calculator/internal/cli"
	"github.com/rpgo/yearend-calculator/internal/config"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/internal/output"
	"github.com/rpgo/yearend-calculator/internal/simulation"
	"github.com/rpgo/yearend-calculator/internal/validation"
	"github.com/rpgo/yearend-calculator/pkg/money"
)

func testdata(name string) string { return filepath.Join("testdata", name) }

// run executes the command tree and returns what it wrote to stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := cli.NewRootCommand(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func decodeReport(t *testing.T, out string) domain.SettlementReport {
	t.Helper()
	var report domain.SettlementReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Result)
	return report
}

func TestCalculateSalaryOnlyJSON(t *testing.T) {
	out, err := run(t, "calculate", testdata("salary_only.yaml"), "--format", "json")
	require.NoError(t, err)

	report := decodeReport(t, out)
	r := report.Result
	expected := map[string]struct {
		want decimal.Decimal
		got  decimal.Decimal
	}{
		"employment deduction": {decimal.NewFromInt(12_000_000), r.EmploymentIncomeDeduction},
		"personal deduction":   {decimal.NewFromInt(1_500_000), r.PersonalDeduction},
		"taxable income":       {decimal.NewFromInt(36_500_000), r.TaxableIncome},
		"calculated tax":       {decimal.NewFromInt(4_215_000), r.CalculatedTax},
		"refund or payment":    {decimal.NewFromInt(-1_215_000), r.RefundOrPayment},
	}
	for name, tc := range expected {
		assert.True(t, tc.want.Equal(tc.got), "%s: expected %s, got %s", name, tc.want, tc.got)
	}
	assert.Equal(t, "2025.1", r.RuleSetVersion)
	assert.Equal(t, "Park Minjun", report.Input.Profile.Name)
	for name, outcome := range report.Validation {
		assert.True(t, outcome.Valid, name)
	}
}

func TestCalculateConsoleFormats(t *testing.T) {
	out, err := run(t, "calculate", testdata("salary_only.yaml"), "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Amount Due: ₩1,215,000")

	out, err = run(t, "calculate", testdata("salary_only.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "DETAILED YEAR-END TAX SETTLEMENT")
	assert.Contains(t, out, "₩36,500,000")
}

func TestCalculateMatchesEngine(t *testing.T) {
	input, err := config.NewInputParser().LoadInput(testdata("full_profile.yaml"))
	require.NoError(t, err)
	expected := calculation.NewSettlementEngine().Calculate(input)

	out, err := run(t, "calculate", testdata("full_profile.yaml"), "-f", "json", "--suggest")
	require.NoError(t, err)
	report := decodeReport(t, out)

	assert.True(t, expected.RefundOrPayment.Equal(report.Result.RefundOrPayment))
	assert.True(t, expected.TotalTaxCredit.Equal(report.Result.TotalTaxCredit))
	assert.True(t, report.Result.RentCredit.IsPositive(), "rent credit applies below the salary limit")
	assert.Len(t, report.Input.Dependents, 2)
	for i := 1; i < len(report.Suggestions); i++ {
		assert.False(t, report.Suggestions[i].Impact.GreaterThan(report.Suggestions[i-1].Impact))
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", testdata("full_profile.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "input is valid")

	out, err = run(t, "validate", testdata("excess_pension.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidInput))
	assert.Contains(t, out, "pension      FAILED")
	assert.Contains(t, out, "9,000,000")
}

func TestStructuralErrorsStopEarly(t *testing.T) {
	_, err := run(t, "calculate", testdata("bad_relationship.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input validation failed")

	_, err = run(t, "calculate", testdata("missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", testdata("salary_only.yaml"), testdata("scenarios.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO COMPARISON")
	assert.Contains(t, out, "Lower withholding")
	assert.Contains(t, out, "-₩1,000,000")
	assert.Contains(t, out, "Start pension savings")

	out, err = run(t, "simulate", testdata("salary_only.yaml"), testdata("scenarios.yaml"), "--format", "json")
	require.NoError(t, err)
	var outcomes []simulation.Outcome
	require.NoError(t, json.Unmarshal([]byte(out), &outcomes))
	require.Len(t, outcomes, 2)
	assert.Equal(t, "lower-withholding", outcomes[0].Scenario.ID)
	assert.NotEmpty(t, outcomes[1].Scenario.ID, "scenarios without an id are assigned one")
	assert.True(t, outcomes[1].Improvement.IsPositive())
}

func TestSuggestCommand(t *testing.T) {
	input, err := config.NewInputParser().LoadInput(testdata("salary_only.yaml"))
	require.NoError(t, err)
	expected := simulation.NewSimulator(calculation.NewSettlementEngine()).GenerateOptimizationSuggestions(input)
	require.NotEmpty(t, expected)

	out, err := run(t, "suggest", testdata("salary_only.yaml"), "--format", "json")
	require.NoError(t, err)
	report := decodeReport(t, out)
	require.Len(t, report.Suggestions, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].ID, report.Suggestions[i].ID)
		assert.True(t, expected[i].Impact.Equal(report.Suggestions[i].Impact))
	}
}

func TestPeersCommand(t *testing.T) {
	out, err := run(t, "peers", testdata("salary_only.yaml"), "--format", "json")
	require.NoError(t, err)
	report := decodeReport(t, out)
	require.NotNil(t, report.PeerBucket)
	assert.Equal(t, "5000-7000", report.PeerBucket.Key)

	out, err = run(t, "peers", testdata("salary_only.yaml"), "--peers", testdata("peers.yaml"), "--format", "json")
	require.NoError(t, err)
	report = decodeReport(t, out)
	require.NotNil(t, report.PeerBucket)
	assert.Equal(t, "4500-5500", report.PeerBucket.Key)
	// pension, medical and refund all trail the band averages
	assert.Len(t, report.Insights, 3)
}

func TestBatchCommand(t *testing.T) {
	out, err := run(t, "batch", testdata("salary_only.yaml"), testdata("full_profile.yaml"), "--concurrency", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "salary_only.yaml"))
	assert.Contains(t, lines[0], "-₩1,215,000")
	assert.True(t, strings.HasPrefix(lines[1], "full_profile.yaml"))

	out, err = run(t, "batch", testdata("salary_only.yaml"), testdata("excess_pension.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 inputs failed validation")
	assert.Contains(t, out, "invalid")
}

func TestExampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	out, err := run(t, "example", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	out, err = run(t, "calculate", path, "--format", "json")
	require.NoError(t, err)
	report := decodeReport(t, out)

	expected := calculation.NewSettlementEngine().Calculate(config.NewInputParser().CreateExampleInput())
	assert.True(t, expected.RefundOrPayment.Equal(report.Result.RefundOrPayment))

	out, err = run(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "Kim Jiwoo")
}

func TestOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "calculate", testdata("salary_only.yaml"), "--format", "all", "--output", dir)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "report written to"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := run(t, "calculate", testdata("salary_only.yaml"), "--format", "pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrUnsupportedFormat))
}

func TestCustomRuleTable(t *testing.T) {
	rules := calculation.DefaultRuleTable()
	rules.Version = "2025.1-test"
	rules.Personal.Basic = money.FromInt(2_000_000)
	data, err := yaml.Marshal(rules)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	out, err := run(t, "calculate", testdata("salary_only.yaml"), "--rules", path, "--format", "json")
	require.NoError(t, err)
	report := decodeReport(t, out)
	assert.Equal(t, "2025.1-test", report.Result.RuleSetVersion)
	assert.True(t, money.FromInt(2_000_000).Equal(report.Result.PersonalDeduction))
	// 500,000 more deduction at the 15% rate
	assert.True(t, money.FromInt(-1_140_000).Equal(report.Result.RefundOrPayment), "got %s", report.Result.RefundOrPayment)

	rules.Tax.Brackets = nil
	data, err = yaml.Marshal(rules)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	_, err = run(t, "calculate", testdata("salary_only.yaml"), "--rules", path)
	assert.Error(t, err)
}
