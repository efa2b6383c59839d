package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rpgo/yearend-calculator/internal/calculation"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadInput_Success(t *testing.T) {
	content := "profile:\n" +
		"  birth_year: 1985\n" +
		"income:\n" +
		"  salary: 50000000\n" +
		"  withheld_tax: 3000000\n" +
		"dependents:\n" +
		"  - name: \"child\"\n" +
		"    relationship: descendant\n" +
		"    birth_year: 2015\n" +
		"card_spend:\n" +
		"  credit: 10000000\n" +
		"  debit: 5000000\n" +
		"pension:\n" +
		"  pension_savings: 4000000\n" +
		"housing:\n" +
		"  mode: loan\n" +
		"  loan_interest: 3000000\n" +
		"  long_term_loan: true\n"

	parser := NewInputParser()
	input, err := parser.LoadInput(writeTemp(t, "input.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, 1985, input.Profile.BirthYear)
	assert.True(t, decimal.NewFromInt(50_000_000).Equal(input.Income.Salary))
	require.Len(t, input.Dependents, 1)
	assert.Equal(t, domain.RelationshipDescendant, input.Dependents[0].Relationship)
	assert.Equal(t, domain.HousingLoan, input.Housing.Mode)
	assert.True(t, input.Housing.LongTermLoan)
	assert.True(t, decimal.NewFromInt(4_000_000).Equal(input.Pension.PensionSavings))
}

func TestLoadInput_DefaultsHousingMode(t *testing.T) {
	content := "profile:\n  birth_year: 1990\nincome:\n  salary: 30000000\n"
	input, err := NewInputParser().LoadInput(writeTemp(t, "input.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, domain.HousingNone, input.Housing.Mode)
}

func TestLoadInput_StructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errCount int
	}{
		{
			name:     "negative salary",
			content:  "profile:\n  birth_year: 1990\nincome:\n  salary: -1\n",
			errCount: 1,
		},
		{
			name: "bad relationship and missing name",
			content: "profile:\n  birth_year: 1990\nincome:\n  salary: 1\n" +
				"dependents:\n  - relationship: cousin\n    birth_year: 2000\n",
			errCount: 2,
		},
		{
			name:     "bad housing mode",
			content:  "profile:\n  birth_year: 1990\nhousing:\n  mode: jeonse\n",
			errCount: 1,
		},
		{
			name:     "missing profile",
			content:  "income:\n  salary: 1000\n",
			errCount: 1,
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadInput(writeTemp(t, "input.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "input validation failed")

			input := &domain.TaxInput{}
			require.NoError(t, yaml.Unmarshal([]byte(tt.content), input))
			assert.Len(t, multierr.Errors(parser.ValidateStructure(input)), tt.errCount)
		})
	}
}

func TestLoadInput_FileErrors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadInput(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = parser.LoadInput(writeTemp(t, "bad.yaml", "profile: [unclosed"))
	assert.Error(t, err)
}

func TestLoadScenarios(t *testing.T) {
	content := "scenarios:\n" +
		"  - id: more-irp\n" +
		"    name: \"IRP top-up\"\n" +
		"    changes:\n" +
		"      pension:\n" +
		"        irp: 2000000\n" +
		"  - changes:\n" +
		"      card_spend:\n" +
		"        credit: 0\n" +
		"        debit: 15000000\n"

	scenarios, err := NewInputParser().LoadScenarios(writeTemp(t, "scenarios.yaml", content))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, "more-irp", scenarios[0].ID)
	require.NotNil(t, scenarios[0].Changes.Pension)
	require.NotNil(t, scenarios[0].Changes.Pension.IRP)
	assert.True(t, decimal.NewFromInt(2_000_000).Equal(*scenarios[0].Changes.Pension.IRP))
	assert.Nil(t, scenarios[0].Changes.Pension.PensionSavings)

	_, err = uuid.Parse(scenarios[1].ID)
	assert.NoError(t, err, "missing ids are generated")
	assert.Equal(t, "Scenario 2", scenarios[1].Name)
	require.NotNil(t, scenarios[1].Changes.CardSpend.Credit)
	assert.True(t, scenarios[1].Changes.CardSpend.Credit.IsZero())

	_, err = NewInputParser().LoadScenarios(writeTemp(t, "empty.yaml", "scenarios: []\n"))
	assert.Error(t, err)
}

func TestLoadRuleTable_RoundTrip(t *testing.T) {
	original := calculation.DefaultRuleTable()
	original.Version = "2025.test"
	data, err := yaml.Marshal(original)
	require.NoError(t, err)

	loaded, err := NewInputParser().LoadRuleTable(writeTemp(t, "rules.yaml", string(data)))
	require.NoError(t, err)

	assert.Equal(t, "2025.test", loaded.Version)
	require.Len(t, loaded.Tax.Brackets, len(original.Tax.Brackets))
	for i := range original.Tax.Brackets {
		assert.True(t, original.Tax.Brackets[i].Rate.Equal(loaded.Tax.Brackets[i].Rate))
		assert.True(t, original.Tax.Brackets[i].Offset.Equal(loaded.Tax.Brackets[i].Offset))
	}
	assert.Nil(t, loaded.Education.SelfCeiling, "uncapped categories stay uncapped")
	require.NotNil(t, loaded.Education.UniversityCeiling)

	engine, err := calculation.NewSettlementEngineWithRules(loaded)
	require.NoError(t, err)
	r := engine.Calculate(&domain.TaxInput{Income: domain.IncomeData{Salary: decimal.NewFromInt(50_000_000)}})
	assert.True(t, decimal.NewFromInt(12_000_000).Equal(r.EmploymentIncomeDeduction))
}

func TestLoadRuleTable_Invalid(t *testing.T) {
	content := "version: broken\ntax_year: 2025\n" +
		"employment:\n  brackets: []\n"
	_, err := NewInputParser().LoadRuleTable(writeTemp(t, "rules.yaml", content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule table validation failed")
}

func TestLoadPeerBuckets(t *testing.T) {
	content := "buckets:\n" +
		"  - key: \"2000-3000\"\n" +
		"    lower: 20000000\n" +
		"    upper: 30000000\n" +
		"    average_pension: 1800000\n" +
		"    average_refund: 200000\n"

	buckets, err := NewInputParser().LoadPeerBuckets(writeTemp(t, "peers.yaml", content))
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].Contains(decimal.NewFromInt(25_000_000)))

	_, err = NewInputParser().LoadPeerBuckets(writeTemp(t, "bad.yaml", "buckets:\n  - key: x\n    lower: 10\n    upper: 5\n"))
	assert.Error(t, err)
}

func TestSaveAndReloadExampleInput(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleInput()
	require.NoError(t, parser.ValidateStructure(example))

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SaveInput(example, path))

	loaded, err := parser.LoadInput(path)
	require.NoError(t, err)
	assert.Equal(t, example.Profile, loaded.Profile)
	assert.True(t, example.Income.Salary.Equal(loaded.Income.Salary))
	assert.True(t, example.Housing.MonthlyRent.Equal(loaded.Housing.MonthlyRent))
	assert.Len(t, loaded.Dependents, 2)
}
