package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of taxpayer, scenario, rule and peer files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return &InputParser{validate: v}
}

// decimalValue lets numeric tags such as gte=0 apply to decimal fields
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// scenarioFile is the on-disk layout of a scenario list
type scenarioFile struct {
	Scenarios []domain.SimulationScenario `yaml:"scenarios"`
}

// peerFile is the on-disk layout of peer reference data
type peerFile struct {
	Buckets []domain.PeerBucket `yaml:"buckets"`
}

func readYAML(filename string, out interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", filename, err)
	}
	return nil
}

// LoadInput loads a taxpayer input file and checks its structure
func (ip *InputParser) LoadInput(filename string) (*domain.TaxInput, error) {
	var input domain.TaxInput
	if err := readYAML(filename, &input); err != nil {
		return nil, err
	}
	if input.Housing.Mode == "" {
		input.Housing.Mode = domain.HousingNone
	}
	if err := ip.ValidateStructure(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &input, nil
}

// ValidateStructure checks field-level constraints declared on the input types.
// Cross-field checks belong to the validation package.
func (ip *InputParser) ValidateStructure(input *domain.TaxInput) error {
	err := ip.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var combined error
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return combined
}

// LoadScenarios loads a list of what-if scenarios. Scenarios without an id get a generated one.
func (ip *InputParser) LoadScenarios(filename string) ([]domain.SimulationScenario, error) {
	var file scenarioFile
	if err := readYAML(filename, &file); err != nil {
		return nil, err
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided in %s", filename)
	}
	for i := range file.Scenarios {
		if file.Scenarios[i].ID == "" {
			file.Scenarios[i].ID = uuid.NewString()
		}
		if file.Scenarios[i].Name == "" {
			file.Scenarios[i].Name = fmt.Sprintf("Scenario %d", i+1)
		}
	}
	return file.Scenarios, nil
}

// LoadRuleTable loads a complete rule table and validates its structure
func (ip *InputParser) LoadRuleTable(filename string) (*domain.RuleTable, error) {
	var rules domain.RuleTable
	if err := readYAML(filename, &rules); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rule table validation failed: %w", err)
	}
	return &rules, nil
}

// LoadPeerBuckets loads peer reference data
func (ip *InputParser) LoadPeerBuckets(filename string) ([]domain.PeerBucket, error) {
	var file peerFile
	if err := readYAML(filename, &file); err != nil {
		return nil, err
	}
	for i, b := range file.Buckets {
		if !b.Upper.GreaterThan(b.Lower) {
			return nil, fmt.Errorf("peer bucket %d (%s): upper bound must exceed lower bound", i, b.Key)
		}
	}
	return file.Buckets, nil
}

// SaveInput writes a taxpayer input as YAML
func (ip *InputParser) SaveInput(input *domain.TaxInput, filename string) error {
	b, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to encode input: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}

// CreateExampleInput creates an example taxpayer input
func (ip *InputParser) CreateExampleInput() *domain.TaxInput {
	return &domain.TaxInput{
		Profile: domain.TaxpayerProfile{
			Name:      "Kim Jiwoo",
			BirthYear: 1988,
		},
		Income: domain.IncomeData{
			Salary:      decimal.NewFromInt(52_000_000),
			WithheldTax: decimal.NewFromInt(3_200_000),
		},
		Dependents: []domain.Dependent{
			{Name: "Lee Sora", Relationship: domain.RelationshipSpouse, BirthYear: 1989, LivingTogether: true},
			{Name: "Kim Haneul", Relationship: domain.RelationshipDescendant, BirthYear: 2017, LivingTogether: true},
		},
		CardSpend: domain.CardSpend{
			Credit:            decimal.NewFromInt(14_000_000),
			Debit:             decimal.NewFromInt(4_000_000),
			CashReceipt:       decimal.NewFromInt(800_000),
			TraditionalMarket: decimal.NewFromInt(300_000),
			PublicTransport:   decimal.NewFromInt(900_000),
		},
		Medical: domain.MedicalExpense{
			Total: decimal.NewFromInt(2_400_000),
		},
		Education: domain.EducationExpense{
			Children: domain.ChildrenEducation{Elementary: decimal.NewFromInt(1_200_000)},
		},
		Pension: domain.PensionPayment{
			PensionSavings: decimal.NewFromInt(3_000_000),
		},
		Housing: domain.HousingData{
			Mode:        domain.HousingRent,
			MonthlyRent: decimal.NewFromInt(550_000),
		},
		Donation: domain.DonationData{
			General: decimal.NewFromInt(600_000),
		},
	}
}
