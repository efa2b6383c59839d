package simulation

import (
	"fmt"

	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/pkg/money"
	"github.com/shopspring/decimal"
)

// Catalogue scenario ids
const (
	ScenarioPensionIncrease   = "pension-increase"
	ScenarioCardSwitch        = "card-switch"
	ScenarioTraditionalMarket = "traditional-market"
	ScenarioIRPIncrease       = "irp-increase"
)

// CatalogueConfig holds the increments and ceilings of the suggestion catalogue.
// Pension ceilings come from the rule table.
type CatalogueConfig struct {
	PensionIncrement decimal.Decimal `yaml:"pension_increment" json:"pension_increment"`
	MarketIncrement  decimal.Decimal `yaml:"market_increment" json:"market_increment"`
	MarketCeiling    decimal.Decimal `yaml:"market_ceiling" json:"market_ceiling"`
	IRPIncrement     decimal.Decimal `yaml:"irp_increment" json:"irp_increment"`
	// MaterialityFloor drops suggestions whose refund impact does not exceed it.
	MaterialityFloor decimal.Decimal `yaml:"materiality_floor" json:"materiality_floor"`
}

// DefaultCatalogueConfig returns the standard catalogue settings
func DefaultCatalogueConfig() CatalogueConfig {
	return CatalogueConfig{
		PensionIncrement: decimal.NewFromInt(1_000_000),
		MarketIncrement:  decimal.NewFromInt(500_000),
		MarketCeiling:    decimal.NewFromInt(2_000_000),
		IRPIncrement:     decimal.NewFromInt(1_000_000),
		MaterialityFloor: decimal.NewFromInt(10_000),
	}
}

// candidates lists the applicable single-change scenarios in catalogue order
func (c CatalogueConfig) candidates(rules *domain.RuleTable, base *domain.TaxInput) []domain.SimulationScenario {
	var out []domain.SimulationScenario
	pension := base.Pension
	card := base.CardSpend

	if pension.Total().LessThan(rules.Pension.SavingsOnlyCeiling) {
		out = append(out, domain.SimulationScenario{
			ID:          ScenarioPensionIncrease,
			Name:        "Increase pension savings",
			Description: fmt.Sprintf("Contribute %s more to pension savings", money.Format(c.PensionIncrement)),
			Changes: domain.InputPatch{Pension: &domain.PensionPatch{
				PensionSavings: domain.DecimalPtr(pension.PensionSavings.Add(c.PensionIncrement)),
			}},
		})
	}

	if card.Credit.GreaterThan(card.Debit) {
		out = append(out, domain.SimulationScenario{
			ID:          ScenarioCardSwitch,
			Name:        "Switch credit spend to debit",
			Description: fmt.Sprintf("Move %s of credit card spend to a debit card", money.Format(card.Credit)),
			Changes: domain.InputPatch{CardSpend: &domain.CardSpendPatch{
				Credit: domain.DecimalPtr(decimal.Zero),
				Debit:  domain.DecimalPtr(card.Debit.Add(card.Credit)),
			}},
		})
	}

	if card.TraditionalMarket.LessThan(c.MarketCeiling) {
		out = append(out, domain.SimulationScenario{
			ID:          ScenarioTraditionalMarket,
			Name:        "Shop at traditional markets",
			Description: fmt.Sprintf("Spend %s more at traditional markets", money.Format(c.MarketIncrement)),
			Changes: domain.InputPatch{CardSpend: &domain.CardSpendPatch{
				TraditionalMarket: domain.DecimalPtr(card.TraditionalMarket.Add(c.MarketIncrement)),
			}},
		})
	}

	irpHeadroom := rules.Pension.CombinedCeiling.Sub(rules.Pension.SavingsOnlyCeiling)
	if pension.Total().LessThan(rules.Pension.CombinedCeiling) && pension.IRP.LessThan(irpHeadroom) {
		out = append(out, domain.SimulationScenario{
			ID:          ScenarioIRPIncrease,
			Name:        "Increase IRP contributions",
			Description: fmt.Sprintf("Contribute %s more to an IRP account", money.Format(c.IRPIncrement)),
			Changes: domain.InputPatch{Pension: &domain.PensionPatch{
				IRP: domain.DecimalPtr(pension.IRP.Add(c.IRPIncrement)),
			}},
		})
	}
	return out
}
