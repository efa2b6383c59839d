// Package simulation re-runs the settlement pipeline under hypothetical input
// changes and ranks the refund impact.
package simulation

import (
	"sort"

	"github.com/rpgo/yearend-calculator/internal/calculation"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Outcome is the result of one simulated scenario
type Outcome struct {
	Scenario domain.SimulationScenario `json:"scenario"`
	Result   *domain.TaxResult         `json:"result"`
	// Improvement is the refund delta versus the base input; positive is better.
	Improvement decimal.Decimal `json:"improvement"`
}

// Simulator evaluates what-if scenarios against a settlement engine
type Simulator struct {
	engine    *calculation.SettlementEngine
	catalogue CatalogueConfig
}

// NewSimulator creates a simulator with the default suggestion catalogue
func NewSimulator(engine *calculation.SettlementEngine) *Simulator {
	return &Simulator{engine: engine, catalogue: DefaultCatalogueConfig()}
}

// NewSimulatorWithCatalogue creates a simulator with custom catalogue increments
func NewSimulatorWithCatalogue(engine *calculation.SettlementEngine, cfg CatalogueConfig) *Simulator {
	return &Simulator{engine: engine, catalogue: cfg}
}

// RunSimulations applies each scenario's changes to base and reports the refund
// delta. Outcomes are returned in scenario order.
func (s *Simulator) RunSimulations(base *domain.TaxInput, scenarios []domain.SimulationScenario) []Outcome {
	baseResult := s.engine.Calculate(base)
	outcomes := make([]Outcome, 0, len(scenarios))
	for _, sc := range scenarios {
		outcomes = append(outcomes, s.evaluate(base, baseResult, sc))
	}
	return outcomes
}

func (s *Simulator) evaluate(base *domain.TaxInput, baseResult *domain.TaxResult, sc domain.SimulationScenario) Outcome {
	modified := sc.Changes.Apply(base)
	result := s.engine.Calculate(modified)
	improvement := result.RefundOrPayment.Sub(baseResult.RefundOrPayment)
	sc.Impact = improvement
	return Outcome{Scenario: sc, Result: result, Improvement: improvement}
}

// GenerateOptimizationSuggestions evaluates the fixed catalogue of single-change
// candidates and returns those above the materiality floor, best first.
func (s *Simulator) GenerateOptimizationSuggestions(base *domain.TaxInput) []domain.SimulationScenario {
	baseResult := s.engine.Calculate(base)
	rules := s.engine.Rules()

	var suggestions []domain.SimulationScenario
	for _, candidate := range s.catalogue.candidates(rules, base) {
		out := s.evaluate(base, baseResult, candidate)
		if out.Improvement.GreaterThan(s.catalogue.MaterialityFloor) {
			suggestions = append(suggestions, out.Scenario)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Impact.GreaterThan(suggestions[j].Impact)
	})
	return suggestions
}
