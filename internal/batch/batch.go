// Package batch settles many taxpayer inputs concurrently against one engine.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/yearend-calculator/internal/calculation"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/internal/validation"
)

// DefaultLimit bounds the number of settlements in flight when no limit is given.
const DefaultLimit = 4

// Item is one taxpayer file to settle
type Item struct {
	Name  string
	Input *domain.TaxInput
}

// Outcome is the settlement of one Item. Result is always populated;
// Err carries validation failures so callers can decide whether to trust it.
type Outcome struct {
	Name       string
	Result     *domain.TaxResult
	Validation validation.Report
	Err        error
}

// Settle runs the engine over items with at most limit concurrent
// calculations. Outcomes are returned in the order of items. A cancelled
// context stops scheduling and its error is returned.
func Settle(ctx context.Context, engine *calculation.SettlementEngine, items []Item, limit int) ([]Outcome, error) {
	if engine == nil {
		return nil, fmt.Errorf("batch: engine is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	validator := validation.NewValidator(engine.Rules())
	outcomes := make([]Outcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if item.Input == nil {
				return fmt.Errorf("batch: item %q has no input", item.Name)
			}
			report := validator.ValidateInput(item.Input)
			outcomes[i] = Outcome{
				Name:       item.Name,
				Result:     engine.Calculate(item.Input),
				Validation: report,
				Err:        report.Err(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
