package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/yearend-calculator/internal/batch"
	"github.com/rpgo/yearend-calculator/internal/domain"
	"github.com/rpgo/yearend-calculator/internal/output"
	"github.com/rpgo/yearend-calculator/internal/peer"
	"github.com/rpgo/yearend-calculator/internal/simulation"
	"github.com/rpgo/yearend-calculator/internal/validation"
	"github.com/rpgo/yearend-calculator/pkg/money"
)

func newCalculateCommand(opts *options) *cobra.Command {
	var withSuggestions bool
	cmd := &cobra.Command{
		Use:   "calculate <input.yaml>",
		Short: "Run the settlement pipeline for one taxpayer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := opts.parser.LoadInput(args[0])
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			report := &domain.SettlementReport{
				Input:      input,
				Result:     engine.Calculate(input),
				Validation: validation.NewValidator(engine.Rules()).ValidateInput(input).Outcomes,
			}
			if withSuggestions {
				report.Suggestions = simulation.NewSimulator(engine).GenerateOptimizationSuggestions(input)
			}
			return opts.emit(cmd, report)
		},
	}
	cmd.Flags().BoolVar(&withSuggestions, "suggest", false, "Include optimization suggestions in the report")
	return cmd
}

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input.yaml>",
		Short: "Check an input file against the validation rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := opts.parser.LoadInput(args[0])
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			report := validation.NewValidator(engine.Rules()).ValidateInput(input)
			out := cmd.OutOrStdout()
			for _, name := range validation.Sections() {
				outcome := report.Outcomes[name]
				status := "ok"
				if !outcome.Valid {
					status = "FAILED: " + outcome.Reason
				}
				fmt.Fprintf(out, "%-12s %s\n", name, status)
				for _, w := range outcome.Warnings {
					fmt.Fprintf(out, "%-12s warning: %s\n", "", w)
				}
			}
			if err := report.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out, "input is valid")
			return nil
		},
	}
}

func newSimulateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <input.yaml> <scenarios.yaml>",
		Short: "Compare what-if scenarios against the base input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := opts.parser.LoadInput(args[0])
			if err != nil {
				return err
			}
			scenarios, err := opts.parser.LoadScenarios(args[1])
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			outcomes := simulation.NewSimulator(engine).RunSimulations(input, scenarios)
			opts.logger.Info("simulations complete", zap.Int("scenarios", len(outcomes)))

			out := cmd.OutOrStdout()
			if output.NormalizeFormatName(opts.format) == "json" {
				data, err := json.MarshalIndent(outcomes, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode simulations: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			fmt.Fprintln(out, "SCENARIO COMPARISON")
			fmt.Fprintln(out, strings.Repeat("=", 60))
			for _, o := range outcomes {
				fmt.Fprintf(out, "%-32s refund %14s  change %14s\n",
					o.Scenario.Name, money.FormatWon(o.Result.RefundOrPayment), money.FormatWon(o.Improvement))
			}
			return nil
		},
	}
}

func newSuggestCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <input.yaml>",
		Short: "List single changes that would improve the refund",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := opts.parser.LoadInput(args[0])
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			report := &domain.SettlementReport{
				Input:       input,
				Result:      engine.Calculate(input),
				Suggestions: simulation.NewSimulator(engine).GenerateOptimizationSuggestions(input),
			}
			if len(report.Suggestions) == 0 {
				opts.logger.Info("no material suggestions")
			}
			return opts.emit(cmd, report)
		},
	}
}

func newPeersCommand(opts *options) *cobra.Command {
	var peersPath string
	cmd := &cobra.Command{
		Use:   "peers <input.yaml>",
		Short: "Compare the settlement with taxpayers in the same salary band",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := opts.parser.LoadInput(args[0])
			if err != nil {
				return err
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			buckets := peer.DefaultBuckets()
			if peersPath != "" {
				if buckets, err = opts.parser.LoadPeerBuckets(peersPath); err != nil {
					return err
				}
			}
			result := engine.Calculate(input)
			bucket, insights := peer.NewRecommenderWithBuckets(engine.Rules(), buckets).Recommend(input, result)
			if bucket == nil {
				opts.logger.Warn("no peer bucket for salary", zap.String("salary", input.Income.Salary.String()))
			}
			return opts.emit(cmd, &domain.SettlementReport{
				Input:      input,
				Result:     result,
				PeerBucket: bucket,
				Insights:   insights,
			})
		},
	}
	cmd.Flags().StringVar(&peersPath, "peers", "", "Peer reference data YAML (default: built-in buckets)")
	return cmd
}

func newBatchCommand(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "batch <input.yaml>...",
		Short: "Settle many taxpayer files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]batch.Item, 0, len(args))
			for _, path := range args {
				input, err := opts.parser.LoadInput(path)
				if err != nil {
					return err
				}
				items = append(items, batch.Item{Name: filepath.Base(path), Input: input})
			}
			engine, err := opts.engine()
			if err != nil {
				return err
			}
			outcomes, err := batch.Settle(cmd.Context(), engine, items, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for _, o := range outcomes {
				status := "ok"
				if o.Err != nil {
					invalid++
					status = "invalid"
					opts.logger.Warn("validation failed", zap.String("input", o.Name), zap.Error(o.Err))
				}
				fmt.Fprintf(out, "%-28s determined %14s  refund %14s  %s\n",
					o.Name, money.FormatWon(o.Result.DeterminedTax), money.FormatWon(o.Result.RefundOrPayment), status)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d inputs failed validation", invalid, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "concurrency", batch.DefaultLimit, "Maximum settlements in flight")
	return cmd
}

func newExampleCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "example [output.yaml]",
		Short: "Write a sample taxpayer input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			example := opts.parser.CreateExampleInput()
			if len(args) == 1 {
				if err := opts.parser.SaveInput(example, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "example input written to %s\n", args[0])
				return nil
			}
			data, err := yaml.Marshal(example)
			if err != nil {
				return fmt.Errorf("failed to encode example: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// emit renders a report to stdout, or to a file when --output is set
func (o *options) emit(cmd *cobra.Command, report *domain.SettlementReport) error {
	if o.outputDir != "" {
		files, err := output.GenerateReport(report, o.format, o.outputDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", f)
		}
		return nil
	}
	data, err := output.Render(report, o.format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
