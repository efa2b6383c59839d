// Package cli assembles the yearend command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rpgo/yearend-calculator/internal/calculation"
	"github.com/rpgo/yearend-calculator/internal/config"
)

// options carries the persistent flags and the logger shared by every subcommand
type options struct {
	rulesPath string
	format    string
	outputDir string
	verbose   bool

	logger *zap.Logger
	parser *config.InputParser
}

// NewRootCommand builds the yearend command tree writing reports to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{parser: config.NewInputParser()}

	root := &cobra.Command{
		Use:   "yearend",
		Short: "Year-end tax settlement calculator",
		Long: `yearend computes an employee's year-end income tax settlement.

It runs the seven-stage pipeline from gross salary to refund or balance due,
validates inputs, simulates what-if changes and compares the result with peers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if opts.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.rulesPath, "rules", "", "Rule table YAML (default: built-in 2025 rules)")
	flags.StringVarP(&opts.format, "format", "f", "console", "Output format: console, console-lite, csv, json")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging of pipeline stages")

	root.AddCommand(
		newCalculateCommand(opts),
		newValidateCommand(opts),
		newSimulateCommand(opts),
		newSuggestCommand(opts),
		newPeersCommand(opts),
		newBatchCommand(opts),
		newExampleCommand(opts),
	)
	return root
}

// engine builds a settlement engine from --rules, logging through zap
func (o *options) engine() (*calculation.SettlementEngine, error) {
	var engine *calculation.SettlementEngine
	if o.rulesPath == "" {
		engine = calculation.NewSettlementEngine()
	} else {
		rules, err := o.parser.LoadRuleTable(o.rulesPath)
		if err != nil {
			return nil, err
		}
		engine, err = calculation.NewSettlementEngineWithRules(rules)
		if err != nil {
			return nil, err
		}
	}
	if o.logger != nil {
		engine.SetLogger(o.logger.Sugar())
		o.logger.Debug("engine ready",
			zap.String("rule_set", engine.Rules().Version),
			zap.Int("tax_year", engine.TaxYear()))
	}
	return engine, nil
}
