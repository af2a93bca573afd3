package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/reportctl/internal/batch"
	"github.com/danmuck/reportctl/internal/config"
	"github.com/danmuck/reportctl/internal/ingest"
	"github.com/danmuck/reportctl/internal/observability"
	"github.com/danmuck/reportctl/internal/repair"
	"github.com/danmuck/reportctl/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	input      string
	workers    int
	metricsOut string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Validate reports and check single-element repairs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to reportctl.toml")
	flags.StringVar(&opts.input, "input", "", "report file, one report per line")
	flags.IntVar(&opts.workers, "workers", 1, "parallel workers for batch commands")
	flags.StringVar(&opts.metricsOut, "metrics-out", "", "write prometheus text metrics to this path")

	root.AddCommand(
		newCheckCmd(opts),
		newRepairCmd(opts),
		newAuditCmd(opts),
		newExplainCmd(),
		newConfigCmd(),
	)
	return root
}

// resolveConfig loads the optional config file, then applies flags that were
// set explicitly.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		log.Info().Str("path", opts.configPath).Msg("loaded reportctl config")
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = strings.TrimSpace(opts.input)
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("metrics-out") {
		cfg.MetricsOut = strings.TrimSpace(opts.metricsOut)
	}
	if flags.Lookup("strategy") != nil && flags.Changed("strategy") {
		v, _ := flags.GetString("strategy")
		cfg.Strategy = strings.TrimSpace(v)
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadReports(cmd *cobra.Command, opts *rootOptions) (config.Config, []report.Report, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return config.Config{}, nil, err
	}
	reports, err := ingest.Load(cfg.Input)
	if err != nil {
		return config.Config{}, nil, err
	}
	log.Info().Str("path", cfg.Input).Int("reports", len(reports)).Msg("reports loaded")
	return cfg, reports, nil
}

func flushMetrics(cfg config.Config) error {
	if cfg.MetricsOut == "" {
		return nil
	}
	if err := observability.WriteTextfile(cfg.MetricsOut); err != nil {
		return err
	}
	log.Info().Str("path", cfg.MetricsOut).Msg("metrics written")
	return nil
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Count reports that are valid as-is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reports, err := loadReports(cmd, opts)
			if err != nil {
				return err
			}
			valid, err := batch.CountValid(cmd.Context(), reports, cfg.Workers)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), valid)
			return flushMetrics(cfg)
		},
	}
}

func newRepairCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Count reports that are valid or fixed by removing one element",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reports, err := loadReports(cmd, opts)
			if err != nil {
				return err
			}
			strategy, err := repair.DefaultRegistry().Resolve(cfg.Strategy)
			if err != nil {
				return err
			}
			runner := batch.Runner{
				Command:      batch.CommandRepair,
				StrategyName: cfg.Strategy,
				Strategy:     strategy,
				Workers:      cfg.Workers,
			}
			sum, err := runner.Run(cmd.Context(), reports)
			if err != nil {
				return err
			}
			log.Info().
				Str("strategy", cfg.Strategy).
				Int("valid", sum.Valid).
				Int("repairable", sum.Repairable).
				Msg("repair pass complete")
			fmt.Fprintln(cmd.OutOrStdout(), sum.Repairable)
			return flushMetrics(cfg)
		},
	}
	cmd.Flags().String("strategy", repair.NameExhaustive, "repair strategy: exhaustive | heuristic")
	return cmd
}

func newAuditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Compare the heuristic against exhaustive search on every report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, reports, err := loadReports(cmd, opts)
			if err != nil {
				return err
			}
			res, err := batch.Audit(cmd.Context(), reports, cfg.Workers)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "divergences: %d of %d\n", len(res.Divergences), res.Total)
			for _, d := range res.Divergences {
				fmt.Fprintf(out, "line %d %s heuristic=%t exhaustive=%t anomaly=%s@%d\n",
					d.Index+1, formatReport(d.Report), d.Heuristic, d.Exhaustive,
					d.Diagnosis.Category, d.Diagnosis.Anomaly)
			}
			return flushMetrics(cfg)
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [--] <value>...",
		Short: "Show how both strategies judge a single report",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ingest.Parse(strings.NewReader(strings.Join(args, " ")))
			if err != nil {
				return err
			}
			var rep report.Report
			if len(r) > 0 {
				rep = r[0]
			}
			writeExplain(cmd, rep)
			return nil
		},
	}
}

func writeExplain(cmd *cobra.Command, r report.Report) {
	out := cmd.OutOrStdout()
	diag := repair.Diagnose(r)
	fmt.Fprintf(out, "report:     %s\n", formatReport(r))
	fmt.Fprintf(out, "diffs:      %s\n", formatDiffs(diag.Diffs))
	fmt.Fprintf(out, "valid:      %t\n", diag.Valid)
	if !diag.Valid {
		fmt.Fprintf(out, "tally:      negative=%d positive=%d zero=%d out-of-bounds=%d\n",
			diag.Tally.Negative, diag.Tally.Positive, diag.Tally.Zero, diag.Tally.OutOfBounds)
		fmt.Fprintf(out, "anomaly:    %s@%d candidates=%v\n", diag.Category, diag.Anomaly, diag.Candidates())
		fmt.Fprintf(out, "removals:   %v\n", repair.RemovalIndices(r))
	}
	fmt.Fprintf(out, "heuristic:  %t\n", repair.Heuristic(r))
	fmt.Fprintf(out, "exhaustive: %t\n", repair.Exhaustive(r))
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage reportctl.toml",
	}

	var output string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(output, force); err != nil {
				return err
			}
			log.Info().Str("path", output).Msg("wrote config template")
			return nil
		},
	}
	initCmd.Flags().StringVar(&output, "output", "reportctl.toml", "output path for config template")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate an existing config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: input=%s strategy=%s workers=%d\n", cfg.Input, cfg.Strategy, cfg.Workers)
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func formatReport(r report.Report) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatDiffs(d report.Diffs) string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

