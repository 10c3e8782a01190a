package commands

import (
	"fmt"

	"github.com/K0NGR3SS/profilebench/internal/harness"
	"github.com/K0NGR3SS/profilebench/internal/report"
	"github.com/K0NGR3SS/profilebench/internal/ui"
	"github.com/spf13/cobra"
)

type collectOptions struct {
	targets []string
	write   bool
	out     string
}

func newCollectCmd(root *rootOptions) *cobra.Command {
	opts := &collectOptions{}
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect per-run summaries into the combined results artifact",
		Long: `Reads <output_dir>/<target>/<profile>/summary.json for every selected target and
configured profile. Exits nonzero and names every missing summary if any run did not
produce one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(root, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.targets, "target", "t", nil, "Target key to collect (repeatable, default all)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the combined results artifact")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Results path for --write (default from config)")
	return cmd
}

func runCollect(root *rootOptions, opts *collectOptions) error {
	cfg := root.cfg
	logger := root.logger

	targets, err := harness.SelectTargets(cfg, opts.targets)
	if err != nil {
		return err
	}
	runs := harness.Plan(cfg, targets, nil)

	spinner := ui.StartSpinner(fmt.Sprintf("Collecting %d run summaries from %s...", len(runs), cfg.OutputDir))
	records, err := harness.Collect(runs)
	if err != nil {
		ui.StopSpinner(spinner, false, "Collection failed")
		return fmt.Errorf("collect: %w", err)
	}
	ui.StopSpinner(spinner, true, fmt.Sprintf("Collected %d summaries", len(records)))

	ui.PrintComparison(report.Build(records, cfg.ProfileOrder()))

	if !opts.write {
		return nil
	}
	out := firstNonEmpty(opts.out, cfg.Results)
	if err := harness.WriteResults(out, records); err != nil {
		return err
	}
	logger.Info("results written", logger.Args("path", out, "records", len(records)))
	return nil
}
