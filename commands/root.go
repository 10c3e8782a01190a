package commands

import (
	"fmt"

	"github.com/K0NGR3SS/profilebench/internal/config"
	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "profilebench.yaml"

type rootOptions struct {
	configPath string
	logLevel   string
	noBanner   bool

	cfg    *config.Config
	logger *pterm.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "profilebench",
		Short: "profilebench compares model profiles of a security-testing agent",
		Long: `profilebench plans benchmark runs of an autonomous security-testing agent against
fixed vulnerable targets (Juice Shop, DVWA), collects the per-run summaries and renders a
markdown comparison of confirmed findings, token usage and estimated cost per profile.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "Path to the YAML config")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, off)")
	cmd.PersistentFlags().BoolVar(&opts.noBanner, "no-banner", false, "Do not print the banner")

	cmd.AddCommand(
		newRenderCmd(opts),
		newCollectCmd(opts),
		newPlanCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	logger, err := ui.NewLogger(o.logLevel, cmd.ErrOrStderr())
	if err != nil {
		return coreerrors.Wrap(err, coreerrors.CategoryInvalidInput, "bad_log_level", "")
	}
	o.logger = logger

	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadConfig(o.configPath, !explicit)
	if err != nil {
		return coreerrors.Wrap(err, coreerrors.CategoryInvalidInput, "bad_config", "")
	}
	if err := cfg.Validate(); err != nil {
		return coreerrors.Wrap(fmt.Errorf("config %s: %w", o.configPath, err), coreerrors.CategoryInvalidInput, "bad_config", "")
	}
	o.cfg = cfg
	o.logger.Debug("config loaded", o.logger.Args("path", o.configPath, "explicit", explicit, "targets", len(cfg.Targets)))

	quiet := false
	if f := cmd.Flags().Lookup("stdout"); f != nil && f.Value.String() == "true" {
		quiet = true
	}
	if !o.noBanner && !quiet && cmd.Name() != "version" {
		ui.PrintBanner(Version)
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		printError(err)
		return ExitCode(err)
	}
	return 0
}
