package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/K0NGR3SS/profilebench/internal/harness"
	"github.com/spf13/cobra"
)

type planOptions struct {
	targets []string
	extra   []string
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the agent invocations for each target and profile",
		Long: `Prints one shell line per target/profile run: the environment the harness sets
(CYBER_MODEL_PROFILE, CYBER_OPERATION_OBJECTIVE), the agent command and the summary
path the run is expected to produce. Nothing is executed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := harness.SelectTargets(root.cfg, opts.targets)
			if err != nil {
				return err
			}
			writePlan(cmd.OutOrStdout(), harness.Plan(root.cfg, targets, opts.extra))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.targets, "target", "t", nil, "Target key to plan (repeatable, default all)")
	cmd.Flags().StringArrayVar(&opts.extra, "extra", nil, "Extra argument passed to the agent (repeatable)")
	return cmd
}

func writePlan(w io.Writer, runs []harness.Run) {
	for _, run := range runs {
		fmt.Fprintf(w, "# %s / %s -> %s\n", run.Target.Name, run.Profile, run.ArtifactPath)
		parts := []string{
			harness.EnvProfile + "=" + shellQuote(run.Env[harness.EnvProfile]),
			harness.EnvObjective + "=" + shellQuote(run.Env[harness.EnvObjective]),
		}
		for _, arg := range run.Args {
			parts = append(parts, shellQuote(arg))
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=@%+,", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
