package harness

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/K0NGR3SS/profilebench/internal/config"
	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/models"
)

const (
	EnvObjective = "CYBER_OPERATION_OBJECTIVE"
	EnvProfile   = "CYBER_MODEL_PROFILE"

	SummaryFile = "summary.json"
)

// Run is one agent invocation the external harness performs.
type Run struct {
	Target       config.TargetConfig
	Profile      models.Profile
	Args         []string
	Env          map[string]string
	ArtifactPath string
}

// SelectTargets resolves target keys against the config. No keys selects
// every configured target.
func SelectTargets(cfg *config.Config, keys []string) ([]config.TargetConfig, error) {
	if len(keys) == 0 {
		return append([]config.TargetConfig(nil), cfg.Targets...), nil
	}
	out := make([]config.TargetConfig, 0, len(keys))
	seen := map[string]bool{}
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		t, ok := cfg.Target(key)
		if !ok {
			return nil, coreerrors.Wrap(fmt.Errorf("unknown target %q", key), coreerrors.CategoryInvalidInput, "unknown_target", "check the targets section of the config")
		}
		out = append(out, t)
	}
	return out, nil
}

func ArtifactPath(outputDir, targetKey string, profile models.Profile) string {
	return filepath.Join(outputDir, targetKey, string(profile), SummaryFile)
}

// Plan lists the target × profile matrix in selection then profile order.
func Plan(cfg *config.Config, targets []config.TargetConfig, extra []string) []Run {
	runs := make([]Run, 0, len(targets)*len(cfg.Profiles))
	for _, t := range targets {
		for _, p := range cfg.ProfileOrder() {
			args := append([]string(nil), cfg.Agent.Command...)
			args = append(args,
				"--target", t.URL,
				"--objective", t.Objective,
				"--max-steps", strconv.Itoa(cfg.MaxSteps),
			)
			args = append(args, extra...)
			runs = append(runs, Run{
				Target:  t,
				Profile: p,
				Args:    args,
				Env: map[string]string{
					EnvProfile:   string(p),
					EnvObjective: t.Objective,
				},
				ArtifactPath: ArtifactPath(cfg.OutputDir, t.Key, p),
			})
		}
	}
	return runs
}
