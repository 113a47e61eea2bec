package experiment

import (
	"github.com/spf13/cobra"

	"github.com/flamegpu/experiment-framework/pkg/logger"
)

// Config holds the configuration for experiment commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps *Deps
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	if c.Deps == nil {
		c.Deps = &Deps{}
	}
	c.Deps.applyDefaults()

	return c.Deps
}

// NewCommand creates a new experiment command with all subcommands.
// The command requires a config flag (-c) which is used by all subcommands.
//
// Usage:
//
//	rootCmd.AddCommand(experiment.NewCommand(experiment.Config{
//	    Logger: lggr,
//	}))
func NewCommand(cfg Config) *cobra.Command {
	cfg.deps()

	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Experiment commands",
	}

	cmd.AddCommand(
		newValidateCmd(cfg),
		newPlanCmd(cfg),
	)

	cmd.PersistentFlags().
		StringP("config", "c", "", "Path to the experiments config file (required)")
	_ = cmd.MarkPersistentFlagRequired("config")

	return cmd
}
