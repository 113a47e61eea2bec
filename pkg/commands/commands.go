// Package commands provides modular CLI command packages for experiment CLIs.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	commands := commands.New(lggr)
//	app.AddCommand(
//	    commands.Experiment(commands.ExperimentConfig{}),
//	)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/flamegpu/experiment-framework/pkg/commands/experiment"
//
//	app.AddCommand(experiment.NewCommand(experiment.Config{
//	    Logger: lggr,
//	    Deps:   &experiment.Deps{...},  // inject mocks for testing
//	}))
package commands

import (
	"github.com/spf13/cobra"

	"github.com/flamegpu/experiment-framework/pkg/commands/experiment"
	"github.com/flamegpu/experiment-framework/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
// This allows setting the logger once and reusing it across all commands.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger.
// The logger will be shared across all commands created by this factory.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// ExperimentConfig holds configuration for experiment commands.
type ExperimentConfig struct {
	// ConfigLoader overrides how the experiments config file is loaded.
	// Defaults to config.Load.
	ConfigLoader experiment.ConfigLoaderFunc
}

// Experiment creates the experiment command group for validating and planning experiments.
//
// Usage:
//
//	cmds := commands.New(lggr)
//	rootCmd.AddCommand(cmds.Experiment(commands.ExperimentConfig{}))
func (c *Commands) Experiment(cfg ExperimentConfig) *cobra.Command {
	return experiment.NewCommand(experiment.Config{
		Logger: c.lggr,
		Deps:   &experiment.Deps{ConfigLoader: cfg.ConfigLoader},
	})
}
