// Command experiments validates experiment configs and generates run plan manifests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/flamegpu/experiment-framework/pkg/commands"
	"github.com/flamegpu/experiment-framework/pkg/logger"
)

const defaultLogLevel = "info"

func main() {
	app, lggr, err := newApp(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = lggr.Sync() }()

	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp builds the root command. The log level is read ahead of cobra's own parsing since
// the logger is shared by every command at construction.
func newApp(args []string) (*cobra.Command, logger.Logger, error) {
	level, err := parseLogLevel(args)
	if err != nil {
		return nil, nil, err
	}

	lggr, err := logger.NewWithLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rootCmd := &cobra.Command{
		Use:          "experiments",
		Short:        "Validate experiment configs and plan their runs",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("log-level", defaultLogLevel, "Log level: debug, info, warn or error")
	rootCmd.SetArgs(args)

	cmds := commands.New(lggr)
	rootCmd.AddCommand(cmds.Experiment(commands.ExperimentConfig{}))

	return rootCmd, lggr, nil
}

// parseLogLevel extracts the --log-level flag from args, ignoring every other flag.
func parseLogLevel(args []string) (string, error) {
	fs := pflag.NewFlagSet("experiments", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(nopWriter{})
	fs.BoolP("help", "h", false, "")
	level := fs.String("log-level", defaultLogLevel, "")

	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("invalid flags: %w", err)
	}

	return *level, nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
