package experiment

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the experiments config and list its experiments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, cfg)
		},
	}
}

// runValidate executes the validate command logic.
func runValidate(cmd *cobra.Command, cfg Config) error {
	deps := cfg.deps()

	path, _ := cmd.Flags().GetString("config")
	expCfg, err := deps.ConfigLoader(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := expCfg.Build(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to register experiments: %w", err)
	}

	cmd.Printf("%s: %d experiment(s) valid\n", path, registry.Len())
	for _, name := range registry.Names() {
		cmd.Printf("  - %s\n", name)
	}

	return nil
}
