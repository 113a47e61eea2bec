package experiment

import (
	"fmt"

	"github.com/spf13/cobra"

	fexperiment "github.com/flamegpu/experiment-framework/experiment"
	"github.com/flamegpu/experiment-framework/experiment/manifest"
)

// planFlags holds the flags of the plan command.
type planFlags struct {
	name       string
	outputPath string
	format     string
	seed       int64
}

// newPlanCmd creates the "plan" subcommand for generating run plans.
func newPlanCmd(cfg Config) *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate the run plans of one or all experiments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Experiment to plan. Default is every experiment in the config")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Manifest output path. Default is stdout")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Manifest format: json, yaml or toml. Default is taken from the output extension, else yaml")
	cmd.Flags().Int64VarP(&flags.seed, "seed", "s", 0, "Seed for every plan, overriding the config seeds")

	return cmd
}

// runPlan executes the plan command logic.
// This is separated from the RunE closure to improve testability.
func runPlan(cmd *cobra.Command, cfg Config, flags planFlags) error {
	deps := cfg.deps()

	format, err := resolveFormat(flags)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	expCfg, err := deps.ConfigLoader(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := expCfg.Build(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to register experiments: %w", err)
	}

	names := registry.Names()
	if flags.name != "" {
		names = []string{flags.name}
	}

	plans := make([]fexperiment.Plan, 0, len(names))
	for _, name := range names {
		opts, err := expCfg.PlanOptions(name)
		if err != nil {
			return fmt.Errorf("failed to plan experiment %s: %w", name, err)
		}
		if cmd.Flags().Changed("seed") {
			opts = append(opts, fexperiment.WithSeed(flags.seed))
		}

		plan, err := registry.Plan(name, opts...)
		if err != nil {
			return fmt.Errorf("failed to plan experiment %s: %w", name, err)
		}
		plans = append(plans, plan)
	}

	m := manifest.New(plans...)

	if flags.outputPath != "" {
		if err := deps.ManifestWriter(m, flags.outputPath, format); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		cmd.Printf("Wrote %d run(s) of %d experiment(s) to %s\n", m.Runs(), len(plans), flags.outputPath)

		return nil
	}

	b, err := m.Encode(format)
	if err != nil {
		return fmt.Errorf("unable to encode manifest: %w", err)
	}
	cmd.Print(string(b))

	return nil
}

// resolveFormat picks the manifest format from the format flag, then the output extension.
func resolveFormat(flags planFlags) (manifest.Format, error) {
	if flags.format != "" {
		return manifest.ParseFormat(flags.format)
	}
	if flags.outputPath != "" {
		return manifest.FormatFromPath(flags.outputPath)
	}

	return manifest.FormatYAML, nil
}
