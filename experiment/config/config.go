// Package config loads experiment definitions from a configuration file.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"

	"github.com/flamegpu/experiment-framework/experiment"
	"github.com/flamegpu/experiment-framework/internal/pointer"
	"github.com/flamegpu/experiment-framework/pkg/logger"
)

// SupportedVersions is the range of config file versions this package can read.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// ErrNegativeCount is returned when steps or repeats are below zero.
var ErrNegativeCount = errors.New("count must not be negative")

// ParameterConfig is a global parameter swept by an experiment.
type ParameterConfig struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Values []any  `mapstructure:"values" yaml:"values"`
}

// ExperimentConfig is the configuration of a single experiment. Zero values fall back to the
// file defaults and then to the experiment package defaults.
type ExperimentConfig struct {
	Name            string            `mapstructure:"name" yaml:"name"`
	Model           string            `mapstructure:"model" yaml:"model"`
	OutputDirectory string            `mapstructure:"output_directory" yaml:"output_directory"`
	OutputFile      string            `mapstructure:"output_file" yaml:"output_file"`
	Steps           int               `mapstructure:"steps" yaml:"steps"`
	Repeats         *int              `mapstructure:"repeats" yaml:"repeats,omitempty"`
	Seed            *int64            `mapstructure:"seed" yaml:"seed,omitempty"`
	Parameters      []ParameterConfig `mapstructure:"parameters" yaml:"parameters"`
}

// Defaults holds values applied to every experiment that does not set them.
type Defaults struct {
	OutputDirectory string `mapstructure:"output_directory" yaml:"output_directory"`
	Seed            *int64 `mapstructure:"seed" yaml:"seed,omitempty"`
}

// Config wraps the entire experiments configuration file.
type Config struct {
	Version     string             `mapstructure:"version" yaml:"version"`
	Defaults    Defaults           `mapstructure:"defaults" yaml:"defaults"`
	Experiments []ExperimentConfig `mapstructure:"experiments" yaml:"experiments"`
}

// Load loads the config from the file path. Any env vars that are set override the values
// loaded from the file. The loaded config is validated.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filePath, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", filePath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filePath, err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("version is required")
	}
	version, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", c.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("unsupported version %s (must be %s)", version, SupportedVersions)
	}

	seen := make(map[string]bool, len(c.Experiments))
	for i, exp := range c.Experiments {
		if exp.Name == "" {
			return fmt.Errorf("experiments[%d]: %w", i, experiment.ErrEmptyName)
		}
		if seen[exp.Name] {
			return fmt.Errorf("%w: %s", experiment.ErrExperimentExists, exp.Name)
		}
		seen[exp.Name] = true

		if exp.Steps < 0 {
			return fmt.Errorf("experiment %s: steps: %w: %d", exp.Name, ErrNegativeCount, exp.Steps)
		}
		if exp.Repeats != nil {
			switch {
			case *exp.Repeats < 0:
				return fmt.Errorf("experiment %s: repeats: %w: %d", exp.Name, ErrNegativeCount, *exp.Repeats)
			case *exp.Repeats > experiment.MaxRuns:
				return fmt.Errorf("experiment %s: %w: %d repeats", exp.Name, experiment.ErrTooManyRuns, *exp.Repeats)
			}
		}

		for j, p := range exp.Parameters {
			if p.Name == "" {
				return fmt.Errorf("experiment %s: parameters[%d]: %w", exp.Name, j, experiment.ErrEmptyParameterName)
			}
			if len(p.Values) == 0 {
				return fmt.Errorf("experiment %s: %w: %s", exp.Name, experiment.ErrEmptyParameter, p.Name)
			}
		}
	}

	return nil
}

// Lookup returns the configuration of the named experiment.
func (c *Config) Lookup(name string) (ExperimentConfig, error) {
	idx := slices.IndexFunc(c.Experiments, func(e ExperimentConfig) bool { return e.Name == name })
	if idx == -1 {
		return ExperimentConfig{}, fmt.Errorf("%w: %s", experiment.ErrExperimentNotFound, name)
	}

	return c.Experiments[idx], nil
}

// Build validates the config, then creates a description for every configured experiment and
// registers it.
func (c *Config) Build(lggr logger.Logger) (*experiment.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	registry := experiment.NewRegistry(lggr)
	for _, exp := range c.Experiments {
		if err := registry.Add(c.describe(exp)); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// describe creates the description of exp with the defaults applied.
func (c *Config) describe(exp ExperimentConfig) *experiment.ExperimentDescription {
	desc := experiment.NewExperimentDescription(exp.Name)
	desc.SetModel(exp.Model)

	switch {
	case exp.OutputDirectory != "":
		desc.SetOutputDirectory(exp.OutputDirectory)
	case c.Defaults.OutputDirectory != "":
		desc.SetOutputDirectory(c.Defaults.OutputDirectory)
	}
	if exp.OutputFile != "" {
		desc.SetOutputFile(exp.OutputFile)
	}
	if exp.Steps > 0 {
		desc.SetSimulationSteps(uint(exp.Steps))
	}
	desc.SetRepeats(uint(pointer.ValueOr(exp.Repeats, experiment.DefaultRepeats)))

	return desc
}

// PlanOptions returns the run planning options of the named experiment.
func (c *Config) PlanOptions(name string) ([]experiment.PlanOption, error) {
	exp, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}

	params := make([]experiment.Parameter, 0, len(exp.Parameters))
	for _, p := range exp.Parameters {
		params = append(params, experiment.Parameter{Name: p.Name, Values: p.Values})
	}
	opts := []experiment.PlanOption{experiment.WithParameters(params...)}

	switch {
	case exp.Seed != nil:
		opts = append(opts, experiment.WithSeed(*exp.Seed))
	case c.Defaults.Seed != nil:
		opts = append(opts, experiment.WithSeed(*c.Defaults.Seed))
	}

	return opts, nil
}
