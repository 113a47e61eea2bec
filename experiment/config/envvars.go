package config

import (
	"slices"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that can provide their value.
// Viper checks each listed variable in order and uses the first one that is set.
var envBindings = map[string][]string{
	"defaults.output_directory": {"EXPERIMENTS_OUTPUT_DIRECTORY"},
	"defaults.seed":             {"EXPERIMENTS_SEED"},
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// Prepend the config key to the start of the arguments
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
