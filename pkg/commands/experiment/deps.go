// Package experiment provides CLI commands for validating and planning experiments.
package experiment

import (
	"github.com/flamegpu/experiment-framework/experiment/config"
	"github.com/flamegpu/experiment-framework/experiment/manifest"
)

// ConfigLoaderFunc loads and validates the experiments config file at path.
type ConfigLoaderFunc func(path string) (*config.Config, error)

// ManifestWriterFunc writes the manifest to path in the given format.
type ManifestWriterFunc func(m *manifest.Manifest, path string, format manifest.Format) error

// defaultManifestWriter writes the manifest to disk.
func defaultManifestWriter(m *manifest.Manifest, path string, format manifest.Format) error {
	return m.Write(path, format)
}

// Deps holds the injectable dependencies for experiment commands.
// All fields are optional; nil values will use production defaults.
type Deps struct {
	// ConfigLoader loads the experiments config.
	// Default: config.Load
	ConfigLoader ConfigLoaderFunc

	// ManifestWriter writes generated manifests.
	// Default: manifest.Manifest.Write
	ManifestWriter ManifestWriterFunc
}

// applyDefaults fills in nil dependencies with production defaults.
func (d *Deps) applyDefaults() {
	if d.ConfigLoader == nil {
		d.ConfigLoader = config.Load
	}
	if d.ManifestWriter == nil {
		d.ManifestWriter = defaultManifestWriter
	}
}
