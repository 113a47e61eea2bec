// Package manifest records generated run plans in a file, so that a set of runs can be
// reproduced and their outputs located after the fact.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/suzuki-shunsuke/go-convmap/convmap"
	"gopkg.in/yaml.v3"

	"github.com/flamegpu/experiment-framework/experiment"
)

// Format is the encoding of a manifest file.
type Format string

// Supported manifest formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for a format name or file extension that has no encoder.
var ErrUnknownFormat = errors.New("unknown manifest format")

// ParseFormat returns the Format with the given name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// FormatFromPath returns the Format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}

	return ParseFormat(ext)
}

// Manifest is the record of the plans generated in one invocation.
type Manifest struct {
	ID          string            `json:"id" yaml:"id" toml:"id"`
	GeneratedAt time.Time         `json:"generatedAt" yaml:"generatedAt" toml:"generatedAt"`
	Plans       []experiment.Plan `json:"plans" yaml:"plans" toml:"plans"`
}

// New creates a Manifest holding plans.
func New(plans ...experiment.Plan) *Manifest {
	return &Manifest{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Plans:       plans,
	}
}

// Runs returns the total number of runs across all plans.
func (m *Manifest) Runs() int {
	n := 0
	for _, p := range m.Plans {
		n += len(p.Runs)
	}

	return n
}

// Encode serialises the manifest in the given format.
func (m *Manifest) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		safe, err := m.jsonSafe()
		if err != nil {
			return nil, err
		}

		return json.MarshalIndent(safe, "", "  ")
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatTOML:
		return toml.Marshal(m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// jsonSafe returns a copy of the manifest whose parameter values can be encoded as JSON.
// Values decoded from YAML may hold map[any]any, which encoding/json rejects.
func (m *Manifest) jsonSafe() (*Manifest, error) {
	safe := &Manifest{
		ID:          m.ID,
		GeneratedAt: m.GeneratedAt,
		Plans:       make([]experiment.Plan, 0, len(m.Plans)),
	}
	for _, p := range m.Plans {
		runs := make([]experiment.RunPlan, 0, len(p.Runs))
		for _, run := range p.Runs {
			params := make(map[string]any, len(run.Parameters))
			for k, v := range run.Parameters {
				converted, err := convmap.Convert(v, nil)
				if err != nil {
					return nil, fmt.Errorf("convert parameter %s of run %s: %w", k, run.ID, err)
				}
				params[k] = converted
			}
			run.Parameters = params
			runs = append(runs, run)
		}
		p.Runs = runs
		safe.Plans = append(safe.Plans, p)
	}

	return safe, nil
}

// Write encodes the manifest and writes it to path, creating parent directories as needed.
func (m *Manifest) Write(path string, format Format) error {
	b, err := m.Encode(format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	return os.WriteFile(path, b, 0o600)
}
