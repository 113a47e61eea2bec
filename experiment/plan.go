package experiment

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"time"

	"github.com/segmentio/ksuid"
)

// MaxRuns is the largest number of runs a single plan may hold.
const MaxRuns = 1 << 20

// Parameter is a global parameter swept by an experiment. Every value is combined with every
// value of the other swept parameters.
type Parameter struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Values []any  `json:"values" yaml:"values" toml:"values"`
}

// RunPlan describes a single simulation run of an experiment.
type RunPlan struct {
	ID          string         `json:"id" yaml:"id" toml:"id"`
	Experiment  string         `json:"experiment" yaml:"experiment" toml:"experiment"`
	Model       string         `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	Repeat      int            `json:"repeat" yaml:"repeat" toml:"repeat"`
	Combination int            `json:"combination" yaml:"combination" toml:"combination"`
	Seed        int64          `json:"seed" yaml:"seed" toml:"seed"`
	Steps       uint           `json:"steps" yaml:"steps" toml:"steps"`
	OutputPath  string         `json:"outputPath" yaml:"outputPath" toml:"outputPath"`
	Parameters  map[string]any `json:"parameters" yaml:"parameters" toml:"parameters"`
}

// Plan is the full set of runs generated for an experiment.
// Runs are ordered by repeat first and parameter combination second.
type Plan struct {
	Experiment string    `json:"experiment" yaml:"experiment" toml:"experiment"`
	Model      string    `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	Seed       int64     `json:"seed" yaml:"seed" toml:"seed"`
	Runs       []RunPlan `json:"runs" yaml:"runs" toml:"runs"`
}

// PlanOption is a functional option for configuring run planning.
type PlanOption func(*planConfig)

type planConfig struct {
	params  []Parameter
	seed    int64
	hasSeed bool
}

// WithParameters sets the global parameters swept by the plan.
func WithParameters(params ...Parameter) PlanOption {
	return func(c *planConfig) {
		c.params = append(c.params, params...)
	}
}

// WithSeed sets the seed the per-run seeds are drawn from. Plans built with the same seed
// produce the same run seeds. Without it the seed is taken from the clock.
func WithSeed(seed int64) PlanOption {
	return func(c *planConfig) {
		c.seed = seed
		c.hasSeed = true
	}
}

// newPlan expands the record into runs. The record should be a snapshot that no handle mutates.
func newPlan(data *ExperimentData, opts ...PlanOption) (Plan, error) {
	cfg := planConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasSeed {
		cfg.seed = time.Now().UnixNano()
	}

	combinations, err := combine(cfg.params)
	if err != nil {
		return Plan{}, fmt.Errorf("experiment %s: %w", data.Name(), err)
	}

	repeats := data.Repeats()
	if repeats > uint(MaxRuns/len(combinations)) {
		return Plan{}, fmt.Errorf("experiment %s: %w: %d repeats of %d combinations exceed %d",
			data.Name(), ErrTooManyRuns, repeats, len(combinations), MaxRuns)
	}

	plan := Plan{
		Experiment: data.Name(),
		Model:      data.Model(),
		Seed:       cfg.seed,
		Runs:       make([]RunPlan, 0, int(repeats)*len(combinations)),
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.seed), 0))
	for repeat := range int(repeats) {
		for i, params := range combinations {
			plan.Runs = append(plan.Runs, RunPlan{
				ID:          newRunID(),
				Experiment:  data.Name(),
				Model:       data.Model(),
				Repeat:      repeat,
				Combination: i,
				Seed:        rng.Int64(),
				Steps:       data.SimulationSteps(),
				OutputPath:  runOutputPath(data, repeat, i),
				Parameters:  maps.Clone(params),
			})
		}
	}

	return plan, nil
}

// combine returns the cartesian product of the parameter values, the first parameter varying
// slowest. No parameters yield a single empty combination. Products above MaxRuns are rejected.
func combine(params []Parameter) ([]map[string]any, error) {
	seen := make(map[string]bool, len(params))
	total := 1
	for _, p := range params {
		if p.Name == "" {
			return nil, ErrEmptyParameterName
		}
		if len(p.Values) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyParameter, p.Name)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParameter, p.Name)
		}
		seen[p.Name] = true

		if len(p.Values) > MaxRuns/total {
			return nil, fmt.Errorf("%w: parameter combinations exceed %d", ErrTooManyRuns, MaxRuns)
		}
		total *= len(p.Values)
	}

	combinations := []map[string]any{{}}
	for _, p := range params {
		next := make([]map[string]any, 0, len(combinations)*len(p.Values))
		for _, c := range combinations {
			for _, v := range p.Values {
				combined := make(map[string]any, len(c)+1)
				maps.Copy(combined, c)
				combined[p.Name] = v
				next = append(next, combined)
			}
		}
		combinations = next
	}

	return combinations, nil
}

// runOutputPath returns <outputDirectory>/setup_<repeat>/<combination>/<outputFile>.
func runOutputPath(data *ExperimentData, repeat, combination int) string {
	return filepath.Join(
		data.OutputDirectory(),
		"setup_"+strconv.Itoa(repeat),
		strconv.Itoa(combination),
		data.OutputFile(),
	)
}

// newRunID generates a new run ID.
//
// This uses ksuid so that run IDs sort by creation time.
func newRunID() string {
	return "run_" + ksuid.New().String()
}
