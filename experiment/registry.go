package experiment

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/flamegpu/experiment-framework/pkg/logger"
)

// Registry holds the experiments of a project, keyed by name.
//
// The registry shares records with the descriptions added to it, so changes made through a
// handle after Add are visible here. Use Snapshot to obtain a registry that no handle can
// change.
type Registry struct {
	mu      sync.RWMutex
	lggr    logger.Logger
	records []*ExperimentData
}

// NewRegistry creates an empty Registry. A nil lggr discards log output.
func NewRegistry(lggr logger.Logger) *Registry {
	if lggr == nil {
		lggr = logger.Nop()
	}

	return &Registry{
		lggr:    lggr,
		records: []*ExperimentData{},
	}
}

// indexOf returns the index of the record equal to data, or -1 if no such record exists.
func (r *Registry) indexOf(data *ExperimentData) int {
	for i, record := range r.records {
		if record.Equals(data) {
			return i
		}
	}

	return -1
}

// indexOfName returns the index of the record named name, or -1 if no such record exists.
func (r *Registry) indexOfName(name string) int {
	return slices.IndexFunc(r.records, func(record *ExperimentData) bool {
		return record.Name() == name
	})
}

// Add registers the experiment described by desc.
// It returns ErrEmptyName for an unnamed description and ErrExperimentExists if an equal
// description was already added.
func (r *Registry) Add(desc *ExperimentDescription) error {
	if err := desc.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data := desc.data()
	if r.indexOf(data) != -1 {
		return fmt.Errorf("%w: %s", ErrExperimentExists, data.Name())
	}
	r.records = append(r.records, data)
	r.lggr.Debugw("Registered experiment", "name", data.Name())

	return nil
}

// Contains reports whether an experiment equal to desc is registered.
func (r *Registry) Contains(desc *ExperimentDescription) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(desc.data()) != -1
}

// Get returns a copy of the record of the named experiment.
func (r *Registry) Get(name string) (*ExperimentData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOfName(name)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrExperimentNotFound, name)
	}

	return r.records[idx].clone(), nil
}

// Remove unregisters the named experiment.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfName(name)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrExperimentNotFound, name)
	}
	r.records = slices.Delete(r.records, idx, idx+1)
	r.lggr.Debugw("Removed experiment", "name", name)

	return nil
}

// Fetch returns copies of all records, sorted by name.
func (r *Registry) Fetch() []*ExperimentData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*ExperimentData, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record.clone())
	}
	slices.SortFunc(records, func(a, b *ExperimentData) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return records
}

// Names returns the names of all registered experiments, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.records))
	for _, record := range r.records {
		names = append(names, record.Name())
	}
	slices.Sort(names)

	return names
}

// Len returns the number of registered experiments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

// Snapshot returns a new Registry holding copies of every record.
func (r *Registry) Snapshot() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*ExperimentData, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record.clone())
	}

	return &Registry{lggr: r.lggr, records: records}
}

// Plan expands the named experiment into run plans. The plan is built from a copy of the
// record, so concurrent changes through the experiment's handle do not affect it.
func (r *Registry) Plan(name string, opts ...PlanOption) (Plan, error) {
	data, err := r.Get(name)
	if err != nil {
		return Plan{}, err
	}
	if data.Repeats() == 0 {
		r.lggr.Warnw("Experiment has zero repeats, plan is empty", "name", name)
	}

	plan, err := newPlan(data, opts...)
	if err != nil {
		return Plan{}, err
	}
	r.lggr.Infow("Generated run plan",
		"experiment", plan.Experiment, "runs", len(plan.Runs), "seed", plan.Seed)

	return plan, nil
}
