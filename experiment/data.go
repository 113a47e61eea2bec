package experiment

import "sync"

// DefaultState is the state every agent and agent function of a model begins in.
const DefaultState = "default"

// Defaults applied to every new ExperimentData.
const (
	DefaultOutputDirectory = "experiment"
	DefaultOutputFile      = "log.csv"
	DefaultSimulationSteps = 1000
	DefaultRepeats         = 1
)

// ExperimentData is the internal data store for ExperimentDescription.
//
// Users should only mutate the data through an ExperimentDescription. A record may be shared
// by a handle and a Registry at the same time, so all settings are guarded by a lock. The name
// is assigned at construction and never changes.
type ExperimentData struct {
	// name must be unique among the experiments of a Registry.
	name string

	mu              sync.RWMutex
	model           string
	outputDirectory string
	outputFile      string
	simulationSteps uint
	repeats         uint
}

// newExperimentData creates a record with default settings.
// Only NewExperimentDescription should call it.
func newExperimentData(name string) *ExperimentData {
	return &ExperimentData{
		name:            name,
		outputDirectory: DefaultOutputDirectory,
		outputFile:      DefaultOutputFile,
		simulationSteps: DefaultSimulationSteps,
		repeats:         DefaultRepeats,
	}
}

// Name returns the experiment name.
func (d *ExperimentData) Name() string { return d.name }

// Model returns the name of the model the experiment runs.
func (d *ExperimentData) Model() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.model
}

// OutputDirectory returns the directory run outputs are written below.
func (d *ExperimentData) OutputDirectory() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.outputDirectory
}

// OutputFile returns the file name each run writes its results to.
func (d *ExperimentData) OutputFile() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.outputFile
}

// SimulationSteps returns the number of steps each run simulates.
func (d *ExperimentData) SimulationSteps() uint {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.simulationSteps
}

// Repeats returns how many times every parameter combination is run.
func (d *ExperimentData) Repeats() uint {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.repeats
}

// Equals checks whether two records describe the same experiment.
// Records are equal when they are the same record or when their names match.
//
// NOTE: compare pointers instead if you wish to check that they are the same instance.
func (d *ExperimentData) Equals(other *ExperimentData) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}

	return d.name == other.name
}

// NotEquals is the negation of Equals.
func (d *ExperimentData) NotEquals(other *ExperimentData) bool {
	return !d.Equals(other)
}

// update applies fn to the record while holding the write lock.
func (d *ExperimentData) update(fn func(d *ExperimentData)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn(d)
}

// clone returns an independent copy of the record.
// It should only be called by collaborators composing larger structures, e.g. Registry.Snapshot.
func (d *ExperimentData) clone() *ExperimentData {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return &ExperimentData{
		name:            d.name,
		model:           d.model,
		outputDirectory: d.outputDirectory,
		outputFile:      d.outputFile,
		simulationSteps: d.simulationSteps,
		repeats:         d.repeats,
	}
}
