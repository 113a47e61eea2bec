package experiment

// noCopy may be embedded into structs which must not be copied after first use.
// It is picked up by the copylocks checker of go vet.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ExperimentDescription is the handle a modeller creates to describe an experiment.
// It owns a shared ExperimentData record which holds the actual settings.
//
// An ExperimentDescription is a unique reference to one experiment and must not be copied;
// use the pointer returned by NewExperimentDescription. The zero value is not usable.
type ExperimentDescription struct {
	_ noCopy

	// self detects copies by value, see copyCheck.
	self *ExperimentDescription

	experiment *ExperimentData
}

// NewExperimentDescription creates a description with a new record named name.
// The name should be unique among the experiments of a Registry; this is checked when the
// description is added to one, not here.
func NewExperimentDescription(name string) *ExperimentDescription {
	d := &ExperimentDescription{experiment: newExperimentData(name)}
	d.self = d

	return d
}

// copyCheck panics when d was not created by NewExperimentDescription or is a copy of a handle.
func (d *ExperimentDescription) copyCheck() {
	if d.self == nil {
		panic("experiment: use of an uninitialised ExperimentDescription, use NewExperimentDescription")
	}
	if d.self != d {
		panic("experiment: illegal use of a copied ExperimentDescription")
	}
}

// data returns the record owned by d. Same-package collaborators use it to share the record.
func (d *ExperimentDescription) data() *ExperimentData {
	d.copyCheck()

	return d.experiment
}

// Name returns the experiment's name.
func (d *ExperimentDescription) Name() string {
	return d.data().Name()
}

// Equals checks whether two descriptions describe the same experiment.
// The records are compared, so two handles created with the same name are equal.
//
// NOTE: compare pointers instead if you wish to check that they are the same instance.
func (d *ExperimentDescription) Equals(other *ExperimentDescription) bool {
	if other == nil {
		return false
	}

	return d.data().Equals(other.data())
}

// NotEquals is the negation of Equals.
func (d *ExperimentDescription) NotEquals(other *ExperimentDescription) bool {
	return !d.Equals(other)
}

// Validate reports whether the description can be registered.
func (d *ExperimentDescription) Validate() error {
	if d.Name() == "" {
		return ErrEmptyName
	}

	return nil
}

// Model returns the name of the model the experiment runs.
func (d *ExperimentDescription) Model() string { return d.data().Model() }

// OutputDirectory returns the directory run outputs are written below.
func (d *ExperimentDescription) OutputDirectory() string { return d.data().OutputDirectory() }

// OutputFile returns the file name each run writes its results to.
func (d *ExperimentDescription) OutputFile() string { return d.data().OutputFile() }

// SimulationSteps returns the number of steps each run simulates.
func (d *ExperimentDescription) SimulationSteps() uint { return d.data().SimulationSteps() }

// Repeats returns how many times every parameter combination is run.
func (d *ExperimentDescription) Repeats() uint { return d.data().Repeats() }

// SetModel sets the name of the model the experiment runs.
func (d *ExperimentDescription) SetModel(model string) {
	d.data().update(func(r *ExperimentData) { r.model = model })
}

// SetOutputDirectory sets the directory run outputs are written below.
func (d *ExperimentDescription) SetOutputDirectory(dir string) {
	d.data().update(func(r *ExperimentData) { r.outputDirectory = dir })
}

// SetOutputFile sets the file name each run writes its results to.
func (d *ExperimentDescription) SetOutputFile(name string) {
	d.data().update(func(r *ExperimentData) { r.outputFile = name })
}

// SetSimulationSteps sets the number of steps each run simulates.
func (d *ExperimentDescription) SetSimulationSteps(steps uint) {
	d.data().update(func(r *ExperimentData) { r.simulationSteps = steps })
}

// SetRepeats sets how many times every parameter combination is run.
func (d *ExperimentDescription) SetRepeats(repeats uint) {
	d.data().update(func(r *ExperimentData) { r.repeats = repeats })
}
