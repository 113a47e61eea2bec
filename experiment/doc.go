/*
Package experiment describes FLAME GPU experiments and plans their runs.

# Descriptions and data

An experiment is identified by a name that is unique among the experiments of a registry.
Users interact with an experiment through an ExperimentDescription, a handle that owns a
shared ExperimentData record:

	desc := experiment.NewExperimentDescription("predator_prey")
	desc.SetSimulationSteps(500)
	desc.SetRepeats(10)

Handles must not be copied. Always pass the *ExperimentDescription returned by
NewExperimentDescription; every method panics when it is called on a copy.

Two descriptions are equal when their records are equal, and records are equal when they
are the same record or carry the same name:

	a := experiment.NewExperimentDescription("predator_prey")
	b := experiment.NewExperimentDescription("predator_prey")
	a.Equals(b) // true

Only the handle and the collaborators of this package (Registry and the run planner) can
mutate or clone a record. Everyone else reads records through their accessors.

# Registry

A Registry holds the records of many descriptions, keyed by name. Adding a description
shares its record with the registry, so later changes made through the handle are visible to
the registry. Empty and duplicate names are rejected at this layer.

# Run plans

Registry.Plan expands an experiment into concrete runs: the cartesian product of the swept
parameter values, repeated Repeats times, each run with its own seed and output path.

	plan, err := registry.Plan("predator_prey",
		experiment.WithSeed(42),
		experiment.WithParameters(experiment.Parameter{Name: "prey_count", Values: []any{50, 100}}),
	)
*/
package experiment
