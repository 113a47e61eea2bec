package experiment

import "errors"

// Errors returned when registering and looking up experiments.
var (
	ErrEmptyName          = errors.New("experiment name must not be empty")
	ErrExperimentNotFound = errors.New("no experiment can be found for the provided name")
	ErrExperimentExists   = errors.New("an experiment with the supplied name already exists")

	// Errors returned when expanding an experiment into runs.
	ErrEmptyParameterName = errors.New("parameter name must not be empty")
	ErrEmptyParameter     = errors.New("parameter must have at least one value")
	ErrDuplicateParameter = errors.New("parameter is swept more than once")
	ErrTooManyRuns        = errors.New("experiment expands into too many runs")
)
