package neat

import "errors"

// Error taxonomy surfaced by the core engine. Allocation failure has no Go
// equivalent (the runtime panics rather than returning an error from a
// failed allocation) and so is not represented here.
var (
	// ErrInvalidConfiguration is returned when Options fails validation at
	// population creation time.
	ErrInvalidConfiguration = errors.New("neat: invalid configuration")

	// ErrInvalidInputArity is returned when Activate is called with an input
	// vector whose length does not match the genome's input arity.
	ErrInvalidInputArity = errors.New("neat: input vector arity mismatch")

	// ErrEmptyPopulation is fatal: it indicates runaway stagnation culling or
	// a misconfigured offspring allocation that could not be repaired by the
	// bounded retry budget.
	ErrEmptyPopulation = errors.New("neat: population is empty after reproduction")

	// ErrNoFitnessCallback is returned by EvolveOneGeneration when no fitness
	// callback has been registered on the population.
	ErrNoFitnessCallback = errors.New("neat: no fitness callback registered")
)
