// Package genetics implements the genome, innovation registry, species, and
// population that together make up the evolutionary engine.
package genetics

// FitnessFunc scores one genome. Implementations must not mutate the
// genome's structure and must not consume the population's RNG.
type FitnessFunc func(*Genome) (float64, error)
