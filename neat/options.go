// Package neat holds the configuration surface, logging, and error taxonomy
// shared by the genome/population engine in neat/genetics.
package neat

import "github.com/pkg/errors"

// Options is the full NEAT configuration surface. Every field corresponds to
// a row of the configuration table below.
type Options struct {
	// PopulationSize is the target genome count per generation.
	PopulationSize int `yaml:"population_size"`

	// CompatThreshold is the speciation cutoff of the compatibility metric.
	CompatThreshold float64 `yaml:"compat_threshold"`
	// CompatModifier is the adaptive adjustment step applied to
	// CompatThreshold when the number of species drifts away from
	// TargetSpeciesCount.
	CompatModifier float64 `yaml:"compat_modifier"`
	// TargetSpeciesCount, if non-zero, makes CompatThreshold self-adjust by
	// CompatModifier each generation to steer the species count towards it.
	TargetSpeciesCount int `yaml:"target_species_count"`

	// ExcessCoeff, DisjointCoeff and MutdiffCoeff are the three coefficients
	// of the compatibility distance formula.
	ExcessCoeff   float64 `yaml:"excess_coeff"`
	DisjointCoeff float64 `yaml:"disjoint_coeff"`
	MutdiffCoeff  float64 `yaml:"mutdiff_coeff"`
	// SmallGenomeThreshold is the gene-count below which the compatibility
	// formula treats N as 1 instead of max(|A|,|B|).
	SmallGenomeThreshold int `yaml:"small_genome_threshold"`

	// WeightMutateRate is the probability, per connection, of perturbing its
	// weight during weight mutation.
	WeightMutateRate float64 `yaml:"weight_mutate_rate"`
	// WeightMutatePower is the standard deviation of the Gaussian weight
	// perturbation.
	WeightMutatePower float64 `yaml:"weight_mutate_power"`
	// WeightReplaceRate is the probability, given a weight mutation fired,
	// that the weight is replaced outright rather than perturbed.
	WeightReplaceRate float64 `yaml:"weight_replace_rate"`

	// AddNodeProb and AddConnProb gate the two structural mutations.
	AddNodeProb float64 `yaml:"add_node_prob"`
	AddConnProb float64 `yaml:"add_conn_prob"`
	// NewConnTries bounds the attempts mutate-add-connection makes to find
	// an eligible, non-duplicate pair of nodes.
	NewConnTries int `yaml:"new_conn_tries"`

	// ToggleLinkRate and ActivationMutateRate gate the two secondary
	// mutations.
	ToggleLinkRate       float64 `yaml:"toggle_link_rate"`
	ActivationMutateRate float64 `yaml:"activation_mutate_rate"`

	// CrossoverRate is the probability an offspring is produced by crossover
	// rather than mutate-only cloning of a single parent.
	CrossoverRate float64 `yaml:"crossover_rate"`
	// InterspeciesMateRate is the probability the second parent is drawn
	// from a different species.
	InterspeciesMateRate float64 `yaml:"interspecies_mate_rate"`
	// DisableInheritedGeneRate is the probability a gene disabled in either
	// parent is inherited disabled in the child.
	DisableInheritedGeneRate float64 `yaml:"disable_inherited_gene_rate"`

	// SurvivalThreshold is the top fraction of each species eligible to
	// reproduce.
	SurvivalThreshold float64 `yaml:"survival_threshold"`
	// Elitism is the number of top genomes copied verbatim per species.
	Elitism int `yaml:"elitism"`
	// SpeciesElitism is the number of top species that are exempt from
	// stagnation culling regardless of their staleness.
	SpeciesElitism int `yaml:"species_elitism"`

	// StagnationThreshold is the number of generations without improvement
	// after which a species is culled (unless holding the global best).
	StagnationThreshold int `yaml:"stagnation_threshold"`

	// AllowRecurrent, when false, makes every structural mutation preserve
	// the feed-forward invariant (layer(in) < layer(out)).
	AllowRecurrent bool `yaml:"allow_recurrent"`

	// ReproductionRetryBudget bounds the number of times the reproduction
	// loop may top up a short next generation via top-performer duplication
	// before failing loudly with ErrEmptyPopulation.
	ReproductionRetryBudget int `yaml:"reproduction_retry_budget"`

	// NumRuns is the number of independent trials an experiment repeats,
	// each starting from a freshly seeded population.
	NumRuns int `yaml:"num_runs"`
	// NumGenerations is the maximum number of generations evaluated per
	// trial before giving up on finding a solution.
	NumGenerations int `yaml:"num_generations"`

	// LogLevel configures the package-level logger: one of "debug", "info",
	// "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultOptions returns configuration seeded from the constants recovered
// from original_source/include/config.h.
func DefaultOptions() *Options {
	return &Options{
		PopulationSize: 150,

		CompatThreshold:    3.0,
		CompatModifier:     0.3,
		TargetSpeciesCount: 0,

		ExcessCoeff:          1.0,
		DisjointCoeff:        1.0,
		MutdiffCoeff:         0.4,
		SmallGenomeThreshold: 20,

		WeightMutateRate:  0.8,
		WeightMutatePower: 2.5,
		WeightReplaceRate: 0.1,

		AddNodeProb:  0.03,
		AddConnProb:  0.05,
		NewConnTries: 20,

		ToggleLinkRate:       0.1,
		ActivationMutateRate: 0.1,

		CrossoverRate:            0.75,
		InterspeciesMateRate:     0.001,
		DisableInheritedGeneRate: 0.75,

		SurvivalThreshold: 0.2,
		Elitism:           1,
		SpeciesElitism:    1,

		StagnationThreshold: 15,

		AllowRecurrent: false,

		ReproductionRetryBudget: 25,

		NumRuns:        1,
		NumGenerations: 100,

		LogLevel: "info",
	}
}

// Validate enforces the "invalid configuration" error category: a population
// cannot be created from options that fail these checks.
func (o *Options) Validate() error {
	if o.PopulationSize <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "population_size must be positive")
	}
	if o.CompatThreshold <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "compat_threshold must be positive")
	}
	if o.SmallGenomeThreshold < 0 {
		return errors.Wrap(ErrInvalidConfiguration, "small_genome_threshold must be non-negative")
	}
	if o.WeightMutateRate < 0 || o.WeightMutateRate > 1 {
		return errors.Wrap(ErrInvalidConfiguration, "weight_mutate_rate must be in [0,1]")
	}
	if o.AddNodeProb < 0 || o.AddNodeProb > 1 {
		return errors.Wrap(ErrInvalidConfiguration, "add_node_prob must be in [0,1]")
	}
	if o.AddConnProb < 0 || o.AddConnProb > 1 {
		return errors.Wrap(ErrInvalidConfiguration, "add_conn_prob must be in [0,1]")
	}
	if o.CrossoverRate < 0 || o.CrossoverRate > 1 {
		return errors.Wrap(ErrInvalidConfiguration, "crossover_rate must be in [0,1]")
	}
	if o.SurvivalThreshold <= 0 || o.SurvivalThreshold > 1 {
		return errors.Wrap(ErrInvalidConfiguration, "survival_threshold must be in (0,1]")
	}
	if o.Elitism < 0 {
		return errors.Wrap(ErrInvalidConfiguration, "elitism must be non-negative")
	}
	if o.StagnationThreshold <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "stagnation_threshold must be positive")
	}
	if o.NewConnTries <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "new_conn_tries must be positive")
	}
	if o.ReproductionRetryBudget <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "reproduction_retry_budget must be positive")
	}
	if o.NumRuns <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "num_runs must be positive")
	}
	if o.NumGenerations <= 0 {
		return errors.Wrap(ErrInvalidConfiguration, "num_generations must be positive")
	}
	return nil
}
