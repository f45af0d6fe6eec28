// Package experiment runs repeated evolutionary trials of a population
// against a fitness function, and collects per-generation statistics for
// later comparison and export.
package experiment

import (
	"context"
	"math"
	"time"

	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/genetics"
)

// EmptyDuration is returned when an average duration cannot be estimated
// (an empty set of trials or generations).
const EmptyDuration = time.Duration(-1)

// GenerationEvaluator scores one generation's population within a given
// execution context, before the population turns over to its replacement.
type GenerationEvaluator interface {
	GenerationEvaluate(ctx context.Context, pop *genetics.Population, epoch *Generation) error
}

// TrialRunObserver is notified about a trial's lifecycle: start, each
// evaluated epoch, and finish. All methods are optional to implement
// meaningfully; a nil TrialRunObserver is never invoked.
type TrialRunObserver interface {
	TrialRunStarted(trial *Trial)
	TrialRunFinished(trial *Trial)
	EpochEvaluated(trial *Trial, epoch *Generation)
}

// genomeComplexity returns g's phenotype complexity, or math.MaxInt if g is
// nil or its phenotype could not be built.
func genomeComplexity(g *genetics.Genome) int {
	if g == nil {
		neat.WarnLog("cannot estimate complexity of a nil genome")
		return math.MaxInt
	}
	net, err := g.Phenotype()
	if err != nil {
		neat.WarnLog("failed to build phenotype for complexity: " + err.Error())
		return math.MaxInt
	}
	return net.Complexity()
}
