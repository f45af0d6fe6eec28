package genetics

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/activation"
	neatrand "github.com/arcevo/neat/neat/rand"
)

// Population is a generation's worth of genomes, partitioned into species,
// plus the shared innovation registry and RNG that give successive
// generations deterministic, reproducible evolution under a fixed seed.
type Population struct {
	Genomes []*Genome
	Species []*Species

	// Generation is the number of completed AdvanceGeneration calls (each
	// EvolveOneGeneration call makes one).
	Generation int
	// BestFitnessEver is the best raw fitness observed across every genome
	// this population has ever evaluated.
	BestFitnessEver float64

	opts     *neat.Options
	rng      *neatrand.RNG
	registry *InnovationRegistry
	fitness  FitnessFunc

	nextGenomeId int64
}

// NewPopulation builds the initial generation: a minimal fully-connected
// template genome (inputArity inputs, outputArity outputs, one bias node)
// plus opts.PopulationSize-1 clones of it. Each clone is independently
// weight-mutated so the starting population is not degenerately identical;
// the template itself keeps its all-zero weights.
func NewPopulation(opts *neat.Options, seed int64, inputArity, outputArity int, outputActivation activation.Type) (*Population, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := neatrand.NewRNG(seed)
	registry := NewInnovationRegistry(int64(inputArity+outputArity+2), 1)

	template := NewTemplateGenome(0, inputArity, outputArity, registry, outputActivation)

	p := &Population{
		opts:         opts,
		rng:          rng,
		registry:     registry,
		nextGenomeId: 1,
	}
	p.Genomes = append(p.Genomes, template)
	for i := 1; i < opts.PopulationSize; i++ {
		clone := template.Clone(p.nextGenomeId)
		p.nextGenomeId++
		MutateWeights(clone, opts, rng)
		p.Genomes = append(p.Genomes, clone)
	}
	registry.ClearGeneration()

	p.speciate()
	return p, nil
}

// SetFitnessCallback registers the function used to score every genome
// during EvolveOneGeneration.
func (p *Population) SetFitnessCallback(fn FitnessFunc) {
	p.fitness = fn
}

// BestGenome returns the highest-fitness genome in the current generation,
// or nil if the population is empty.
func (p *Population) BestGenome() *Genome {
	var best *Genome
	for _, g := range p.Genomes {
		if best == nil || g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}

// EvaluateFitness scores every genome via the registered fitness callback
// (through evaluator, which may run sequentially or in parallel) and applies
// fitness sharing and staleness bookkeeping to the current species
// partition. It returns neat.ErrNoFitnessCallback if no callback was
// registered. Callers that need per-generation statistics (diversity, best
// genome, species ages) before the population turns over — as
// experiment.Experiment does — call EvaluateFitness and inspect p.Genomes/
// p.Species, then call AdvanceGeneration separately.
func (p *Population) EvaluateFitness(ctx context.Context, evaluator FitnessEvaluator) error {
	if p.fitness == nil {
		return neat.ErrNoFitnessCallback
	}

	if err := evaluator.Evaluate(ctx, p.Genomes, p.fitness); err != nil {
		return err
	}

	for _, g := range p.Genomes {
		if g.Fitness > p.BestFitnessEver {
			p.BestFitnessEver = g.Fitness
		}
	}

	for _, sp := range p.Species {
		sp.AdjustFitness()
		sp.UpdateStaleness()
	}
	return nil
}

// AdvanceGeneration reproduces the current (already fitness-evaluated)
// population into its replacement, re-speciates it, and advances the
// generation counter.
func (p *Population) AdvanceGeneration() error {
	offspring, err := p.reproduce()
	if err != nil {
		return err
	}

	p.Genomes = offspring
	p.registry.ClearGeneration()
	p.speciate()
	p.Generation++
	neat.InfoLog(fmt.Sprintf("POPULATION: generation %d complete, species: %d, best fitness ever: %.4f",
		p.Generation, len(p.Species), p.BestFitnessEver))
	return nil
}

// EvolveOneGeneration composes EvaluateFitness and AdvanceGeneration for
// callers that don't need access to pre-turnover generation statistics.
func (p *Population) EvolveOneGeneration(ctx context.Context, evaluator FitnessEvaluator) error {
	if err := p.EvaluateFitness(ctx, evaluator); err != nil {
		return err
	}
	return p.AdvanceGeneration()
}

// speciate partitions p.Genomes into p.Species by compatibility distance
// against each species' representative, creating new species as needed and
// dropping any species left empty by the partition.
func (p *Population) speciate() {
	for _, sp := range p.Species {
		sp.Members = nil
	}

	for _, g := range p.Genomes {
		placed := false
		for _, sp := range p.Species {
			if g.Compatibility(sp.Representative, p.opts) < p.opts.CompatThreshold {
				sp.AddMember(g)
				placed = true
				break
			}
		}
		if !placed {
			sp := NewSpecies(p.registry.NextSpeciesId(), g)
			g.SpeciesId = sp.Id
			p.Species = append(p.Species, sp)
		}
	}

	remaining := p.Species[:0]
	for _, sp := range p.Species {
		if !sp.IsEmpty() {
			remaining = append(remaining, sp)
		}
	}
	p.Species = remaining

	if p.opts.TargetSpeciesCount > 0 {
		switch {
		case len(p.Species) < p.opts.TargetSpeciesCount:
			p.opts.CompatThreshold -= p.opts.CompatModifier
		case len(p.Species) > p.opts.TargetSpeciesCount:
			p.opts.CompatThreshold += p.opts.CompatModifier
		}
		if p.opts.CompatThreshold < p.opts.CompatModifier {
			p.opts.CompatThreshold = p.opts.CompatModifier
		}
	}
}

// reproduce allocates offspring counts proportionally to each species'
// total adjusted fitness, then fills each species' quota by crossover (with
// probability opts.CrossoverRate) or mutate-only cloning of a single
// survivor, preserving opts.Elitism top genomes verbatim per species and
// skipping reproduction entirely for species that have stagnated past
// opts.StagnationThreshold (unless they hold the global best genome, or are
// within the top opts.SpeciesElitism species by best-ever fitness).
func (p *Population) reproduce() ([]*Genome, error) {
	bestEver := p.BestFitnessEver

	eligible := make([]*Species, 0, len(p.Species))
	sortedByBest := append([]*Species(nil), p.Species...)
	sort.Slice(sortedByBest, func(i, j int) bool { return sortedByBest[i].BestFitnessEver > sortedByBest[j].BestFitnessEver })
	protected := make(map[int64]bool)
	for i, sp := range sortedByBest {
		if i < p.opts.SpeciesElitism {
			protected[sp.Id] = true
		}
	}

	totalAdjusted := 0.0
	for _, sp := range p.Species {
		sp.SortMembersByFitness()
		holdsBest := len(sp.Members) > 0 && sp.Members[0].Fitness >= bestEver
		if sp.IsStagnant(p.opts.StagnationThreshold) && !holdsBest && !protected[sp.Id] {
			continue
		}
		eligible = append(eligible, sp)
		totalAdjusted += sp.TotalAdjustedFitness()
	}
	if len(eligible) == 0 {
		return nil, errors.Wrap(neat.ErrEmptyPopulation, "every species stagnated")
	}

	offspring := make([]*Genome, 0, p.opts.PopulationSize)
	for _, sp := range eligible {
		share := 0.0
		if totalAdjusted > 0 {
			share = sp.TotalAdjustedFitness() / totalAdjusted
		} else {
			share = 1.0 / float64(len(eligible))
		}
		sp.ExpectedOffspring = int(share*float64(p.opts.PopulationSize) + 0.5)

		survivors := sp.Survivors(p.opts)
		for i := 0; i < sp.ExpectedOffspring && i < p.opts.Elitism && i < len(sp.Members); i++ {
			elite := sp.Members[i].Clone(p.nextGenomeId)
			elite.SpeciesId = sp.Id
			p.nextGenomeId++
			offspring = append(offspring, elite)
		}
		for len(offspring) < cap(offspring) && p.countSpeciesOffspring(offspring, sp) < sp.ExpectedOffspring {
			child := p.spawnChild(sp, survivors)
			child.SpeciesId = sp.Id
			offspring = append(offspring, child)
		}
	}

	budget := p.opts.ReproductionRetryBudget
	for len(offspring) < p.opts.PopulationSize && budget > 0 {
		best := p.BestGenome()
		if best == nil {
			return nil, errors.Wrap(neat.ErrEmptyPopulation, "no genome available to top up short generation")
		}
		offspring = append(offspring, best.Clone(p.nextGenomeId))
		p.nextGenomeId++
		budget--
	}
	if len(offspring) < p.opts.PopulationSize {
		return nil, errors.Wrap(neat.ErrEmptyPopulation, "reproduction retry budget exhausted")
	}
	if len(offspring) > p.opts.PopulationSize {
		offspring = offspring[:p.opts.PopulationSize]
	}

	return offspring, nil
}

// countSpeciesOffspring counts how many entries appended to offspring so far
// belong to species sp.
func (p *Population) countSpeciesOffspring(offspring []*Genome, sp *Species) int {
	count := 0
	for _, g := range offspring {
		if g.SpeciesId == sp.Id {
			count++
		}
	}
	return count
}

// tournamentSize is the number of candidates drawn per tournament selection
// round; the highest-fitness draw wins.
const tournamentSize = 3

// spawnChild produces one offspring genome for sp, by crossover between two
// tournament-selected parents (the second drawn from another species with
// probability opts.InterspeciesMateRate) or by mutate-only cloning of a
// single tournament winner.
func (p *Population) spawnChild(sp *Species, survivors []*Genome) *Genome {
	parentA := p.tournamentSelect(survivors, nil)

	var child *Genome
	if p.rng.Bool(p.opts.CrossoverRate) && len(survivors) > 0 {
		parentB := p.pickSecondParent(sp, survivors, parentA)
		fitter, other := parentA, parentB
		if other.Fitness > fitter.Fitness {
			fitter, other = other, fitter
		}
		child = Crossover(p.nextGenomeId, fitter, other, p.opts, p.rng)
	} else {
		child = parentA.Clone(p.nextGenomeId)
	}
	p.nextGenomeId++

	Mutate(child, p.opts, p.rng, p.registry)
	return child
}

// pickSecondParent returns a mate for crossover: with probability
// opts.InterspeciesMateRate, a tournament winner from a different species;
// otherwise a tournament winner from sp itself, distinct from exclude where
// possible.
func (p *Population) pickSecondParent(sp *Species, survivors []*Genome, exclude *Genome) *Genome {
	if p.rng.Bool(p.opts.InterspeciesMateRate) && len(p.Species) > 1 {
		var others []*Species
		for _, other := range p.Species {
			if other.Id != sp.Id && len(other.Members) > 0 {
				others = append(others, other)
			}
		}
		if len(others) > 0 {
			other := others[p.rng.IntN(len(others))]
			return p.tournamentSelect(other.Members, nil)
		}
	}
	return p.tournamentSelect(survivors, exclude)
}

// tournamentSelect draws tournamentSize candidates uniformly at random from
// candidates (via a uniformly weighted roulette throw) and keeps the
// highest-fitness draw, skipping avoid where another candidate is
// available. Falls back to the first eligible candidate if every draw is
// empty or excluded.
func (p *Population) tournamentSelect(candidates []*Genome, avoid *Genome) *Genome {
	if len(candidates) == 0 {
		return nil
	}

	weights := make([]float64, len(candidates))
	for i := range weights {
		weights[i] = 1.0
	}

	var best *Genome
	for i := 0; i < tournamentSize; i++ {
		idx := p.rng.RouletteThrow(weights)
		if idx < 0 {
			continue
		}
		candidate := candidates[idx]
		if candidate == avoid {
			continue
		}
		if best == nil || candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	if best != nil {
		return best
	}
	for _, c := range candidates {
		if c != avoid {
			return c
		}
	}
	return candidates[0]
}
