package experiment

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/pkg/errors"

	"github.com/arcevo/neat/neat/genetics"
)

// Generation holds the results of evaluating one generation of a population.
type Generation struct {
	// Id is the generation number within its trial.
	Id int
	// Executed is the time this generation's evaluation completed.
	Executed time.Time
	// Duration is the elapsed time between evaluation start and finish; it
	// does not include the subsequent reproduction turnover.
	Duration time.Duration
	// Best is the highest-fitness genome found in this generation.
	Best *genetics.Genome
	// Solved reports whether the fitness function's stopping criterion was
	// met in this generation.
	Solved bool

	// Fitness, Age and Complexity hold one value per species: the best
	// member's raw fitness, the species' age, and the best member's
	// phenotype complexity.
	Fitness    Floats
	Age        Floats
	Complexity Floats

	// Diversity is the number of species present at the end of this epoch.
	Diversity int

	// WinnerEvals, WinnerNodes and WinnerGenes describe the solving genome,
	// set only when Solved.
	WinnerEvals int
	WinnerNodes int
	WinnerGenes int

	// TrialId is the id of the trial this generation belongs to.
	TrialId int
}

// FillPopulationStatistics collects per-species statistics from pop and
// records the best genome found, unless Solved was already set by the
// fitness evaluator (in which case Best was already assigned to the
// solution).
func (g *Generation) FillPopulationStatistics(pop *genetics.Population) {
	g.Diversity = len(pop.Species)
	g.Age = make(Floats, g.Diversity)
	g.Complexity = make(Floats, g.Diversity)
	g.Fitness = make(Floats, g.Diversity)

	bestFitness := float64(-1)
	for i, sp := range pop.Species {
		sp.SortMembersByFitness()
		g.Age[i] = float64(sp.Age)
		g.Complexity[i] = float64(genomeComplexity(sp.Members[0]))
		g.Fitness[i] = sp.Members[0].Fitness

		if !g.Solved && sp.Members[0].Fitness > bestFitness {
			bestFitness = sp.Members[0].Fitness
			g.Best = sp.Members[0]
		}
	}
}

// Average returns the mean fitness, age, and complexity across species in
// this generation.
func (g *Generation) Average() (fitness, age, complexity float64) {
	return g.Fitness.Mean(), g.Age.Mean(), g.Complexity.Mean()
}

// Encode writes g with the given GOB encoder.
func (g *Generation) Encode(enc *gob.Encoder) error {
	if err := enc.Encode(g.Id); err != nil {
		return err
	}
	if err := enc.Encode(g.Executed); err != nil {
		return err
	}
	if err := enc.Encode(g.Solved); err != nil {
		return err
	}
	if err := enc.Encode([]float64(g.Fitness)); err != nil {
		return err
	}
	if err := enc.Encode([]float64(g.Age)); err != nil {
		return err
	}
	if err := enc.Encode([]float64(g.Complexity)); err != nil {
		return err
	}
	if err := enc.Encode(g.Diversity); err != nil {
		return err
	}
	if err := enc.Encode(g.WinnerEvals); err != nil {
		return err
	}
	if err := enc.Encode(g.WinnerNodes); err != nil {
		return err
	}
	if err := enc.Encode(g.WinnerGenes); err != nil {
		return err
	}

	hasBest := g.Best != nil
	if err := enc.Encode(hasBest); err != nil {
		return err
	}
	if hasBest {
		var buf bytes.Buffer
		if err := genetics.WriteGenomeText(&buf, g.Best); err != nil {
			return errors.Wrap(err, "failed to encode generation's best genome")
		}
		if err := enc.Encode(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads g from the given GOB decoder.
func (g *Generation) Decode(dec *gob.Decoder) error {
	if err := dec.Decode(&g.Id); err != nil {
		return errors.Wrap(err, "failed to decode Id")
	}
	if err := dec.Decode(&g.Executed); err != nil {
		return errors.Wrap(err, "failed to decode Executed")
	}
	if err := dec.Decode(&g.Solved); err != nil {
		return errors.Wrap(err, "failed to decode Solved")
	}
	var fitness, age, complexity []float64
	if err := dec.Decode(&fitness); err != nil {
		return errors.Wrap(err, "failed to decode Fitness")
	}
	if err := dec.Decode(&age); err != nil {
		return errors.Wrap(err, "failed to decode Age")
	}
	if err := dec.Decode(&complexity); err != nil {
		return errors.Wrap(err, "failed to decode Complexity")
	}
	g.Fitness, g.Age, g.Complexity = fitness, age, complexity
	if err := dec.Decode(&g.Diversity); err != nil {
		return errors.Wrap(err, "failed to decode Diversity")
	}
	if err := dec.Decode(&g.WinnerEvals); err != nil {
		return errors.Wrap(err, "failed to decode WinnerEvals")
	}
	if err := dec.Decode(&g.WinnerNodes); err != nil {
		return errors.Wrap(err, "failed to decode WinnerNodes")
	}
	if err := dec.Decode(&g.WinnerGenes); err != nil {
		return errors.Wrap(err, "failed to decode WinnerGenes")
	}

	var hasBest bool
	if err := dec.Decode(&hasBest); err != nil {
		return errors.Wrap(err, "failed to decode hasBest flag")
	}
	if hasBest {
		var data []byte
		if err := dec.Decode(&data); err != nil {
			return errors.Wrap(err, "failed to decode best genome bytes")
		}
		best, err := genetics.ReadGenomeText(bytes.NewReader(data))
		if err != nil {
			return errors.Wrap(err, "failed to parse best genome")
		}
		g.Best = best
	}
	return nil
}

// Generations is a sortable collection of generations, ordered by execution
// time and then by id.
type Generations []Generation

func (gs Generations) Len() int      { return len(gs) }
func (gs Generations) Swap(i, j int) { gs[i], gs[j] = gs[j], gs[i] }
func (gs Generations) Less(i, j int) bool {
	if gs[i].Executed.Equal(gs[j].Executed) {
		return gs[i].Id < gs[j].Id
	}
	return gs[i].Executed.Before(gs[j].Executed)
}
