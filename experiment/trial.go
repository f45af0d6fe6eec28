package experiment

import (
	"encoding/gob"
	"time"

	"github.com/arcevo/neat/neat/genetics"
)

// Trial holds the per-generation results of one independent run of an
// experiment, from a freshly seeded population to either a solution or
// exhausting its generation budget.
type Trial struct {
	// Id is the trial number within its experiment.
	Id int
	// Generations holds one entry per evaluated generation.
	Generations Generations
	// WinnerGeneration is the generation in which a solution was found, or
	// nil if none was.
	WinnerGeneration *Generation

	// Duration is the elapsed wall-clock time of the whole trial.
	Duration time.Duration
}

// AvgEpochDuration returns the mean generation duration across this trial.
func (t *Trial) AvgEpochDuration() time.Duration {
	if len(t.Generations) == 0 {
		return EmptyDuration
	}
	total := time.Duration(0)
	for _, g := range t.Generations {
		total += g.Duration
	}
	return total / time.Duration(len(t.Generations))
}

// RecentEpochEvalTime returns the most recent generation's execution time.
func (t *Trial) RecentEpochEvalTime() time.Time {
	var u time.Time
	for _, g := range t.Generations {
		if u.Before(g.Executed) {
			u = g.Executed
		}
	}
	return u
}

// BestGenome finds the most fit genome among all generations in this trial.
// When onlySolvers is true, only generations that solved the experiment are
// considered.
func (t *Trial) BestGenome(onlySolvers bool) (*genetics.Genome, bool) {
	var best *genetics.Genome
	for i := range t.Generations {
		g := &t.Generations[i]
		if onlySolvers && !g.Solved {
			continue
		}
		if g.Best == nil {
			continue
		}
		if best == nil || g.Best.Fitness > best.Fitness {
			best = g.Best
		}
	}
	return best, best != nil
}

// Solved reports whether any generation in this trial found a solution.
func (t *Trial) Solved() bool {
	for _, g := range t.Generations {
		if g.Solved {
			return true
		}
	}
	return false
}

// BestFitness returns the best genome's fitness for each generation.
func (t *Trial) BestFitness() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		if g.Best != nil {
			x[i] = g.Best.Fitness
		}
	}
	return x
}

// BestAge returns, for each generation, the age of the first species listed
// in its Age series, which is not necessarily the best genome's species.
func (t *Trial) BestAge() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		if len(g.Age) > 0 {
			x[i] = g.Age[0]
		}
	}
	return x
}

// BestComplexity returns the best genome's phenotype complexity for each
// generation.
func (t *Trial) BestComplexity() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		x[i] = float64(genomeComplexity(g.Best))
	}
	return x
}

// Diversity returns the species count for each generation.
func (t *Trial) Diversity() Floats {
	x := make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		x[i] = float64(g.Diversity)
	}
	return x
}

// Average returns the per-generation mean fitness, age, and complexity
// series across this trial.
func (t *Trial) Average() (fitness, age, complexity Floats) {
	fitness = make(Floats, len(t.Generations))
	age = make(Floats, len(t.Generations))
	complexity = make(Floats, len(t.Generations))
	for i, g := range t.Generations {
		fitness[i], age[i], complexity[i] = g.Average()
	}
	return fitness, age, complexity
}

// Winner returns the node count, gene count, evaluation count, and species
// diversity of the solving genome, locating and caching the winning
// generation if not already known.
func (t *Trial) Winner() (nodes, genes, evals, diversity int) {
	if t.WinnerGeneration == nil {
		for i := range t.Generations {
			if t.Generations[i].Solved {
				t.WinnerGeneration = &t.Generations[i]
				break
			}
		}
	}
	if t.WinnerGeneration == nil {
		return 0, 0, 0, 0
	}
	w := t.WinnerGeneration
	return w.WinnerNodes, w.WinnerGenes, w.WinnerEvals, w.Diversity
}

// Encode writes t with the given GOB encoder.
func (t *Trial) Encode(enc *gob.Encoder) error {
	if err := enc.Encode(t.Id); err != nil {
		return err
	}
	if err := enc.Encode(len(t.Generations)); err != nil {
		return err
	}
	for i := range t.Generations {
		if err := t.Generations[i].Encode(enc); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads t from the given GOB decoder.
func (t *Trial) Decode(dec *gob.Decoder) error {
	if err := dec.Decode(&t.Id); err != nil {
		return err
	}
	var n int
	if err := dec.Decode(&n); err != nil {
		return err
	}
	t.Generations = make(Generations, n)
	for i := 0; i < n; i++ {
		if err := t.Generations[i].Decode(dec); err != nil {
			return err
		}
	}
	return nil
}

// Trials is a sortable collection of trials, ordered by most recent
// evaluation time and then by id.
type Trials []Trial

func (ts Trials) Len() int      { return len(ts) }
func (ts Trials) Swap(i, j int) { ts[i], ts[j] = ts[j], ts[i] }
func (ts Trials) Less(i, j int) bool {
	ui, uj := ts[i].RecentEpochEvalTime(), ts[j].RecentEpochEvalTime()
	if ui.Equal(uj) {
		return ts[i].Id < ts[j].Id
	}
	return ui.Before(uj)
}
