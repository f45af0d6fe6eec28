package experiment

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"

	"github.com/arcevo/neat/neat/genetics"
)

// Experiment is a named collection of trials, useful for comparing the
// outcome of repeated evolutionary runs against the same fitness function.
type Experiment struct {
	Id       int
	Name     string
	RandSeed int64
	Trials

	// MaxFitnessScore, if set, normalizes the fitness term of
	// EfficiencyScore against this ceiling.
	MaxFitnessScore float64
}

// AvgTrialDuration returns the mean wall-clock duration across trials.
func (e *Experiment) AvgTrialDuration() time.Duration {
	if len(e.Trials) == 0 {
		return EmptyDuration
	}
	total := time.Duration(0)
	for _, t := range e.Trials {
		total += t.Duration
	}
	return total / time.Duration(len(e.Trials))
}

// AvgEpochDuration returns the mean generation duration across all trials.
func (e *Experiment) AvgEpochDuration() time.Duration {
	if len(e.Trials) == 0 {
		return EmptyDuration
	}
	total := time.Duration(0)
	for _, t := range e.Trials {
		total += t.AvgEpochDuration()
	}
	return total / time.Duration(len(e.Trials))
}

// AvgGenerationsPerTrial returns the mean number of generations evaluated
// per trial; fewer generations indicates faster convergence to a solution.
func (e *Experiment) AvgGenerationsPerTrial() float64 {
	if len(e.Trials) == 0 {
		return 0
	}
	total := 0.0
	for _, t := range e.Trials {
		total += float64(len(t.Generations))
	}
	return total / float64(len(e.Trials))
}

// MostRecentTrialEvalTime returns the evaluation time of the most recently
// completed trial.
func (e *Experiment) MostRecentTrialEvalTime() time.Time {
	var u time.Time
	for _, t := range e.Trials {
		ut := t.RecentEpochEvalTime()
		if u.Before(ut) {
			u = ut
		}
	}
	return u
}

// BestGenome finds the most fit genome among all trials, optionally
// restricted to trials that solved the experiment. It also returns the id
// of the trial it was found in.
func (e *Experiment) BestGenome(onlySolvers bool) (*genetics.Genome, int, bool) {
	var best *genetics.Genome
	bestTrial := -1
	for i, t := range e.Trials {
		g, found := t.BestGenome(onlySolvers)
		if !found {
			continue
		}
		if best == nil || g.Fitness > best.Fitness {
			best, bestTrial = g, i
		}
	}
	return best, bestTrial, best != nil
}

// Solved reports whether at least one trial found a solution.
func (e *Experiment) Solved() bool {
	for _, t := range e.Trials {
		if t.Solved() {
			return true
		}
	}
	return false
}

// BestFitness returns the best genome's fitness for each trial.
func (e *Experiment) BestFitness() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		if g, ok := t.BestGenome(false); ok {
			x[i] = g.Fitness
		}
	}
	return x
}

// Diversity returns the mean species count for each trial.
func (e *Experiment) Diversity() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		x[i] = t.Diversity().Mean()
	}
	return x
}

// EpochsPerTrial returns the number of evaluated generations for each trial.
func (e *Experiment) EpochsPerTrial() Floats {
	x := make(Floats, len(e.Trials))
	for i, t := range e.Trials {
		x[i] = float64(len(t.Generations))
	}
	return x
}

// TrialsSolved returns the number of trials that found a solution.
func (e *Experiment) TrialsSolved() int {
	count := 0
	for _, t := range e.Trials {
		if t.Solved() {
			count++
		}
	}
	return count
}

// SuccessRate returns the fraction of trials that found a solution.
func (e *Experiment) SuccessRate() float64 {
	if len(e.Trials) == 0 {
		return 0
	}
	return float64(e.TrialsSolved()) / float64(len(e.Trials))
}

// AvgWinner returns the average node count, gene count, evaluation count,
// and species diversity of the solving genomes, among trials that solved.
func (e *Experiment) AvgWinner() (avgNodes, avgGenes, avgEvals, avgDiversity float64) {
	var totalNodes, totalGenes, totalEvals, totalDiversity, count int
	for i := range e.Trials {
		if !e.Trials[i].Solved() {
			continue
		}
		nodes, genes, evals, diversity := e.Trials[i].Winner()
		totalNodes += nodes
		totalGenes += genes
		totalEvals += evals
		totalDiversity += diversity
		count++
	}
	if count == 0 {
		return 0, 0, 0, 0
	}
	return float64(totalNodes) / float64(count), float64(totalGenes) / float64(count),
		float64(totalEvals) / float64(count), float64(totalDiversity) / float64(count)
}

// EfficiencyScore rewards solutions found quickly, in few generations, with
// low complexity, high fitness, and a high trial success rate.
func (e *Experiment) EfficiencyScore() float64 {
	meanComplexity, meanFitness := 0.0, 0.0
	if len(e.Trials) > 1 {
		count := 0.0
		for i := range e.Trials {
			t := &e.Trials[i]
			if !t.Solved() {
				continue
			}
			t.Winner()
			meanComplexity += float64(genomeComplexity(t.WinnerGeneration.Best))
			meanFitness += t.WinnerGeneration.Best.Fitness
			count++
		}
		if count > 0 {
			meanComplexity /= count
			meanFitness /= count
		}
	}

	fitnessScore := meanFitness
	if e.MaxFitnessScore > 0 {
		fitnessScore = fitnessScore / e.MaxFitnessScore * 100
	}

	score := e.AvgEpochDuration().Seconds() * 1000.0 * e.AvgGenerationsPerTrial() * meanComplexity
	if score > 0 {
		score = e.SuccessRate() * fitnessScore / math.Log(score)
	}
	return score
}

// PrintStatistics writes a human-readable summary of the experiment to
// stdout.
func (e *Experiment) PrintStatistics() {
	fmt.Printf("\nSolved %d trials from %d, success rate: %f\n", e.TrialsSolved(), len(e.Trials), e.SuccessRate())
	fmt.Printf("Random seed: %d\n", e.RandSeed)
	fmt.Printf("Average\n\tTrial duration:\t\t%s\n\tEpoch duration:\t\t%s\n\tGenerations/trial:\t%.1f\n",
		e.AvgTrialDuration(), e.AvgEpochDuration(), e.AvgGenerationsPerTrial())

	if g, trialId, found := e.BestGenome(true); found {
		nodes, genes, evals, diversity := e.Trials[trialId].Winner()
		fmt.Printf("\nChampion found in trial %d\n\tWinner Nodes:\t\t%d\n\tWinner Genes:\t\t%d\n\tWinner Evals:\t\t%d\n\tDiversity:\t\t%d\n\tFitness:\t\t%f\n",
			trialId, nodes, genes, evals, diversity, g.Fitness)
	} else {
		fmt.Println("\nNo winner found in the experiment!")
	}

	if avgNodes, avgGenes, avgEvals, avgDiversity := e.AvgWinner(); e.TrialsSolved() > 0 {
		fmt.Printf("\nAverage among winners\n\tWinner Nodes:\t\t%.1f\n\tWinner Genes:\t\t%.1f\n\tWinner Evals:\t\t%.1f\n\tDiversity:\t\t%.1f\n",
			avgNodes, avgGenes, avgEvals, avgDiversity)
	}

	meanFitness, meanAge, meanComplexity, meanDiversity := 0.0, 0.0, 0.0, 0.0
	for _, t := range e.Trials {
		fitness, age, complexity := t.Average()
		meanFitness += fitness.Mean()
		meanAge += age.Mean()
		meanComplexity += complexity.Mean()
		meanDiversity += t.Diversity().Mean()
	}
	if count := float64(len(e.Trials)); count > 0 {
		fmt.Printf("\nAverages for all genomes evaluated during the experiment\n\tDiversity:\t\t%f\n\tComplexity:\t\t%f\n\tAge:\t\t\t%f\n\tFitness:\t\t%f\n",
			meanDiversity/count, meanComplexity/count, meanAge/count, meanFitness/count)
	}

	fmt.Printf("\nEfficiency score:\t\t%f\n\n", e.EfficiencyScore())
}

// Write writes e, GOB-encoded, to w.
func (e *Experiment) Write(w io.Writer) error {
	return e.Encode(gob.NewEncoder(w))
}

// Encode writes e with the given GOB encoder.
func (e *Experiment) Encode(enc *gob.Encoder) error {
	if err := enc.Encode(e.Id); err != nil {
		return err
	}
	if err := enc.Encode(e.Name); err != nil {
		return err
	}
	if err := enc.Encode(len(e.Trials)); err != nil {
		return err
	}
	for i := range e.Trials {
		if err := e.Trials[i].Encode(enc); err != nil {
			return err
		}
	}
	return nil
}

// Read reads e, GOB-encoded, from r.
func (e *Experiment) Read(r io.Reader) error {
	return e.Decode(gob.NewDecoder(r))
}

// Decode reads e from the given GOB decoder.
func (e *Experiment) Decode(dec *gob.Decoder) error {
	if err := dec.Decode(&e.Id); err != nil {
		return err
	}
	if err := dec.Decode(&e.Name); err != nil {
		return err
	}
	var n int
	if err := dec.Decode(&n); err != nil {
		return err
	}
	e.Trials = make(Trials, n)
	for i := 0; i < n; i++ {
		if err := e.Trials[i].Decode(dec); err != nil {
			return err
		}
	}
	return nil
}

// ExportNPZ dumps the experiment's fitness/age/complexity time series to an
// NPZ archive, one array set per trial plus aggregate per-trial summaries:
//   - trials_fitness, trials_ages, trials_complexity: mean and variance per trial
//   - trial_N_epoch_mean_{fitnesses,ages,complexities}: per-generation species means
//   - trial_N_epoch_best_{fitnesses,ages,complexities}: per-generation best-genome series
//   - trial_N_epoch_diversity: per-generation species count
func (e *Experiment) ExportNPZ(w io.Writer) error {
	trialsFitness := mat.NewDense(len(e.Trials), 2, nil)
	trialsAges := mat.NewDense(len(e.Trials), 2, nil)
	trialsComplexity := mat.NewDense(len(e.Trials), 2, nil)
	for i, t := range e.Trials {
		fitness, age, complexity := t.Average()
		trialsFitness.SetRow(i, fitness.MeanVariance())
		trialsAges.SetRow(i, age.MeanVariance())
		trialsComplexity.SetRow(i, complexity.MeanVariance())
	}

	out := npz.NewWriter(w)
	if err := out.Write("trials_fitness", trialsFitness); err != nil {
		return err
	}
	if err := out.Write("trials_ages", trialsAges); err != nil {
		return err
	}
	if err := out.Write("trials_complexity", trialsComplexity); err != nil {
		return err
	}

	for i, t := range e.Trials {
		fitness, age, complexity := t.Average()
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_mean_fitnesses", i), []float64(fitness)); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_mean_ages", i), []float64(age)); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_mean_complexities", i), []float64(complexity)); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_best_fitnesses", i), []float64(t.BestFitness())); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_best_ages", i), []float64(t.BestAge())); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_best_complexities", i), []float64(t.BestComplexity())); err != nil {
			return err
		}
		if err := out.Write(fmt.Sprintf("trial_%d_epoch_diversity", i), []float64(t.Diversity())); err != nil {
			return err
		}
	}
	return out.Close()
}

// Experiments is a sortable list of experiments, ordered by most recent
// trial evaluation time and then by id.
type Experiments []Experiment

func (es Experiments) Len() int      { return len(es) }
func (es Experiments) Swap(i, j int) { es[i], es[j] = es[j], es[i] }
func (es Experiments) Less(i, j int) bool {
	ui, uj := es[i].MostRecentTrialEvalTime(), es[j].MostRecentTrialEvalTime()
	if ui.Equal(uj) {
		return es[i].Id < es[j].Id
	}
	return ui.Before(uj)
}
