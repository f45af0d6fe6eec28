package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/activation"
	"github.com/arcevo/neat/neat/genetics"
)

// Execute runs opts.NumRuns independent trials, each spawning a fresh
// population of minimal genomes (inputArity inputs, outputArity outputs,
// the given output activation) and evaluating it for up to
// opts.NumGenerations generations via evaluator, stopping a trial early as
// soon as a generation reports itself solved. opts must be present in ctx,
// installed with neat.NewContext.
func (e *Experiment) Execute(ctx context.Context, inputArity, outputArity int, outputActivation activation.Type,
	evaluator GenerationEvaluator, trialObserver TrialRunObserver) error {
	opts, found := neat.FromContext(ctx)
	if !found {
		return neat.ErrNEATOptionsNotFound
	}

	if e.Trials == nil {
		e.Trials = make(Trials, opts.NumRuns)
	}

	for run := 0; run < opts.NumRuns; run++ {
		trialStartTime := time.Now()

		neat.InfoLog(fmt.Sprintf(">>>>> Spawning new population for run %d", run))
		pop, err := genetics.NewPopulation(opts, e.RandSeed+int64(run), inputArity, outputArity, outputActivation)
		if err != nil {
			neat.ErrorLog("failed to spawn new population")
			return err
		}

		trial := Trial{Id: run}
		if trialObserver != nil {
			trialObserver.TrialRunStarted(&trial)
		}

		for generationId := 0; generationId < opts.NumGenerations; generationId++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			neat.InfoLog(fmt.Sprintf(">>>>> Generation: %3d\tRun: %d", generationId, run))
			generation := Generation{Id: generationId, TrialId: run}
			genStartTime := time.Now()

			if err := evaluator.GenerationEvaluate(ctx, pop, &generation); err != nil {
				neat.ErrorLog(fmt.Sprintf("generation [%d] evaluation failed", generationId))
				return err
			}
			generation.Executed = time.Now()

			if !generation.Solved {
				neat.DebugLog(">>>>> advancing to next generation")
				if err := pop.AdvanceGeneration(); err != nil {
					neat.ErrorLog(fmt.Sprintf("failed to advance past generation [%d]", generationId))
					return err
				}
			}

			generation.Duration = generation.Executed.Sub(genStartTime)
			trial.Generations = append(trial.Generations, generation)

			if trialObserver != nil {
				trialObserver.EpochEvaluated(&trial, &generation)
			}

			if generation.Solved {
				neat.InfoLog(fmt.Sprintf(">>>>> winner found in generation %d, fitness: %f <<<<<",
					generationId, generation.Best.Fitness))
				break
			}
		}

		trial.Duration = time.Since(trialStartTime)
		e.Trials[run] = trial

		if trialObserver != nil {
			trialObserver.TrialRunFinished(&trial)
		}
	}

	return nil
}
