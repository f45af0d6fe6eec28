package genetics

import (
	"context"
	"sync"
)

// FitnessEvaluator scores a generation's genomes. Concurrency is scoped
// strictly to fitness evaluation: speciation, reproduction, and mutation
// remain single-threaded against the population's shared RNG and innovation
// registry, so only the evaluator implementation varies.
type FitnessEvaluator interface {
	Evaluate(ctx context.Context, genomes []*Genome, fn FitnessFunc) error
}

// SequentialEvaluator scores every genome in slice order on the calling
// goroutine. It is the default, and the only evaluator that guarantees a
// fitness function with side effects (e.g. shared, non-thread-safe state)
// behaves correctly.
type SequentialEvaluator struct{}

func (SequentialEvaluator) Evaluate(ctx context.Context, genomes []*Genome, fn FitnessFunc) error {
	for _, g := range genomes {
		if err := ctx.Err(); err != nil {
			return err
		}
		fitness, err := fn(g)
		if err != nil {
			return err
		}
		g.Fitness = fitness
	}
	return nil
}

// ParallelEvaluator scores genomes across a fixed pool of worker goroutines.
// fn must be safe for concurrent use; each genome's Fitness field is written
// only by the worker that evaluated it, so results require no further
// synchronization.
type ParallelEvaluator struct {
	Workers int
}

// NewParallelEvaluator returns a ParallelEvaluator with workers goroutines;
// workers <= 0 is treated as 1.
func NewParallelEvaluator(workers int) *ParallelEvaluator {
	if workers <= 0 {
		workers = 1
	}
	return &ParallelEvaluator{Workers: workers}
}

func (e *ParallelEvaluator) Evaluate(ctx context.Context, genomes []*Genome, fn FitnessFunc) error {
	workers := e.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(genomes) {
		workers = len(genomes)
	}
	if workers == 0 {
		return nil
	}

	jobs := make(chan *Genome)
	errs := make(chan error, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for g := range jobs {
				fitness, err := fn(g)
				if err != nil {
					errs <- err
					cancel()
					return
				}
				g.Fitness = fitness
			}
		}()
	}

feed:
	for _, g := range genomes {
		select {
		case jobs <- g:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err := ctx.Err(); err != nil {
		select {
		case fnErr := <-errs:
			return fnErr
		default:
			return err
		}
	}
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
