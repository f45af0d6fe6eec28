package genetics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenomes(n int) []*Genome {
	genomes := make([]*Genome, n)
	for i := range genomes {
		genomes[i] = &Genome{Id: int64(i)}
	}
	return genomes
}

func TestSequentialEvaluatorScoresEveryGenome(t *testing.T) {
	genomes := testGenomes(5)
	err := SequentialEvaluator{}.Evaluate(context.Background(), genomes, func(g *Genome) (float64, error) {
		return float64(g.Id) * 2, nil
	})
	require.NoError(t, err)
	for _, g := range genomes {
		assert.Equal(t, float64(g.Id)*2, g.Fitness)
	}
}

func TestSequentialEvaluatorPropagatesError(t *testing.T) {
	genomes := testGenomes(3)
	boom := errors.New("boom")
	err := SequentialEvaluator{}.Evaluate(context.Background(), genomes, func(g *Genome) (float64, error) {
		if g.Id == 1 {
			return 0, boom
		}
		return 1, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelEvaluatorScoresEveryGenome(t *testing.T) {
	genomes := testGenomes(50)
	evaluator := NewParallelEvaluator(8)
	var calls int64
	err := evaluator.Evaluate(context.Background(), genomes, func(g *Genome) (float64, error) {
		atomic.AddInt64(&calls, 1)
		return float64(g.Id) + 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), calls)
	for _, g := range genomes {
		assert.Equal(t, float64(g.Id)+1, g.Fitness)
	}
}

func TestParallelEvaluatorPropagatesError(t *testing.T) {
	genomes := testGenomes(20)
	boom := errors.New("boom")
	evaluator := NewParallelEvaluator(4)
	err := evaluator.Evaluate(context.Background(), genomes, func(g *Genome) (float64, error) {
		if g.Id == 10 {
			return 0, boom
		}
		return 1, nil
	})
	assert.ErrorIs(t, err, boom)
}
