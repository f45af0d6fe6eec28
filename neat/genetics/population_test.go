package genetics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/activation"
)

func smallOptions() *neat.Options {
	opts := neat.DefaultOptions()
	opts.PopulationSize = 20
	return opts
}

func TestNewPopulationHasRequestedSize(t *testing.T) {
	p, err := NewPopulation(smallOptions(), 42, 2, 1, activation.Sigmoid)
	require.NoError(t, err)
	assert.Len(t, p.Genomes, 20)
	assert.NotEmpty(t, p.Species)
}

func TestNewPopulationRejectsInvalidOptions(t *testing.T) {
	opts := smallOptions()
	opts.PopulationSize = 0
	_, err := NewPopulation(opts, 1, 2, 1, activation.Sigmoid)
	assert.Error(t, err)
}

func TestEvolveOneGenerationRequiresFitnessCallback(t *testing.T) {
	p, err := NewPopulation(smallOptions(), 1, 2, 1, activation.Sigmoid)
	require.NoError(t, err)
	err = p.EvolveOneGeneration(context.Background(), SequentialEvaluator{})
	assert.ErrorIs(t, err, neat.ErrNoFitnessCallback)
}

func TestEvolveOneGenerationPreservesPopulationSize(t *testing.T) {
	opts := smallOptions()
	p, err := NewPopulation(opts, 7, 3, 1, activation.Sigmoid)
	require.NoError(t, err)

	p.SetFitnessCallback(func(g *Genome) (float64, error) {
		out, err := g.Activate([]float64{0.5, 0.5, 0.5})
		if err != nil {
			return 0, err
		}
		return 1.0 - out[0], nil
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, p.EvolveOneGeneration(context.Background(), SequentialEvaluator{}))
		assert.Len(t, p.Genomes, opts.PopulationSize)
	}
	assert.Equal(t, 5, p.Generation)
}

func TestBestGenomeTracksHighestFitness(t *testing.T) {
	p, err := NewPopulation(smallOptions(), 3, 2, 1, activation.Sigmoid)
	require.NoError(t, err)
	for i, g := range p.Genomes {
		g.Fitness = float64(i)
	}
	best := p.BestGenome()
	require.NotNil(t, best)
	assert.Equal(t, p.Genomes[len(p.Genomes)-1].Id, best.Id)
}
