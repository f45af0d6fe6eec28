package genetics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/activation"
)

// TestSpeciateTwoClustersYieldsTwoSpecies builds a population of two tight
// weight clusters, far enough apart to clear the compatibility threshold,
// and checks that speciation settles on exactly two species.
func TestSpeciateTwoClustersYieldsTwoSpecies(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopulationSize = 20
	opts.CompatThreshold = 3.0
	opts.MutdiffCoeff = 0.4
	opts.TargetSpeciesCount = 0

	p, err := NewPopulation(opts, 99, 2, 1, activation.Sigmoid)
	require.NoError(t, err)

	template := p.Genomes[0].Clone(0)
	for _, gene := range template.Genes {
		gene.Weight = 0.0
	}

	genomes := make([]*Genome, 0, opts.PopulationSize)
	for i := 0; i < opts.PopulationSize/2; i++ {
		clone := template.Clone(int64(i + 1))
		for _, gene := range clone.Genes {
			gene.Weight = 0.0 + float64(i%2)*0.01
		}
		genomes = append(genomes, clone)
	}
	for i := 0; i < opts.PopulationSize/2; i++ {
		clone := template.Clone(int64(1000 + i))
		for _, gene := range clone.Genes {
			gene.Weight = 20.0 + float64(i%2)*0.01
		}
		genomes = append(genomes, clone)
	}

	p.Genomes = genomes
	p.Species = nil
	p.speciate()

	require.Len(t, p.Species, 2, "expected two clusters to form exactly two species")
	assert.Equal(t, opts.PopulationSize/2, len(p.Species[0].Members))
	assert.Equal(t, opts.PopulationSize/2, len(p.Species[1].Members))
}

// TestSpeciateStableAcrossGeneration checks that a population already split
// into two well-separated clusters still has exactly two species after a
// generation in which reproduction stays within species (interspecies
// mating disabled).
func TestSpeciateStableAcrossGeneration(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopulationSize = 20
	opts.CompatThreshold = 3.0
	opts.InterspeciesMateRate = 0.0

	p, err := NewPopulation(opts, 17, 2, 1, activation.Sigmoid)
	require.NoError(t, err)

	template := p.Genomes[0].Clone(0)
	genomes := make([]*Genome, 0, opts.PopulationSize)
	for i := 0; i < opts.PopulationSize/2; i++ {
		clone := template.Clone(int64(i + 1))
		for _, gene := range clone.Genes {
			gene.Weight = 0.0
		}
		genomes = append(genomes, clone)
	}
	for i := 0; i < opts.PopulationSize/2; i++ {
		clone := template.Clone(int64(1000 + i))
		for _, gene := range clone.Genes {
			gene.Weight = 20.0
		}
		genomes = append(genomes, clone)
	}
	p.Genomes = genomes
	p.Species = nil
	p.speciate()
	require.Len(t, p.Species, 2)

	i := 0
	p.SetFitnessCallback(func(g *Genome) (float64, error) {
		i++
		return float64(i), nil
	})
	require.NoError(t, p.EvaluateFitness(context.Background(), SequentialEvaluator{}))
	require.NoError(t, p.AdvanceGeneration())

	assert.Len(t, p.Species, 2, "species count should remain stable across one generation")
}
