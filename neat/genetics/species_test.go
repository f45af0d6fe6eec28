package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcevo/neat/neat"
)

func TestAdjustFitnessConservesTotalRawFitness(t *testing.T) {
	a := &Genome{Id: 1, Fitness: 4.0}
	b := &Genome{Id: 2, Fitness: 6.0}
	sp := NewSpecies(1, a)
	sp.AddMember(b)
	sp.AdjustFitness()

	assert.Equal(t, 2.0, a.AdjustedFitness)
	assert.Equal(t, 3.0, b.AdjustedFitness)
	assert.InDelta(t, (a.Fitness+b.Fitness)/2, sp.TotalAdjustedFitness(), 1e-9)
}

func TestUpdateStalenessResetsOnImprovement(t *testing.T) {
	g := &Genome{Id: 1, Fitness: 1.0}
	sp := NewSpecies(1, g)
	sp.UpdateStaleness()
	assert.Equal(t, 0, sp.Staleness)
	assert.Equal(t, 1.0, sp.BestFitnessEver)

	sp.UpdateStaleness() // no improvement: fitness unchanged
	assert.Equal(t, 1, sp.Staleness)

	g.Fitness = 5.0
	sp.UpdateStaleness()
	assert.Equal(t, 0, sp.Staleness)
	assert.Equal(t, 5.0, sp.BestFitnessEver)
}

func TestIsStagnantAtThreshold(t *testing.T) {
	g := &Genome{Id: 1, Fitness: 1.0}
	sp := NewSpecies(1, g)
	sp.UpdateStaleness() // staleness 0
	for i := 0; i < 14; i++ {
		sp.UpdateStaleness()
	}
	assert.True(t, sp.IsStagnant(14))
	assert.False(t, sp.IsStagnant(15))
}

func TestSurvivorsAlwaysAtLeastOne(t *testing.T) {
	g := &Genome{Id: 1, Fitness: 1.0}
	sp := NewSpecies(1, g)
	opts := neat.DefaultOptions()
	opts.SurvivalThreshold = 0.01
	survivors := sp.Survivors(opts)
	require.Len(t, survivors, 1)
}

func TestIsEmptyAfterMembersCleared(t *testing.T) {
	g := &Genome{Id: 1, Fitness: 1.0}
	sp := NewSpecies(1, g)
	assert.False(t, sp.IsEmpty())
	sp.Members = nil
	assert.True(t, sp.IsEmpty())
}
