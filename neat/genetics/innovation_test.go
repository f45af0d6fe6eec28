package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignConnectionMemoizesWithinGeneration(t *testing.T) {
	r := NewInnovationRegistry(1, 1)
	first := r.AssignConnection(1, 2)
	second := r.AssignConnection(1, 2)
	assert.Equal(t, first, second, "identical structural mutation in the same generation must share an innovation id")

	other := r.AssignConnection(1, 3)
	assert.NotEqual(t, first, other)
}

func TestAssignConnectionFreshAfterClearGeneration(t *testing.T) {
	r := NewInnovationRegistry(1, 1)
	first := r.AssignConnection(1, 2)
	r.ClearGeneration()
	second := r.AssignConnection(1, 2)
	assert.NotEqual(t, first, second, "memoisation must not persist across generations")
}

func TestAssignSplitMemoizesTriple(t *testing.T) {
	r := NewInnovationRegistry(5, 10)
	nodeId1, in1, out1 := r.AssignSplit(1, 2, 0.5)
	nodeId2, in2, out2 := r.AssignSplit(1, 2, 0.5)
	assert.Equal(t, nodeId1, nodeId2)
	assert.Equal(t, in1, in2)
	assert.Equal(t, out1, out2)
	assert.NotEqual(t, in1, out1)

	nodeId3, _, _ := r.AssignSplit(2, 3, 0.1)
	require.NotEqual(t, nodeId1, nodeId3)
}

func TestNextSpeciesIdIsMonotonic(t *testing.T) {
	r := NewInnovationRegistry(1, 1)
	a := r.NextSpeciesId()
	b := r.NextSpeciesId()
	assert.Equal(t, a+1, b)
}
