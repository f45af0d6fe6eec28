package genetics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcevo/neat/neat/activation"
)

func TestWritePopulationThenReadPopulationGenomesRoundTrip(t *testing.T) {
	p, err := NewPopulation(smallOptions(), 5, 2, 1, activation.Sigmoid)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePopulation(&buf, p))

	decoded, err := ReadPopulationGenomes(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, len(p.Genomes))
	for i, g := range p.Genomes {
		assert.Equal(t, g.Id, decoded[i].Id)
		assert.Len(t, decoded[i].Genes, len(g.Genes))
		assert.Len(t, decoded[i].Nodes, len(g.Nodes))
	}
}
