package genetics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcevo/neat/neat/activation"
)

func TestGenomeYAMLRoundTrip(t *testing.T) {
	r := NewInnovationRegistry(10, 1)
	original := NewTemplateGenome(1, 2, 1, r, activation.Sigmoid)
	original.Fitness = 3.25
	original.Genes[0].Weight = 0.75

	var buf bytes.Buffer
	require.NoError(t, WriteGenomeYAML(&buf, original))

	decoded, err := ReadGenomeYAML(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Fitness, decoded.Fitness)
	assert.Equal(t, original.InputIds, decoded.InputIds)
	assert.Equal(t, original.OutputIds, decoded.OutputIds)
	require.Len(t, decoded.Nodes, len(original.Nodes))
	require.Len(t, decoded.Genes, len(original.Genes))
	for i, c := range original.Genes {
		assert.Equal(t, c.Weight, decoded.Genes[i].Weight)
		assert.Equal(t, c.InnovationId, decoded.Genes[i].InnovationId)
	}
}

func TestGenomeTextRoundTrip(t *testing.T) {
	r := NewInnovationRegistry(10, 1)
	original := NewTemplateGenome(2, 3, 2, r, activation.Tanh)
	original.Fitness = 1.5

	var buf bytes.Buffer
	require.NoError(t, WriteGenomeText(&buf, original))

	decoded, err := ReadGenomeText(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Fitness, decoded.Fitness)
	assert.Equal(t, original.InputIds, decoded.InputIds)
	assert.Equal(t, original.OutputIds, decoded.OutputIds)
	require.Len(t, decoded.Nodes, len(original.Nodes))
	require.Len(t, decoded.Genes, len(original.Genes))
}

func TestReadGenomeTextRejectsUnknownRecordKind(t *testing.T) {
	_, err := ReadGenomeText(bytes.NewBufferString("bogus 1 2 3\n"))
	require.Error(t, err)
}
