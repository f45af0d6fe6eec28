package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/activation"
)

func TestCompatibilityDistanceZeroAtIdentity(t *testing.T) {
	r := NewInnovationRegistry(10, 1)
	g := NewTemplateGenome(1, 3, 2, r, activation.Sigmoid)
	opts := neat.DefaultOptions()
	assert.Equal(t, 0.0, g.Compatibility(g, opts))
}

func TestCompatibilityDistanceIsSymmetric(t *testing.T) {
	r := NewInnovationRegistry(10, 1)
	a := NewTemplateGenome(1, 3, 2, r, activation.Sigmoid)
	b := a.Clone(2)
	b.Genes[0].Weight += 5.0
	innov := r.AssignConnection(b.InputIds[0], b.OutputIds[0])
	b.Genes = append(b.Genes, NewGene(b.InputIds[1], b.OutputIds[1], 0.2, innov+1000))

	opts := neat.DefaultOptions()
	assert.Equal(t, a.Compatibility(b, opts), b.Compatibility(a, opts))
}

func TestCompatibilityDistanceGrowsWithDivergence(t *testing.T) {
	r := NewInnovationRegistry(10, 1)
	a := NewTemplateGenome(1, 3, 2, r, activation.Sigmoid)
	b := a.Clone(2)
	opts := neat.DefaultOptions()
	closeDistance := a.Compatibility(b, opts)

	b.Genes[0].Weight += 10.0
	farDistance := a.Compatibility(b, opts)
	assert.Greater(t, farDistance, closeDistance)
}
