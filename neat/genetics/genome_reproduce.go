package genetics

import (
	"github.com/arcevo/neat/neat"
	neatrand "github.com/arcevo/neat/neat/rand"
)

// Crossover produces a child genome from two parents by multipoint mating:
// matching genes (same innovation id) are inherited from either parent
// uniformly at random; disjoint and excess genes are inherited from the
// fitter parent only. A gene disabled in either parent is inherited disabled
// with probability opts.DisableInheritedGeneRate. Every inherited connection
// keeps the innovation id of its source gene, so crossover containment
// (every child gene traces to a parent) holds by construction.
func Crossover(childId int64, fitter, other *Genome, opts *neat.Options, rng *neatrand.RNG) *Genome {
	child := &Genome{Id: childId, topologyDirty: true}

	nodeSeen := make(map[int64]bool)
	addNode := func(n *Node) {
		if nodeSeen[n.Id] {
			return
		}
		nodeSeen[n.Id] = true
		child.Nodes = append(child.Nodes, n.Clone())
		if n.Id >= child.nextLocalNodeId {
			child.nextLocalNodeId = n.Id + 1
		}
	}
	for _, n := range fitter.Nodes {
		addNode(n)
	}
	for _, n := range other.Nodes {
		addNode(n)
	}
	child.InputIds = append([]int64(nil), fitter.InputIds...)
	child.OutputIds = append([]int64(nil), fitter.OutputIds...)

	fitterGenes, otherGenes := fitter.sortedGenes(), other.sortedGenes()
	i, j := 0, 0
	for i < len(fitterGenes) || j < len(otherGenes) {
		switch {
		case i >= len(fitterGenes):
			j++ // excess gene in other: fitter parent contributes nothing, skip
		case j >= len(otherGenes):
			child.Genes = append(child.Genes, inheritGene(fitterGenes[i], nil, opts, rng))
			i++
		case fitterGenes[i].InnovationId == otherGenes[j].InnovationId:
			child.Genes = append(child.Genes, inheritGene(fitterGenes[i], otherGenes[j], opts, rng))
			i++
			j++
		case fitterGenes[i].InnovationId < otherGenes[j].InnovationId:
			child.Genes = append(child.Genes, inheritGene(fitterGenes[i], nil, opts, rng))
			i++
		default:
			j++ // disjoint gene unique to other: fitter parent is authoritative, skip
		}
	}

	return child
}

// inheritGene picks the matching gene's weight uniformly from a or b (when
// both are given), or copies a's weight when only a/disjoint-from-fitter is
// given. The inherited gene's enabled flag follows the configured
// disabled-inheritance rule when either source gene is disabled.
func inheritGene(a, b *Gene, opts *neat.Options, rng *neatrand.RNG) *Gene {
	source := a
	disabledInEither := !a.Enabled
	if b != nil {
		disabledInEither = disabledInEither || !b.Enabled
		if rng.Bool(0.5) {
			source = b
		}
	}
	gene := source.Clone()
	if disabledInEither {
		gene.Enabled = !rng.Bool(opts.DisableInheritedGeneRate)
	} else {
		gene.Enabled = true
	}
	return gene
}
