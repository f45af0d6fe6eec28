package genetics

import (
	"math"

	"github.com/arcevo/neat/neat"
)

// CompatibilityDistance computes the compatibility distance between a and b
// by merge-walking both connection gene lists in increasing innovation-id
// order and classifying each position as matching, disjoint, or excess:
//
//	d = (c1*excess + c2*disjoint) / N + c3*mean|delta weight over matching|
//
// where N is max(|A|,|B|), treated as 1 when below smallGenomeThreshold.
// Symmetric: swapping a and b yields the same distance.
func CompatibilityDistance(a, b *Genome, excessCoeff, disjointCoeff, mutdiffCoeff float64, smallGenomeThreshold int) float64 {
	ga, gb := a.sortedGenes(), b.sortedGenes()
	sizeA, sizeB := len(ga), len(gb)

	var excess, disjoint, matching, weightDiffTotal float64
	i, j := 0, 0
	for i < sizeA && j < sizeB {
		switch {
		case ga[i].InnovationId == gb[j].InnovationId:
			matching++
			weightDiffTotal += math.Abs(ga[i].Weight - gb[j].Weight)
			i++
			j++
		case ga[i].InnovationId < gb[j].InnovationId:
			disjoint++
			i++
		default:
			disjoint++
			j++
		}
	}
	// whichever list still has entries past the shorter list's end: excess.
	excess += float64((sizeA - i) + (sizeB - j))

	n := sizeA
	if sizeB > n {
		n = sizeB
	}
	if n < smallGenomeThreshold {
		n = 1
	}

	meanWeightDiff := 0.0
	if matching > 0 {
		meanWeightDiff = weightDiffTotal / matching
	}

	return (excessCoeff*excess+disjointCoeff*disjoint)/float64(n) + mutdiffCoeff*meanWeightDiff
}

// Compatibility is a convenience wrapper reading the three coefficients and
// the small-genome threshold from opts.
func (g *Genome) Compatibility(other *Genome, opts *neat.Options) float64 {
	return CompatibilityDistance(g, other, opts.ExcessCoeff, opts.DisjointCoeff, opts.MutdiffCoeff, opts.SmallGenomeThreshold)
}
