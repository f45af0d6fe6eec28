package genetics

import (
	"github.com/arcevo/neat/neat"
	"github.com/arcevo/neat/neat/activation"
	"github.com/arcevo/neat/neat/network"
	neatrand "github.com/arcevo/neat/neat/rand"
)

// Mutate applies the five mutation operators to g in a fixed order, each
// gated by an independent probability. Each
// operator is also independently callable (MutateWeights, MutateAddConnection,
// MutateAddNode, MutateToggleEnable, MutateActivationChange) so a caller can
// compose a different policy; Mutate is the default reproduction-time
// composition.
func Mutate(g *Genome, opts *neat.Options, rng *neatrand.RNG, registry *InnovationRegistry) {
	MutateWeights(g, opts, rng)
	if rng.Bool(opts.AddConnProb) {
		MutateAddConnection(g, opts, rng, registry)
	}
	if rng.Bool(opts.AddNodeProb) {
		MutateAddNode(g, opts, rng, registry)
	}
	if rng.Bool(opts.ToggleLinkRate) {
		MutateToggleEnable(g, rng)
	}
	if rng.Bool(opts.ActivationMutateRate) {
		MutateActivationChange(g, rng)
	}
}

// MutateWeights perturbs every connection's weight, and every node's bias,
// with probability opts.WeightMutateRate, either by a Gaussian nudge or
// (with probability opts.WeightReplaceRate) by drawing a fresh N(0,1) value.
// Bias is perturbed at the same rate as weight - it has no separate
// tunable.
func MutateWeights(g *Genome, opts *neat.Options, rng *neatrand.RNG) {
	for _, c := range g.Genes {
		if !rng.Bool(opts.WeightMutateRate) {
			continue
		}
		if rng.Bool(opts.WeightReplaceRate) {
			c.Weight = rng.NormFloat64()
		} else {
			c.Weight += rng.NormFloat64() * opts.WeightMutatePower
		}
		c.MutationNum = c.Weight
	}
	for _, n := range g.Nodes {
		if n.Role == network.Input || n.Role == network.Bias {
			continue
		}
		if !rng.Bool(opts.WeightMutateRate) {
			continue
		}
		if rng.Bool(opts.WeightReplaceRate) {
			n.Bias = rng.NormFloat64()
		} else {
			n.Bias += rng.NormFloat64() * opts.WeightMutatePower
		}
	}
}

// MutateAddConnection picks two distinct nodes uniformly and, if the pair is
// not a self-loop, not a duplicate, and (unless AllowRecurrent) respects the
// feed-forward layering, adds a new connection with weight N(0,1), binding a
// fresh innovation id from registry. It retries up to opts.NewConnTries
// times before giving up as a silent no-op.
func MutateAddConnection(g *Genome, opts *neat.Options, rng *neatrand.RNG, registry *InnovationRegistry) bool {
	if len(g.Nodes) < 2 {
		return false
	}
	for attempt := 0; attempt < opts.NewConnTries; attempt++ {
		a := g.Nodes[rng.IntN(len(g.Nodes))]
		b := g.Nodes[rng.IntN(len(g.Nodes))]
		if a.Id == b.Id {
			continue
		}
		in, out := a, b
		if !opts.AllowRecurrent && network.Layer(out.Role) <= network.Layer(in.Role) {
			in, out = b, a
			if network.Layer(out.Role) <= network.Layer(in.Role) {
				continue
			}
		}
		if out.Role == network.Input || out.Role == network.Bias {
			continue
		}
		if g.HasConnection(in.Id, out.Id) {
			continue
		}
		innov := registry.AssignConnection(in.Id, out.Id)
		if _, ok := g.AddConnection(in.Id, out.Id, rng.NormFloat64(), innov, opts.AllowRecurrent); ok {
			return true
		}
	}
	return false
}

// MutateAddNode picks an enabled connection uniformly, disables it, and
// splits it: a new hidden node is inserted with an incoming connection of
// weight 1.0 from the original source and an outgoing connection to the
// original target carrying the original weight. All three new ids (node,
// two connections) are bound from registry, so identical splits performed
// elsewhere in the same generation produce identical ids.
func MutateAddNode(g *Genome, opts *neat.Options, rng *neatrand.RNG, registry *InnovationRegistry) bool {
	var candidates []*Gene
	for _, c := range g.Genes {
		if c.Enabled {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	split := candidates[rng.IntN(len(candidates))]
	split.Enabled = false

	nodeId, firstInnov, secondInnov := registry.AssignSplit(split.InNodeId, split.OutNodeId, split.Weight)
	g.addNodeWithID(nodeId, network.Hidden, defaultHiddenActivation(rng))

	g.Genes = append(g.Genes,
		NewGene(split.InNodeId, nodeId, 1.0, firstInnov),
		NewGene(nodeId, split.OutNodeId, split.Weight, secondInnov),
	)
	g.invalidateTopology()
	return true
}

// MutateToggleEnable flips the enabled flag on a uniformly chosen
// connection. If the genome has no enabled connections, it prefers
// re-enabling over disabling further.
func MutateToggleEnable(g *Genome, rng *neatrand.RNG) bool {
	if len(g.Genes) == 0 {
		return false
	}
	anyEnabled := false
	for _, c := range g.Genes {
		if c.Enabled {
			anyEnabled = true
			break
		}
	}
	c := g.Genes[rng.IntN(len(g.Genes))]
	if !anyEnabled {
		c.Enabled = true
	} else {
		c.Enabled = !c.Enabled
	}
	g.invalidateTopology()
	return true
}

// MutateActivationChange replaces the activation kind of a uniformly chosen
// non-input, non-bias node with a uniformly chosen value from the closed
// activation set.
func MutateActivationChange(g *Genome, rng *neatrand.RNG) bool {
	var candidates []*Node
	for _, n := range g.Nodes {
		if n.Role != network.Input && n.Role != network.Bias {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	n := candidates[rng.IntN(len(candidates))]
	n.ActivationType = defaultHiddenActivation(rng)
	return true
}

func defaultHiddenActivation(rng *neatrand.RNG) activation.Type {
	all := activation.Registry.All()
	return all[rng.IntN(len(all))]
}
