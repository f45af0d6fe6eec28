package genetics

import "fmt"

// Gene is a connection gene: a weighted edge between two nodes identified by
// id, tagged with the innovation number that ties it to its historical
// origin across the population.
type Gene struct {
	// InnovationId ties this gene to the innovation record that first
	// produced a structurally identical mutation.
	InnovationId int64
	// InNodeId and OutNodeId are the endpoints, by node id, of the owning
	// genome's node list. Connections never hold pointers to nodes.
	InNodeId  int64
	OutNodeId int64
	// Weight is the connection's real-valued weight.
	Weight float64
	// Enabled gates whether the connection contributes to activation.
	Enabled bool
	// MutationNum records the weight this gene was given by its most recent
	// weight mutation; used only for reporting.
	MutationNum float64
}

// NewGene creates a new enabled connection gene.
func NewGene(inNodeId, outNodeId int64, weight float64, innovationId int64) *Gene {
	return &Gene{
		InNodeId:     inNodeId,
		OutNodeId:    outNodeId,
		Weight:       weight,
		InnovationId: innovationId,
		Enabled:      true,
	}
}

// Clone returns a deep copy of g.
func (g *Gene) Clone() *Gene {
	clone := *g
	return &clone
}

// sameEndpoints reports whether g and other connect the same (in, out) pair,
// the duplicate-connection check used by add-connection mutation.
func (g *Gene) sameEndpoints(inNodeId, outNodeId int64) bool {
	return g.InNodeId == inNodeId && g.OutNodeId == outNodeId
}

func (g *Gene) String() string {
	enabled := "enabled"
	if !g.Enabled {
		enabled = "disabled"
	}
	return fmt.Sprintf("Gene(innov:%d, %d->%d, weight:%.4f, %s)",
		g.InnovationId, g.InNodeId, g.OutNodeId, g.Weight, enabled)
}
