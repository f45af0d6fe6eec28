package network

import "fmt"

// Link is a connection from one node to another with an associated weight,
// the phenotype counterpart of a genome connection gene.
type Link struct {
	Weight  float64
	InNode  *NNode
	OutNode *NNode
	Enabled bool
}

// NewLink creates a new link between two nodes with the given weight.
func NewLink(weight float64, in, out *NNode, enabled bool) *Link {
	return &Link{Weight: weight, InNode: in, OutNode: out, Enabled: enabled}
}

func (l *Link) String() string {
	return fmt.Sprintf("Link(%d -> %d, weight:%.4f, enabled:%t)", l.InNode.Id, l.OutNode.Id, l.Weight, l.Enabled)
}
