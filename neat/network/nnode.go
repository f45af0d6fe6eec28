package network

import (
	"fmt"

	"github.com/arcevo/neat/neat/activation"
)

// NNode is one node of the evaluable network: a sensor (Input/Bias) or a
// neuron (Hidden/Output).
type NNode struct {
	// Id is the node id, unique within the owning network/genome.
	Id int64
	// Role is the node's placement (Input, Bias, Hidden, Output).
	Role Role
	// ActivationType is the activation function applied to this node's
	// weighted input sum. Input and bias nodes ignore it.
	ActivationType activation.Type

	// Bias is added to the weighted sum of incoming activations before the
	// activation function is applied.
	Bias float64
	// Activation is the node's current output value.
	Activation float64
	// activated records whether Activation has been computed this pass.
	activated bool

	// Incoming and Outgoing are this node's links in the phenotype graph.
	Incoming []*Link
	Outgoing []*Link
}

// NewNNode creates a node of the given role and activation kind.
func NewNNode(id int64, role Role, activationType activation.Type) *NNode {
	return &NNode{
		Id:             id,
		Role:           role,
		ActivationType: activationType,
		Incoming:       make([]*Link, 0),
		Outgoing:       make([]*Link, 0),
	}
}

// IsSensor reports whether the node's value is supplied externally rather
// than computed from incoming links.
func (n *NNode) IsSensor() bool {
	return n.Role == Input || n.Role == Bias
}

// Reset clears activation state so the node is ready for a fresh pass.
func (n *NNode) Reset() {
	n.Activation = 0
	n.activated = false
}

// Load sets the activation value directly, bypassing the activation
// function. Used for input nodes (externally supplied) and bias nodes
// (always 1.0).
func (n *NNode) Load(value float64) {
	n.Activation = value
	n.activated = true
}

// activate computes this node's output from the sum of its enabled incoming
// links using the registered activation function, and stores it.
func (n *NNode) activate() error {
	sum := n.Bias
	for _, l := range n.Incoming {
		if !l.Enabled {
			continue
		}
		sum += l.Weight * l.InNode.Activation
	}
	out, err := activation.Registry.Activate(n.ActivationType, sum)
	if err != nil {
		return fmt.Errorf("network: node %d: %w", n.Id, err)
	}
	n.Activation = out
	n.activated = true
	return nil
}

func (n *NNode) String() string {
	return fmt.Sprintf("NNode(id:%d, %s, activation:%.4f)", n.Id, RoleName(n.Role), n.Activation)
}
