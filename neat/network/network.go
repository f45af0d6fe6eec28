package network

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// Network is the phenotype: a concrete, pointer-linked evaluable graph built
// fresh from a genome's nodes and enabled connections. Genomes themselves
// never hold pointers between nodes (see the genetics package); Network is
// where the speed of pointer traversal is worth paying for.
type Network struct {
	// Name identifies the network, used as the DOT graph name when exported.
	Name string

	nodes      []*NNode
	byID       map[int64]*NNode
	inputs     []*NNode
	outputs    []*NNode

	evalOrder []*NNode
	dirty     bool
}

// NewNetwork builds a phenotype from the given nodes and links. inputIDs and
// outputIDs fix the declaration order used by Activate to load inputs and
// read outputs.
func NewNetwork(name string, nodes []*NNode, inputIDs, outputIDs []int64) (*Network, error) {
	n := &Network{
		Name:  name,
		nodes: nodes,
		byID:  make(map[int64]*NNode, len(nodes)),
		dirty: true,
	}
	for _, node := range nodes {
		n.byID[node.Id] = node
	}
	for _, id := range inputIDs {
		node, ok := n.byID[id]
		if !ok {
			return nil, ErrUnknownNode
		}
		n.inputs = append(n.inputs, node)
	}
	for _, id := range outputIDs {
		node, ok := n.byID[id]
		if !ok {
			return nil, ErrUnknownNode
		}
		n.outputs = append(n.outputs, node)
	}
	if _, err := n.evaluationOrder(); err != nil {
		return nil, err
	}
	return n, nil
}

// NodeByID returns the node with the given id, or nil if absent.
func (n *Network) NodeByID(id int64) *NNode {
	return n.byID[id]
}

// Complexity is the total node and enabled-link count, the structural size
// measure used to report and compare evolved topologies.
func (n *Network) Complexity() int {
	complexity := len(n.nodes)
	for _, node := range n.nodes {
		for _, link := range node.Outgoing {
			if link.Enabled {
				complexity++
			}
		}
	}
	return complexity
}

// Activate sets the input and bias nodes' values from inputs (bias nodes
// always receive 1.0), then computes every non-input node's value once in
// topological evaluation order, and returns the output nodes' activations in
// their declaration order.
func (n *Network) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != len(n.inputs) {
		return nil, ErrInputArityMismatch
	}

	order, err := n.evaluationOrder()
	if err != nil {
		return nil, err
	}

	for _, node := range n.nodes {
		node.Reset()
	}
	for i, node := range n.inputs {
		node.Load(inputs[i])
	}

	for _, node := range order {
		if node.IsSensor() {
			if node.Role == Bias {
				node.Load(1.0)
			}
			continue
		}
		if err := node.activate(); err != nil {
			return nil, err
		}
	}

	out := make([]float64, len(n.outputs))
	for i, node := range n.outputs {
		out[i] = node.Activation
	}
	return out, nil
}

// invalidate marks the cached evaluation order stale so the next
// evaluationOrder call recomputes it. Nothing in the module calls it: a
// genome that changes structure discards its Network and builds a new one.
func (n *Network) invalidate() {
	n.dirty = true
}

// evaluationOrder returns the topological ordering of all nodes consistent
// with enabled links, computing and caching it on first use.
func (n *Network) evaluationOrder() ([]*NNode, error) {
	if !n.dirty && n.evalOrder != nil {
		return n.evalOrder, nil
	}
	sorted, err := topo.SortStabilized(n, byNodeID)
	if err != nil {
		if _, ok := err.(topo.Unorderable); ok {
			return nil, ErrCyclicGraph
		}
		return nil, fmt.Errorf("network: topological sort failed: %w", err)
	}
	order := make([]*NNode, len(sorted))
	for i, gn := range sorted {
		order[i] = gn.(*NNode)
	}
	n.evalOrder = order
	n.dirty = false
	return order, nil
}

func byNodeID(nodes []graph.Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1].ID() > nodes[j].ID(); j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}
