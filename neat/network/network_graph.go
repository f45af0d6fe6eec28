package network

import (
	"github.com/arcevo/neat/neat/activation"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
)

// ID implements graph.Node.
func (n *NNode) ID() int64 {
	return n.Id
}

// Attributes implements encoding.Attributer, used by the DOT exporter to
// annotate each rendered node with its role and activation kind.
func (n *NNode) Attributes() []encoding.Attribute {
	attrs := []encoding.Attribute{{Key: "role", Value: RoleName(n.Role)}}
	if name, err := activation.Registry.NameOf(n.ActivationType); err == nil {
		attrs = append(attrs, encoding.Attribute{Key: "activation", Value: name})
	}
	return attrs
}

// From implements graph.Edge.
func (l *Link) From() graph.Node { return l.InNode }

// To implements graph.Edge.
func (l *Link) To() graph.Node { return l.OutNode }

// ReversedEdge implements graph.Edge.
func (l *Link) ReversedEdge() graph.Edge {
	return &Link{Weight: l.Weight, InNode: l.OutNode, OutNode: l.InNode, Enabled: l.Enabled}
}

// Node returns the node with the given id, or nil if it is not part of the
// graph. Implements graph.Graph.
func (n *Network) Node(id int64) graph.Node {
	node := n.byID[id]
	if node == nil {
		return nil
	}
	return node
}

// Nodes returns all nodes in the graph. Implements graph.Graph.
func (n *Network) Nodes() graph.Nodes {
	return newNodeIterator(n.nodes)
}

// From returns nodes directly reachable from id via an enabled link.
// Implements graph.Graph.
func (n *Network) From(id int64) graph.Nodes {
	node := n.byID[id]
	if node == nil {
		return graph.Empty
	}
	var reachable []*NNode
	for _, l := range node.Outgoing {
		if l.Enabled {
			reachable = append(reachable, l.OutNode)
		}
	}
	return newNodeIterator(reachable)
}

// To returns nodes that directly reach id via an enabled link. Implements
// graph.Directed.
func (n *Network) To(id int64) graph.Nodes {
	node := n.byID[id]
	if node == nil {
		return graph.Empty
	}
	var reachable []*NNode
	for _, l := range node.Incoming {
		if l.Enabled {
			reachable = append(reachable, l.InNode)
		}
	}
	return newNodeIterator(reachable)
}

// HasEdgeBetween reports whether an edge exists between uid and vid in
// either direction. Implements graph.Graph.
func (n *Network) HasEdgeBetween(uid, vid int64) bool {
	return n.edgeBetween(uid, vid) != nil || n.edgeBetween(vid, uid) != nil
}

// HasEdgeFromTo reports whether an enabled edge exists from uid to vid.
// Implements graph.Directed.
func (n *Network) HasEdgeFromTo(uid, vid int64) bool {
	return n.edgeBetween(uid, vid) != nil
}

// Edge returns the edge from uid to vid, or nil if none exists. Implements
// graph.Graph.
func (n *Network) Edge(uid, vid int64) graph.Edge {
	l := n.edgeBetween(uid, vid)
	if l == nil {
		return nil
	}
	return l
}

func (n *Network) edgeBetween(uid, vid int64) *Link {
	u := n.byID[uid]
	if u == nil {
		return nil
	}
	for _, l := range u.Outgoing {
		if l.Enabled && l.OutNode.Id == vid {
			return l
		}
	}
	return nil
}

// nodeIterator implements graph.Nodes over a fixed slice of nodes.
type nodeIterator struct {
	nodes []*NNode
	index int
}

func newNodeIterator(nodes []*NNode) graph.Nodes {
	return &nodeIterator{nodes: nodes, index: -1}
}

func (it *nodeIterator) Next() bool {
	if it.index+1 >= len(it.nodes) {
		return false
	}
	it.index++
	return true
}

func (it *nodeIterator) Len() int {
	return len(it.nodes) - (it.index + 1)
}

func (it *nodeIterator) Node() graph.Node {
	if it.index < 0 || it.index >= len(it.nodes) {
		return nil
	}
	return it.nodes[it.index]
}

func (it *nodeIterator) Reset() {
	it.index = -1
}
