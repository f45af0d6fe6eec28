package genetics

import (
	"fmt"
	"sort"

	"github.com/arcevo/neat/neat/activation"
	"github.com/arcevo/neat/neat/network"
)

// Node is the genotype representation of one network node: an id, role, and
// activation kind. It never holds a pointer to another node; connections
// between nodes are expressed only through Gene.InNodeId/OutNodeId.
type Node struct {
	Id             int64
	Role           network.Role
	ActivationType activation.Type
	Bias           float64
}

// Clone returns a copy of n.
func (n *Node) Clone() *Node {
	clone := *n
	return &clone
}

// Genome is one candidate network: its nodes, its connection genes, and the
// fitness bookkeeping the population and species attach to it. There is no
// separate "organism" wrapper — fitness fields live directly on the genome,
// per the data model.
type Genome struct {
	Id int64

	Nodes []*Node
	Genes []*Gene

	// InputIds and OutputIds fix declaration order for Activate's input
	// loading and output reading.
	InputIds  []int64
	OutputIds []int64

	// Fitness is the raw score from the last fitness evaluation.
	Fitness float64
	// AdjustedFitness is Fitness divided by the owning species' size.
	AdjustedFitness float64
	// SpeciesId is the id of the species this genome was last assigned to.
	SpeciesId int64

	nextLocalNodeId int64
	topologyDirty   bool
	phenotype       *network.Network
}

// NewGenome creates an empty genome with no nodes or connections; callers
// build up its topology via AddNode/AddConnection or Clone an existing
// template.
func NewGenome(id int64) *Genome {
	return &Genome{Id: id, topologyDirty: true}
}

// NewTemplateGenome creates the minimal fully-connected genome used to seed
// a population: one bias node, inputArity input nodes, outputArity output
// nodes, and a connection from every input and the bias node to every
// output. Innovation ids are drawn from registry in a fixed, deterministic
// order so every initial genome shares the same innovation numbering.
func NewTemplateGenome(id int64, inputArity, outputArity int, registry *InnovationRegistry, defaultOutputActivation activation.Type) *Genome {
	g := NewGenome(id)

	var nextId int64 = 1
	for i := 0; i < inputArity; i++ {
		node := &Node{Id: nextId, Role: network.Input, ActivationType: activation.Linear}
		g.Nodes = append(g.Nodes, node)
		g.InputIds = append(g.InputIds, node.Id)
		nextId++
	}
	biasId := nextId
	g.Nodes = append(g.Nodes, &Node{Id: biasId, Role: network.Bias, ActivationType: activation.Linear})
	nextId++

	outputIds := make([]int64, 0, outputArity)
	for i := 0; i < outputArity; i++ {
		node := &Node{Id: nextId, Role: network.Output, ActivationType: defaultOutputActivation}
		g.Nodes = append(g.Nodes, node)
		g.OutputIds = append(g.OutputIds, node.Id)
		outputIds = append(outputIds, node.Id)
		nextId++
	}
	g.nextLocalNodeId = nextId

	for _, outId := range outputIds {
		for _, inId := range g.InputIds {
			innov := registry.AssignConnection(inId, outId)
			g.Genes = append(g.Genes, NewGene(inId, outId, 0, innov))
		}
		innov := registry.AssignConnection(biasId, outId)
		g.Genes = append(g.Genes, NewGene(biasId, outId, 0, innov))
	}

	g.topologyDirty = true
	return g
}

// NodeByID returns the node with the given id, or nil.
func (g *Genome) NodeByID(id int64) *Node {
	for _, n := range g.Nodes {
		if n.Id == id {
			return n
		}
	}
	return nil
}

// GeneByInnovation returns the connection with the given innovation id, or
// nil.
func (g *Genome) GeneByInnovation(innovationId int64) *Gene {
	for _, c := range g.Genes {
		if c.InnovationId == innovationId {
			return c
		}
	}
	return nil
}

// HasConnection reports whether a connection from inId to outId already
// exists. Only that direction is checked: an existing outId->inId
// connection does not count.
func (g *Genome) HasConnection(inId, outId int64) bool {
	for _, c := range g.Genes {
		if c.sameEndpoints(inId, outId) {
			return true
		}
	}
	return false
}

// AddNode appends a node with a fresh locally-unique id and invalidates the
// cached evaluation order.
func (g *Genome) AddNode(role network.Role, activationType activation.Type) *Node {
	node := &Node{Id: g.nextLocalNodeId, Role: role, ActivationType: activationType}
	g.nextLocalNodeId++
	g.Nodes = append(g.Nodes, node)
	g.invalidateTopology()
	return node
}

// addNodeWithID appends a node using an id assigned by the innovation
// registry (so that identical splits across genomes share a node id), and
// invalidates the cached evaluation order.
func (g *Genome) addNodeWithID(id int64, role network.Role, activationType activation.Type) *Node {
	node := &Node{Id: id, Role: role, ActivationType: activationType}
	g.Nodes = append(g.Nodes, node)
	if id >= g.nextLocalNodeId {
		g.nextLocalNodeId = id + 1
	}
	g.invalidateTopology()
	return node
}

// AddConnection appends a connection gene (in, out, weight, innovation),
// rejecting self-loops, duplicate endpoints, and — unless allowRecurrent —
// connections whose target layer does not strictly exceed the source layer.
// Rejection is a silent no-op per the failure semantics: it returns false.
func (g *Genome) AddConnection(inId, outId int64, weight float64, innovationId int64, allowRecurrent bool) (*Gene, bool) {
	if inId == outId {
		return nil, false
	}
	if g.HasConnection(inId, outId) {
		return nil, false
	}
	if !allowRecurrent {
		inNode, outNode := g.NodeByID(inId), g.NodeByID(outId)
		if inNode == nil || outNode == nil {
			return nil, false
		}
		if network.Layer(outNode.Role) <= network.Layer(inNode.Role) {
			return nil, false
		}
	}
	gene := NewGene(inId, outId, weight, innovationId)
	g.Genes = append(g.Genes, gene)
	g.invalidateTopology()
	return gene, true
}

// invalidateTopology marks the cached evaluation order (and phenotype) stale.
// Every structural mutator must call this (see DESIGN.md's Open Question
// decision on add_node cache invalidation).
func (g *Genome) invalidateTopology() {
	g.topologyDirty = true
	g.phenotype = nil
}

// Clone returns a deep copy of g's node list, connection list, and scalar
// fields; the evaluation order is recomputed lazily on first Activate/
// Phenotype call.
func (g *Genome) Clone(newId int64) *Genome {
	clone := &Genome{
		Id:              newId,
		Fitness:         g.Fitness,
		AdjustedFitness: g.AdjustedFitness,
		SpeciesId:       g.SpeciesId,
		nextLocalNodeId: g.nextLocalNodeId,
		topologyDirty:   true,
	}
	clone.Nodes = make([]*Node, len(g.Nodes))
	for i, n := range g.Nodes {
		clone.Nodes[i] = n.Clone()
	}
	clone.Genes = make([]*Gene, len(g.Genes))
	for i, c := range g.Genes {
		clone.Genes[i] = c.Clone()
	}
	clone.InputIds = append([]int64(nil), g.InputIds...)
	clone.OutputIds = append([]int64(nil), g.OutputIds...)
	return clone
}

// Phenotype builds (and caches until the next structural mutation) the
// evaluable network for this genome.
func (g *Genome) Phenotype() (*network.Network, error) {
	if g.phenotype != nil && !g.topologyDirty {
		return g.phenotype, nil
	}

	nodes := make([]*network.NNode, len(g.Nodes))
	byId := make(map[int64]*network.NNode, len(g.Nodes))
	for i, n := range g.Nodes {
		nn := network.NewNNode(n.Id, n.Role, n.ActivationType)
		nn.Bias = n.Bias
		nodes[i] = nn
		byId[n.Id] = nn
	}
	for _, c := range g.Genes {
		in, out := byId[c.InNodeId], byId[c.OutNodeId]
		if in == nil || out == nil {
			return nil, network.ErrUnknownNode
		}
		link := network.NewLink(c.Weight, in, out, c.Enabled)
		out.Incoming = append(out.Incoming, link)
		in.Outgoing = append(in.Outgoing, link)
	}

	net, err := network.NewNetwork(fmt.Sprintf("genome-%d", g.Id), nodes, g.InputIds, g.OutputIds)
	if err != nil {
		return nil, err
	}
	g.phenotype = net
	g.topologyDirty = false
	return net, nil
}

// Activate builds the phenotype (if stale) and evaluates it once against
// inputs, in output-node declaration order.
func (g *Genome) Activate(inputs []float64) ([]float64, error) {
	net, err := g.Phenotype()
	if err != nil {
		return nil, err
	}
	return net.Activate(inputs)
}

// sortedGenes returns the connection genes ordered by increasing innovation
// id, the order the compatibility metric and crossover walk requires.
func (g *Genome) sortedGenes() []*Gene {
	sorted := append([]*Gene(nil), g.Genes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].InnovationId < sorted[j].InnovationId })
	return sorted
}

func (g *Genome) String() string {
	return fmt.Sprintf("Genome(id:%d, nodes:%d, genes:%d, fitness:%.4f)", g.Id, len(g.Nodes), len(g.Genes), g.Fitness)
}
