package genetics

// InnovationKind distinguishes the two structural mutations that consult the
// innovation registry.
type InnovationKind byte

const (
	// NewConnectionInnovation records a fresh connection between two
	// existing nodes.
	NewConnectionInnovation InnovationKind = iota
	// NodeSplitInnovation records a connection split into a new hidden node
	// and two replacement connections.
	NodeSplitInnovation
)

// Innovation is a historical record of one structural mutation: two nodes
// fully specify where the mutation occurred.
type Innovation struct {
	Kind      InnovationKind
	InNodeId  int64
	OutNodeId int64

	// InnovationId is the id assigned to this structural change. For a
	// node-split, it is the id of the in->new connection.
	InnovationId int64
	// SecondInnovationId is the id of the new->out connection, set only for
	// node-split innovations.
	SecondInnovationId int64
	// NodeId is the synthesised hidden node's id, set only for node-split
	// innovations.
	NodeId int64
	// OriginalWeight is the weight the split connection carried at the
	// moment of the split, preserved on the new->out replacement connection.
	OriginalWeight float64
}

type innovationKey struct {
	inNodeId  int64
	outNodeId int64
	kind      InnovationKind
}

// InnovationRegistry assigns globally consistent identifiers to structural
// genome changes, for the lifetime of a population. Its per-generation
// memoisation table ensures that two genomes independently performing the
// same structural mutation in the same generation receive identical ids
// (see DESIGN.md on memoisation lifetime).
type InnovationRegistry struct {
	nextInnovationId int64
	nextNodeId       int64
	nextSpeciesId    int64

	generation map[innovationKey]*Innovation
}

// NewInnovationRegistry creates a registry whose node id counter starts at
// firstNodeId (callers pass one above the highest node id of the
// population's template genome) and whose innovation id counter starts at
// firstInnovationId. The template's own connections draw their innovation
// ids from the registry, so they are numbered from firstInnovationId.
func NewInnovationRegistry(firstNodeId, firstInnovationId int64) *InnovationRegistry {
	return &InnovationRegistry{
		nextInnovationId: firstInnovationId,
		nextNodeId:       firstNodeId,
		nextSpeciesId:    1,
		generation:       make(map[innovationKey]*Innovation),
	}
}

// NextSpeciesId returns a fresh, monotonically increasing species id.
func (r *InnovationRegistry) NextSpeciesId() int64 {
	id := r.nextSpeciesId
	r.nextSpeciesId++
	return id
}

// ClearGeneration discards the per-generation memoisation table. Called once
// per generation advance, per the prescribed memoisation lifetime.
func (r *InnovationRegistry) ClearGeneration() {
	r.generation = make(map[innovationKey]*Innovation)
}

// AssignConnection returns the innovation id for a new connection between
// inNodeId and outNodeId, reusing the id already assigned this generation if
// the identical mutation was already observed.
func (r *InnovationRegistry) AssignConnection(inNodeId, outNodeId int64) int64 {
	key := innovationKey{inNodeId, outNodeId, NewConnectionInnovation}
	if existing, ok := r.generation[key]; ok {
		return existing.InnovationId
	}
	id := r.nextInnovationId
	r.nextInnovationId++
	r.generation[key] = &Innovation{
		Kind:         NewConnectionInnovation,
		InNodeId:     inNodeId,
		OutNodeId:    outNodeId,
		InnovationId: id,
	}
	return id
}

// AssignSplit returns the (new hidden node id, in->new innovation id,
// new->out innovation id) triple for splitting the connection inNodeId ->
// outNodeId, reusing the same triple if the identical split was already
// observed this generation.
func (r *InnovationRegistry) AssignSplit(inNodeId, outNodeId int64, originalWeight float64) (nodeId, firstInnovationId, secondInnovationId int64) {
	key := innovationKey{inNodeId, outNodeId, NodeSplitInnovation}
	if existing, ok := r.generation[key]; ok {
		return existing.NodeId, existing.InnovationId, existing.SecondInnovationId
	}
	nodeId = r.nextNodeId
	r.nextNodeId++
	firstInnovationId = r.nextInnovationId
	r.nextInnovationId++
	secondInnovationId = r.nextInnovationId
	r.nextInnovationId++
	r.generation[key] = &Innovation{
		Kind:               NodeSplitInnovation,
		InNodeId:           inNodeId,
		OutNodeId:          outNodeId,
		InnovationId:       firstInnovationId,
		SecondInnovationId: secondInnovationId,
		NodeId:             nodeId,
		OriginalWeight:     originalWeight,
	}
	return nodeId, firstInnovationId, secondInnovationId
}
