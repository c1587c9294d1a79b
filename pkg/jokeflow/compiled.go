package jokeflow

// CompiledGraph is an immutable, executable graph.
// It is created by calling Compile() on a Graph builder.
//
// CompiledGraph is thread-safe and can be used concurrently for
// multiple Run() calls. The graph structure cannot be modified after
// compilation.
//
// Use the introspection methods (NodeIDs, Successors, Labels) to
// examine the structure for debugging or visualization.
type CompiledGraph[S Applier[S]] struct {
	nodes            map[string]StepFunc[S]
	edges            map[string]string
	conditionalEdges map[string]conditionalEdge[S]
	entryPoint       string

	// Pre-computed for efficient lookup
	successors   map[string][]string
	predecessors map[string][]string
}

// EntryPoint returns the entry node ID.
func (cg *CompiledGraph[S]) EntryPoint() string {
	return cg.entryPoint
}

// NodeIDs returns all node identifiers in the graph.
// The order is not guaranteed.
func (cg *CompiledGraph[S]) NodeIDs() []string {
	ids := make([]string, 0, len(cg.nodes))
	for id := range cg.nodes {
		ids = append(ids, id)
	}
	return ids
}

// HasNode checks if a node exists in the graph.
func (cg *CompiledGraph[S]) HasNode(id string) bool {
	_, exists := cg.nodes[id]
	return exists
}

// Successors returns every target the node can route to, including
// conditional label targets. Returns nil for END or unknown nodes.
func (cg *CompiledGraph[S]) Successors(id string) []string {
	if id == END {
		return nil
	}
	return cg.successors[id]
}

// Predecessors returns the node IDs that have edges to the given node.
// Returns nil for the entry node or unknown nodes.
func (cg *CompiledGraph[S]) Predecessors(id string) []string {
	return cg.predecessors[id]
}

// IsConditional returns true if the node has a conditional edge.
func (cg *CompiledGraph[S]) IsConditional(id string) bool {
	_, exists := cg.conditionalEdges[id]
	return exists
}

// IsTerminal returns true if the node has no outgoing edge set, so the
// run halts after executing it.
func (cg *CompiledGraph[S]) IsTerminal(id string) bool {
	if !cg.HasNode(id) {
		return false
	}
	return len(cg.successors[id]) == 0
}

// Labels returns the declared labels of the node's conditional edge.
// Returns nil for nodes without a conditional edge. The order is not
// guaranteed.
func (cg *CompiledGraph[S]) Labels(id string) []string {
	ce, exists := cg.conditionalEdges[id]
	if !exists {
		return nil
	}
	labels := make([]string, 0, len(ce.targets))
	for label := range ce.targets {
		labels = append(labels, label)
	}
	return labels
}

// getNode returns the step function for the given ID.
// Used internally by the executor.
func (cg *CompiledGraph[S]) getNode(id string) (StepFunc[S], bool) {
	fn, exists := cg.nodes[id]
	return fn, exists
}

// getConditional returns the conditional edge for the given node.
// Used internally by the executor.
func (cg *CompiledGraph[S]) getConditional(id string) (conditionalEdge[S], bool) {
	ce, exists := cg.conditionalEdges[id]
	return ce, exists
}

// getEdge returns the static edge target for the given node.
// Used internally by the executor.
func (cg *CompiledGraph[S]) getEdge(id string) (string, bool) {
	to, exists := cg.edges[id]
	return to, exists
}
