package jokeflow

import (
	"fmt"
	"strings"
	"sync"
)

// conditionalEdge pairs a decision function with its label→target table.
type conditionalEdge[S Applier[S]] struct {
	decide  DecisionFunc[S]
	targets map[string]string
}

// Graph is a mutable builder for creating workflow graphs.
// Use NewGraph to create one, then chain AddNode, AddEdge,
// AddConditionalEdge, and SetEntry calls to define the workflow.
//
// Graph is NOT thread-safe during building. Construct it from a single
// goroutine, then call Compile() to obtain an immutable CompiledGraph
// that can be shared freely.
//
// Example:
//
//	graph := jokeflow.NewGraph[state.State]().
//	    AddNode("show_menu", menu).
//	    AddNode("fetch_joke", fetch).
//	    AddConditionalEdge("show_menu", route, map[string]string{
//	        "next": "fetch_joke",
//	        "quit": jokeflow.END,
//	    }).
//	    AddEdge("fetch_joke", "show_menu").
//	    SetEntry("show_menu")
//
//	compiled, err := graph.Compile()
type Graph[S Applier[S]] struct {
	mu               sync.RWMutex
	nodes            map[string]StepFunc[S]
	edges            map[string]string
	conditionalEdges map[string]conditionalEdge[S]
	entryPoint       string
}

// NewGraph creates a new graph builder for state type S.
func NewGraph[S Applier[S]]() *Graph[S] {
	return &Graph[S]{
		nodes:            make(map[string]StepFunc[S]),
		edges:            make(map[string]string),
		conditionalEdges: make(map[string]conditionalEdge[S]),
	}
}

// AddNode registers a named node.
// Returns the graph for method chaining.
//
// Panics if:
//   - id is empty
//   - id is the reserved word "END" or "__end__" (case-insensitive)
//   - id contains whitespace
//   - fn is nil
//   - id is already registered
//
// These are build-time programmer errors, not run-time conditions.
func (g *Graph[S]) AddNode(id string, fn StepFunc[S]) *Graph[S] {
	if id == "" {
		panic("jokeflow: node ID cannot be empty")
	}

	idLower := strings.ToLower(id)
	if idLower == "end" || idLower == "__end__" {
		panic("jokeflow: node ID cannot be reserved word 'END'")
	}

	if strings.ContainsAny(id, " \t\n\r") {
		panic("jokeflow: node ID cannot contain whitespace")
	}

	if fn == nil {
		panic("jokeflow: step function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		panic(fmt.Sprintf("jokeflow: duplicate node ID: %s", id))
	}

	g.nodes[id] = fn
	return g
}

// AddEdge adds an unconditional edge from one node to another.
// The target can be a node ID or jokeflow.END.
// Returns the graph for method chaining.
//
// Edge validation happens at Compile() time, not here, so edges may be
// added in any order relative to their nodes. A node may carry one
// static edge or one conditional edge, never both; adding a second
// outgoing edge of either kind panics.
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.edges[from]; exists {
		panic(fmt.Sprintf("jokeflow: node %s already has an outgoing edge", from))
	}
	if _, exists := g.conditionalEdges[from]; exists {
		panic(fmt.Sprintf("jokeflow: node %s already has a conditional edge", from))
	}

	g.edges[from] = to
	return g
}

// AddConditionalEdge adds a conditional edge: at run time, decide is
// invoked against the post-merge state and the returned label is looked
// up in targets to select the next node. Every label the decision
// function can return must appear in targets; target values may be node
// IDs or jokeflow.END.
// Returns the graph for method chaining.
//
// Panics if decide is nil or targets is empty. Target validation
// happens at Compile() time.
func (g *Graph[S]) AddConditionalEdge(from string, decide DecisionFunc[S], targets map[string]string) *Graph[S] {
	if decide == nil {
		panic("jokeflow: decision function cannot be nil")
	}
	if len(targets) == 0 {
		panic("jokeflow: conditional edge requires at least one labeled target")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.edges[from]; exists {
		panic(fmt.Sprintf("jokeflow: node %s already has an outgoing edge", from))
	}
	if _, exists := g.conditionalEdges[from]; exists {
		panic(fmt.Sprintf("jokeflow: node %s already has a conditional edge", from))
	}

	// Copy the table so later caller mutations can't skew routing.
	copied := make(map[string]string, len(targets))
	for label, to := range targets {
		copied[label] = to
	}

	g.conditionalEdges[from] = conditionalEdge[S]{decide: decide, targets: copied}
	return g
}

// SetEntry designates the entry point node.
// This must be called before Compile().
// Returns the graph for method chaining.
func (g *Graph[S]) SetEntry(id string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entryPoint = id
	return g
}
