package jokeflow

import (
	"fmt"
	"log/slog"
)

// Compile validates the graph and creates an executable CompiledGraph.
// Returns a *GraphConfigError listing every problem found.
//
// Validation checks (in order):
//  1. Entry point must be set
//  2. Entry point must reference a registered node
//  3. All edge sources must reference registered nodes
//  4. All edge targets (static and per-label) must reference registered
//     nodes or END
//  5. A path from the entry to a terminal must exist
//
// A node with no outgoing edge set is terminal: it executes, then the
// run halts. Unreachable nodes are logged as warnings but do not fail
// compilation.
func (g *Graph[S]) Compile() (*CompiledGraph[S], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error

	if g.entryPoint == "" {
		errs = append(errs, ErrNoEntryPoint)
	} else if _, exists := g.nodes[g.entryPoint]; !exists {
		errs = append(errs, fmt.Errorf("%w: %s", ErrEntryNotFound, g.entryPoint))
	}

	for from, to := range g.edges {
		if _, exists := g.nodes[from]; !exists {
			errs = append(errs, fmt.Errorf("%w: edge source '%s' is not registered", ErrNodeNotFound, from))
		}
		if to != END {
			if _, exists := g.nodes[to]; !exists {
				errs = append(errs, fmt.Errorf("%w: edge target '%s' is not registered", ErrNodeNotFound, to))
			}
		}
	}

	for from, ce := range g.conditionalEdges {
		if _, exists := g.nodes[from]; !exists {
			errs = append(errs, fmt.Errorf("%w: conditional edge source '%s' is not registered", ErrNodeNotFound, from))
		}
		for label, to := range ce.targets {
			if to != END {
				if _, exists := g.nodes[to]; !exists {
					errs = append(errs, fmt.Errorf("%w: label %q targets unregistered node '%s'", ErrNodeNotFound, label, to))
				}
			}
		}
	}

	if g.entryPoint != "" {
		if _, exists := g.nodes[g.entryPoint]; exists {
			if !g.hasPathToEnd() {
				errs = append(errs, ErrNoPathToEnd)
			}
		}
	}

	g.warnUnreachableNodes()

	if len(errs) > 0 {
		return nil, &GraphConfigError{Errs: errs}
	}

	return g.buildCompiledGraph(), nil
}

// outgoing returns every target a node can route to. Labels are
// enumerable, so conditional targets are known at compile time.
func (g *Graph[S]) outgoing(id string) []string {
	if to, ok := g.edges[id]; ok {
		return []string{to}
	}
	if ce, ok := g.conditionalEdges[id]; ok {
		targets := make([]string, 0, len(ce.targets))
		for _, to := range ce.targets {
			targets = append(targets, to)
		}
		return targets
	}
	return nil
}

// hasPathToEnd checks that some path leads from the entry to a
// terminal, using reverse reachability. A node with no outgoing edges
// is itself terminal.
func (g *Graph[S]) hasPathToEnd() bool {
	canHalt := make(map[string]bool)
	canHalt[END] = true

	for id := range g.nodes {
		if len(g.outgoing(id)) == 0 {
			canHalt[id] = true
		}
	}

	changed := true
	for changed {
		changed = false
		for id := range g.nodes {
			if canHalt[id] {
				continue
			}
			for _, to := range g.outgoing(id) {
				if canHalt[to] {
					canHalt[id] = true
					changed = true
					break
				}
			}
		}
	}

	return canHalt[g.entryPoint]
}

// warnUnreachableNodes logs a warning for each node the entry cannot reach.
func (g *Graph[S]) warnUnreachableNodes() {
	if g.entryPoint == "" {
		return
	}
	if _, exists := g.nodes[g.entryPoint]; !exists {
		return
	}

	reachable := map[string]bool{g.entryPoint: true}
	queue := []string{g.entryPoint}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, to := range g.outgoing(current) {
			if to != END && !reachable[to] {
				reachable[to] = true
				queue = append(queue, to)
			}
		}
	}

	for id := range g.nodes {
		if !reachable[id] {
			slog.Warn("node is unreachable from entry", "node_id", id)
		}
	}
}

// buildCompiledGraph snapshots the builder into an immutable CompiledGraph.
func (g *Graph[S]) buildCompiledGraph() *CompiledGraph[S] {
	nodes := make(map[string]StepFunc[S], len(g.nodes))
	for id, fn := range g.nodes {
		nodes[id] = fn
	}

	edges := make(map[string]string, len(g.edges))
	for from, to := range g.edges {
		edges[from] = to
	}

	conditionalEdges := make(map[string]conditionalEdge[S], len(g.conditionalEdges))
	for from, ce := range g.conditionalEdges {
		targets := make(map[string]string, len(ce.targets))
		for label, to := range ce.targets {
			targets[label] = to
		}
		conditionalEdges[from] = conditionalEdge[S]{decide: ce.decide, targets: targets}
	}

	successors := make(map[string][]string, len(nodes))
	predecessors := make(map[string][]string)
	for id := range nodes {
		targets := g.outgoing(id)
		successors[id] = targets
		for _, to := range targets {
			if to != END {
				predecessors[to] = append(predecessors[to], id)
			}
		}
	}

	return &CompiledGraph[S]{
		nodes:            nodes,
		edges:            edges,
		conditionalEdges: conditionalEdges,
		entryPoint:       g.entryPoint,
		successors:       successors,
		predecessors:     predecessors,
	}
}
