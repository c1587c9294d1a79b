/*
Package jokeflow implements a workflow execution engine: a directed
graph of named nodes connected by static and conditional edges,
executed against a schema-merged state until a terminal is reached or
the step ceiling is hit.

# Model

A node wraps a step function that receives the current state and
returns a partial update. The executor owns the merge: each field of a
partial is folded into state per the field's declared policy (Replace
overwrites, Append concatenates), producing a new state value per step.
Routing happens after the merge, so conditional decisions always see
the state the step just produced.

Edges are either static (from -> to) or conditional (from -> decision
function -> label table). Decision functions are plain state-to-label
mappings; every label a decision can return must have a target
registered at build time.

# Building and running

	schema := state.NewSchema(
	    state.Field{Name: "log", Policy: state.Append},
	    state.Field{Name: "flag", Policy: state.Replace, Default: false},
	)

	graph := jokeflow.NewGraph[state.State]().
	    AddNode("a", stepA).
	    AddNode("b", stepB).
	    AddEdge("a", "b").
	    AddConditionalEdge("b", route, map[string]string{
	        "again": "a",
	        "done":  jokeflow.END,
	    }).
	    SetEntry("a")

	compiled, err := graph.Compile()
	if err != nil {
	    // *GraphConfigError listing every problem found
	}

	ctx := jokeflow.NewContext(context.Background())
	final, err := compiled.Run(ctx, state.MustNew(schema, nil))

Compile() validates the graph up front: entry point, edge targets,
label targets, and path to a terminal. Run() is single-threaded and
synchronous; each step runs to completion before the next is resolved.
The step ceiling (WithMaxSteps) is the only built-in bound on run
length, and the engine never retries anything - retry loops are
expressed as graph topology, not engine policy.

# Errors

Build problems surface as *GraphConfigError from Compile(). At run
time, step errors are wrapped in *NodeError and abort the run; hitting
the ceiling returns *StepLimitError carrying the last state reached.
*UnknownNodeError and *RoutingError are defensive invariant violations
that should be unreachable once compilation passed.
*/
package jokeflow
