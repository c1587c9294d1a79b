package jokeflow

import "github.com/randalmurphal/jokeflow/pkg/jokeflow/state"

// END is the terminal marker.
// Use this as an edge target (or a conditional label target) to indicate
// the graph should halt.
const END = "__end__"

// Applier is the constraint on graph state types: anything that can fold
// a partial update into itself, producing a new value.
//
// Apply must be pure and must return an unchanged basis value alongside
// a *state.SchemaError when the partial references an undeclared field.
// state.State is the canonical implementation.
type Applier[S any] interface {
	Apply(p state.Partial) (S, error)
}

// StepFunc is the signature for all node step functions.
// A step receives the execution context and the current state, and
// returns the partial update it proposes. The executor owns the merge;
// steps never mutate state directly.
//
// Steps may perform side effects (console I/O, joke fetching, LLM
// calls) through ports passed into their constructors, but must be
// deterministic with respect to the state transformation given
// identical external responses.
//
// Example:
//
//	func fetchJoke(ctx jokeflow.Context, s state.State) (state.Partial, error) {
//	    text, err := source.Fetch(ctx, s.String("category"), s.String("language"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return state.Partial{"jokes": []any{text}}, nil
//	}
type StepFunc[S Applier[S]] func(ctx Context, s S) (state.Partial, error)

// DecisionFunc selects the label of the branch to follow after a node
// with a conditional edge. It sees the post-merge state: the partial
// the node just produced has already been folded in.
//
// The returned label must be one of the labels declared in the
// conditional edge's target table; anything else is a RoutingError at
// run time (and should be unreachable given compile-time validation).
type DecisionFunc[S Applier[S]] func(ctx Context, s S) string
