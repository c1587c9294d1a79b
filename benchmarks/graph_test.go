// Package benchmarks measures graph construction and execution
// overhead. Run with: go test -bench=. ./benchmarks/
package benchmarks

import (
	"fmt"
	"testing"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

// benchSchema keeps merging cheap so the framework dominates the
// measurement.
func benchSchema() *state.Schema {
	return state.NewSchema(
		state.Field{Name: "value", Policy: state.Replace, Default: 0},
	)
}

// noopNode does minimal work to measure framework overhead.
func noopNode(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	return state.Partial{}, nil
}

func nodeID(i int) string {
	return fmt.Sprintf("node%d", i)
}

// buildLinearGraph creates a chain of n nodes ending at END.
func buildLinearGraph(n int) *jokeflow.Graph[state.State] {
	g := jokeflow.NewGraph[state.State]()
	for i := 0; i < n; i++ {
		g.AddNode(nodeID(i), noopNode)
	}
	for i := 0; i < n-1; i++ {
		g.AddEdge(nodeID(i), nodeID(i+1))
	}
	g.AddEdge(nodeID(n-1), jokeflow.END)
	g.SetEntry(nodeID(0))
	return g
}

func mustCompile(b *testing.B, g *jokeflow.Graph[state.State]) *jokeflow.CompiledGraph[state.State] {
	b.Helper()
	compiled, err := g.Compile()
	if err != nil {
		b.Fatal(err)
	}
	return compiled
}

func BenchmarkNewGraph(b *testing.B) {
	for i := 0; i < b.N; i++ {
		jokeflow.NewGraph[state.State]()
	}
}

func BenchmarkAddNode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		graph := jokeflow.NewGraph[state.State]()
		graph.AddNode("node", noopNode)
	}
}

func BenchmarkBuildGraph_10(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buildLinearGraph(10)
	}
}

func BenchmarkCompile_10(b *testing.B) {
	graph := buildLinearGraph(10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = graph.Compile()
	}
}

func BenchmarkCompile_100(b *testing.B) {
	graph := buildLinearGraph(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = graph.Compile()
	}
}
