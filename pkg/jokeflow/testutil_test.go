package jokeflow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

// testSchema covers both merge policies: count and choice are
// overwritten, trail accumulates node visits.
func testSchema() *state.Schema {
	return state.NewSchema(
		state.Field{Name: "count", Policy: state.Replace, Default: 0},
		state.Field{Name: "choice", Policy: state.Replace, Default: ""},
		state.Field{Name: "trail", Policy: state.Append},
	)
}

func newTestState(t *testing.T, overrides state.Partial) state.State {
	t.Helper()
	s, err := state.New(testSchema(), overrides)
	require.NoError(t, err)
	return s
}

func testCtx() jokeflow.Context {
	return jokeflow.NewContext(context.Background())
}

// visit returns a step function that records the node in the trail.
func visit(id string) jokeflow.StepFunc[state.State] {
	return func(ctx jokeflow.Context, s state.State) (state.Partial, error) {
		return state.Partial{"trail": id}, nil
	}
}

// increment records the node and bumps the counter.
func increment(id string) jokeflow.StepFunc[state.State] {
	return func(ctx jokeflow.Context, s state.State) (state.Partial, error) {
		return state.Partial{"trail": id, "count": s.Int("count") + 1}, nil
	}
}

func trailOf(s state.State) []string {
	seq := s.Seq("trail")
	trail := make([]string, 0, len(seq))
	for _, v := range seq {
		trail = append(trail, v.(string))
	}
	return trail
}
