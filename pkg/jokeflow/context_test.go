package jokeflow_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
)

func TestNewContext_Defaults(t *testing.T) {
	ctx := jokeflow.NewContext(context.Background())

	assert.NotEmpty(t, ctx.RunID())
	assert.NotNil(t, ctx.Logger())
	assert.Empty(t, ctx.NodeID())
}

func TestNewContext_GeneratesUniqueRunIDs(t *testing.T) {
	a := jokeflow.NewContext(context.Background())
	b := jokeflow.NewContext(context.Background())

	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestNewContext_Options(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := jokeflow.NewContext(context.Background(),
		jokeflow.WithContextRunID("run-42"),
		jokeflow.WithContextLogger(logger),
	)

	assert.Equal(t, "run-42", ctx.RunID())
	assert.Same(t, logger, ctx.Logger())
}

func TestNewContext_WrapsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := jokeflow.NewContext(parent)

	require.NoError(t, ctx.Err())
	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
