package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records as JSON lines for inspection.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: make([]slog.Attr, len(h.attrs)+len(attrs)),
	}
	copy(newH.attrs, h.attrs)
	copy(newH.attrs[len(h.attrs):], attrs)
	return newH
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *testHandler) lastRecord() map[string]any {
	lines := bytes.Split(h.buf.Bytes(), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) > 0 {
			var m map[string]any
			if err := json.Unmarshal(lines[i], &m); err == nil {
				return m
			}
		}
	}
	return nil
}

func TestEnrichLogger_AddsFields(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	enriched := EnrichLogger(logger, "run-123", "show_menu")
	enriched.Info("hello")

	rec := h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "run-123", rec["run_id"])
	assert.Equal(t, "show_menu", rec["node_id"])
}

func TestEnrichLogger_NilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "run", "node"))
}

func TestLogRunStart(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRunStart(logger, "run-1")

	rec := h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "graph run starting", rec["msg"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.Equal(t, "INFO", rec["level"])
}

func TestLogRunComplete(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRunComplete(logger, "run-1", 42.0, 7)

	rec := h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "graph run completed", rec["msg"])
	assert.Equal(t, 42.0, rec["duration_ms"])
	assert.Equal(t, float64(7), rec["steps_executed"])
}

func TestLogRunError(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRunError(logger, "run-1", errors.New("boom"), 10.0, "critic")

	rec := h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "graph run failed", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "critic", rec["last_node"])
	assert.Equal(t, "ERROR", rec["level"])
}

func TestLogNodeStartAndComplete(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogNodeStart(logger, "fetch_joke")
	rec := h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "node starting", rec["msg"])
	assert.Equal(t, "fetch_joke", rec["node_id"])

	LogNodeComplete(logger, "fetch_joke", 3.0)
	rec = h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "node completed", rec["msg"])
	assert.Equal(t, 3.0, rec["duration_ms"])
}

func TestLogNodeError(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogNodeError(logger, "writer", errors.New("source unavailable"))

	rec := h.lastRecord()
	require.NotNil(t, rec)
	assert.Equal(t, "node failed", rec["msg"])
	assert.Equal(t, "source unavailable", rec["error"])
}

func TestLogHelpers_NilLoggerSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogRunStart(nil, "run")
		LogRunComplete(nil, "run", 0, 0)
		LogRunError(nil, "run", errors.New("x"), 0, "")
		LogNodeStart(nil, "n")
		LogNodeComplete(nil, "n", 0)
		LogNodeError(nil, "n", errors.New("x"))
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, 0.0)
}
