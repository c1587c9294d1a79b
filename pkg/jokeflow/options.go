package jokeflow

import (
	"log/slog"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow/observability"
)

// runConfig holds configuration for graph execution.
type runConfig struct {
	maxSteps       int
	runID          string
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
}

// defaultRunConfig returns the default execution configuration.
func defaultRunConfig() runConfig {
	return runConfig{
		maxSteps: 1000,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
}

// RunOption configures execution behavior.
type RunOption func(*runConfig)

// WithMaxSteps sets the step ceiling: the maximum number of node
// executions before the run is aborted as runaway.
// Default: 1000
//
// The ceiling is the engine's sole built-in safety net against
// unintended infinite cycles. Legitimate interactive loops are expected
// to cycle within the ceiling until a user- or policy-driven exit;
// size it generously for such graphs rather than relying on it as the
// normal exit path.
//
// Example:
//
//	result, err := compiled.Run(ctx, initial, jokeflow.WithMaxSteps(100))
func WithMaxSteps(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// WithRunID sets the run identifier used for logging and tracing.
// Overrides the ID carried by the Context.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithLogger sets the logger used for run and node lifecycle events.
// When unset, the Context's logger is used.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder for this run.
// Use observability.NewMetricsRecorder() for OpenTelemetry metrics.
func WithMetrics(m observability.MetricsRecorder) RunOption {
	return func(c *runConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables OTel span creation per run and per node using the
// given span manager. Use observability.NewSpanManager().
func WithTracing(spans observability.SpanManager) RunOption {
	return func(c *runConfig) {
		if spans != nil {
			c.spans = spans
			c.tracingEnabled = true
		}
	}
}
