package jokeflow

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow/observability"
	"go.opentelemetry.io/otel/trace"
)

// Run executes the graph with the given initial state.
// Returns the final state and any error encountered.
//
// On success, returns the state after the last node executed before the
// terminal. On error, returns the state at the point of failure.
//
// Execution flow per step:
//  1. Halt if the current node is the END marker
//  2. Check for cancellation
//  3. Execute the current node's step function, obtaining a partial update
//  4. Merge the partial into state per field policy
//  5. Resolve the next node against the post-merge state (decision
//     functions see the freshest state, never the pre-step one)
//  6. Repeat, or fail with *StepLimitError once the ceiling is hit
//
// A node with no outgoing edge set is terminal: it executes, then the
// run halts normally. The engine performs no retry anywhere; step
// errors abort the run and propagate.
//
// Example:
//
//	ctx := jokeflow.NewContext(context.Background())
//	result, err := compiled.Run(ctx, initial)
//	if err != nil {
//	    // result holds the state at the point of failure
//	}
func (cg *CompiledGraph[S]) Run(ctx Context, s S, opts ...RunOption) (result S, runErr error) {
	if ctx == nil {
		return s, ErrNilContext
	}

	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	runID := cfg.runID
	if runID == "" {
		runID = ctx.RunID()
	}
	if cfg.logger == nil {
		cfg.logger = ctx.Logger()
	}

	startTime := time.Now()
	observability.LogRunStart(cfg.logger, runID)

	var execCtx context.Context = ctx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		execCtx, runSpan = cfg.spans.StartRunSpan(ctx, "jokeflow", runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var steps int
	result, steps, runErr = cg.runLoop(execCtx, ctx, s, &cfg)

	duration := time.Since(startTime)
	cfg.metrics.RecordGraphRun(ctx, runErr == nil, duration)

	if runErr != nil {
		lastNode := ""
		switch e := runErr.(type) {
		case *NodeError:
			lastNode = e.NodeID
		case *StepLimitError:
			lastNode = e.NodeID
		case *CancellationError:
			lastNode = e.NodeID
		}
		observability.LogRunError(cfg.logger, runID, runErr, float64(duration.Milliseconds()), lastNode)
	} else {
		observability.LogRunComplete(cfg.logger, runID, float64(duration.Milliseconds()), steps)
	}

	return result, runErr
}

// runLoop drives the state machine from the entry point.
// tracingCtx carries span context; fgCtx is the jokeflow Context.
// Returns the final state, the number of steps executed, and any error.
func (cg *CompiledGraph[S]) runLoop(tracingCtx context.Context, fgCtx Context, s S, cfg *runConfig) (S, int, error) {
	current := cg.entryPoint
	steps := 0

	for current != END {
		if steps >= cfg.maxSteps {
			return s, steps, &StepLimitError{
				Limit:  cfg.maxSteps,
				NodeID: current,
				State:  s,
			}
		}

		// Check for cancellation before executing the step.
		select {
		case <-fgCtx.Done():
			return s, steps, &CancellationError{
				NodeID: current,
				State:  s,
				Cause:  fgCtx.Err(),
			}
		default:
		}

		observability.LogNodeStart(cfg.logger, current)

		nodeTracingCtx := tracingCtx
		var nodeSpan trace.Span
		if cfg.tracingEnabled {
			nodeTracingCtx, nodeSpan = cfg.spans.StartNodeSpan(tracingCtx, current)
		}

		nodeStart := time.Now()
		var stepErr error
		s, stepErr = cg.executeStep(fgCtx, current, s)
		nodeDuration := time.Since(nodeStart)

		cfg.metrics.RecordNodeExecution(nodeTracingCtx, current, nodeDuration, stepErr)
		if cfg.tracingEnabled {
			cfg.spans.EndSpanWithError(nodeSpan, stepErr)
		}

		if stepErr != nil {
			observability.LogNodeError(cfg.logger, current, stepErr)
			return s, steps, stepErr
		}
		observability.LogNodeComplete(cfg.logger, current, float64(nodeDuration.Milliseconds()))
		steps++

		// Route against the post-merge state.
		next, err := cg.nextNode(fgCtx, s, current)
		if err != nil {
			return s, steps, err
		}

		current = next
	}

	return s, steps, nil
}

// executeStep runs a single step function with panic recovery and
// merges its partial update into the state.
func (cg *CompiledGraph[S]) executeStep(ctx Context, nodeID string, s S) (result S, err error) {
	fn, exists := cg.getNode(nodeID)
	if !exists {
		// Unreachable if compilation succeeded.
		return s, &UnknownNodeError{NodeID: nodeID}
	}

	nodeCtx := ctx
	if ec, ok := ctx.(*executionContext); ok {
		nodeCtx = ec.withNodeID(nodeID)
	}

	defer func() {
		if r := recover(); r != nil {
			result = s
			err = &PanicError{
				NodeID: nodeID,
				Value:  r,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	partial, err := fn(nodeCtx, s)
	if err != nil {
		return s, &NodeError{NodeID: nodeID, Op: "execute", Err: err}
	}

	merged, err := s.Apply(partial)
	if err != nil {
		// SchemaError from an undeclared field; state stays unchanged.
		return s, &NodeError{NodeID: nodeID, Op: "merge", Err: err}
	}

	return merged, nil
}

// nextNode resolves the next node to execute from the post-merge state.
// Conditional edges take their decision function's label through the
// target table; a node with no outgoing edge set resolves to END.
func (cg *CompiledGraph[S]) nextNode(ctx Context, s S, current string) (string, error) {
	if ce, exists := cg.getConditional(current); exists {
		decideCtx := ctx
		if ec, ok := ctx.(*executionContext); ok {
			decideCtx = ec.withNodeID(current)
		}

		label := ce.decide(decideCtx, s)
		next, ok := ce.targets[label]
		if !ok {
			// Unreachable if decision functions only return declared labels.
			return "", &RoutingError{FromNode: current, Label: label}
		}
		return next, nil
	}

	if to, exists := cg.getEdge(current); exists {
		return to, nil
	}

	// No outgoing edge set: the node is terminal.
	return END, nil
}
