// Package jokeflow provides a graph-based workflow execution engine
// with schema-merged state.
package jokeflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph building and compilation.
var (
	// ErrNoEntryPoint indicates SetEntry() was not called before Compile().
	ErrNoEntryPoint = errors.New("entry point not set")

	// ErrEntryNotFound indicates the entry point references a non-existent node.
	ErrEntryNotFound = errors.New("entry point node not found")

	// ErrNodeNotFound indicates an edge references a non-existent node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoPathToEnd indicates no path exists from the entry point to a terminal.
	ErrNoPathToEnd = errors.New("no path to END from entry")
)

// Sentinel errors for execution.
var (
	// ErrStepLimit indicates the execution loop exceeded the configured ceiling.
	ErrStepLimit = errors.New("exceeded step ceiling")

	// ErrNilContext indicates Run() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrUndeclaredLabel indicates a decision function returned a label
	// with no entry in the conditional edge's target table.
	ErrUndeclaredLabel = errors.New("decision returned undeclared label")
)

// GraphConfigError aggregates everything Compile() found wrong with the
// graph: dangling edge targets, a missing or unregistered entry node,
// conflicting outgoing edges. It is fatal and surfaced immediately to
// the caller constructing the graph; nothing retries it.
type GraphConfigError struct {
	// Errs holds one diagnostic per problem found.
	Errs []error
}

// Error implements the error interface.
func (e *GraphConfigError) Error() string {
	return fmt.Sprintf("invalid graph configuration: %v", errors.Join(e.Errs...))
}

// Unwrap exposes the individual diagnostics for errors.Is/As.
func (e *GraphConfigError) Unwrap() []error {
	return e.Errs
}

// UnknownNodeError indicates the executor failed to look up the current
// node's step function. This is a defensive invariant violation: it
// should be unreachable once Compile() has passed.
type UnknownNodeError struct {
	// NodeID is the identifier that failed to resolve.
	NodeID string
}

// Error implements the error interface.
func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node: %s", e.NodeID)
}

// NodeError wraps an error with node context.
// It reports which node failed and what operation was attempted.
type NodeError struct {
	// NodeID is the identifier of the node that failed.
	NodeID string
	// Op is the operation that failed ("execute", "merge").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.NodeID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from step execution.
// It includes the stack trace for debugging.
type PanicError struct {
	// NodeID is the identifier of the node that panicked.
	NodeID string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.NodeID, e.Value)
}

// CancellationError captures the state when execution was cancelled.
// The state at the point of cancellation is preserved for inspection.
type CancellationError struct {
	// NodeID is the node that was about to execute.
	NodeID string
	// State is the state at cancellation (type-assert to the state type).
	State any
	// Cause is context.Canceled or context.DeadlineExceeded.
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("cancelled before node %s: %v", e.NodeID, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}

// RoutingError indicates a decision function returned a label that has
// no entry in its conditional edge's target table. Given compile-time
// validation, this is a defensive invariant violation: fatal, never
// retried.
type RoutingError struct {
	// FromNode is the node with the conditional edge.
	FromNode string
	// Label is the value the decision function returned.
	Label string
}

// Error implements the error interface.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("routing from %s: label %q has no target", e.FromNode, e.Label)
}

// Unwrap returns ErrUndeclaredLabel for errors.Is support.
func (e *RoutingError) Unwrap() error {
	return ErrUndeclaredLabel
}

// StepLimitError reports that a run exceeded the step ceiling.
// It carries the last state reached so the caller can inspect progress;
// the run is not retried automatically, but the caller may start a
// fresh one.
type StepLimitError struct {
	// Limit is the configured step ceiling.
	Limit int
	// NodeID is the node that would have executed next.
	NodeID string
	// State is the state at termination (type-assert to the state type).
	State any
}

// Error implements the error interface.
func (e *StepLimitError) Error() string {
	return fmt.Sprintf("exceeded step ceiling (%d) at node %s", e.Limit, e.NodeID)
}

// Unwrap returns ErrStepLimit for errors.Is support.
func (e *StepLimitError) Unwrap() error {
	return ErrStepLimit
}
