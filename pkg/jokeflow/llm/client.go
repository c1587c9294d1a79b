// Package llm provides the generative text capability used by the
// writer and critic nodes: a Client interface, an adapter that shells
// out to the Claude CLI, and a mock client for tests.
//
// The engine knows nothing about this package. Node constructors
// receive a Client explicitly; how a node interprets a completion
// (e.g. reading a critic's verdict as approval) is the node's policy,
// not the client's.
package llm

import "context"

// Client is the completion interface all providers implement.
type Client interface {
	// Complete sends a completion request and returns the full response.
	// Implementations should honor ctx cancellation and deadlines; the
	// calling node decides whether a failure propagates or a fallback is
	// substituted.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
