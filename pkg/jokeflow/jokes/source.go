// Package jokes provides the joke source capability: a lookup that,
// given a category and language, returns joke text. Implementations
// range from an embedded in-memory dataset to a SQLite-backed store.
package jokes

import (
	"context"
	"errors"
)

// Source fetches joke text for a category and language.
// Implementations must be safe for concurrent use.
type Source interface {
	// Fetch returns one joke for the category and language.
	// Returns an error wrapping ErrUnavailable when no joke can be
	// produced; the calling node decides whether to propagate or
	// substitute a fallback.
	Fetch(ctx context.Context, category, language string) (string, error)
}

// ErrUnavailable indicates the source has no joke for the requested
// category and language, or the backing store failed.
var ErrUnavailable = errors.New("joke source unavailable")

// Joke is the immutable artifact a run accumulates: text plus the
// category it was produced under. Construct with NewJoke; never
// modified after creation.
type Joke struct {
	Text     string
	Category string
}

// NewJoke creates a joke artifact.
func NewJoke(text, category string) Joke {
	return Joke{Text: text, Category: category}
}
