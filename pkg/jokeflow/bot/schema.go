// Package bot wires the joke bot workflows: an interactive session
// that fetches jokes from a dataset, and an agentic variant where an
// LLM writer drafts jokes and an LLM critic gates them through a
// bounded retry loop.
package bot

import (
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

// State field names shared by both bot variants.
const (
	FieldJokes       = "jokes"
	FieldJokesChoice = "jokes_choice"
	FieldCategory    = "category"
	FieldLanguage    = "language"
	FieldQuit        = "quit"
)

// Additional fields used by the writer/critic loop.
const (
	FieldLatestJoke   = "latest_joke"
	FieldAccepted     = "accepted"
	FieldAttemptCount = "attempt_count"
)

// Menu choices returned by the menu node.
const (
	ChoiceNext   = "n"
	ChoiceChange = "c"
	ChoiceQuit   = "q"
)

// Schema describes the session state of the classic bot. The joke
// list accumulates across steps, everything else is overwritten.
func Schema() *state.Schema {
	return state.NewSchema(
		state.Field{Name: FieldJokes, Policy: state.Append},
		state.Field{Name: FieldJokesChoice, Policy: state.Replace, Default: ChoiceNext},
		state.Field{Name: FieldCategory, Policy: state.Replace, Default: "neutral"},
		state.Field{Name: FieldLanguage, Policy: state.Replace, Default: "en"},
		state.Field{Name: FieldQuit, Policy: state.Replace, Default: false},
	)
}

// AgentSchema extends Schema with the fields tracking the writer and
// critic exchange.
func AgentSchema() *state.Schema {
	return state.NewSchema(
		state.Field{Name: FieldJokes, Policy: state.Append},
		state.Field{Name: FieldJokesChoice, Policy: state.Replace, Default: ChoiceNext},
		state.Field{Name: FieldCategory, Policy: state.Replace, Default: "neutral"},
		state.Field{Name: FieldLanguage, Policy: state.Replace, Default: "en"},
		state.Field{Name: FieldQuit, Policy: state.Replace, Default: false},
		state.Field{Name: FieldLatestJoke, Policy: state.Replace, Default: ""},
		state.Field{Name: FieldAccepted, Policy: state.Replace, Default: false},
		state.Field{Name: FieldAttemptCount, Policy: state.Replace, Default: 0},
	)
}
