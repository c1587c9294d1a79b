package bot

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/config"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/console"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/jokes"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/llm"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/prompt"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

// Node IDs of the agentic graph. Menu, category, and exit nodes are
// shared with the classic graph.
const (
	NodeWriter   = "writer"
	NodeCritic   = "critic"
	NodeFinalize = "show_final_joke"
)

const (
	labelRetry    = "retry"
	labelFinalize = "finalize"
)

// DefaultMaxAttempts bounds the writer/critic loop. Once the critic
// has judged this many drafts the latest draft is accepted as-is.
const DefaultMaxAttempts = 5

// Agentic is the LLM-backed joke bot. The writer node drafts a joke,
// the critic node judges it, and a conditional edge loops back to the
// writer until the critic accepts or the attempt ceiling is hit.
type Agentic struct {
	writer      llm.Client
	critic      llm.Client
	prompter    console.Prompter
	out         *console.Output
	writerCfg   config.Config
	criticCfg   config.Config
	maxAttempts int
	categories  []string
}

// AgenticOption customizes the agentic bot.
type AgenticOption func(*Agentic)

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are
// ignored.
func WithMaxAttempts(n int) AgenticOption {
	return func(b *Agentic) {
		if n >= 1 {
			b.maxAttempts = n
		}
	}
}

// WithCategories overrides the category menu presented to the user.
func WithCategories(categories []string) AgenticOption {
	return func(b *Agentic) {
		if len(categories) > 0 {
			b.categories = append([]string(nil), categories...)
		}
	}
}

// NewAgentic assembles the writer/critic bot. promptCfg must hold the
// joke_writer_cfg and joke_critic_cfg sections.
func NewAgentic(writer, critic llm.Client, prompter console.Prompter, out *console.Output, promptCfg config.Config, opts ...AgenticOption) *Agentic {
	b := &Agentic{
		writer:      writer,
		critic:      critic,
		prompter:    prompter,
		out:         out,
		writerCfg:   promptCfg.Sub("joke_writer_cfg"),
		criticCfg:   promptCfg.Sub("joke_critic_cfg"),
		maxAttempts: DefaultMaxAttempts,
		categories:  []string{"dad developer", "chuck norris developer", "general"},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Graph builds and compiles the agentic workflow. The menu routes to
// the writer instead of a dataset fetch; everything else mirrors the
// classic graph.
func (b *Agentic) Graph() (*jokeflow.CompiledGraph[state.State], error) {
	shared := &Classic{prompter: b.prompter, out: b.out, categories: b.categories}

	g := jokeflow.NewGraph[state.State]().
		AddNode(NodeShowMenu, shared.showMenu).
		AddNode(NodeUpdateCategory, shared.updateCategory).
		AddNode(NodeExitBot, shared.exitBot).
		AddNode(NodeWriter, b.writeJoke).
		AddNode(NodeCritic, b.critiqueJoke).
		AddNode(NodeFinalize, b.showFinalJoke).
		SetEntry(NodeShowMenu).
		AddConditionalEdge(NodeShowMenu, routeChoice, map[string]string{
			labelNext:   NodeWriter,
			labelChange: NodeUpdateCategory,
			labelExit:   NodeExitBot,
		}).
		AddEdge(NodeUpdateCategory, NodeShowMenu).
		AddEdge(NodeWriter, NodeCritic).
		AddConditionalEdge(NodeCritic, b.routeVerdict, map[string]string{
			labelRetry:    NodeWriter,
			labelFinalize: NodeFinalize,
		}).
		AddEdge(NodeFinalize, NodeShowMenu).
		AddEdge(NodeExitBot, jokeflow.END)

	return g.Compile()
}

// NewState returns the initial session state for the agentic schema.
func (b *Agentic) NewState(overrides state.Partial) (state.State, error) {
	return state.New(AgentSchema(), overrides)
}

func (b *Agentic) writeJoke(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	p, err := prompt.Build(b.writerCfg, "", config.Config{})
	if err != nil {
		return nil, fmt.Errorf("build writer prompt: %w", err)
	}
	p += "\n\nThe category is: " + s.String(FieldCategory)

	resp, err := b.writer.Complete(ctx, llm.UserPrompt(p))
	if err != nil {
		return nil, fmt.Errorf("writer completion: %w", err)
	}

	ctx.Logger().Debug("writer produced draft",
		"attempt", s.Int(FieldAttemptCount)+1,
		"draft_len", len(resp.Content))

	return state.Partial{FieldLatestJoke: resp.Content}, nil
}

func (b *Agentic) critiqueJoke(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	p, err := prompt.Build(b.criticCfg, s.String(FieldLatestJoke), config.Config{})
	if err != nil {
		return nil, fmt.Errorf("build critic prompt: %w", err)
	}

	resp, err := b.critic.Complete(ctx, llm.UserPrompt(p))
	if err != nil {
		return nil, fmt.Errorf("critic completion: %w", err)
	}

	verdict := strings.ToLower(strings.TrimSpace(resp.Content))
	accepted := strings.Contains(verdict, "yes")

	ctx.Logger().Debug("critic verdict",
		"accepted", accepted,
		"attempt", s.Int(FieldAttemptCount)+1)

	return state.Partial{
		FieldAccepted:     accepted,
		FieldAttemptCount: s.Int(FieldAttemptCount) + 1,
	}, nil
}

// showFinalJoke appends the latest draft to the joke list whether the
// critic accepted it or the attempt ceiling forced it through, then
// resets the loop fields so the next menu round starts fresh.
func (b *Agentic) showFinalJoke(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	text := s.String(FieldLatestJoke)
	b.out.Joke(text)

	return state.Partial{
		FieldJokes:        jokes.NewJoke(text, s.String(FieldCategory)),
		FieldAttemptCount: 0,
		FieldAccepted:     false,
		FieldLatestJoke:   "",
	}, nil
}

// routeVerdict loops back to the writer until the critic accepts the
// draft or maxAttempts drafts have been judged.
func (b *Agentic) routeVerdict(ctx jokeflow.Context, s state.State) string {
	if s.Bool(FieldAccepted) || s.Int(FieldAttemptCount) >= b.maxAttempts {
		return labelFinalize
	}
	return labelRetry
}
