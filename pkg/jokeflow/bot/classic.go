package bot

import (
	"fmt"
	"strconv"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/console"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/jokes"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

// Node IDs of the classic graph.
const (
	NodeShowMenu       = "show_menu"
	NodeFetchJoke      = "fetch_joke"
	NodeUpdateCategory = "update_category"
	NodeExitBot        = "exit_bot"
)

// Routing labels produced by the menu decision.
const (
	labelNext   = "next"
	labelChange = "change"
	labelExit   = "exit"
)

// Classic is the dataset-backed joke bot. It loops between a menu
// node and its actions until the user quits.
type Classic struct {
	source     jokes.Source
	prompter   console.Prompter
	out        *console.Output
	categories []string
}

// NewClassic assembles the classic bot over its three ports.
func NewClassic(source jokes.Source, prompter console.Prompter, out *console.Output) *Classic {
	return &Classic{
		source:     source,
		prompter:   prompter,
		out:        out,
		categories: []string{"neutral", "chuck", "all"},
	}
}

// Graph builds and compiles the menu/fetch/category/exit workflow.
func (b *Classic) Graph() (*jokeflow.CompiledGraph[state.State], error) {
	g := jokeflow.NewGraph[state.State]().
		AddNode(NodeShowMenu, b.showMenu).
		AddNode(NodeFetchJoke, b.fetchJoke).
		AddNode(NodeUpdateCategory, b.updateCategory).
		AddNode(NodeExitBot, b.exitBot).
		SetEntry(NodeShowMenu).
		AddConditionalEdge(NodeShowMenu, routeChoice, map[string]string{
			labelNext:   NodeFetchJoke,
			labelChange: NodeUpdateCategory,
			labelExit:   NodeExitBot,
		}).
		AddEdge(NodeFetchJoke, NodeShowMenu).
		AddEdge(NodeUpdateCategory, NodeShowMenu).
		AddEdge(NodeExitBot, jokeflow.END)

	return g.Compile()
}

// NewState returns the initial session state. overrides may preset
// fields such as the category.
func (b *Classic) NewState(overrides state.Partial) (state.State, error) {
	return state.New(Schema(), overrides)
}

func (b *Classic) showMenu(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	b.out.MenuHeader(s.String(FieldCategory), s.Len(FieldJokes))

	for {
		choice, err := b.prompter.Ask("[n] Next Joke  [c] Change Category  [q] Quit\nUser input: ")
		if err != nil {
			return nil, fmt.Errorf("read menu choice: %w", err)
		}
		switch choice {
		case ChoiceNext, ChoiceChange, ChoiceQuit:
			return state.Partial{FieldJokesChoice: choice}, nil
		}
		b.out.Invalid("Invalid input. Please try again.")
	}
}

func (b *Classic) fetchJoke(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	category := s.String(FieldCategory)
	text, err := b.source.Fetch(ctx, category, s.String(FieldLanguage))
	if err != nil {
		return nil, fmt.Errorf("fetch joke: %w", err)
	}

	b.out.Joke(text)
	return state.Partial{FieldJokes: jokes.NewJoke(text, category)}, nil
}

func (b *Classic) updateCategory(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	b.out.CategoryMenu(b.categories)

	answer, err := b.prompter.Ask("    Enter category number: ")
	if err != nil {
		return nil, fmt.Errorf("read category choice: %w", err)
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(b.categories) {
		b.out.Invalid("    Invalid choice. Keeping current category.")
		return state.Partial{}, nil
	}

	selected := b.categories[n-1]
	b.out.Info("    Category changed to: %s", selected)
	return state.Partial{FieldCategory: selected}, nil
}

func (b *Classic) exitBot(ctx jokeflow.Context, s state.State) (state.Partial, error) {
	b.out.Goodbye(s.Len(FieldJokes))
	return state.Partial{FieldQuit: true}, nil
}

// routeChoice maps the stored menu choice to a routing label. Any
// unexpected value falls back to exiting rather than failing the run.
func routeChoice(ctx jokeflow.Context, s state.State) string {
	switch s.String(FieldJokesChoice) {
	case ChoiceNext:
		return labelNext
	case ChoiceChange:
		return labelChange
	case ChoiceQuit:
		return labelExit
	default:
		return labelExit
	}
}
