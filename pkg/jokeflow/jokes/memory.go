package jokes

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// MemorySource serves jokes from an embedded dataset keyed by category
// and language. It is the zero-dependency default for the classic bot
// and for tests.
type MemorySource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	data map[string]map[string][]string // category -> language -> jokes
}

// Compile-time interface check.
var _ Source = (*MemorySource)(nil)

// MemoryOption configures a MemorySource.
type MemoryOption func(*MemorySource)

// WithSeed fixes the RNG seed so Fetch order is deterministic.
// Intended for tests.
func WithSeed(seed int64) MemoryOption {
	return func(s *MemorySource) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewMemorySource creates a source preloaded with the built-in dataset.
func NewMemorySource(opts ...MemoryOption) *MemorySource {
	s := &MemorySource{
		rng:  rand.New(rand.NewSource(rand.Int63())),
		data: builtinDataset(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source.
// The "all" category draws from every category for the language.
func (s *MemorySource) Fetch(_ context.Context, category, language string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pool []string
	if category == "all" {
		for _, byLang := range s.data {
			pool = append(pool, byLang[language]...)
		}
	} else {
		pool = s.data[category][language]
	}

	if len(pool) == 0 {
		return "", fmt.Errorf("%w: no jokes for category %q language %q", ErrUnavailable, category, language)
	}

	return pool[s.rng.Intn(len(pool))], nil
}

// Add registers an extra joke under a category and language.
func (s *MemorySource) Add(category, language, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[category] == nil {
		s.data[category] = make(map[string][]string)
	}
	s.data[category][language] = append(s.data[category][language], text)
}

// Categories returns the categories the source can serve, plus "all".
func (s *MemorySource) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := make([]string, 0, len(s.data)+1)
	for c := range s.data {
		cats = append(cats, c)
	}
	cats = append(cats, "all")
	return cats
}

// builtinDataset returns the embedded joke collection.
func builtinDataset() map[string]map[string][]string {
	return map[string]map[string][]string{
		"neutral": {
			"en": {
				"Why do programmers prefer dark mode? Because light attracts bugs.",
				"There are only 10 kinds of people: those who understand binary and those who don't.",
				"A SQL query walks into a bar, goes up to two tables and asks: may I join you?",
				"Why do Java developers wear glasses? Because they don't C#.",
				"I would tell you a UDP joke, but you might not get it.",
				"!false - it's funny because it's true.",
				"A programmer's wife asks: would you go to the shop and pick up a loaf of bread? If they have eggs, get a dozen. He returns with twelve loaves.",
				"Knock knock. Race condition. Who's there?",
			},
			"de": {
				"Warum mögen Programmierer den dunklen Modus? Weil Licht Bugs anzieht.",
				"Es gibt nur 10 Arten von Menschen: die, die Binär verstehen, und die, die es nicht tun.",
			},
		},
		"chuck": {
			"en": {
				"Chuck Norris writes code that optimizes itself.",
				"Chuck Norris can compile syntax errors.",
				"Chuck Norris doesn't use a debugger. Bugs confess on their own.",
				"All arrays Chuck Norris declares are of infinite size, because Chuck Norris knows no bounds.",
				"Chuck Norris can instantiate an abstract class.",
				"Chuck Norris's keyboard has only two keys: 1 and 0.",
			},
			"de": {
				"Chuck Norris schreibt Code, der sich selbst optimiert.",
			},
		},
	}
}
