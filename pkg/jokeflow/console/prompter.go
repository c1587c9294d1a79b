// Package console handles terminal interaction for the joke bot: it
// reads user choices and renders menus, jokes, and banners with ANSI
// styling where the terminal supports it.
package console

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrNoInput is returned when the input stream is exhausted before an
// answer could be read.
var ErrNoInput = errors.New("console: no input available")

// Prompter asks the user a question and returns the answer,
// trimmed and lowercased for uniform matching.
type Prompter interface {
	Ask(question string) (string, error)
}

// ReaderPrompter reads answers line by line from an input stream,
// echoing the question to an output stream first.
type ReaderPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReaderPrompter builds a prompter over the given streams.
// Nil arguments default to stdin and stdout.
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &ReaderPrompter{in: bufio.NewReader(in), out: out}
}

func (p *ReaderPrompter) Ask(question string) (string, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return normalize(line), nil
}

// ScriptPrompter replays a fixed sequence of answers. Tests and demos
// use it to drive the bot without a terminal.
type ScriptPrompter struct {
	answers   []string
	pos       int
	questions []string
}

// NewScriptPrompter builds a prompter that returns the given answers
// in order and fails with ErrNoInput once they run out.
func NewScriptPrompter(answers ...string) *ScriptPrompter {
	return &ScriptPrompter{answers: answers}
}

func (p *ScriptPrompter) Ask(question string) (string, error) {
	p.questions = append(p.questions, question)
	if p.pos >= len(p.answers) {
		return "", ErrNoInput
	}
	answer := p.answers[p.pos]
	p.pos++
	return normalize(answer), nil
}

// Questions returns every question asked so far, in order.
func (p *ScriptPrompter) Questions() []string {
	return append([]string(nil), p.questions...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
