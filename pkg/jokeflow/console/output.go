package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// Output renders the bot's screens. Styling degrades gracefully on
// terminals without color support via termenv's profile detection.
type Output struct {
	w       io.Writer
	profile termenv.Profile
}

// NewOutput builds an Output writing to w, or stdout when w is nil.
func NewOutput(w io.Writer) *Output {
	profile := termenv.Ascii
	if w == nil {
		w = os.Stdout
		profile = termenv.ColorProfile()
	}
	return &Output{w: w, profile: profile}
}

func (o *Output) color(s, hex string) string {
	return termenv.String(s).Foreground(o.profile.Color(hex)).String()
}

func (o *Output) rule(width int) string {
	return strings.Repeat("=", width)
}

// Banner prints the welcome screen at session start.
func (o *Output) Banner(title, subtitle string) {
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, o.color(o.rule(60), "#818cf8"))
	fmt.Fprintln(o.w, o.color("    "+title, "#c084fc"))
	if subtitle != "" {
		fmt.Fprintln(o.w, "    "+subtitle)
	}
	fmt.Fprintln(o.w, o.color(o.rule(60), "#818cf8"))
	fmt.Fprintln(o.w)
}

// MenuHeader prints the menu line showing the active category and the
// number of jokes collected so far.
func (o *Output) MenuHeader(category string, jokeCount int) {
	header := fmt.Sprintf("Menu | Category: %s | Jokes: %d", strings.ToUpper(category), jokeCount)
	fmt.Fprintln(o.w, o.color(header, "#a78bfa"))
	fmt.Fprintln(o.w, strings.Repeat("-", 50))
}

// Joke prints a fetched or generated joke.
func (o *Output) Joke(text string) {
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, o.color(text, "#f472b6"))
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, o.rule(60))
}

// CategoryMenu prints the numbered category selection list.
func (o *Output) CategoryMenu(categories []string) {
	fmt.Fprintln(o.w, o.color(o.rule(60), "#818cf8"))
	fmt.Fprintln(o.w, "    CATEGORY SELECTION")
	fmt.Fprintln(o.w, o.rule(60))
	for i, cat := range categories {
		fmt.Fprintf(o.w, "    %d. %s\n", i+1, strings.ToUpper(cat))
	}
	fmt.Fprintln(o.w, o.rule(60))
}

// Info prints a plain informational line.
func (o *Output) Info(format string, args ...any) {
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Invalid prints a validation complaint for rejected user input.
func (o *Output) Invalid(msg string) {
	fmt.Fprintln(o.w, o.color(msg, "#fb7185"))
}

// Goodbye prints the exit screen with the session's joke tally.
func (o *Output) Goodbye(jokeCount int) {
	fmt.Fprintln(o.w)
	fmt.Fprintln(o.w, o.color(o.rule(60), "#818cf8"))
	fmt.Fprintln(o.w, o.color("    GOODBYE!", "#c084fc"))
	fmt.Fprintf(o.w, "    Thanks for laughing with us. Jokes told: %d\n", jokeCount)
	fmt.Fprintln(o.w, o.color(o.rule(60), "#818cf8"))
}
