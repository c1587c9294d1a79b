// Package prompt assembles LLM prompts from declarative configuration.
//
// A prompt config is a plain map (typically a section of a YAML file)
// naming the standard sections of a task prompt: role, instruction,
// context, constraints, style, output format, examples, and goal. Only
// the instruction is required. Build stitches the declared sections
// into a single prompt string in a fixed order, so prompts stay
// editable without touching code.
package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow/config"
)

// ErrMissingInstruction is returned by Build when the config has no
// instruction section.
var ErrMissingInstruction = errors.New("prompt config missing required field \"instruction\"")

// Build constructs a complete prompt from a prompt config section.
//
// inputData, when non-empty, is appended inside fenced content markers
// so the model can tell instructions apart from material to work on.
// appCfg optionally supplies shared reasoning strategies referenced by
// the config's reasoning_strategy field; pass the zero Config when
// unused.
func Build(cfg config.Config, inputData string, appCfg config.Config) (string, error) {
	var parts []string

	if role := strings.TrimSpace(cfg.String("role", "")); role != "" {
		parts = append(parts, fmt.Sprintf("You are %s.", lowerFirst(role)))
	}

	instruction := cfg.Strings("instruction")
	if len(instruction) == 0 {
		return "", ErrMissingInstruction
	}
	parts = append(parts, section("Your task is as follows:", instruction))

	if ctx := cfg.String("context", ""); ctx != "" {
		parts = append(parts, "Here's some background that may help you:\n"+ctx)
	}

	if constraints := cfg.Strings("output_constraints"); len(constraints) > 0 {
		parts = append(parts, section("Ensure your response follows these rules:", constraints))
	}

	if tone := cfg.Strings("style_or_tone"); len(tone) > 0 {
		parts = append(parts, section("Follow these style and tone guidelines in your response:", tone))
	}

	if format := cfg.Strings("output_format"); len(format) > 0 {
		parts = append(parts, section("Structure your response as follows:", format))
	}

	if examples := cfg.Strings("examples"); len(examples) > 0 {
		parts = append(parts, "Here are some examples to guide your response:")
		for i, example := range examples {
			parts = append(parts, fmt.Sprintf("Example %d:\n%s", i+1, example))
		}
	}

	if goal := cfg.String("goal", ""); goal != "" {
		parts = append(parts, "Your goal is to achieve the following outcome:\n"+goal)
	}

	if inputData != "" {
		parts = append(parts,
			"Here is the content you need to work with:\n"+
				"<<<BEGIN CONTENT>>>\n```\n"+strings.TrimSpace(inputData)+"\n```\n<<<END CONTENT>>>")
	}

	if strategy := cfg.String("reasoning_strategy", ""); strategy != "" && strategy != "None" {
		strategies := appCfg.Sub("reasoning_strategies")
		if text := strings.TrimSpace(strategies.String(strategy, "")); text != "" {
			parts = append(parts, text)
		}
	}

	parts = append(parts, "Now perform the task as instructed above.")
	return strings.Join(parts, "\n\n"), nil
}

// section joins a lead-in sentence with its content. Multi-item
// content renders as a bulleted list, a single item renders inline.
func section(leadIn string, items []string) string {
	if len(items) == 1 {
		return leadIn + "\n" + items[0]
	}
	var b strings.Builder
	b.WriteString(leadIn)
	for _, item := range items {
		b.WriteString("\n- ")
		b.WriteString(item)
	}
	return b.String()
}

// Preview returns a truncated copy of prompt suitable for debug
// logging. Prompts longer than maxLen are cut and annotated with the
// full length.
func Preview(prompt string, maxLen int) string {
	if maxLen <= 0 || len(prompt) <= maxLen {
		return prompt
	}
	return fmt.Sprintf("%s...\n[truncated, full prompt is %d characters]", prompt[:maxLen], len(prompt))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
