package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/bot"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/config"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/console"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/llm"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run the LLM writer/critic joke bot",
	Long: `Starts an interactive session where an LLM writer drafts each joke
and an LLM critic judges it. Rejected drafts are rewritten until the
critic approves or the attempt ceiling forces the latest draft out.

Prompts for both roles are read from the config file's joke_writer_cfg
and joke_critic_cfg sections.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		model, _ := cmd.Flags().GetString("model")
		category, _ := cmd.Flags().GetString("category")
		maxAttempts, _ := cmd.Flags().GetInt("max-attempts")
		limit, _ := cmd.Flags().GetInt("limit")

		promptCfg, err := config.FromFile(cfgPath)
		if err != nil {
			return fmt.Errorf("load prompt config: %w", err)
		}

		var clientOpts []llm.ClaudeOption
		if model != "" {
			clientOpts = append(clientOpts, llm.WithModel(model))
		}
		client := llm.NewClaudeCLI(clientOpts...)

		out := console.NewOutput(nil)
		out.Banner("JOKEFLOW AGENT", "Writer drafts, critic judges")

		b := bot.NewAgentic(client, client,
			console.NewReaderPrompter(nil, os.Stdout), out, promptCfg,
			bot.WithMaxAttempts(maxAttempts))

		g, err := b.Graph()
		if err != nil {
			return fmt.Errorf("build graph: %w", err)
		}

		initial, err := b.NewState(state.Partial{bot.FieldCategory: category})
		if err != nil {
			return fmt.Errorf("initial state: %w", err)
		}

		ctx := jokeflow.NewContext(cmd.Context(),
			jokeflow.WithContextLogger(sessionLogger(cmd)))

		final, err := g.Run(ctx, initial, jokeflow.WithMaxSteps(limit))
		if err != nil {
			return fmt.Errorf("session failed: %w", err)
		}

		out.Info("Session complete. Jokes told: %d", final.Len(bot.FieldJokes))
		return nil
	},
}

func init() {
	agentCmd.Flags().String("config", "config/prompt_config.yaml", "Prompt config file")
	agentCmd.Flags().String("model", "", "Model passed to the claude CLI")
	agentCmd.Flags().String("category", "dad developer", "Starting joke category")
	agentCmd.Flags().Int("max-attempts", bot.DefaultMaxAttempts, "Writer/critic attempt ceiling")
	rootCmd.AddCommand(agentCmd)
}
