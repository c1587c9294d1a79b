package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jokeflow/pkg/jokeflow"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/bot"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/config"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/console"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/jokes"
	"github.com/randalmurphal/jokeflow/pkg/jokeflow/state"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dataset-backed joke bot",
	Long: `Starts an interactive session served from the built-in joke dataset,
or from a SQLite joke database when --jokes-db is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		language, _ := cmd.Flags().GetString("language")
		dbPath, _ := cmd.Flags().GetString("jokes-db")
		limit, _ := cmd.Flags().GetInt("limit")

		// A config file supplies defaults; explicit flags win.
		if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
			cfg, err := config.FromFile(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("category") {
				category = cfg.String("category", category)
			}
			if !cmd.Flags().Changed("language") {
				language = cfg.String("language", language)
			}
			if !cmd.Flags().Changed("jokes-db") {
				dbPath = cfg.String("jokes_db", dbPath)
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.Int("step_limit", limit)
			}
		}

		source, cleanup, err := openSource(cmd.Context(), dbPath)
		if err != nil {
			return err
		}
		defer cleanup()

		out := console.NewOutput(nil)
		out.Banner("WELCOME TO THE JOKEFLOW BOT!", "Jokes served straight from the dataset")

		b := bot.NewClassic(source, console.NewReaderPrompter(nil, os.Stdout), out)

		g, err := b.Graph()
		if err != nil {
			return fmt.Errorf("build graph: %w", err)
		}

		initial, err := b.NewState(state.Partial{
			bot.FieldCategory: category,
			bot.FieldLanguage: language,
		})
		if err != nil {
			return fmt.Errorf("initial state: %w", err)
		}

		ctx := jokeflow.NewContext(cmd.Context(),
			jokeflow.WithContextLogger(sessionLogger(cmd)))

		final, err := g.Run(ctx, initial, jokeflow.WithMaxSteps(limit))
		if err != nil {
			return fmt.Errorf("session failed: %w", err)
		}

		out.Info("Session complete. Jokes told: %d, final category: %s",
			final.Len(bot.FieldJokes), final.String(bot.FieldCategory))
		return nil
	},
}

// openSource selects the joke source: a SQLite database when a path is
// given (seeded with the built-in dataset if empty), the in-memory
// dataset otherwise.
func openSource(ctx context.Context, dbPath string) (jokes.Source, func(), error) {
	if dbPath == "" {
		return jokes.NewMemorySource(), func() {}, nil
	}

	store, err := jokes.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open joke database: %w", err)
	}

	n, err := store.Count(ctx, "neutral", "en")
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	if n == 0 {
		if err := store.Seed(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("seed joke database: %w", err)
		}
	}

	return store, func() { _ = store.Close() }, nil
}

func init() {
	runCmd.Flags().String("config", "", "Config file with session defaults")
	runCmd.Flags().String("category", "neutral", "Starting joke category")
	runCmd.Flags().String("language", "en", "Joke language")
	runCmd.Flags().String("jokes-db", "", "Path to a SQLite joke database")
	rootCmd.AddCommand(runCmd)
}
