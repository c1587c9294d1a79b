package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jokeflow",
	Short: "jokeflow is a graph-driven joke bot",
	Long: `jokeflow runs an interactive joke session as a workflow graph:
a menu node routes to joke fetching, category selection, or exit,
and the session state accumulates every joke told.

The "run" command serves jokes from a dataset; the "agent" command
drafts them with an LLM writer gated by an LLM critic.`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("limit", 1000, "Step ceiling for a session")
}

// sessionLogger builds the logger for a run. Debug level when
// --verbose is set, warnings only otherwise so bot output stays clean.
func sessionLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
