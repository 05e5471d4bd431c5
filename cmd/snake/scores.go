package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best rounds of a mode",
	Long: `Display the top rounds for a mode (default: snake).

Examples:
  snake scores
  snake scores snake_wrap --limit 20
  snake scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all stored rounds of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "snake"
	if len(args) > 0 {
		gameID = args[0]
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", game.Title())
		return nil
	}

	runs, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())
	if len(runs) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'snake play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-5s  %-6s  %-6s  %-16s  %s\n", "Rank", "Score", "Length", "Ticks", "Date", "Run")
	fmt.Fprintf(out, "  %-4s  %-5s  %-6s  %-6s  %-16s  %s\n", "----", "-----", "------", "-----", "----", "---")
	for i, run := range runs {
		fmt.Fprintf(out, "  %-4d  %03d    %-6d  %-6d  %-16s  %s\n",
			i+1, run.Score, run.Length, run.Ticks, run.CreatedAt.Format("2006-01-02 15:04"), run.ID.String()[:8])
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest: %d  Rounds: %d  Average: %.1f  Longest snake: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.MaxLength)
	return nil
}
