package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse high scores interactively",
	Long: `Open the scoreboard. Tab and the left/right keys switch modes,
up/down scroll, Enter shows the details of a round, Q quits.`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := terminalConfig()
	_, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	return err
}
