package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode interactively",
	Long: `Start with a mode picker. B leaves a game for the picker, Q quits;
Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Play
  Tab          - Scoreboard
  Q/Esc        - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(result.GameID)
			if err != nil {
				return err
			}
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			summary, err := playOnce(game, store, cfg)
			if err != nil {
				return err
			}
			if !summary.Back {
				return nil
			}
		}
	}
}
