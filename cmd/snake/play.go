package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/platform/tui"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round of Snake",
	Long: `Start playing. The mode defaults to "snake" (walls kill); use
"snake_wrap" to pass through the edges instead.

Controls:
  Arrows/WASD  - Steer (also starts the next round after game over)
  P/Esc        - Pause
  R            - Restart after game over
  Ctrl+S       - Save a text screenshot
  B            - Back to the menu (snake menu)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Speed up slowly as the score grows
  normal - Start a bit faster
  hard   - Start much faster
  fixed  - Keep the configured speed

Examples:
  snake play
  snake play snake_wrap
  snake play --difficulty hard
  snake play --config ./my-snake.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// loadGameConfig resolves the config file and difficulty preset and hands
// the result to the game factories.
func loadGameConfig() error {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplySnakePreset(&cfg, preset)

	snake.Configure(cfg)
	logger.Debug("config loaded",
		"grid", cfg.Grid.CellCount,
		"edges", cfg.Rules.Edges,
		"interval", cfg.Rules.TickInterval,
		"difficulty", cfg.Difficulty.Enabled,
	)
	return nil
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Play continues without persistence
// when it cannot be opened.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := tui.DefaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'snake list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	_, err = playOnce(game, store, terminalConfig())
	return err
}

// playOnce runs one game and reports anything that went wrong while the
// alternate screen was active.
func playOnce(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (tui.Summary, error) {
	summary, err := tui.Run(game, store, cfg)
	if err != nil {
		return summary, fmt.Errorf("running %s: %w", game.ID(), err)
	}
	if summary.SaveErr != nil {
		logger.Warn("some scores were not saved", "error", summary.SaveErr)
	}
	logger.Debug("session over", "game", game.ID(), "rounds", summary.Rounds, "best", summary.Best)
	return summary, nil
}
