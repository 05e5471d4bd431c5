// snake plays Snake in the terminal, locally or over SSH.
//
// Usage:
//
//	snake play [mode]        - Play a mode (default: snake)
//	snake menu               - Pick a mode interactively
//	snake list               - List available modes
//	snake scores <mode>      - Show the top 10 rounds of a mode
//	snake board              - Browse scores interactively
//	snake serve              - Start SSH server for remote play
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Frames per second (default: 60)
//	--seed <value>        - RNG seed for reproducible food placement
//	--db <path>           - Database path (default: ~/.snake/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the game modes
	_ "github.com/vovakirdan/gridsnake/internal/games/snake"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "snake",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake in your terminal",
	Long: `Classic Snake on a 25x25 grid, played in the terminal.

Eat the food to grow and score. Running into a wall or your own body ends
the round. Fill the whole board to win.

Examples:
  snake play
  snake play snake_wrap --difficulty hard
  snake scores snake
  snake serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the log level and loads the game configuration shared by
// every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	return loadGameConfig()
}
