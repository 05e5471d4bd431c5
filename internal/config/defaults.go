package config

import (
	_ "embed"

	"github.com/vovakirdan/gridsnake/internal/core"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			CellCount: 25,
			CellWidth: 2,
			Border:    0,
		},
		Snake: SnakeStart{
			Start:          [][2]int{{6, 9}, {5, 9}, {4, 9}},
			StartDirection: "up",
			ResetDirection: "right",
		},
		Rules: RulesConfig{
			Edges:        EdgesWall,
			TickInterval: core.DefaultTickInterval,
		},
		Food: FoodConfig{
			MaxAttempts: 64,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake", "snake_wrap":
		return defaultSnakeYAML
	default:
		return nil
	}
}
