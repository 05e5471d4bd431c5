// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Edge handling policies.
const (
	EdgesWall = "wall" // leaving the grid ends the round
	EdgesWrap = "wrap" // leaving the grid re-enters on the opposite side
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Snake      SnakeStart       `yaml:"snake"`
	Rules      RulesConfig      `yaml:"rules"`
	Food       FoodConfig       `yaml:"food"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board and how it maps onto the terminal.
type GridConfig struct {
	CellCount int `yaml:"cell_count"` // cells per side
	CellWidth int `yaml:"cell_width"` // terminal columns per cell
	Border    int `yaml:"border"`     // offset of the board from the frame origin
}

// SnakeStart defines the snake spawn.
type SnakeStart struct {
	Start          [][2]int `yaml:"start"` // head first
	StartDirection string   `yaml:"start_direction"`
	ResetDirection string   `yaml:"reset_direction"`
}

// RulesConfig defines collision and timing rules.
type RulesConfig struct {
	Edges        string  `yaml:"edges"`
	TickInterval float64 `yaml:"tick_interval"` // seconds between logic ticks
}

// FoodConfig defines food placement parameters.
type FoodConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // random draws before falling back to a scan
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed gain at max difficulty
}

// StartCells returns the configured spawn body as grid cells.
func (c SnakeConfig) StartCells() []core.Vec {
	cells := make([]core.Vec, len(c.Snake.Start))
	for i, p := range c.Snake.Start {
		cells[i] = core.Vec{X: p[0], Y: p[1]}
	}
	return cells
}

// Validate checks that the configuration describes a playable board.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Grid.CellCount < 4 {
		errs = append(errs, fmt.Errorf("grid.cell_count must be at least 4, got %d", c.Grid.CellCount))
	}
	if c.Grid.CellWidth < 1 {
		errs = append(errs, fmt.Errorf("grid.cell_width must be at least 1, got %d", c.Grid.CellWidth))
	}
	if c.Grid.Border < 0 {
		errs = append(errs, fmt.Errorf("grid.border must not be negative, got %d", c.Grid.Border))
	}

	errs = append(errs, c.validateStart()...)

	if c.Rules.Edges != EdgesWall && c.Rules.Edges != EdgesWrap {
		errs = append(errs, fmt.Errorf("rules.edges must be %q or %q, got %q", EdgesWall, EdgesWrap, c.Rules.Edges))
	}
	if c.Rules.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("rules.tick_interval must be positive, got %v", c.Rules.TickInterval))
	}
	if c.Food.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("food.max_attempts must not be negative, got %d", c.Food.MaxAttempts))
	}

	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be within [0, 1], got %v", c.Difficulty.InitialLevel))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid snake config: %w", err)
	}
	return nil
}

func (c SnakeConfig) validateStart() []error {
	var errs []error
	cells := c.StartCells()
	grid := core.Square(c.Grid.CellCount)

	if len(cells) == 0 {
		return []error{errors.New("snake.start must contain at least one cell")}
	}

	seen := make(map[core.Vec]bool, len(cells))
	for i, cell := range cells {
		if !grid.Contains(cell) {
			errs = append(errs, fmt.Errorf("snake.start[%d] %v is outside the grid", i, cell))
		}
		if seen[cell] {
			errs = append(errs, fmt.Errorf("snake.start[%d] %v is duplicated", i, cell))
		}
		seen[cell] = true
		if i > 0 {
			d := cell.Add(cells[i-1].Neg())
			if abs(d.X)+abs(d.Y) != 1 {
				errs = append(errs, fmt.Errorf("snake.start[%d] %v is not adjacent to %v", i, cell, cells[i-1]))
			}
		}
	}

	for _, field := range []struct{ key, name string }{
		{"snake.start_direction", c.Snake.StartDirection},
		{"snake.reset_direction", c.Snake.ResetDirection},
	} {
		dir, ok := core.UnitStep(field.name)
		if !ok {
			errs = append(errs, fmt.Errorf("%s %q is not one of up, down, left, right", field.key, field.name))
			continue
		}
		if len(cells) > 1 && cells[0].Add(dir) == cells[1] {
			errs = append(errs, fmt.Errorf("%s %q points into the snake's neck", field.key, field.name))
		}
	}

	return errs
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name is accepted and
// leaves the loaded configuration untouched.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty preset %q", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
