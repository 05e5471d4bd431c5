package config

import "github.com/vovakirdan/gridsnake/internal/core"

// MinTickInterval is the fastest the snake may move, in seconds.
const MinTickInterval = 0.05

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TickInterval returns the seconds between moves for the current difficulty.
// With progression disabled the base interval is returned unchanged.
func (d *DifficultyManager) TickInterval(base float64, score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return base
	}
	level := d.Level(score, ticks)
	interval := base / (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
	if interval < MinTickInterval {
		interval = MinTickInterval
	}
	return interval
}
