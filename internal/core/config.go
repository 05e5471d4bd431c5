package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Rendered frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
	Clock    Clock // Time source for logic ticks; nil means the system clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game is stopped waiting for input
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each rendered frame.
type StepResult struct {
	State GameState

	// Ticked is true when a logic tick ran during this frame.
	Ticked bool

	// RoundOver is true on the single frame in which a round ended.
	// FinalScore and FinalLength describe the round that just ended.
	RoundOver   bool
	FinalScore  int
	FinalLength int
	Ticks       uint64
}
