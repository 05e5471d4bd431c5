package snake

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string // edge policy, "wall" or "wrap"
	Score    int
	Best     int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	Interval float64
	State    State
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	head := g.snake.Head()
	food := g.food.Pos()

	return Snapshot{
		Tick:     g.tick,
		Mode:     g.cfg.Rules.Edges,
		Score:    g.score,
		Best:     g.best,
		SnakeLen: g.snake.Len(),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.snake.Direction(),
		FoodX:    food.X,
		FoodY:    food.Y,
		Interval: g.sched.Interval(),
		State:    g.state,
	}
}
