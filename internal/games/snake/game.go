package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
)

// State is the round state machine.
type State int

const (
	StateRunning State = iota
	StateStopped       // game over, waiting for a direction key
	StatePaused
	StateWon // the snake filled the board
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StatePaused:
		return "paused"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Direction keys are polled in this order each frame; when several are
// held, the last accepted one wins.
var pollOrder = [...]struct {
	action core.Action
	dir    Direction
}{
	{core.ActionRight, DirRight},
	{core.ActionLeft, DirLeft},
	{core.ActionUp, DirUp},
	{core.ActionDown, DirDown},
}

// roundSummary describes a round that just ended.
type roundSummary struct {
	score  int
	length int
	ticks  uint64
}

// Game implements the Snake game.
type Game struct {
	id    string
	title string
	cfg   config.SnakeConfig

	rng        *rand.Rand
	sched      *core.Scheduler
	difficulty *config.DifficultyManager
	grid       core.Rect

	snake *Snake
	food  *Food
	score int
	best  int // stored record or best score since Reset
	state State
	tick  uint64 // logic ticks in the current round

	ended *roundSummary // reported once by Step

	// Screen dimensions; zero means headless
	screenW  int
	screenH  int
	tooSmall bool

	view []core.Vec
}

// Package-level config shared by registry factories.
var defaultConfig = config.DefaultSnakeConfig()

// Configure sets the config used by games created through the registry.
// Call it before any game is created.
func Configure(cfg config.SnakeConfig) {
	defaultConfig = cfg
}

// New creates a Snake game with the configured edge rules.
func New() *Game {
	return NewWithConfig(defaultConfig)
}

// NewWrap creates a Snake game whose edges wrap around.
func NewWrap() *Game {
	cfg := defaultConfig
	cfg.Rules.Edges = config.EdgesWrap
	g := NewWithConfig(cfg)
	g.id = "snake_wrap"
	g.title = "Snake (Wrap)"
	return g
}

// NewWithConfig creates a Snake game from an explicit config.
func NewWithConfig(cfg config.SnakeConfig) *Game {
	return &Game{
		id:    "snake",
		title: "Snake",
		cfg:   cfg,
	}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
	registry.Register("snake_wrap", func() registry.Game {
		return NewWrap()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset initializes the game: fresh snake, fresh food, score zero, running.
func (g *Game) Reset(rc core.RuntimeConfig) {
	clock := rc.Clock
	if clock == nil {
		clock = core.NewSystemClock()
	}

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.sched = core.NewScheduler(clock, g.cfg.Rules.TickInterval)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.grid = core.Square(g.cfg.Grid.CellCount)

	startDir, _ := ParseDirection(g.cfg.Snake.StartDirection)
	resetDir, _ := ParseDirection(g.cfg.Snake.ResetDirection)
	g.snake = NewSnake(g.cfg.StartCells(), startDir, resetDir, g.grid.Area()+1)
	g.food = NewFood(g.grid, g.cfg.Food.MaxAttempts)
	//nolint:errcheck // a fresh snake never fills a valid grid
	g.food.Relocate(g.rng, g.snake)

	g.score = 0
	g.best = 0
	g.tick = 0
	g.ended = nil
	g.state = StateRunning

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tooSmall = !g.Fits(g.screenW, g.screenH)
}

// Step advances the game by one rendered frame: a logic tick runs if the
// scheduler says one is due, then the frame's input is applied.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult

	if !g.tooSmall && g.sched.Due() {
		g.Update()
		res.Ticked = true
	}
	g.HandleInput(in)

	res.State = g.State()
	if g.ended != nil {
		res.RoundOver = true
		res.FinalScore = g.ended.score
		res.FinalLength = g.ended.length
		res.Ticks = g.ended.ticks
		g.ended = nil
	}
	return res
}

// Update runs one logic tick: move, then check food, self and walls.
// It does nothing unless the game is running.
func (g *Game) Update() {
	if g.state != StateRunning {
		return
	}
	g.tick++

	g.snake.Advance()
	if g.cfg.Rules.Edges == config.EdgesWrap {
		g.snake.WrapHead(g.grid)
	}
	head := g.snake.Head()

	if head == g.food.Pos() {
		g.snake.Grow()
		_, err := g.food.Relocate(g.rng, g.snake)
		g.score++
		if g.score > g.best {
			g.best = g.score
		}
		if errors.Is(err, ErrGridFull) {
			g.win()
			return
		}
	}

	if g.snake.ContainsFrom(head, 1) || !g.grid.Contains(head) {
		g.gameOver()
		return
	}

	g.sched.SetInterval(g.difficulty.TickInterval(g.cfg.Rules.TickInterval, g.score, g.tick))
}

// HandleInput applies one frame of input.
func (g *Game) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionRestart) && (g.state == StateStopped || g.state == StateWon) {
		g.resetRound()
		g.state = StateRunning
		return
	}

	if in.Has(core.ActionPause) {
		switch g.state {
		case StateRunning:
			g.state = StatePaused
		case StatePaused:
			g.state = StateRunning
		}
	}
	if g.state == StatePaused {
		return
	}

	for _, p := range pollOrder {
		if in.Has(p.action) {
			g.steer(p.dir)
		}
	}
}

// steer requests a direction and wakes a stopped game if it is accepted.
func (g *Game) steer(d Direction) {
	if g.state == StateWon {
		g.resetRound()
	}
	if g.snake.SetDirection(d) && g.state == StateStopped {
		g.state = StateRunning
	}
}

// gameOver ends the round: the snake and score are reset and the game
// waits for a direction key.
func (g *Game) gameOver() {
	g.finish()
	g.resetRound()
}

// win ends the round with the board full. The final board stays visible.
func (g *Game) win() {
	g.finish()
	g.state = StateWon
}

func (g *Game) finish() {
	g.ended = &roundSummary{
		score:  g.score,
		length: g.snake.Len(),
		ticks:  g.tick,
	}
}

// resetRound puts a fresh snake and food on the board and stops the game.
func (g *Game) resetRound() {
	g.snake.Reset()
	//nolint:errcheck // a fresh snake never fills a valid grid
	g.food.Relocate(g.rng, g.snake)
	g.score = 0
	g.tick = 0
	g.state = StateStopped
	g.sched.SetInterval(g.cfg.Rules.TickInterval)
}

// RenderState is everything a renderer needs for one frame.
type RenderState struct {
	Snake []core.Vec // head first; valid until the next View call
	Food  core.Vec
	Score int
	Best  int
	State State
}

// View returns the renderable state. The snake slice is reused across calls.
func (g *Game) View() RenderState {
	g.view = g.snake.AppendCells(g.view[:0])
	return RenderState{
		Snake: g.view,
		Food:  g.food.Pos(),
		Score: g.score,
		Best:  g.best,
		State: g.state,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateStopped || g.state == StateWon,
		Paused:   g.state == StatePaused,
	}
}

// SetBest raises the displayed best score to a stored record.
func (g *Game) SetBest(score int) {
	g.best = max(g.best, score)
}

// Phase returns the round state.
func (g *Game) Phase() State {
	return g.state
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}
