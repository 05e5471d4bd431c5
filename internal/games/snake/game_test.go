package snake

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/core"
)

// step is a clock increment that is exactly representable and always
// covers the default tick interval.
const step = 0.25

func newTestGame(t *testing.T, cfg config.SnakeConfig, seed int64) (*Game, *core.ManualClock) {
	t.Helper()
	clock := &core.ManualClock{}
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{Seed: seed, Clock: clock})
	return g, clock
}

func frame(actions ...core.Action) core.InputFrame {
	var in core.InputFrame
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameIDs(t *testing.T) {
	tests := []struct {
		game  *Game
		id    string
		title string
		edges string
	}{
		{New(), "snake", "Snake", config.EdgesWall},
		{NewWrap(), "snake_wrap", "Snake (Wrap)", config.EdgesWrap},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if tt.game.ID() != tt.id {
				t.Errorf("ID() = %q, expected %q", tt.game.ID(), tt.id)
			}
			if tt.game.Title() != tt.title {
				t.Errorf("Title() = %q, expected %q", tt.game.Title(), tt.title)
			}
			if tt.game.cfg.Rules.Edges != tt.edges {
				t.Errorf("edges = %q, expected %q", tt.game.cfg.Rules.Edges, tt.edges)
			}
		})
	}
}

func TestResetStartsRunning(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)

	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, expected running", g.Phase())
	}
	if got := g.View().Snake; !slices.Equal(got, startCells()) {
		t.Errorf("start body = %v, expected %v", got, startCells())
	}
	if g.snake.Direction() != DirUp {
		t.Errorf("start direction = %s, expected up", g.snake.Direction())
	}
	if g.snake.Contains(g.food.Pos()) {
		t.Error("initial food overlaps the snake")
	}
}

func TestStepTicksOnInterval(t *testing.T) {
	g, clock := newTestGame(t, config.DefaultSnakeConfig(), 1)

	if res := g.Step(core.InputFrame{}); res.Ticked {
		t.Fatal("no tick should run before the interval elapses")
	}
	clock.Advance(0.1)
	if res := g.Step(core.InputFrame{}); res.Ticked {
		t.Fatal("no tick should run at half the interval")
	}
	clock.Advance(0.15)
	res := g.Step(core.InputFrame{})
	if !res.Ticked {
		t.Fatal("a tick should run once the interval has elapsed")
	}
	if g.snake.Head() != (core.Vec{X: 6, Y: 8}) {
		t.Errorf("head = %v, expected (6, 8)", g.snake.Head())
	}
	if res := g.Step(core.InputFrame{}); res.Ticked {
		t.Error("a second tick in the same instant should not run")
	}
}

func TestScenarioMoveUp(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.food.pos = core.Vec{X: 0, Y: 0}

	g.Update()

	expected := []core.Vec{{X: 6, Y: 8}, {X: 6, Y: 9}, {X: 5, Y: 9}}
	if got := g.View().Snake; !slices.Equal(got, expected) {
		t.Errorf("body = %v, expected %v", got, expected)
	}
	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, expected running", g.Phase())
	}
}

func TestEatFood(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.food.pos = core.Vec{X: 6, Y: 8}

	g.Update()
	if g.Score() != 1 {
		t.Errorf("score = %d, expected 1", g.Score())
	}
	if !g.snake.Growing() {
		t.Error("eating should set the growth flag")
	}
	if g.snake.Contains(g.food.Pos()) {
		t.Errorf("food relocated onto the snake at %v", g.food.Pos())
	}

	g.food.pos = core.Vec{X: 0, Y: 0}
	g.Update()
	if g.snake.Len() != 4 {
		t.Errorf("length = %d, expected 4 after eating once", g.snake.Len())
	}
}

func TestWallCollision(t *testing.T) {
	g, clock := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.snake.place([]core.Vec{{X: 24, Y: 9}, {X: 23, Y: 9}, {X: 22, Y: 9}}, DirRight)
	g.food.pos = core.Vec{X: 0, Y: 0}
	g.score = 5

	clock.Advance(step)
	res := g.Step(core.InputFrame{})

	if g.Phase() != StateStopped {
		t.Fatalf("phase = %s, expected stopped", g.Phase())
	}
	if !res.RoundOver || res.FinalScore != 5 || res.FinalLength != 3 {
		t.Errorf("step result = %+v, expected round over with score 5 and length 3", res)
	}
	if !res.State.GameOver {
		t.Error("GameState.GameOver should be set while stopped")
	}
	if g.Score() != 0 {
		t.Errorf("score = %d, expected reset to 0", g.Score())
	}
	if got := g.View().Snake; !slices.Equal(got, startCells()) {
		t.Errorf("body = %v, expected the start body", got)
	}
	if g.snake.Direction() != DirRight {
		t.Errorf("direction = %s, expected the reset direction (right)", g.snake.Direction())
	}

	clock.Advance(step)
	if res := g.Step(core.InputFrame{}); res.RoundOver {
		t.Error("a finished round should be reported only once")
	}
}

func TestSelfCollision(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.snake.place([]core.Vec{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 6, Y: 4}}, DirRight)
	g.food.pos = core.Vec{X: 0, Y: 0}

	g.Update()
	if g.Phase() != StateStopped {
		t.Errorf("phase = %s, expected stopped after biting the body", g.Phase())
	}
}

func TestFollowingTheTailIsSafe(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.snake.place([]core.Vec{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}, DirRight)
	g.food.pos = core.Vec{X: 0, Y: 0}

	g.Update()
	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, moving into the vacated tail cell should be safe", g.Phase())
	}
}

func TestStoppedWaitsForDirection(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.snake.place([]core.Vec{{X: 24, Y: 9}, {X: 23, Y: 9}, {X: 22, Y: 9}}, DirRight)
	g.Update()
	if g.Phase() != StateStopped {
		t.Fatalf("phase = %s, expected stopped", g.Phase())
	}

	head := g.snake.Head()
	g.Update()
	if g.snake.Head() != head {
		t.Error("snake moved while stopped")
	}

	g.HandleInput(frame(core.ActionLeft))
	if g.Phase() != StateStopped {
		t.Error("a reversed direction should not restart the game")
	}

	g.HandleInput(frame(core.ActionUp))
	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, expected running after an accepted direction", g.Phase())
	}
	if g.snake.Direction() != DirUp {
		t.Errorf("direction = %s, expected up", g.snake.Direction())
	}
}

func TestPollOrderLastAcceptedWins(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    Direction
	}{
		{"right then left", []core.Action{core.ActionRight, core.ActionLeft}, DirRight},
		{"down is refused", []core.Action{core.ActionRight, core.ActionDown}, DirRight},
		{"all four", []core.Action{core.ActionDown, core.ActionUp, core.ActionLeft, core.ActionRight}, DirUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
			g.HandleInput(frame(tt.actions...))
			if g.snake.Direction() != tt.want {
				t.Errorf("direction = %s, expected %s", g.snake.Direction(), tt.want)
			}
		})
	}
}

func TestNoReversalWithinOneTick(t *testing.T) {
	tests := []struct {
		name   string
		frames [][]core.Action
	}{
		{"right then down", [][]core.Action{{core.ActionRight}, {core.ActionDown}}},
		{"right then left", [][]core.Action{{core.ActionRight}, {core.ActionLeft}}},
		{"right and left held", [][]core.Action{{core.ActionRight, core.ActionLeft}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
			g.food.pos = core.Vec{X: 0, Y: 0}

			for _, actions := range tt.frames {
				g.HandleInput(frame(actions...))
			}
			if g.snake.Direction() != DirRight {
				t.Fatalf("direction = %s, expected right", g.snake.Direction())
			}

			g.Update()
			if g.Phase() != StateRunning {
				t.Errorf("phase = %s, expected running", g.Phase())
			}
			if g.snake.Head() != (core.Vec{X: 7, Y: 9}) {
				t.Errorf("head = %v, expected (7, 9)", g.snake.Head())
			}
		})
	}
}

func TestPause(t *testing.T) {
	g, clock := newTestGame(t, config.DefaultSnakeConfig(), 1)

	g.Step(frame(core.ActionPause))
	if g.Phase() != StatePaused || !g.State().Paused {
		t.Fatalf("phase = %s, expected paused", g.Phase())
	}

	head := g.snake.Head()
	clock.Advance(step)
	g.Step(frame(core.ActionLeft))
	if g.snake.Head() != head {
		t.Error("snake moved while paused")
	}
	if g.snake.Direction() != DirUp {
		t.Error("direction changed while paused")
	}

	g.Step(frame(core.ActionPause))
	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, expected running after unpause", g.Phase())
	}
}

func TestRestart(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.snake.place([]core.Vec{{X: 24, Y: 9}, {X: 23, Y: 9}, {X: 22, Y: 9}}, DirRight)
	g.Update()

	g.HandleInput(frame(core.ActionRestart))
	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, expected running after restart", g.Phase())
	}
}

func TestWrapEdges(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Rules.Edges = config.EdgesWrap
	g, _ := newTestGame(t, cfg, 1)
	g.snake.place([]core.Vec{{X: 24, Y: 9}, {X: 23, Y: 9}, {X: 22, Y: 9}}, DirRight)
	g.food.pos = core.Vec{X: 0, Y: 0}

	g.Update()
	if g.Phase() != StateRunning {
		t.Fatalf("phase = %s, expected running with wrapping edges", g.Phase())
	}
	if g.snake.Head() != (core.Vec{X: 0, Y: 9}) {
		t.Errorf("head = %v, expected (0, 9)", g.snake.Head())
	}
}

func TestWinOnFullGrid(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.CellCount = 4
	cfg.Snake.Start = [][2]int{{2, 1}, {1, 1}, {0, 1}}
	g, _ := newTestGame(t, cfg, 1)

	// Every cell but (0,0), laid out as a serpentine ending at (1,0).
	g.snake.place([]core.Vec{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
		{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2},
		{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}, {X: 0, Y: 3},
	}, DirLeft)
	g.snake.Grow()
	g.food.pos = core.Vec{X: 0, Y: 0}
	g.score = 14

	res := g.Step(core.InputFrame{})
	if res.Ticked {
		t.Fatal("unexpected tick at time zero")
	}
	g.Update()

	if g.Phase() != StateWon {
		t.Fatalf("phase = %s, expected won", g.Phase())
	}
	if g.snake.Len() != 16 {
		t.Errorf("length = %d, expected the whole board", g.snake.Len())
	}
	if g.Score() != 15 {
		t.Errorf("score = %d, expected 15", g.Score())
	}

	res = g.Step(core.InputFrame{})
	if !res.RoundOver || res.FinalScore != 15 || res.FinalLength != 16 {
		t.Errorf("step result = %+v, expected a won round with score 15", res)
	}

	g.HandleInput(frame(core.ActionUp))
	if g.Phase() != StateRunning {
		t.Errorf("phase = %s, expected a new round after a direction key", g.Phase())
	}
	if g.snake.Len() != 3 {
		t.Errorf("length = %d, expected a fresh snake", g.snake.Len())
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 42)
	rng := rand.New(rand.NewSource(3))
	actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

	for i := range 5000 {
		if rng.Intn(4) == 0 {
			g.HandleInput(frame(actions[rng.Intn(len(actions))]))
		}

		before := g.Snapshot()
		heading := g.snake.Heading()
		dir := g.snake.Direction()
		growing := g.snake.Growing()
		g.Update()
		after := g.Snapshot()

		if dir == heading.Opposite() {
			t.Fatalf("tick %d: direction %s reverses heading %s", i, dir, heading)
		}
		if g.snake.Contains(g.food.Pos()) {
			t.Fatalf("tick %d: food %v lies on the snake", i, g.food.Pos())
		}
		if before.State != StateRunning || after.State != StateRunning {
			continue
		}

		head := core.Vec{X: before.HeadX, Y: before.HeadY}.Add(dir.Vec())
		if (core.Vec{X: after.HeadX, Y: after.HeadY}) != head {
			t.Fatalf("tick %d: head %d,%d, expected %v", i, after.HeadX, after.HeadY, head)
		}
		wantLen := before.SnakeLen
		if growing {
			wantLen++
		}
		if after.SnakeLen != wantLen {
			t.Fatalf("tick %d: length %d, expected %d", i, after.SnakeLen, wantLen)
		}
		if after.Score != before.Score && after.Score != before.Score+1 {
			t.Fatalf("tick %d: score jumped from %d to %d", i, before.Score, after.Score)
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Snapshot {
		g, clock := newTestGame(t, config.DefaultSnakeConfig(), 12345)
		rng := rand.New(rand.NewSource(9))
		actions := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

		var out []Snapshot
		for range 1000 {
			clock.Advance(0.05)
			var in core.InputFrame
			if rng.Intn(6) == 0 {
				in.Set(actions[rng.Intn(len(actions))])
			}
			g.Step(in)
			out = append(out, g.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	if !slices.Equal(a, b) {
		t.Error("same seed and input produced different games")
	}
}

func TestDifficultyShortensInterval(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Difficulty.Enabled = true
	g, _ := newTestGame(t, cfg, 1)
	base := g.sched.Interval()

	for range 5 {
		g.food.pos = g.snake.Head().Add(g.snake.Direction().Vec())
		g.Update()
	}
	if g.Phase() != StateRunning {
		t.Fatalf("phase = %s, expected running", g.Phase())
	}
	if g.sched.Interval() >= base {
		t.Errorf("interval = %.3f, expected less than %.3f", g.sched.Interval(), base)
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"000", "Snake", "Best 000", string(runeHead), string(runeFood)} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen is missing %q", want)
		}
	}

	g.food.pos = g.snake.Head().Add(DirUp.Vec())
	g.Update()
	g.Render(screen)
	if !strings.Contains(screen.String(), "001") {
		t.Error("HUD should show the score as three digits")
	}
}

func TestSetBestShowsRecord(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	g.SetBest(42)
	g.SetBest(7)
	if g.View().Best != 42 {
		t.Errorf("best = %d, expected 42", g.View().Best)
	}

	screen := core.NewScreen(80, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Best 042") {
		t.Error("HUD should show the stored record")
	}
}

func TestRenderFoodSpansCellWidth(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	g, _ := newTestGame(t, cfg, 1)
	g.food.pos = core.Vec{X: 3, Y: 4}
	screen := core.NewScreen(80, 30)

	g.Render(screen)
	x, y := g.cellOrigin(g.frameRect(screen), g.food.pos)
	for i := range cfg.Grid.CellWidth {
		if c := screen.GetCell(x+i, y); c.Rune != runeFood || c.Color != core.ColorRed {
			t.Errorf("column %d of the food cell = %q, expected %q", i, c.Rune, runeFood)
		}
	}
}

func TestRenderOverlays(t *testing.T) {
	g, _ := newTestGame(t, config.DefaultSnakeConfig(), 1)
	screen := core.NewScreen(80, 30)

	g.HandleInput(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("paused overlay missing")
	}

	g.HandleInput(frame(core.ActionPause))
	g.snake.place([]core.Vec{{X: 24, Y: 9}, {X: 23, Y: 9}, {X: 22, Y: 9}}, DirRight)
	g.Update()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay missing")
	}
}

func TestTooSmallScreenHoldsStill(t *testing.T) {
	clock := &core.ManualClock{}
	g := NewWithConfig(config.DefaultSnakeConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1, Clock: clock})

	head := g.snake.Head()
	clock.Advance(step)
	if res := g.Step(core.InputFrame{}); res.Ticked {
		t.Error("no tick should run while the screen is too small")
	}
	if g.snake.Head() != head {
		t.Error("snake moved while the screen was too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("too-small overlay missing")
	}

	g.Resize(80, 30)
	if res := g.Step(core.InputFrame{}); !res.Ticked {
		t.Error("a tick should run once the screen is large enough")
	}
}
