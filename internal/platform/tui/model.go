package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      GameKeyMap
	input     core.InputFrame
	sessionID string

	// logger reports save failures as they happen. Without one the first
	// failure is kept for the caller, since logging would corrupt the
	// alternate screen.
	logger *log.Logger

	rounds   int
	best     int
	saveErr  error
	quitting bool
	back     bool
}

// Summary describes a finished play session.
type Summary struct {
	Rounds  int
	Best    int
	SaveErr error // first failed score save, if any
	Back    bool  // left with the back key rather than quit
}

// NewModel creates a model for the given game. A zero seed is replaced with
// one derived from the current time.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		input:  core.NewInputFrame(),
	}
}

// WithSession tags saved rounds with an SSH session ID and logs save
// failures to logger.
func (m Model) WithSession(sessionID string, logger *log.Logger) Model {
	m.sessionID = sessionID
	m.logger = logger
	return m
}

// Init starts the game and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.loadRecord()
	return frameCmd(m.config.TickRate)
}

// loadRecord shows the stored high score in games that display one.
func (m Model) loadRecord() {
	rk, ok := m.game.(registry.RecordKeeper)
	if !ok || m.store == nil {
		return
	}
	if best, err := m.store.HighScore(m.game.ID()); err == nil {
		rk.SetBest(best)
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey records the key's action for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.quitting = true
		m.back = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleResize adapts the screen buffer and the game to a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleFrame steps the game with the input gathered since the last frame.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.input)
	m.input.Clear()

	if result.RoundOver {
		m.recordRound(result)
	}

	return m, frameCmd(m.config.TickRate)
}

// recordRound saves a finished round with a non-zero score.
func (m *Model) recordRound(res core.StepResult) {
	m.rounds++
	m.best = max(m.best, res.FinalScore)

	if m.store == nil || res.FinalScore <= 0 {
		return
	}

	id, err := m.store.SaveRun(storage.Run{
		GameID:    m.game.ID(),
		SessionID: m.sessionID,
		Score:     res.FinalScore,
		Length:    res.FinalLength,
		Ticks:     res.Ticks,
		Seed:      m.config.Seed,
	})
	switch {
	case err != nil && m.logger != nil:
		m.logger.Warn("could not save score", "game", m.game.ID(), "score", res.FinalScore, "error", err)
	case err != nil && m.saveErr == nil:
		m.saveErr = err
	case err == nil && m.logger != nil:
		m.logger.Debug("round saved", "run", id, "game", m.game.ID(), "score", res.FinalScore)
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.snake/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Summary returns what happened during the session.
func (m Model) Summary() Summary {
	return Summary{
		Rounds:  m.rounds,
		Best:    m.best,
		SaveErr: m.saveErr,
		Back:    m.back,
	}
}

// Run plays the game in the alternate screen until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Summary, error) {
	p := tea.NewProgram(
		NewModel(game, store, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return Summary{}, err
	}

	m, ok := final.(Model)
	if !ok {
		return Summary{}, nil
	}
	return m.Summary(), nil
}
