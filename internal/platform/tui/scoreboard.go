package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

const boardRuns = 100 // rounds listed per mode

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	boardModeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActive     = boardModeStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22"))
	boardPanel      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("22")).Padding(0, 1)
	boardDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardLabel      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(9)
)

// ScoreboardKeyMap defines the key bindings of the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Open     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.NextMode, k.Open, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextMode, k.PrevMode}, {k.Open, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the stored rounds of each mode. Enter opens the
// selected round.
type ScoreboardModel struct {
	modes []registry.GameInfo
	mode  int
	store *storage.Store

	runs   []storage.Run
	stats  *storage.GameStats
	detail *storage.Run // round shown instead of the table
	err    error        // last storage failure, shown in the status line

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = newRunTable(width, height)
	m.load()
	return m
}

func newRunTable(width, height int) table.Model {
	date := 12
	if width > 60 {
		date = 17
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 5},
			{Title: "Length", Width: 6},
			{Title: "Ticks", Width: 7},
			{Title: "Played", Width: date},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22"))
	t.SetStyles(s)
	return t
}

// gameID returns the mode being shown, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// load reads the runs and stats of the current mode.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.detail, m.err = nil, nil, nil, nil
	if m.store != nil && m.gameID() != "" {
		m.runs, m.err = m.store.TopScores(m.gameID(), boardRuns)
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(m.gameID())
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	layout := "Jan 02 15:04"
	if m.width > 60 {
		layout = "2006-01-02 15:04"
	}
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprintf("%03d", r.Score),
			fmt.Sprint(r.Length),
			fmt.Sprint(r.Ticks),
			r.CreatedAt.Format(layout),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// openSelected re-reads the highlighted round by its run ID.
func (m *ScoreboardModel) openSelected() {
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.runs) {
		return
	}
	run, err := m.store.RunByID(m.runs[i].ID)
	switch {
	case err != nil:
		m.err = err
	case run == nil:
		m.err = fmt.Errorf("run %s no longer exists", m.runs[i].ID)
	default:
		m.detail = run
	}
}

func (m *ScoreboardModel) cycle(step int) {
	if len(m.modes) < 2 {
		return
	}
	m.mode = (m.mode + step + len(m.modes)) % len(m.modes)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit
		case m.detail != nil:
			return m, nil
		case key.Matches(msg, m.keys.NextMode):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Open):
			m.openSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cursor := m.table.Cursor()
		m.table = newRunTable(m.width, m.height)
		m.fillTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var body string
	switch {
	case m.detail != nil:
		body = m.detailView(*m.detail)
	case len(m.runs) == 0:
		body = boardDim.Italic(true).Padding(1, 2).Render("No scores recorded yet.\nEat some food to set a high score!")
	default:
		body = m.table.View()
	}

	lines := []string{
		"",
		boardTitleStyle.Render("S N A K E   R E C O R D S"),
		m.modeTabs(),
		boardPanel.Render(body),
		m.statusLine(),
		boardDim.Render(m.help.View(m.keys)),
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ScoreboardModel) modeTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = boardActive.Render(g.Title)
		} else {
			tabs[i] = boardModeStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) detailView(r storage.Run) string {
	session := r.SessionID
	if session == "" {
		session = "local"
	}
	title := r.GameID
	if len(m.modes) > 0 {
		title = m.modes[m.mode].Title
	}

	rows := [][2]string{
		{"Run", r.ID.String()},
		{"Mode", title},
		{"Score", fmt.Sprintf("%03d", r.Score)},
		{"Length", fmt.Sprint(r.Length)},
		{"Ticks", fmt.Sprint(r.Ticks)},
		{"Seed", fmt.Sprint(r.Seed)},
		{"Session", session},
		{"Played", r.CreatedAt.Format("2006-01-02 15:04:05")},
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = boardLabel.Render(row[0]) + row[1]
	}
	return strings.Join(out, "\n")
}

// statusLine shows a storage error or the mode's totals.
func (m ScoreboardModel) statusLine() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error())
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return boardDim.Render(fmt.Sprintf("%d rounds  best %03d  avg %.1f  longest snake %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.MaxLength))
}

// centerText pads s so that it sits in the middle of width columns.
func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := strings.Repeat(" ", (width-w)/2)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// IsGoingBack returns true if the user pressed back rather than quit.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if the user left with back rather than quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
