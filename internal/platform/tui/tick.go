// Package tui runs games in a terminal through Bubble Tea, locally or over
// SSH. It owns frame pacing, key mapping and styling; the games only see
// input frames and a screen buffer.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per rendered frame.
type FrameMsg time.Time

// frameCmd schedules the next frame at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
