// Package tui provides the Bubble Tea integration for bonsai.
// It runs tree growth behind a live terminal view, prints finished trees,
// browses the tree history and serves screensaver sessions over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the redraw rate of the live view.
const DefaultFPS = 30

// TickMsg is sent to trigger a redraw.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
