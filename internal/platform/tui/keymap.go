package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// GrowKeyMap defines the key bindings of the growth view.
type GrowKeyMap struct {
	Quit key.Binding
}

// DefaultGrowKeyMap returns default key bindings.
func DefaultGrowKeyMap() GrowKeyMap {
	return GrowKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// quitRequested reports whether msg stops the growth view. In screensaver
// mode, and once a single tree has finished, any key stops it.
func (k GrowKeyMap) quitRequested(msg tea.KeyMsg, anyKey bool) bool {
	return anyKey || key.Matches(msg, k.Quit)
}
