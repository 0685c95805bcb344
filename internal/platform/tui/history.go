package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bonsai/internal/storage"
)

// History browser layout constants
const (
	maxHistory = 200 // Max trees to load
	dateWidth  = 14
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Select, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "regrow"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing grown trees.
type HistoryModel struct {
	trees    []storage.TreeRecord
	stats    *storage.TreeStats
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	selected *storage.TreeRecord
	quitting bool
}

// NewHistoryModel creates a history browser over the recorded trees.
func NewHistoryModel(trees []storage.TreeRecord, stats *storage.TreeStats, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		trees:  trees,
		stats:  stats,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Seed", Width: 20},
		{Title: "Life", Width: 5},
		{Title: "Mult", Width: 5},
		{Title: "Branches", Width: 9},
		{Title: "Shoots", Width: 7},
		{Title: "Date", Width: dateWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table with the loaded trees.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.trees))
	for i, tr := range m.trees {
		rows[i] = table.Row{
			fmt.Sprintf("%d", tr.ID),
			fmt.Sprintf("%d", tr.Seed),
			fmt.Sprintf("%d", tr.Life),
			fmt.Sprintf("%d", tr.Multiplier),
			fmt.Sprintf("%d", tr.Branches),
			fmt.Sprintf("%d", tr.Shoots),
			tr.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.trees) {
				tr := m.trees[i]
				m.selected = &tr
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))
	b.WriteString(titleStyle.Render(centerText("BONSAI HISTORY", m.width)))
	b.WriteString("\n")

	if m.stats != nil && m.stats.Count > 0 {
		statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		line := fmt.Sprintf("%d trees, largest %d branches (seed %d), average %.1f",
			m.stats.Count, m.stats.MaxBranches, m.stats.LargestSeed, m.stats.AvgBranches)
		b.WriteString(statsStyle.Render(centerText(line, m.width)))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.trees) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No trees recorded yet.\nGrow one with `bonsai`!")
	}
	return m.table.View()
}

// Selected returns the tree chosen for regrowing, or nil.
func (m HistoryModel) Selected() *storage.TreeRecord {
	return m.selected
}

// centerText pads s with spaces so it is centered in width columns.
func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// RunHistory runs the history browser over the most recent trees.
// It returns the tree the user picked, or nil.
func RunHistory(store *storage.Store, width, height int) (*storage.TreeRecord, error) {
	trees, err := store.RecentTrees(maxHistory)
	if err != nil {
		return nil, err
	}
	stats, err := store.Stats()
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(
		NewHistoryModel(trees, stats, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
