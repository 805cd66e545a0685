package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shiphunters/internal/platform/render"
	"github.com/vovakirdan/shiphunters/internal/storage"
)

// maxHistory is how many matches the history screen loads.
const maxHistory = 100

// HistorySource lists finished matches, newest first.
type HistorySource interface {
	RecentMatches(limit int) ([]storage.MatchSummary, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
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
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	source    HistorySource
	matches   []storage.MatchSummary
	loadErr   error
	theme     render.Theme
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)

	exitOnBack bool // Back ends the program instead of returning to a match
}

// NewHistoryModel creates a history model and loads the recent matches.
// A nil source shows an empty history.
func NewHistoryModel(source HistorySource, theme render.Theme, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		source: source,
		theme:  theme,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Winner", Width: 14},
		{Title: "Loser", Width: 14},
		{Title: "Turns", Width: 6},
		{Title: "Accuracy", Width: 9},
		{Title: "Finished", Width: 13},
	}

	height := m.height - 8 // Leave room for title, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the recent matches from the source.
func (m *HistoryModel) load() {
	m.matches, m.loadErr = nil, nil
	if m.source != nil {
		m.matches, m.loadErr = m.source.RecentMatches(maxHistory)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(HistoryRows(m.matches))
	m.table.GotoTop()
}

// HistoryRows formats match summaries as table rows.
func HistoryRows(matches []storage.MatchSummary) []table.Row {
	rows := make([]table.Row, len(matches))
	for i, s := range matches {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			s.Winner,
			s.Loser,
			fmt.Sprintf("%d", s.Turns),
			fmt.Sprintf("%.2f%%", s.Accuracy()),
			s.FinishedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.exitOnBack {
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

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Divider("match history"))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(m.theme.Alert.Render("Could not load history: " + m.loadErr.Error()))
	case len(m.matches) == 0:
		b.WriteString(m.theme.Muted.Render("No matches played yet."))
	default:
		b.WriteString(m.table.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// IsQuitting returns whether the user quit.
func (m HistoryModel) IsQuitting() bool { return m.quitting }

// GoingBack returns whether the user left the history screen.
func (m HistoryModel) GoingBack() bool { return m.goingBack }

// RunHistory shows the history screen on its own.
func RunHistory(source HistorySource, theme render.Theme) error {
	m := NewHistoryModel(source, theme, 80, 24)
	m.exitOnBack = true

	p := tea.NewProgram(m, tea.WithAltScreen())
	model, err := p.Run()
	if err != nil {
		return err
	}
	if hm, ok := model.(HistoryModel); ok && hm.loadErr != nil {
		return hm.loadErr
	}
	return nil
}
