package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shiphunters/internal/platform/render"
)

// SessionModel manages the full session flow: match -> history -> new match.
// This is the top-level model used locally and for SSH sessions.
type SessionModel struct {
	config   MatchConfig
	history  HistorySource
	match    MatchModel
	browse   *HistoryModel
	quitting bool
}

// NewSessionModel creates a session that starts with a match.
// history may be nil when no journal is available.
func NewSessionModel(cfg MatchConfig, history HistorySource) SessionModel {
	if cfg.Theme.Name == "" {
		cfg.Theme = render.PurpleTheme(nil)
	}
	return SessionModel{
		config:  cfg,
		history: history,
		match:   NewMatchModel(cfg),
	}
}

// Init starts the first match.
func (m SessionModel) Init() tea.Cmd {
	return m.match.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.Runtime.ScreenW = wsm.Width
		m.config.Runtime.ScreenH = wsm.Height
	}

	if m.browse != nil {
		return m.updateHistory(msg)
	}
	return m.updateMatch(msg)
}

// updateMatch handles updates while a match is on screen.
func (m SessionModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.match.Update(msg)
	if mm, ok := newModel.(MatchModel); ok {
		m.match = mm
	}

	switch {
	case m.match.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.match.WantsRematch():
		return m, m.startMatch()

	case m.match.WantsHistory():
		m.match.history = false
		browse := NewHistoryModel(m.history, m.config.Theme, m.config.Runtime.ScreenW, m.config.Runtime.ScreenH)
		m.browse = &browse
		return m, browse.Init()
	}

	return m, cmd
}

// updateHistory handles updates while the history is on screen.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.browse.Update(msg)
	if hm, ok := newModel.(HistoryModel); ok {
		m.browse = &hm
	}

	if m.browse.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.browse.GoingBack() {
		m.browse = nil
	}
	return m, cmd
}

// startMatch replaces the finished match with a fresh one.
func (m *SessionModel) startMatch() tea.Cmd {
	m.match.Stop()
	cfg := m.config
	cfg.MatchID = ""
	cfg.Runtime.Seed = 0
	m.match = NewMatchModel(cfg)
	return m.match.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.browse != nil {
		return m.browse.View()
	}
	return m.match.View()
}

// Stop ends the current match and releases its goroutines.
func (m SessionModel) Stop() {
	m.match.Stop()
}

// Err returns the error that ended the current match, if any.
func (m SessionModel) Err() error {
	return m.match.Err()
}

// Run starts a full-screen session on the local terminal.
func Run(cfg MatchConfig, history HistorySource) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, history),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	model, err := p.Run()
	sm, ok := model.(SessionModel)
	if ok {
		sm.Stop()
	}
	if err != nil {
		return err
	}
	if ok {
		return sm.Err()
	}
	return nil
}
