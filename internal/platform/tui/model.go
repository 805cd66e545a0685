package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/core"
	"github.com/vovakirdan/shiphunters/internal/engine"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
)

// maxMessages is how many recent match messages stay on screen.
const maxMessages = 6

// MatchConfig describes one full-screen match of a human against the
// automated opponent.
type MatchConfig struct {
	Runtime  core.RuntimeConfig
	MatchID  string // Generated when empty
	Player   string
	Opponent string
	Theme    render.Theme
	Engine   engine.Options

	// ScreenshotDir enables ctrl+s screenshots when set.
	ScreenshotDir string

	// Context bounds every match of the session. When it is done the
	// controller and the event pump return. Defaults to context.Background.
	Context context.Context
}

// eventMsg carries an engine event into the Bubble Tea loop.
type eventMsg struct {
	matchID string
	evt     engine.Event
}

// matchDoneMsg is sent when the controller returns.
type matchDoneMsg struct {
	matchID string
	result  battle.Result
	err     error
}

// MatchModel is the Bubble Tea model for one match. The match runs in an
// engine.Controller goroutine; the model only sees snapshots from events.
type MatchModel struct {
	cfg    MatchConfig
	bridge *engine.Bridge
	run    tea.Cmd
	cancel context.CancelFunc

	theme render.Theme
	keys  KeyMap
	help  help.Model

	viewer   int // Side whose ships are revealed
	snap     battle.Snapshot
	hasSnap  bool
	placing  *engine.PlacementPrompt
	aiming   bool
	thinking string // Name of the automated side taking its turn
	cursor   battle.Coord
	orient   battle.Orientation
	status   string
	messages []string
	frame    int

	result   *battle.Result
	err      error
	quitting bool
	rematch  bool
	history  bool
}

// NewMatchModel creates a match model. The match starts when Init runs.
func NewMatchModel(cfg MatchConfig) MatchModel {
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	if cfg.Runtime.ScreenW == 0 || cfg.Runtime.ScreenH == 0 {
		def := core.DefaultConfig()
		cfg.Runtime.ScreenW, cfg.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.MatchID == "" {
		cfg.MatchID = uuid.NewString()
	}
	if cfg.Player == "" {
		cfg.Player = "Player"
	}
	if cfg.Opponent == "" {
		cfg.Opponent = "Computer"
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = render.PurpleTheme(nil)
	}

	match := battle.NewMatch(cfg.MatchID,
		battle.NewCombatant(cfg.Player, false),
		battle.NewCombatant(cfg.Opponent, true),
		cfg.Runtime.Seed,
	)
	bridge := engine.NewBridge(0)
	ctrl := engine.New(match, bridge, bridge, cfg.Engine)

	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	context.AfterFunc(ctx, bridge.Close)
	id := cfg.MatchID
	run := func() tea.Msg {
		res, err := ctrl.Run(ctx)
		return matchDoneMsg{matchID: id, result: res, err: err}
	}

	h := help.New()
	h.Width = cfg.Runtime.ScreenW

	return MatchModel{
		cfg:    cfg,
		bridge: bridge,
		run:    run,
		cancel: cancel,
		theme:  cfg.Theme,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the controller, the event pump and the animation ticker.
func (m MatchModel) Init() tea.Cmd {
	return tea.Batch(m.run, m.waitForEvent(), tickCmd(tickRate))
}

// waitForEvent returns a command that waits for the next engine event.
func (m MatchModel) waitForEvent() tea.Cmd {
	events, done, id := m.bridge.Events(), m.bridge.Done(), m.cfg.MatchID
	return func() tea.Msg {
		select {
		case evt := <-events:
			return eventMsg{matchID: id, evt: evt}
		case <-done:
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m MatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case eventMsg:
		if msg.matchID != m.cfg.MatchID {
			return m, nil
		}
		m.apply(msg.evt)
		return m, m.waitForEvent()

	case matchDoneMsg:
		if msg.matchID != m.cfg.MatchID {
			return m, nil
		}
		switch {
		case msg.err == nil:
			res := msg.result
			m.result = &res
		case !errors.Is(msg.err, context.Canceled) && !errors.Is(msg.err, engine.ErrBridgeClosed):
			m.err = msg.err
		}
		return m, nil

	case TickMsg:
		if m.quitting || m.result != nil {
			return m, nil
		}
		m.frame++
		return m, tickCmd(tickRate)
	}

	return m, nil
}

// apply folds one engine event into the screen state.
func (m *MatchModel) apply(evt engine.Event) {
	switch evt := evt.(type) {
	case engine.SetupStarted:
		if evt.Automated {
			m.status = fmt.Sprintf("%s is placing ships...", evt.Name)
		} else {
			m.status = fmt.Sprintf("%s, deploy your fleet!", evt.Name)
		}

	case engine.PlacementRequested:
		p := evt.Prompt
		m.placing = &p
		m.viewer = p.Side
		m.setSnapshot(p.Snapshot)
		m.status = fmt.Sprintf("Place your %s (Length: %d)", p.Vessel, p.Length)

	case engine.PlacementRejected:
		m.push(m.theme.Alert.Render("Invalid placement! Try again.") + " " + m.theme.Muted.Render(evt.Err.Error()))

	case engine.FleetDeployed:
		m.setSnapshot(evt.Snapshot)
		if !evt.Automated {
			m.placing = nil
			m.push(fmt.Sprintf("%s's fleet is deployed.", evt.Name))
		}

	case engine.BattleStarted:
		m.setSnapshot(evt.Snapshot)
		m.push("All ships placed!")

	case engine.TurnStarted:
		m.setSnapshot(evt.Snapshot)
		m.status = ""
		if evt.Automated {
			m.thinking = evt.Name
		}

	case engine.TargetRequested:
		m.aiming = true
		m.viewer = evt.Prompt.Side
		m.setSnapshot(evt.Prompt.Snapshot)
		m.status = "Choose your target and press enter"

	case engine.ShotRejected:
		if evt.Outcome == battle.ShotAlreadyShot {
			m.push(m.theme.Alert.Render("You already shot there! Try again."))
		} else {
			m.push(m.theme.Alert.Render("Invalid target! Try again."))
		}

	case engine.ShotResolved:
		m.setSnapshot(evt.Snapshot)
		m.thinking = ""
		m.aiming = false
		m.status = ""
		m.push(m.shotMessage(evt))
		if evt.Report.Sunk != "" {
			m.push(m.theme.Alert.Render(render.SunkMessage(evt.Report.Sunk)))
		}

	case engine.MatchFinished:
		m.setSnapshot(evt.Snapshot)
		res := evt.Result
		m.result = &res
		m.aiming = false
		m.thinking = ""
		m.status = ""
	}
}

func (m *MatchModel) shotMessage(evt engine.ShotResolved) string {
	r := evt.Report
	defender := m.snap.Sides[1-r.Side].Name

	switch {
	case r.Skipped:
		return fmt.Sprintf("%s has no targets left and passes.", evt.Shooter)
	case !evt.Automated && r.Outcome == battle.ShotHit:
		return m.theme.Success.Render("*** HIT! ***") + " " + r.Label
	case !evt.Automated:
		return m.theme.Muted.Render("*** MISS! ***") + " " + r.Label
	case r.Outcome == battle.ShotHit:
		return m.theme.Alert.Render(fmt.Sprintf("*** %s HIT %s's ship at %s! ***", evt.Shooter, defender, r.Label))
	default:
		return fmt.Sprintf("%s missed at %s.", evt.Shooter, r.Label)
	}
}

func (m *MatchModel) setSnapshot(s battle.Snapshot) {
	m.snap = s
	m.hasSnap = true
}

func (m *MatchModel) push(msg string) {
	m.messages = append(m.messages, msg)
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}

// handleKey processes keyboard input.
func (m MatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.Finished() {
		switch {
		case key.Matches(msg, m.keys.NewMatch):
			m.rematch = true
			return m, nil
		case key.Matches(msg, m.keys.History):
			m.history = true
			return m, nil
		}
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		dr, dc := action.Delta()
		m.cursor = battle.C(
			core.Clamp(m.cursor.Row+dr, 0, battle.BoardSize-1),
			core.Clamp(m.cursor.Col+dc, 0, battle.BoardSize-1),
		)

	case core.ActionRotate:
		if m.placing != nil {
			m.orient = m.orient.Toggle()
		}

	case core.ActionConfirm:
		m.confirm()
	}

	return m, nil
}

// confirm places the pending vessel or fires at the cursor.
func (m *MatchModel) confirm() {
	switch {
	case m.placing != nil:
		req := engine.PlacementRequest{Start: m.cursor.Label(), Orientation: m.orient.String()}
		if m.bridge.SubmitPlacement(req) {
			m.placing = nil
			m.status = ""
		}
	case m.aiming:
		if m.bridge.SubmitTarget(m.cursor.Label()) {
			m.aiming = false
			m.status = ""
		}
	case m.Finished():
		m.rematch = true
	}
}

// handleResize processes window resize events.
func (m MatchModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cfg.Runtime.ScreenW = msg.Width
	m.cfg.Runtime.ScreenH = msg.Height
	m.help.Width = msg.Width
	return m, nil
}

// saveScreenshot writes both boards as plain text to the screenshot directory.
func (m *MatchModel) saveScreenshot() {
	if m.cfg.ScreenshotDir == "" || !m.hasSnap {
		return
	}

	s := core.NewScreen(2*render.BoardWidth+4, render.BoardHeight)
	render.DrawBoard(s, 0, 0, m.snap.Sides[m.viewer].Board, true, render.Overlay{})
	render.DrawBoard(s, render.BoardWidth+4, 0, m.snap.Sides[1-m.viewer].Board,
		m.snap.Phase == battle.PhaseFinished, render.Overlay{})

	if err := os.MkdirAll(m.cfg.ScreenshotDir, 0o755); err != nil {
		m.push(m.theme.Alert.Render("Screenshot failed: " + err.Error()))
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.cfg.ScreenshotDir, fmt.Sprintf("%s_%s.txt", m.cfg.MatchID, timestamp))
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		m.push(m.theme.Alert.Render("Screenshot failed: " + err.Error()))
		return
	}
	m.push(m.theme.Muted.Render("Screenshot saved to " + path))
}

// overlays returns the cursor and placement preview for both boards.
func (m MatchModel) overlays() (own, target render.Overlay) {
	cursor := m.cursor
	switch {
	case m.placing != nil:
		cells := battle.Span(cursor, m.placing.Length, m.orient)
		own = render.Overlay{
			Cursor:       &cursor,
			Preview:      cells,
			PreviewValid: fitsBoard(m.snap.Sides[m.viewer].Board, cells),
		}
	case m.aiming:
		target = render.Overlay{Cursor: &cursor}
	}
	return own, target
}

// fitsBoard reports whether every cell is on the board and still open water.
func fitsBoard(b battle.Board, cells []battle.Coord) bool {
	for _, c := range cells {
		if !c.InBounds() || b[c.Row][c.Col] != battle.CellEmpty {
			return false
		}
	}
	return true
}

// View renders the current state to a string for display.
func (m MatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Divider(m.title()))
	b.WriteString("\n\n")

	switch {
	case !m.hasSnap:
		b.WriteString(m.theme.Muted.Render("Preparing match..."))
		b.WriteString("\n")
	case !m.cfg.Runtime.FitsBoards(render.BoardWidth, render.BoardHeight):
		b.WriteString(m.theme.Alert.Render(fmt.Sprintf("Terminal too small: need at least %dx%d",
			2*render.BoardWidth+4, render.BoardHeight+6)))
		b.WriteString("\n")
	default:
		own, target := m.overlays()
		b.WriteString(m.theme.Boards(m.snap, m.viewer, own, target))
		b.WriteString("\n")
		b.WriteString(m.fleets())
		b.WriteString("\n")
	}

	if line := m.statusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.messages) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(m.messages, "\n"))
		b.WriteString("\n")
	}

	if m.result != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.EndBox(*m.result))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Muted.Render("n: new match • tab: history • q: quit"))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.theme.Alert.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m MatchModel) title() string {
	switch {
	case !m.hasSnap || m.snap.Phase == battle.PhaseSetup:
		return "setup phase"
	case m.snap.Phase == battle.PhaseFinished:
		return "game over"
	default:
		return fmt.Sprintf("turn %d", m.snap.Turns+1)
	}
}

func (m MatchModel) statusLine() string {
	if m.thinking != "" {
		return m.theme.Muted.Render(m.thinking + " is thinking" + strings.Repeat(".", m.frame%4))
	}
	if m.status == "" {
		return ""
	}
	line := m.theme.Heading.Render(m.status)
	if m.placing != nil {
		line += m.theme.Muted.Render(fmt.Sprintf("  [%s at %s]", m.orient, m.cursor.Label()))
	} else if m.aiming {
		line += m.theme.Muted.Render(fmt.Sprintf("  [%s]", m.cursor.Label()))
	}
	return line
}

// fleets renders the viewer's fleet damage and the opponent's sunk count.
func (m MatchModel) fleets() string {
	me := m.snap.Sides[m.viewer]
	them := m.snap.Sides[1-m.viewer]

	left := lipgloss.NewStyle().Width(render.BoardWidth + 4).Render(m.theme.FleetStatus(me))
	right := m.theme.Text.Render(fmt.Sprintf("Sunk: %d/%d", them.SunkCount(), len(them.Fleet)))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// Stop cancels the running match.
func (m MatchModel) Stop() {
	m.cancel()
	m.bridge.Close()
}

// Finished reports whether the match ended, either with a result or an error.
func (m MatchModel) Finished() bool {
	return m.result != nil || m.err != nil
}

// Result returns the match result once the match is over.
func (m MatchModel) Result() (battle.Result, bool) {
	if m.result == nil {
		return battle.Result{}, false
	}
	return *m.result, true
}

// Err returns the error that ended the match, if any.
func (m MatchModel) Err() error { return m.err }

// IsQuitting returns whether the player quit.
func (m MatchModel) IsQuitting() bool { return m.quitting }

// WantsRematch returns whether the player asked for a new match.
func (m MatchModel) WantsRematch() bool { return m.rematch }

// WantsHistory returns whether the player asked for the match history.
func (m MatchModel) WantsHistory() bool { return m.history }

// MatchID returns the ID of the match.
func (m MatchModel) MatchID() string { return m.cfg.MatchID }
