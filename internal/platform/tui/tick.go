// Package tui provides the Bubble Tea surface for Ship Hunters: a
// cursor-driven match screen, the match history table and SSH hosting via
// Wish. The match itself runs in an engine.Controller goroutine and talks to
// the model through an engine.Bridge.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance screen animations.
type TickMsg time.Time

// tickRate is the animation rate in ticks per second.
const tickRate = 4

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
