package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

const (
	bannerTitle    = "S H I P S  H U N T E R"
	bannerSubtitle = "Deploy Your Fleet, Sink All Ships"
	dividerMark    = "⫘⫘⫘⫘⫘⫘⫘⫘⫘"
)

// Banner renders the welcome box.
func (t Theme) Banner() string {
	return t.Frame.Render(lipgloss.JoinVertical(lipgloss.Center,
		t.Title.Render(bannerTitle),
		"",
		t.Subtitle.Render(bannerSubtitle),
	))
}

// Divider renders a section heading such as "⫘⫘⫘ TURN 3 ⫘⫘⫘".
func (t Theme) Divider(title string) string {
	return t.Heading.Render(fmt.Sprintf("%s  %s  %s", dividerMark, strings.ToUpper(title), dividerMark))
}

// WinMessage is the headline of the end-of-game box.
func WinMessage(res battle.Result) string {
	if !res.WinnerAutomated {
		return "CONGRATS YOU WIN!"
	}
	return fmt.Sprintf("*** %s WINS! ***", res.Winner.Name)
}

// EndBox renders the winner banner followed by the game statistics.
func (t Theme) EndBox(res battle.Result) string {
	box := t.Frame.Render(t.Success.Render(WinMessage(res)))
	return lipgloss.JoinVertical(lipgloss.Left, box, "", t.Stats(res))
}

// Stats renders shots, hits, accuracy and turns for the winner and the loser.
func (t Theme) Stats(res battle.Result) string {
	lines := []string{t.Divider("game statistics")}
	lines = append(lines, t.statLines(res.Winner)...)
	lines = append(lines, "  "+t.Heading.Render("Turns to Win: ")+fmt.Sprint(res.Turns))
	lines = append(lines, "")
	lines = append(lines, t.statLines(res.Loser)...)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (t Theme) statLines(s battle.Stats) []string {
	return []string{
		t.Heading.Render(s.Name + ":"),
		"  " + t.Heading.Render("Shots Fired: ") + fmt.Sprint(s.ShotsFired),
		"  " + t.Heading.Render("Shots Hit: ") + fmt.Sprint(s.ShotsHit),
		"  " + t.Heading.Render("Accuracy: ") + fmt.Sprintf("%.2f%%", s.Accuracy),
	}
}

// SunkMessage announces a vessel that went down.
func SunkMessage(vessel string) string {
	return fmt.Sprintf("*** %s has been SUNK! ***", vessel)
}
