// Package render draws Ship Hunters boards and banners with lipgloss. It is
// shared by the line console, the full-screen TUI and SSH sessions.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shiphunters/internal/core"
)

// Theme holds every style used to draw a match.
type Theme struct {
	Name string

	cells map[core.Color]lipgloss.Style

	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Alert    lipgloss.Style
	Success  lipgloss.Style

	// Frame around banners and the end-of-game box
	Frame lipgloss.Style
}

var themes = map[string]func(*lipgloss.Renderer) Theme{
	"purple":  PurpleTheme,
	"classic": ClassicTheme,
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns the named theme bound to r. A nil renderer uses the
// process-wide lipgloss renderer.
func ThemeByName(name string, r *lipgloss.Renderer) (Theme, error) {
	build, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, fmt.Errorf("render: unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return build(r), nil
}

// PurpleTheme is the default look: purple ships and misses, pink hits and
// labels, blue borders.
func PurpleTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	purple := lipgloss.Color("135")
	pink := lipgloss.Color("205")
	blue := lipgloss.Color("33")

	return Theme{
		Name: "purple",
		cells: map[core.Color]lipgloss.Style{
			core.ColorDefault: r.NewStyle(),
			core.ColorWater:   r.NewStyle().Foreground(lipgloss.Color("245")),
			core.ColorShip:    r.NewStyle().Foreground(purple),
			core.ColorHit:     r.NewStyle().Foreground(pink).Bold(true),
			core.ColorMiss:    r.NewStyle().Foreground(purple),
			core.ColorBorder:  r.NewStyle().Foreground(blue),
			core.ColorLabel:   r.NewStyle().Foreground(pink),
			core.ColorCursor:  r.NewStyle().Foreground(lipgloss.Color("0")).Background(pink),
			core.ColorPreview: r.NewStyle().Foreground(lipgloss.Color("0")).Background(purple),
			core.ColorInvalid: r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("160")),
			core.ColorTitle:   r.NewStyle().Foreground(pink).Bold(true),
		},
		Title:    r.NewStyle().Foreground(pink).Bold(true),
		Subtitle: r.NewStyle().Foreground(purple),
		Heading:  r.NewStyle().Foreground(pink).Bold(true),
		Text:     r.NewStyle(),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Alert:    r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Success:  r.NewStyle().Foreground(pink).Bold(true),
		Frame: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(purple).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// ClassicTheme is a sea-and-steel palette.
func ClassicTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := PurpleTheme(r)
	t.Name = "classic"

	navy := lipgloss.Color("25")
	steel := lipgloss.Color("250")
	red := lipgloss.Color("196")

	t.cells[core.ColorWater] = r.NewStyle().Foreground(navy)
	t.cells[core.ColorShip] = r.NewStyle().Foreground(steel)
	t.cells[core.ColorHit] = r.NewStyle().Foreground(red).Bold(true)
	t.cells[core.ColorMiss] = r.NewStyle().Foreground(lipgloss.Color("39"))
	t.cells[core.ColorBorder] = r.NewStyle().Foreground(lipgloss.Color("240"))
	t.cells[core.ColorLabel] = r.NewStyle().Foreground(lipgloss.Color("226"))
	t.cells[core.ColorCursor] = r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("226"))
	t.cells[core.ColorPreview] = r.NewStyle().Foreground(lipgloss.Color("0")).Background(steel)
	t.cells[core.ColorTitle] = r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	t.Title = r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	t.Subtitle = r.NewStyle().Foreground(steel)
	t.Heading = r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	t.Success = r.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	t.Frame = t.Frame.BorderForeground(navy)
	return t
}

// Cell returns the style for a semantic colour.
func (t Theme) Cell(c core.Color) lipgloss.Style {
	if style, ok := t.cells[c]; ok {
		return style
	}
	return t.cells[core.ColorDefault]
}

// Paint converts a Screen buffer to a styled string.
// Adjacent cells with the same colour share one style run.
func (t Theme) Paint(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(t.Cell(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
