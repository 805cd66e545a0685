package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/core"
)

// Board glyphs.
const (
	GlyphWater = '☐'
	GlyphShip  = '⬤'
	GlyphHit   = '◉'
	GlyphMiss  = '☒'
)

// Board layout: row labels, a framed grid with two columns per cell and the
// column letters on top.
const (
	labelWidth  = 3 // "10 "
	cellWidth   = 2 // glyph + space
	innerWidth  = battle.BoardSize*cellWidth + 1
	BoardWidth  = labelWidth + innerWidth + 2
	BoardHeight = battle.BoardSize + 3
)

// Overlay marks interactive cells on top of a board.
type Overlay struct {
	Cursor       *battle.Coord
	Preview      []battle.Coord // Cells a vessel would cover if placed now
	PreviewValid bool
}

// CellOrigin returns the screen position of a board cell.
func CellOrigin(c battle.Coord) (x, y int) {
	return labelWidth + 2 + c.Col*cellWidth, 2 + c.Row
}

// DrawBoard draws b at (x, y). Ships are only shown when reveal is set.
func DrawBoard(s *core.Screen, x, y int, b battle.Board, reveal bool, ov Overlay) {
	for col := range battle.BoardSize {
		cx, _ := CellOrigin(battle.C(0, col))
		s.SetColored(x+cx, y, rune('A'+col), core.ColorLabel)
	}

	s.DrawBox(core.NewRect(x+labelWidth, y+1, innerWidth+2, battle.BoardSize+2), core.ColorBorder)

	for row := range battle.BoardSize {
		s.DrawTextColored(x, y+2+row, fmt.Sprintf("%2d", row+1), core.ColorLabel)
		for col := range battle.BoardSize {
			c := battle.C(row, col)
			glyph, color := cellGlyph(b[row][col], reveal)
			cx, cy := CellOrigin(c)
			s.SetColored(x+cx, y+cy, glyph, color)
		}
	}

	previewColor := core.ColorPreview
	if !ov.PreviewValid {
		previewColor = core.ColorInvalid
	}
	for _, c := range ov.Preview {
		if !c.InBounds() {
			continue
		}
		cx, cy := CellOrigin(c)
		s.SetColored(x+cx, y+cy, s.Get(x+cx, y+cy), previewColor)
	}
	if ov.Cursor != nil && ov.Cursor.InBounds() {
		cx, cy := CellOrigin(*ov.Cursor)
		s.SetColored(x+cx, y+cy, s.Get(x+cx, y+cy), core.ColorCursor)
	}
}

func cellGlyph(state battle.CellState, reveal bool) (rune, core.Color) {
	switch state {
	case battle.CellShip:
		if reveal {
			return GlyphShip, core.ColorShip
		}
		return GlyphWater, core.ColorWater
	case battle.CellHit:
		return GlyphHit, core.ColorHit
	case battle.CellMiss:
		return GlyphMiss, core.ColorMiss
	default:
		return GlyphWater, core.ColorWater
	}
}

// BoardScreen returns a screen holding a single board.
func BoardScreen(b battle.Board, reveal bool, ov Overlay) *core.Screen {
	s := core.NewScreen(BoardWidth, BoardHeight)
	DrawBoard(s, 0, 0, b, reveal, ov)
	return s
}

// Board renders a single board with a heading above it.
func (t Theme) Board(heading string, b battle.Board, reveal bool, ov Overlay) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Heading.Render(heading),
		t.Paint(BoardScreen(b, reveal, ov)),
	)
}

// Boards renders the viewer's own board next to the opponent's hidden board.
func (t Theme) Boards(snap battle.Snapshot, viewer int, own, target Overlay) string {
	me := snap.Sides[viewer]
	them := snap.Sides[1-viewer]

	left := t.Board(fmt.Sprintf("%s's board", me.Name), me.Board, true, own)
	right := t.Board(fmt.Sprintf("%s's board", them.Name), them.Board, snap.Phase == battle.PhaseFinished, target)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
}

// FleetStatus lists a side's vessels with their damage.
func (t Theme) FleetStatus(side battle.SideSnapshot) string {
	lines := make([]string, 0, len(side.Fleet))
	for _, v := range side.Fleet {
		status := fmt.Sprintf("%-10s %d/%d", v.Name, v.Hits, v.Length)
		switch {
		case v.Sunk:
			lines = append(lines, t.Alert.Render(status+" SUNK"))
		case v.Hits > 0:
			lines = append(lines, t.Text.Render(status))
		default:
			lines = append(lines, t.Muted.Render(status))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
