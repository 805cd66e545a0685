// Package battle provides the core rules of Ship Hunters: grids, vessels,
// combatants, the opponent's targeting heuristic and the match state machine.
// This package is UI-agnostic and deterministic for a given seed.
package battle

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the fixed width and height of every grid.
const BoardSize = 10

// Coord addresses a single grid cell. Row and Col are 0-based.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// InBounds returns true if the coordinate lies on a BoardSize grid.
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Add returns a new Coord offset by (dRow, dCol).
func (c Coord) Add(dRow, dCol int) Coord {
	return Coord{Row: c.Row + dRow, Col: c.Col + dCol}
}

// Neighbors returns the orthogonal neighbours in up, down, left, right order.
// Out-of-bounds cells are skipped.
func (c Coord) Neighbors() []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		n := c.Add(d[0], d[1])
		if n.InBounds() {
			out = append(out, n)
		}
	}
	return out
}

// Label returns the human-readable address, e.g. "A1" or "J10".
func (c Coord) Label() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// String implements fmt.Stringer.
func (c Coord) String() string {
	return c.Label()
}

// ParseCoordinate converts a label such as "b7" or "J10" to a Coord.
// The letter selects the column and the number the row.
func ParseCoordinate(label string) (Coord, error) {
	if len(label) < 2 || len(label) > 3 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, label)
	}

	// Only the ASCII letter is case-folded; multi-byte letters are invalid.
	colChar := label[0]
	if colChar >= 'a' && colChar <= 'z' {
		colChar -= 'a' - 'A'
	}
	if colChar < 'A' || colChar >= 'A'+BoardSize {
		return Coord{}, fmt.Errorf("%w: column %q", ErrInvalidCoordinate, colChar)
	}

	digits := label[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coord{}, fmt.Errorf("%w: row %q", ErrInvalidCoordinate, digits)
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil || row < 1 || row > BoardSize {
		return Coord{}, fmt.Errorf("%w: row %q", ErrInvalidCoordinate, digits)
	}

	return Coord{Row: row - 1, Col: int(colChar - 'A')}, nil
}

// AllCoords returns every coordinate of the board, column by column
// (A1..A10, B1..B10, ...).
func AllCoords() []Coord {
	coords := make([]Coord, 0, BoardSize*BoardSize)
	for col := 0; col < BoardSize; col++ {
		for row := 0; row < BoardSize; row++ {
			coords = append(coords, C(row, col))
		}
	}
	return coords
}

// Orientation is the direction a vessel extends from its start cell.
type Orientation uint8

const (
	// Horizontal keeps the row fixed and increases the column.
	Horizontal Orientation = iota
	// Vertical keeps the column fixed and increases the row.
	Vertical
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Toggle returns the other orientation.
func (o Orientation) Toggle() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// delta returns the (dRow, dCol) step along the orientation.
func (o Orientation) delta() (int, int) {
	if o == Horizontal {
		return 0, 1
	}
	return 1, 0
}

// ParseOrientation accepts "h"/"horizontal" and "v"/"vertical" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

// Span returns the cells a vessel of the given length would occupy when
// started at c. Cells may be out of bounds; callers validate.
func Span(start Coord, length int, o Orientation) []Coord {
	dr, dc := o.delta()
	cells := make([]Coord, length)
	for i := range length {
		cells[i] = start.Add(dr*i, dc*i)
	}
	return cells
}
