package battle

import "fmt"

// CellState is what a grid cell currently holds.
type CellState uint8

const (
	CellEmpty CellState = iota // Open water, never shot
	CellShip                   // Vessel segment, never shot
	CellHit                    // Vessel segment that has been shot
	CellMiss                   // Open water that has been shot
)

// String returns a human-readable name for the cell state.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellShip:
		return "Ship"
	case CellHit:
		return "Hit"
	case CellMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Shot reports whether the cell has already received a shot.
func (s CellState) Shot() bool {
	return s == CellHit || s == CellMiss
}

// ShotOutcome is the result of firing at a grid.
type ShotOutcome uint8

const (
	ShotInvalid     ShotOutcome = iota // Label did not parse
	ShotAlreadyShot                    // Cell was resolved earlier, nothing changed
	ShotHit
	ShotMiss
)

// String returns a human-readable name for the outcome.
func (o ShotOutcome) String() string {
	switch o {
	case ShotInvalid:
		return "INVALID"
	case ShotAlreadyShot:
		return "ALREADY_SHOT"
	case ShotHit:
		return "HIT"
	case ShotMiss:
		return "MISS"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether the outcome resolved a fresh cell.
func (o ShotOutcome) Valid() bool {
	return o == ShotHit || o == ShotMiss
}

// ParseShotOutcome is the inverse of ShotOutcome.String.
func ParseShotOutcome(s string) (ShotOutcome, error) {
	switch s {
	case "INVALID":
		return ShotInvalid, nil
	case "ALREADY_SHOT":
		return ShotAlreadyShot, nil
	case "HIT":
		return ShotHit, nil
	case "MISS":
		return ShotMiss, nil
	default:
		return ShotInvalid, fmt.Errorf("battle: unknown shot outcome %q", s)
	}
}

// Board is a full matrix of cell states, indexed [row][col].
type Board [BoardSize][BoardSize]CellState

// Grid is one combatant's 10x10 battlefield.
// cells holds the visible state; occupied is the placement/hit-test matrix.
type Grid struct {
	cells    Board
	occupied [BoardSize][BoardSize]bool
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// Cell returns the state at c. Out-of-bounds cells read as empty.
func (g *Grid) Cell(c Coord) CellState {
	if !c.InBounds() {
		return CellEmpty
	}
	return g.cells[c.Row][c.Col]
}

// Occupied reports whether a vessel covers c.
func (g *Grid) Occupied(c Coord) bool {
	if !c.InBounds() {
		return false
	}
	return g.occupied[c.Row][c.Col]
}

// Board returns a copy of the cell matrix.
func (g *Grid) Board() Board {
	return g.cells
}

// CanPlace checks whether a vessel of the given length fits at start.
func (g *Grid) CanPlace(start Coord, length int, o Orientation) error {
	for _, c := range Span(start, length, o) {
		if !c.InBounds() {
			return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
		}
		if g.occupied[c.Row][c.Col] {
			return fmt.Errorf("%w at %s", ErrOverlap, c.Label())
		}
	}
	return nil
}

// PlaceShip parses startLabel and places v there. See PlaceShipAt.
func (g *Grid) PlaceShip(v *Vessel, startLabel string, o Orientation) error {
	start, err := ParseCoordinate(startLabel)
	if err != nil {
		return err
	}
	return g.PlaceShipAt(v, start, o)
}

// PlaceShipAt places v with its first cell at start.
// Nothing is modified when an error is returned.
func (g *Grid) PlaceShipAt(v *Vessel, start Coord, o Orientation) error {
	if v.Placed() {
		return fmt.Errorf("%w: %s", ErrVesselPlaced, v.Name())
	}
	if err := g.CanPlace(start, v.Length(), o); err != nil {
		return err
	}

	cells := Span(start, v.Length(), o)
	for _, c := range cells {
		g.cells[c.Row][c.Col] = CellShip
		g.occupied[c.Row][c.Col] = true
	}
	v.setCells(cells)
	return nil
}

// Shoot parses label and resolves a shot there. See ShootAt.
func (g *Grid) Shoot(label string) ShotOutcome {
	c, err := ParseCoordinate(label)
	if err != nil {
		return ShotInvalid
	}
	return g.ShootAt(c)
}

// ShootAt resolves a shot at c. A cell already hit or missed is left
// untouched and reported as ShotAlreadyShot.
func (g *Grid) ShootAt(c Coord) ShotOutcome {
	if !c.InBounds() {
		return ShotInvalid
	}
	if g.cells[c.Row][c.Col].Shot() {
		return ShotAlreadyShot
	}
	if g.occupied[c.Row][c.Col] {
		g.cells[c.Row][c.Col] = CellHit
		return ShotHit
	}
	g.cells[c.Row][c.Col] = CellMiss
	return ShotMiss
}

// AllShipsSunk is true when no cell still carries an unhit ship segment.
func (g *Grid) AllShipsSunk() bool {
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] == CellShip {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells are in the given state.
func (g *Grid) Count(state CellState) int {
	n := 0
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] == state {
				n++
			}
		}
	}
	return n
}
