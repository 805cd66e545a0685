package battle

// VesselClass describes one fleet slot.
type VesselClass struct {
	Name   string
	Length int
}

// Fleet is the fixed fleet every combatant places, in placement order.
var Fleet = []VesselClass{
	{Name: "Carrier", Length: 5},
	{Name: "Battleship", Length: 4},
	{Name: "Destroyer", Length: 3},
}

// FleetCells is the total number of ship segments in a fleet.
func FleetCells() int {
	n := 0
	for _, vc := range Fleet {
		n += vc.Length
	}
	return n
}

// Vessel is a single ship: identity, occupied cells and damage.
type Vessel struct {
	name   string
	length int
	cells  []Coord
	hits   int
}

// NewVessel creates an unplaced vessel.
func NewVessel(name string, length int) *Vessel {
	return &Vessel{
		name:   name,
		length: length,
	}
}

// Name returns the vessel's class name.
func (v *Vessel) Name() string { return v.name }

// Length returns how many cells the vessel covers.
func (v *Vessel) Length() int { return v.length }

// Hits returns the number of segments hit so far.
func (v *Vessel) Hits() int { return v.hits }

// Placed reports whether the vessel has been put on a grid.
func (v *Vessel) Placed() bool { return len(v.cells) > 0 }

// Cells returns a copy of the occupied cells in placement order.
func (v *Vessel) Cells() []Coord {
	out := make([]Coord, len(v.cells))
	copy(out, v.cells)
	return out
}

// Occupies reports whether c is one of the vessel's cells.
func (v *Vessel) Occupies(c Coord) bool {
	for _, cell := range v.cells {
		if cell == c {
			return true
		}
	}
	return false
}

// RegisterHit records damage to one segment. The caller guarantees it is
// called at most once per occupied cell.
func (v *Vessel) RegisterHit() {
	v.hits++
}

// IsSunk reports whether every segment has been hit.
func (v *Vessel) IsSunk() bool {
	return v.hits >= v.length
}

func (v *Vessel) setCells(cells []Coord) {
	v.cells = make([]Coord, len(cells))
	copy(v.cells, cells)
}
