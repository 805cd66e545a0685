package battle

import (
	"fmt"
	"math/rand"
)

// DefaultPlacementAttempts bounds the random search per vessel before the
// deterministic scan takes over.
const DefaultPlacementAttempts = 1000

// RandomPlacement picks a random start cell and orientation for v until one
// fits, trying at most maxAttempts times. After that it falls back to a
// row-major scan (horizontal before vertical) and takes the first legal slot.
func RandomPlacement(g *Grid, v *Vessel, rng *rand.Rand, maxAttempts int) (Coord, Orientation, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultPlacementAttempts
	}

	for range maxAttempts {
		start := C(rng.Intn(BoardSize), rng.Intn(BoardSize))
		o := Horizontal
		if rng.Intn(2) == 1 {
			o = Vertical
		}
		if g.CanPlace(start, v.Length(), o) == nil {
			return start, o, nil
		}
	}

	return scanPlacement(g, v.Length())
}

// scanPlacement returns the first legal slot in row-major order.
func scanPlacement(g *Grid, length int) (Coord, Orientation, error) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			for _, o := range []Orientation{Horizontal, Vertical} {
				if g.CanPlace(C(row, col), length, o) == nil {
					return C(row, col), o, nil
				}
			}
		}
	}
	return Coord{}, Horizontal, fmt.Errorf("%w for length %d", ErrPlacementExhausted, length)
}

// AutoPlaceFleet places every unplaced vessel of c at random.
func AutoPlaceFleet(c *Combatant, rng *rand.Rand, maxAttempts int) ([]Placement, error) {
	var placed []Placement
	for _, v := range c.Fleet() {
		if v.Placed() {
			continue
		}
		start, o, err := RandomPlacement(c.Grid(), v, rng, maxAttempts)
		if err != nil {
			return placed, err
		}
		if err := c.Grid().PlaceShipAt(v, start, o); err != nil {
			return placed, err
		}
		placed = append(placed, Placement{Vessel: v.Name(), Start: start, Orientation: o})
	}
	return placed, nil
}

// Placement records where one vessel was put.
type Placement struct {
	Side        int
	Vessel      string
	Start       Coord
	Orientation Orientation
}
