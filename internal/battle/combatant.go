package battle

import "fmt"

// Combatant is one side of a match: a grid, a fleet and shot statistics.
type Combatant struct {
	name       string
	automated  bool
	grid       *Grid
	fleet      []*Vessel
	shotsFired int
	shotsHit   int
}

// NewCombatant creates a combatant with an empty grid and an unplaced fleet.
func NewCombatant(name string, automated bool) *Combatant {
	fleet := make([]*Vessel, 0, len(Fleet))
	for _, vc := range Fleet {
		fleet = append(fleet, NewVessel(vc.Name, vc.Length))
	}
	return &Combatant{
		name:      name,
		automated: automated,
		grid:      NewGrid(),
		fleet:     fleet,
	}
}

// Name returns the display name.
func (c *Combatant) Name() string { return c.name }

// Automated reports whether the side is played by the targeting heuristic.
func (c *Combatant) Automated() bool { return c.automated }

// Grid returns the combatant's own grid.
func (c *Combatant) Grid() *Grid { return c.grid }

// Fleet returns the vessels in placement order.
func (c *Combatant) Fleet() []*Vessel { return c.fleet }

// ShotsFired returns the number of valid shots taken.
func (c *Combatant) ShotsFired() int { return c.shotsFired }

// ShotsHit returns the number of valid shots that hit.
func (c *Combatant) ShotsHit() int { return c.shotsHit }

// Vessel looks up a vessel by name.
func (c *Combatant) Vessel(name string) (*Vessel, error) {
	for _, v := range c.fleet {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVessel, name)
}

// VesselAt returns the vessel covering cell, or nil.
func (c *Combatant) VesselAt(cell Coord) *Vessel {
	for _, v := range c.fleet {
		if v.Occupies(cell) {
			return v
		}
	}
	return nil
}

// FleetPlaced reports whether every vessel is on the grid.
func (c *Combatant) FleetPlaced() bool {
	for _, v := range c.fleet {
		if !v.Placed() {
			return false
		}
	}
	return true
}

// NextUnplaced returns the first vessel still to place, or nil.
func (c *Combatant) NextUnplaced() *Vessel {
	for _, v := range c.fleet {
		if !v.Placed() {
			return v
		}
	}
	return nil
}

// AllShipsSunk reports whether every vessel of the fleet is sunk.
func (c *Combatant) AllShipsSunk() bool {
	for _, v := range c.fleet {
		if !v.IsSunk() {
			return false
		}
	}
	return true
}

// Accuracy returns hits as a percentage of shots fired, 0 before any shot.
func (c *Combatant) Accuracy() float64 {
	if c.shotsFired == 0 {
		return 0
	}
	return float64(c.shotsHit) / float64(c.shotsFired) * 100
}

// Stats returns a value copy of the shot statistics.
func (c *Combatant) Stats() Stats {
	return Stats{
		Name:       c.name,
		ShotsFired: c.shotsFired,
		ShotsHit:   c.shotsHit,
		Accuracy:   c.Accuracy(),
	}
}

func (c *Combatant) recordShot(hit bool) {
	c.shotsFired++
	if hit {
		c.shotsHit++
	}
}

// Stats are the shot statistics of one combatant.
type Stats struct {
	Name       string
	ShotsFired int
	ShotsHit   int
	Accuracy   float64
}
