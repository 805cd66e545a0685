package battle

// VesselSnapshot is the visible state of one vessel.
type VesselSnapshot struct {
	Name   string
	Length int
	Hits   int
	Sunk   bool
	Placed bool
}

// SideSnapshot captures one combatant.
type SideSnapshot struct {
	Name      string
	Automated bool
	Board     Board
	Fleet     []VesselSnapshot
	Stats     Stats
}

// Snapshot captures the complete match state for rendering and determinism
// testing.
type Snapshot struct {
	MatchID string
	Phase   Phase
	Turns   int
	Active  int
	Winner  int
	Sides   [2]SideSnapshot
	// Modes holds the heuristic mode of each automated side.
	Modes [2]Mode
}

// Snapshot returns the current match snapshot.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		MatchID: m.id,
		Phase:   m.phase,
		Turns:   m.turns,
		Active:  m.active,
		Winner:  m.winner,
	}
	for i, c := range m.sides {
		fleet := make([]VesselSnapshot, 0, len(c.Fleet()))
		for _, v := range c.Fleet() {
			fleet = append(fleet, VesselSnapshot{
				Name:   v.Name(),
				Length: v.Length(),
				Hits:   v.Hits(),
				Sunk:   v.IsSunk(),
				Placed: v.Placed(),
			})
		}
		s.Sides[i] = SideSnapshot{
			Name:      c.Name(),
			Automated: c.Automated(),
			Board:     c.Grid().Board(),
			Fleet:     fleet,
			Stats:     c.Stats(),
		}
		if t := m.targeting[i]; t != nil {
			s.Modes[i] = t.Mode()
		}
	}
	return s
}

// SunkCount returns how many of the side's vessels are sunk.
func (s SideSnapshot) SunkCount() int {
	n := 0
	for _, v := range s.Fleet {
		if v.Sunk {
			n++
		}
	}
	return n
}
