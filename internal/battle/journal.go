package battle

import (
	"fmt"
	"time"
)

// JournalSide identifies one participant of a recorded match.
type JournalSide struct {
	Name      string
	Automated bool
}

// Journal is the complete record of a finished match: who played, where each
// vessel went and every shot in order. It is enough to rebuild the match.
type Journal struct {
	MatchID    string
	Seed       int64
	Sides      [2]JournalSide
	Placements []Placement
	Shots      []Shot
	Winner     int
	Turns      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Journal returns the record of the match so far.
func (m *Match) Journal() Journal {
	j := Journal{
		MatchID:    m.id,
		Seed:       m.seed,
		Placements: make([]Placement, len(m.placements)),
		Shots:      m.Shots(),
		Winner:     m.winner,
		Turns:      m.turns,
		StartedAt:  m.startedAt,
		FinishedAt: time.Now(),
	}
	copy(j.Placements, m.placements)
	for i, c := range m.sides {
		j.Sides[i] = JournalSide{Name: c.Name(), Automated: c.Automated()}
	}
	return j
}

// Replay rebuilds a match from its journal. Every recorded shot is fired
// again and must produce the recorded outcome.
func Replay(j Journal) (*Match, error) {
	m := NewMatch(j.MatchID,
		NewCombatant(j.Sides[0].Name, j.Sides[0].Automated),
		NewCombatant(j.Sides[1].Name, j.Sides[1].Automated),
		j.Seed,
	)
	m.startedAt = j.StartedAt

	for _, p := range j.Placements {
		if p.Side != 0 && p.Side != 1 {
			return m, fmt.Errorf("%w: placement for side %d", ErrReplayMismatch, p.Side)
		}
		if err := m.PlaceVesselAt(p.Side, p.Vessel, p.Start, p.Orientation); err != nil {
			return m, fmt.Errorf("%w: %v", ErrReplayMismatch, err)
		}
	}
	if err := m.Begin(); err != nil {
		return m, fmt.Errorf("%w: %v", ErrReplayMismatch, err)
	}

	for i, s := range j.Shots {
		if m.phase != PhaseBattle {
			return m, fmt.Errorf("%w: shot %d after match end", ErrReplayMismatch, i+1)
		}
		if s.Side != m.active {
			return m, fmt.Errorf("%w: shot %d by side %d, expected side %d", ErrReplayMismatch, i+1, s.Side, m.active)
		}
		if s.Skipped {
			m.skip()
			continue
		}
		report := m.resolve(s.Target)
		if report.Outcome != s.Outcome {
			return m, fmt.Errorf("%w: shot %d at %s was %s, replayed as %s",
				ErrReplayMismatch, i+1, s.Target, s.Outcome, report.Outcome)
		}
	}

	if m.winner != j.Winner || m.turns != j.Turns {
		return m, fmt.Errorf("%w: replay ended with winner %d after %d turns, journal has %d after %d",
			ErrReplayMismatch, m.winner, m.turns, j.Winner, j.Turns)
	}
	return m, nil
}
