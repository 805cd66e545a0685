package battle

import (
	"fmt"
	"math/rand"
	"time"
)

// Phase is the match lifecycle state.
type Phase uint8

const (
	PhaseSetup Phase = iota
	PhaseBattle
	PhaseFinished
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseBattle:
		return "Battle"
	case PhaseFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// NoSide marks the absence of a winner.
const NoSide = -1

// ShotReport describes one attempted turn action.
type ShotReport struct {
	Side    int // Acting side
	Target  Coord
	Label   string // Raw label as supplied; Target is only set when it parsed
	Outcome ShotOutcome
	Mode    Mode // Heuristic mode that produced the shot (automated side only)

	// Skipped is set when an automated side had no target left and passed.
	Skipped bool

	// Sunk names the vessel this shot finished off, if any.
	Sunk string

	// Finished is set when this shot sank the opponent's last vessel.
	Finished bool
}

// Consumed reports whether the action ended the acting side's turn.
func (r ShotReport) Consumed() bool {
	return r.Skipped || r.Outcome.Valid()
}

// Shot is one resolved shot in the match history.
type Shot struct {
	Turn    int
	Side    int
	Target  Coord
	Outcome ShotOutcome
	Skipped bool
}

// Result summarises a finished match.
type Result struct {
	MatchID string
	Winner  Stats
	Loser   Stats
	Turns   int
	// WinnerSide is the index of the winning side.
	WinnerSide int
	// WinnerAutomated is true when the scripted opponent won.
	WinnerAutomated bool
}

// Match is the Setup -> Battle -> Finished state machine for two sides.
// It owns both combatants and the targeting heuristic of every automated side.
type Match struct {
	id        string
	seed      int64
	rng       *rand.Rand
	sides     [2]*Combatant
	targeting [2]*Targeting

	phase  Phase
	active int
	turns  int
	winner int

	placements []Placement
	shots      []Shot
	startedAt  time.Time
}

// NewMatch creates a match in the setup phase. The first side acts first.
// A zero seed uses the current time.
func NewMatch(id string, first, second *Combatant, seed int64) *Match {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m := &Match{
		id:        id,
		seed:      seed,
		rng:       rng,
		sides:     [2]*Combatant{first, second},
		phase:     PhaseSetup,
		winner:    NoSide,
		startedAt: time.Now(),
	}
	for i, side := range m.sides {
		if side.Automated() {
			m.targeting[i] = NewTargeting(rng)
		}
	}
	return m
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Seed returns the RNG seed the match was created with.
func (m *Match) Seed() int64 { return m.seed }

// Phase returns the current lifecycle state.
func (m *Match) Phase() Phase { return m.phase }

// Turns returns the number of completed turns.
func (m *Match) Turns() int { return m.turns }

// Side returns combatant 0 or 1.
func (m *Match) Side(i int) *Combatant { return m.sides[i] }

// ActiveSide returns the index of the side whose turn it is.
func (m *Match) ActiveSide() int { return m.active }

// Active returns the combatant whose turn it is.
func (m *Match) Active() *Combatant { return m.sides[m.active] }

// Opponent returns the combatant being fired at.
func (m *Match) Opponent() *Combatant { return m.sides[1-m.active] }

// Targeting returns the heuristic of side i, or nil for a human side.
func (m *Match) Targeting(i int) *Targeting { return m.targeting[i] }

// WinnerSide returns the winning side index, or NoSide.
func (m *Match) WinnerSide() int { return m.winner }

// Shots returns a copy of the shot history.
func (m *Match) Shots() []Shot {
	out := make([]Shot, len(m.shots))
	copy(out, m.shots)
	return out
}

// PlaceVessel places the named vessel of side on its own grid.
func (m *Match) PlaceVessel(side int, vessel string, start string, o Orientation) error {
	c, err := ParseCoordinate(start)
	if err != nil {
		return err
	}
	return m.PlaceVesselAt(side, vessel, c, o)
}

// PlaceVesselAt is PlaceVessel with a parsed start coordinate.
func (m *Match) PlaceVesselAt(side int, vessel string, start Coord, o Orientation) error {
	if m.phase != PhaseSetup {
		return fmt.Errorf("place %s: %w (%s)", vessel, ErrWrongPhase, m.phase)
	}
	c := m.sides[side]
	v, err := c.Vessel(vessel)
	if err != nil {
		return err
	}
	if err := c.Grid().PlaceShipAt(v, start, o); err != nil {
		return err
	}
	m.placements = append(m.placements, Placement{Side: side, Vessel: vessel, Start: start, Orientation: o})
	return nil
}

// AutoPlace places every remaining vessel of side at random.
func (m *Match) AutoPlace(side int, maxAttempts int) error {
	if m.phase != PhaseSetup {
		return fmt.Errorf("auto place: %w (%s)", ErrWrongPhase, m.phase)
	}
	placed, err := AutoPlaceFleet(m.sides[side], m.rng, maxAttempts)
	for _, p := range placed {
		p.Side = side
		m.placements = append(m.placements, p)
	}
	return err
}

// Begin moves from setup to battle once both fleets are placed.
func (m *Match) Begin() error {
	if m.phase != PhaseSetup {
		return fmt.Errorf("begin: %w (%s)", ErrWrongPhase, m.phase)
	}
	for _, c := range m.sides {
		if !c.FleetPlaced() {
			return fmt.Errorf("begin: %w: %s", ErrFleetIncomplete, c.Name())
		}
	}
	m.phase = PhaseBattle
	m.active = 0
	return nil
}

// Fire resolves a shot by the active side at label on the opponent's grid.
// Invalid and repeated labels are reported without consuming the turn.
func (m *Match) Fire(label string) (ShotReport, error) {
	if m.phase != PhaseBattle {
		return ShotReport{}, fmt.Errorf("fire: %w (%s)", ErrWrongPhase, m.phase)
	}
	c, err := ParseCoordinate(label)
	if err != nil {
		return ShotReport{Side: m.active, Label: label, Outcome: ShotInvalid}, nil
	}
	report := m.resolve(c)
	report.Label = label
	return report, nil
}

// FireAt is Fire with a parsed coordinate.
func (m *Match) FireAt(target Coord) (ShotReport, error) {
	if m.phase != PhaseBattle {
		return ShotReport{}, fmt.Errorf("fire: %w (%s)", ErrWrongPhase, m.phase)
	}
	return m.resolve(target), nil
}

// AutoFire lets the active automated side pick and fire its next shot.
// With no target left the turn passes without a shot.
func (m *Match) AutoFire() (ShotReport, error) {
	if m.phase != PhaseBattle {
		return ShotReport{}, fmt.Errorf("auto fire: %w (%s)", ErrWrongPhase, m.phase)
	}
	t := m.targeting[m.active]
	if t == nil {
		return ShotReport{}, fmt.Errorf("auto fire: %w: %s", ErrNotAutomated, m.Active().Name())
	}

	mode := t.Mode()
	target, ok := t.PickNextShot()
	if !ok {
		return m.skip(), nil
	}

	report := m.resolve(target)
	report.Mode = mode
	if report.Outcome.Valid() {
		t.RecordOutcome(target, report.Outcome)
	}
	return report, nil
}

// skip passes the active side's turn without a shot. It is only used when an
// automated side has nothing left to fire at.
func (m *Match) skip() ShotReport {
	report := ShotReport{Side: m.active, Skipped: true}
	m.shots = append(m.shots, Shot{Turn: m.turns, Side: m.active, Skipped: true})
	m.active = 1 - m.active
	return report
}

// resolve applies a shot at target to the opponent and advances the match.
func (m *Match) resolve(target Coord) ShotReport {
	shooter := m.Active()
	defender := m.Opponent()

	report := ShotReport{
		Side:    m.active,
		Target:  target,
		Label:   target.Label(),
		Outcome: defender.Grid().ShootAt(target),
	}
	if !report.Outcome.Valid() {
		return report
	}

	hit := report.Outcome == ShotHit
	shooter.recordShot(hit)
	if hit {
		if v := defender.VesselAt(target); v != nil {
			v.RegisterHit()
			if v.IsSunk() {
				report.Sunk = v.Name()
			}
		}
	}

	m.turns++
	m.shots = append(m.shots, Shot{Turn: m.turns, Side: m.active, Target: target, Outcome: report.Outcome})

	if defender.AllShipsSunk() {
		m.phase = PhaseFinished
		m.winner = m.active
		report.Finished = true
		return report
	}

	m.active = 1 - m.active
	return report
}

// Result returns the summary of a finished match.
func (m *Match) Result() (Result, error) {
	if m.phase != PhaseFinished {
		return Result{}, fmt.Errorf("result: %w (%s)", ErrWrongPhase, m.phase)
	}
	winner := m.sides[m.winner]
	loser := m.sides[1-m.winner]
	return Result{
		MatchID:         m.id,
		Winner:          winner.Stats(),
		Loser:           loser.Stats(),
		Turns:           m.turns,
		WinnerSide:      m.winner,
		WinnerAutomated: winner.Automated(),
	}, nil
}
