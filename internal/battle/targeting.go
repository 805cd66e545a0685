package battle

import "math/rand"

// Mode is the targeting heuristic's current search mode.
type Mode uint8

const (
	// ModeHunt picks shots uniformly at random from untried cells.
	ModeHunt Mode = iota
	// ModeTarget works through the queue of cells next to confirmed hits.
	ModeTarget
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeHunt:
		return "Hunt"
	case ModeTarget:
		return "Target"
	default:
		return "Unknown"
	}
}

// Targeting is the opponent's hunt/target decision process.
//
// pool holds every coordinate not yet chosen; index maps a coordinate to its
// slot in pool. queue holds follow-up probes in FIFO order and is always a
// subset of pool.
type Targeting struct {
	rng     *rand.Rand
	pool    []Coord
	index   map[Coord]int
	queue   []Coord
	queued  map[Coord]bool
	fired   map[Coord]bool
	lastHit *Coord
}

// NewTargeting creates a heuristic in hunt mode with all 100 cells untried.
func NewTargeting(rng *rand.Rand) *Targeting {
	t := &Targeting{
		rng:    rng,
		pool:   AllCoords(),
		index:  make(map[Coord]int, BoardSize*BoardSize),
		queued: make(map[Coord]bool),
		fired:  make(map[Coord]bool),
	}
	for i, c := range t.pool {
		t.index[c] = i
	}
	return t
}

// Mode is derived from the queue: any pending probe means target mode.
func (t *Targeting) Mode() Mode {
	if len(t.queue) > 0 {
		return ModeTarget
	}
	return ModeHunt
}

// PickNextShot returns the next coordinate to fire at. ok is false once no
// untried coordinate remains.
func (t *Targeting) PickNextShot() (target Coord, ok bool) {
	switch {
	case len(t.queue) > 0:
		target = t.queue[0]
		t.queue = t.queue[1:]
		delete(t.queued, target)
	case len(t.pool) > 0:
		target = t.pool[t.rng.Intn(len(t.pool))]
	default:
		return Coord{}, false
	}

	t.removeFromPool(target)
	t.fired[target] = true
	return target, true
}

// RecordOutcome feeds the result of a shot back into the heuristic.
// A hit queues the untried orthogonal neighbours of the target.
func (t *Targeting) RecordOutcome(target Coord, outcome ShotOutcome) {
	if outcome != ShotHit {
		return
	}

	hit := target
	t.lastHit = &hit
	for _, n := range target.Neighbors() {
		if _, untried := t.index[n]; !untried || t.queued[n] {
			continue
		}
		t.queue = append(t.queue, n)
		t.queued[n] = true
	}
}

// LastHit returns the most recent hit, if any.
func (t *Targeting) LastHit() (Coord, bool) {
	if t.lastHit == nil {
		return Coord{}, false
	}
	return *t.lastHit, true
}

// Queue returns a copy of the pending follow-up probes.
func (t *Targeting) Queue() []Coord {
	out := make([]Coord, len(t.queue))
	copy(out, t.queue)
	return out
}

// Remaining returns how many coordinates have never been chosen.
func (t *Targeting) Remaining() int {
	return len(t.pool)
}

// Fired reports whether c has already been chosen.
func (t *Targeting) Fired(c Coord) bool {
	return t.fired[c]
}

// removeFromPool swap-removes c from the pool if it is still there.
func (t *Targeting) removeFromPool(c Coord) {
	i, ok := t.index[c]
	if !ok {
		return
	}
	last := len(t.pool) - 1
	if i != last {
		moved := t.pool[last]
		t.pool[i] = moved
		t.index[moved] = i
	}
	t.pool = t.pool[:last]
	delete(t.index, c)
}
