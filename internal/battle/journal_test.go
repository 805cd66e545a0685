package battle_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

func TestReplayReproducesMatch(t *testing.T) {
	for _, seed := range []int64{3, 17, 256} {
		orig := playOut(t, seed)
		j := orig.Journal()

		replayed, err := battle.Replay(j)
		if err != nil {
			t.Fatalf("seed %d: Replay() failed: %v", seed, err)
		}

		a, b := orig.Snapshot(), replayed.Snapshot()
		if a.Turns != b.Turns || a.Winner != b.Winner || b.Phase != battle.PhaseFinished {
			t.Errorf("seed %d: replay ended %v turns=%d winner=%d, want turns=%d winner=%d",
				seed, b.Phase, b.Turns, b.Winner, a.Turns, a.Winner)
		}
		for i := range a.Sides {
			if a.Sides[i].Board != b.Sides[i].Board {
				t.Errorf("seed %d: side %d board differs after replay", seed, i)
			}
			if a.Sides[i].Stats != b.Sides[i].Stats {
				t.Errorf("seed %d: side %d stats %+v, want %+v", seed, i, b.Sides[i].Stats, a.Sides[i].Stats)
			}
		}
	}
}

func TestReplayHumanMatch(t *testing.T) {
	m := newBattleMatch(t, 12)
	for _, label := range []string{"J10", "A1", "A11", "J9"} {
		if m.ActiveSide() != 0 {
			autoFire(t, m)
		}
		fire(t, m, label)
	}

	j := m.Journal()
	if len(j.Placements) != 6 {
		t.Fatalf("journal has %d placements, want 6", len(j.Placements))
	}
	if _, err := battle.Replay(j); err != nil {
		t.Fatalf("Replay() of unfinished match failed: %v", err)
	}
}

func TestReplayDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(j *battle.Journal)
	}{
		{"flipped outcome", func(j *battle.Journal) {
			for i := range j.Shots {
				if j.Shots[i].Outcome == battle.ShotMiss {
					j.Shots[i].Outcome = battle.ShotHit
					return
				}
			}
		}},
		{"wrong side", func(j *battle.Journal) {
			j.Shots[0].Side = 1
		}},
		{"wrong winner", func(j *battle.Journal) {
			j.Winner = 1 - j.Winner
		}},
		{"overlapping placement", func(j *battle.Journal) {
			j.Placements[1].Start = j.Placements[0].Start
			j.Placements[1].Orientation = j.Placements[0].Orientation
		}},
		{"extra shot", func(j *battle.Journal) {
			j.Shots = append(j.Shots, j.Shots[len(j.Shots)-1])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := playOut(t, 42).Journal()
			tt.tamper(&j)
			if _, err := battle.Replay(j); !errors.Is(err, battle.ErrReplayMismatch) {
				t.Errorf("Replay() error = %v, want ErrReplayMismatch", err)
			}
		})
	}
}
