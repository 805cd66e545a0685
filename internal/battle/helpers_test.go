package battle_test

import (
	"testing"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

// placeFleet lays the fleet out horizontally from the given starts.
func placeFleet(t *testing.T, c *battle.Combatant, carrier, battleship, destroyer string) {
	t.Helper()
	starts := map[string]string{"Carrier": carrier, "Battleship": battleship, "Destroyer": destroyer}
	for _, v := range c.Fleet() {
		if err := c.Grid().PlaceShip(v, starts[v.Name()], battle.Horizontal); err != nil {
			t.Fatalf("PlaceShip(%s at %s) failed: %v", v.Name(), starts[v.Name()], err)
		}
	}
}

// newBattleMatch returns a human-vs-automated match in the battle phase with
// both fleets at A1, A3 and A5 horizontally.
func newBattleMatch(t *testing.T, seed int64) *battle.Match {
	t.Helper()
	m := battle.NewMatch("test", battle.NewCombatant("Player", false), battle.NewCombatant("Computer", true), seed)
	for side := range 2 {
		for _, p := range []struct{ vessel, start string }{
			{"Carrier", "A1"},
			{"Battleship", "A3"},
			{"Destroyer", "A5"},
		} {
			if err := m.PlaceVessel(side, p.vessel, p.start, battle.Horizontal); err != nil {
				t.Fatalf("PlaceVessel(%d, %s) failed: %v", side, p.vessel, err)
			}
		}
	}
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	return m
}

func fire(t *testing.T, m *battle.Match, label string) battle.ShotReport {
	t.Helper()
	r, err := m.Fire(label)
	if err != nil {
		t.Fatalf("Fire(%q) failed: %v", label, err)
	}
	return r
}

func autoFire(t *testing.T, m *battle.Match) battle.ShotReport {
	t.Helper()
	r, err := m.AutoFire()
	if err != nil {
		t.Fatalf("AutoFire() failed: %v", err)
	}
	return r
}

// playOut runs an automated-vs-automated match to completion.
func playOut(t *testing.T, seed int64) *battle.Match {
	t.Helper()
	m := battle.NewMatch("sim", battle.NewCombatant("Alpha", true), battle.NewCombatant("Bravo", true), seed)
	for side := range 2 {
		if err := m.AutoPlace(side, battle.DefaultPlacementAttempts); err != nil {
			t.Fatalf("AutoPlace(%d) failed: %v", side, err)
		}
	}
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	for i := 0; m.Phase() == battle.PhaseBattle; i++ {
		if i > 2*battle.BoardSize*battle.BoardSize+2 {
			t.Fatal("match did not finish")
		}
		autoFire(t, m)
	}
	return m
}
