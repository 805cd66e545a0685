package battle_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

func TestNewCombatantFleet(t *testing.T) {
	c := battle.NewCombatant("Princes", false)

	fleet := c.Fleet()
	if len(fleet) != 3 {
		t.Fatalf("expected 3 vessels, got %d", len(fleet))
	}
	want := map[string]int{"Carrier": 5, "Battleship": 4, "Destroyer": 3}
	for _, v := range fleet {
		if want[v.Name()] != v.Length() {
			t.Errorf("%s length = %d, want %d", v.Name(), v.Length(), want[v.Name()])
		}
		if v.Placed() || v.Hits() != 0 {
			t.Errorf("%s should start unplaced and undamaged", v.Name())
		}
	}
	if c.FleetPlaced() {
		t.Error("FleetPlaced() true for a new combatant")
	}
	if c.NextUnplaced().Name() != "Carrier" {
		t.Errorf("NextUnplaced() = %s, want Carrier", c.NextUnplaced().Name())
	}
}

func TestCombatantAccuracy(t *testing.T) {
	m := newBattleMatch(t, 7)
	human := m.Side(0)

	if human.Accuracy() != 0 {
		t.Errorf("Accuracy() with no shots = %v, want 0", human.Accuracy())
	}

	fire(t, m, "A1") // carrier
	autoFire(t, m)
	fire(t, m, "J10")
	autoFire(t, m)
	fire(t, m, "B1")

	if human.ShotsFired() != 3 || human.ShotsHit() != 2 {
		t.Fatalf("stats = %d/%d, want 3 fired 2 hit", human.ShotsFired(), human.ShotsHit())
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(human.Accuracy()-want) > 1e-9 {
		t.Errorf("Accuracy() = %v, want %v", human.Accuracy(), want)
	}
	if human.Accuracy() < 0 || human.Accuracy() > 100 {
		t.Errorf("Accuracy() %v outside [0, 100]", human.Accuracy())
	}
}

func TestCombatantAllShipsSunkMatchesVesselHits(t *testing.T) {
	m := newBattleMatch(t, 3)
	defender := m.Side(1)

	var cells []battle.Coord
	for _, v := range defender.Fleet() {
		cells = append(cells, v.Cells()...)
	}

	for i, c := range cells {
		if m.Phase() != battle.PhaseBattle {
			t.Fatalf("match ended early after %d hits", i)
		}
		if _, err := m.FireAt(c); err != nil {
			t.Fatalf("FireAt(%s) failed: %v", c, err)
		}

		allFull := true
		for _, v := range defender.Fleet() {
			if v.Hits() != v.Length() {
				allFull = false
			}
		}
		if defender.AllShipsSunk() != allFull {
			t.Fatalf("after %d hits AllShipsSunk() = %v, vessel hits full = %v", i+1, defender.AllShipsSunk(), allFull)
		}
		if defender.AllShipsSunk() != defender.Grid().AllShipsSunk() {
			t.Fatalf("combatant and grid disagree on sunk status after %d hits", i+1)
		}

		if m.Phase() == battle.PhaseBattle {
			autoFire(t, m)
		}
	}
}

func TestCombatantVesselAt(t *testing.T) {
	c := battle.NewCombatant("Owner", false)
	placeFleet(t, c, "A1", "A3", "A5")

	if v := c.VesselAt(battle.C(0, 4)); v == nil || v.Name() != "Carrier" {
		t.Errorf("VesselAt(E1) = %v, want Carrier", v)
	}
	if v := c.VesselAt(battle.C(2, 3)); v == nil || v.Name() != "Battleship" {
		t.Errorf("VesselAt(D3) = %v, want Battleship", v)
	}
	if v := c.VesselAt(battle.C(9, 9)); v != nil {
		t.Errorf("VesselAt(J10) = %s, want nil", v.Name())
	}
	if _, err := c.Vessel("Submarine"); err == nil {
		t.Error("Vessel(Submarine) should fail")
	}
}
