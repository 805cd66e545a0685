package battle_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		label string
		want  battle.Coord
		ok    bool
	}{
		{"A1", battle.C(0, 0), true},
		{"a1", battle.C(0, 0), true},
		{"J10", battle.C(9, 9), true},
		{"j10", battle.C(9, 9), true},
		{"B5", battle.C(4, 1), true},
		{"C01", battle.C(0, 2), true},
		{"K1", battle.Coord{}, false},
		{"A11", battle.Coord{}, false},
		{"A0", battle.Coord{}, false},
		{"A", battle.Coord{}, false},
		{"", battle.Coord{}, false},
		{"A100", battle.Coord{}, false},
		{"1A", battle.Coord{}, false},
		{"A+5", battle.Coord{}, false},
		{"A-1", battle.Coord{}, false},
		{"A 1", battle.Coord{}, false},
		{"@1", battle.Coord{}, false},
		{"ı1", battle.Coord{}, false},
		{"ı10", battle.Coord{}, false},
		{"é1", battle.Coord{}, false},
		{"Ａ1", battle.Coord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := battle.ParseCoordinate(tt.label)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParseCoordinate(%q) error: %v", tt.label, err)
				}
				if got != tt.want {
					t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.label, got, tt.want)
				}
				return
			}
			if !errors.Is(err, battle.ErrInvalidCoordinate) {
				t.Errorf("ParseCoordinate(%q) error = %v, want ErrInvalidCoordinate", tt.label, err)
			}
		})
	}
}

func TestCoordLabelRoundTrip(t *testing.T) {
	for _, c := range battle.AllCoords() {
		got, err := battle.ParseCoordinate(c.Label())
		if err != nil {
			t.Fatalf("ParseCoordinate(%q) error: %v", c.Label(), err)
		}
		if got != c {
			t.Errorf("label %q parsed to %v, want %v", c.Label(), got, c)
		}
	}
}

func TestPlaceShip(t *testing.T) {
	g := battle.NewGrid()
	carrier := battle.NewVessel("Carrier", 5)

	if err := g.PlaceShip(carrier, "A1", battle.Horizontal); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}

	want := []string{"A1", "B1", "C1", "D1", "E1"}
	cells := carrier.Cells()
	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(cells))
	}
	for i, c := range cells {
		if c.Label() != want[i] {
			t.Errorf("cell %d = %s, want %s", i, c.Label(), want[i])
		}
		if g.Cell(c) != battle.CellShip {
			t.Errorf("cell %s state = %v, want Ship", c, g.Cell(c))
		}
		if !g.Occupied(c) {
			t.Errorf("cell %s not marked occupied", c)
		}
	}

	destroyer := battle.NewVessel("Destroyer", 3)
	if err := g.PlaceShip(destroyer, "F2", battle.Vertical); err != nil {
		t.Fatalf("PlaceShip() vertical failed: %v", err)
	}
	for i, label := range []string{"F2", "F3", "F4"} {
		if destroyer.Cells()[i].Label() != label {
			t.Errorf("destroyer cell %d = %s, want %s", i, destroyer.Cells()[i], label)
		}
	}
}

func TestPlaceShipRejected(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		orient  battle.Orientation
		wantErr error
	}{
		{"past right edge", "G1", battle.Horizontal, battle.ErrOutOfBounds},
		{"past bottom edge", "A7", battle.Vertical, battle.ErrOutOfBounds},
		{"overlap", "C1", battle.Vertical, battle.ErrOverlap},
		{"invalid label", "Z9", battle.Horizontal, battle.ErrInvalidCoordinate},
		{"non-ASCII letter", "ı2", battle.Horizontal, battle.ErrInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := battle.NewGrid()
			if err := g.PlaceShip(battle.NewVessel("Destroyer", 3), "A1", battle.Horizontal); err != nil {
				t.Fatalf("setup placement failed: %v", err)
			}
			before := g.Board()

			v := battle.NewVessel("Battleship", 4)
			err := g.PlaceShip(v, tt.start, tt.orient)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlaceShip(%s) error = %v, want %v", tt.start, err, tt.wantErr)
			}
			if g.Board() != before {
				t.Error("failed placement modified the grid")
			}
			if v.Placed() {
				t.Error("failed placement registered cells on the vessel")
			}
		})
	}
}

func TestPlaceShipTwice(t *testing.T) {
	g := battle.NewGrid()
	v := battle.NewVessel("Destroyer", 3)
	if err := g.PlaceShip(v, "A1", battle.Horizontal); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}
	if err := g.PlaceShip(v, "A5", battle.Horizontal); !errors.Is(err, battle.ErrVesselPlaced) {
		t.Errorf("second PlaceShip() error = %v, want ErrVesselPlaced", err)
	}
}

func TestShoot(t *testing.T) {
	g := battle.NewGrid()
	if err := g.PlaceShip(battle.NewVessel("Destroyer", 3), "B2", battle.Horizontal); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}

	tests := []struct {
		label string
		want  battle.ShotOutcome
	}{
		{"K1", battle.ShotInvalid},
		{"A11", battle.ShotInvalid},
		{"ı1", battle.ShotInvalid},
		{"B2", battle.ShotHit},
		{"b2", battle.ShotAlreadyShot},
		{"A1", battle.ShotMiss},
		{"A1", battle.ShotAlreadyShot},
		{"D2", battle.ShotHit},
	}

	for _, tt := range tests {
		if got := g.Shoot(tt.label); got != tt.want {
			t.Errorf("Shoot(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}

	if g.Cell(battle.C(1, 1)) != battle.CellHit {
		t.Errorf("B2 state = %v, want Hit", g.Cell(battle.C(1, 1)))
	}
	if g.Cell(battle.C(0, 0)) != battle.CellMiss {
		t.Errorf("A1 state = %v, want Miss", g.Cell(battle.C(0, 0)))
	}
}

func TestShootRepeatLeavesGridUnchanged(t *testing.T) {
	g := battle.NewGrid()
	if err := g.PlaceShip(battle.NewVessel("Destroyer", 3), "A1", battle.Vertical); err != nil {
		t.Fatalf("PlaceShip() failed: %v", err)
	}

	for _, label := range []string{"A1", "C3"} {
		g.Shoot(label)
		before := g.Board()
		if got := g.Shoot(label); got != battle.ShotAlreadyShot {
			t.Errorf("repeat Shoot(%q) = %v, want ALREADY_SHOT", label, got)
		}
		if g.Board() != before {
			t.Errorf("repeat Shoot(%q) changed the grid", label)
		}
	}
}

func TestAllShipsSunkAfterTwelfthShot(t *testing.T) {
	g := battle.NewGrid()
	fleet := []struct {
		vessel *battle.Vessel
		start  string
		orient battle.Orientation
	}{
		{battle.NewVessel("Carrier", 5), "A1", battle.Horizontal},
		{battle.NewVessel("Battleship", 4), "A3", battle.Horizontal},
		{battle.NewVessel("Destroyer", 3), "J5", battle.Vertical},
	}

	var targets []battle.Coord
	for _, f := range fleet {
		if err := g.PlaceShip(f.vessel, f.start, f.orient); err != nil {
			t.Fatalf("PlaceShip(%s) failed: %v", f.vessel.Name(), err)
		}
		targets = append(targets, f.vessel.Cells()...)
	}
	if len(targets) != battle.FleetCells() {
		t.Fatalf("expected %d occupied cells, got %d", battle.FleetCells(), len(targets))
	}

	if g.AllShipsSunk() {
		t.Fatal("AllShipsSunk() true before any shot")
	}
	for i, c := range targets {
		if got := g.ShootAt(c); got != battle.ShotHit {
			t.Fatalf("shot %d at %s = %v, want HIT", i+1, c, got)
		}
		sunk := g.AllShipsSunk()
		if i < len(targets)-1 && sunk {
			t.Fatalf("AllShipsSunk() true after %d shots", i+1)
		}
		if i == len(targets)-1 && !sunk {
			t.Fatal("AllShipsSunk() false after the last occupied cell was hit")
		}
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in   string
		want battle.Orientation
		ok   bool
	}{
		{"H", battle.Horizontal, true},
		{"h", battle.Horizontal, true},
		{"horizontal", battle.Horizontal, true},
		{"V", battle.Vertical, true},
		{" vertical ", battle.Vertical, true},
		{"d", battle.Horizontal, false},
		{"", battle.Horizontal, false},
	}

	for _, tt := range tests {
		got, err := battle.ParseOrientation(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseOrientation(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, battle.ErrInvalidOrientation) {
			t.Errorf("ParseOrientation(%q) error = %v, want ErrInvalidOrientation", tt.in, err)
		}
	}
}
