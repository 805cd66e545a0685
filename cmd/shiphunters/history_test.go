package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/engine"
	"github.com/vovakirdan/shiphunters/internal/platform/render"
	"github.com/vovakirdan/shiphunters/internal/storage"
)

func journalStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func playSaved(t *testing.T, store *storage.Store, id string, seed int64) battle.Result {
	t.Helper()
	m := battle.NewMatch(id,
		battle.NewCombatant("Alpha", true),
		battle.NewCombatant("Bravo", true),
		seed,
	)
	res, err := engine.New(m, nil, nil, engine.Options{Journal: store}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func TestPrintHistory(t *testing.T) {
	theme := render.ClassicTheme(nil)

	var out bytes.Buffer
	if err := printHistory(&out, theme, nil, 10); err != nil {
		t.Fatalf("printHistory(nil store) error = %v", err)
	}
	if !strings.Contains(out.String(), "journal is disabled") {
		t.Errorf("nil store output = %q", out.String())
	}

	store := journalStore(t)
	out.Reset()
	if err := printHistory(&out, theme, store, 10); err != nil {
		t.Fatalf("printHistory(empty) error = %v", err)
	}
	if !strings.Contains(out.String(), "No matches played yet.") {
		t.Errorf("empty output = %q", out.String())
	}

	res := playSaved(t, store, "match-1", 11)
	out.Reset()
	if err := printHistory(&out, theme, store, 10); err != nil {
		t.Fatalf("printHistory() error = %v", err)
	}
	for _, want := range []string{"MATCH HISTORY", "match-1", res.Winner.Name, res.Loser.Name} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("history output missing %q:\n%s", want, out.String())
		}
	}
}

func TestPrintReplay(t *testing.T) {
	theme := render.ClassicTheme(nil)
	store := journalStore(t)
	res := playSaved(t, store, "match-2", 5)

	var out bytes.Buffer
	if err := printReplay(&out, theme, store, "match-2"); err != nil {
		t.Fatalf("printReplay() error = %v", err)
	}
	text := out.String()
	for _, want := range []string{"SETUP PHASE", "BATTLE PHASE", "Carrier", "HIT", "*** " + res.Winner.Name + " WINS! ***"} {
		if !strings.Contains(text, want) {
			t.Errorf("replay output missing %q", want)
		}
	}

	if err := printReplay(&out, theme, store, "nope"); err == nil || !strings.Contains(err.Error(), `no match "nope"`) {
		t.Errorf("printReplay(missing) error = %v", err)
	}
}

func TestSimSummary(t *testing.T) {
	s := simSummary{names: [2]string{"A", "B"}}
	s.add(battle.Result{WinnerSide: 0, Turns: 40, Winner: battle.Stats{Accuracy: 50}})
	s.add(battle.Result{WinnerSide: 1, Turns: 60, Winner: battle.Stats{Accuracy: 30}})
	s.add(battle.Result{WinnerSide: 1, Turns: 50, Winner: battle.Stats{Accuracy: 40}})

	if s.matches != 3 || s.wins != [2]int{1, 2} {
		t.Errorf("summary = %+v", s)
	}
	if s.turns != 150 || s.accuracy != 120 {
		t.Errorf("totals: turns = %d, accuracy = %v", s.turns, s.accuracy)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SHIPHUNTERS_TEST_VALUE", "set")
	if got := envOr("SHIPHUNTERS_TEST_VALUE", "def"); got != "set" {
		t.Errorf("envOr(set) = %q", got)
	}
	if got := envOr("SHIPHUNTERS_TEST_MISSING", "def"); got != "def" {
		t.Errorf("envOr(missing) = %q", got)
	}
}
