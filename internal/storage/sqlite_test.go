package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/vovakirdan/shiphunters/internal/battle"
)

// playJournal runs an automated match to completion and returns its journal.
func playJournal(t *testing.T, id string, seed int64) battle.Journal {
	t.Helper()
	m := battle.NewMatch(id, battle.NewCombatant("Alpha", true), battle.NewCombatant("Bravo", true), seed)
	for side := range 2 {
		if err := m.AutoPlace(side, 100); err != nil {
			t.Fatalf("AutoPlace(%d) failed: %v", side, err)
		}
	}
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	for m.Phase() == battle.PhaseBattle {
		if _, err := m.AutoFire(); err != nil {
			t.Fatalf("AutoFire() failed: %v", err)
		}
	}
	return m.Journal()
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Reopening runs migrations again without error
	again, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	again.Close()
}

func TestStoreJournalRoundTrip(t *testing.T) {
	store := openTestStore(t)
	want := playJournal(t, "match-1", 42)

	if err := store.SaveJournal(want); err != nil {
		t.Fatalf("SaveJournal() failed: %v", err)
	}

	got, err := store.LoadJournal("match-1")
	if err != nil {
		t.Fatalf("LoadJournal() failed: %v", err)
	}

	if got.Seed != want.Seed || got.Winner != want.Winner || got.Turns != want.Turns {
		t.Errorf("LoadJournal() header = seed %d winner %d turns %d, want %d %d %d",
			got.Seed, got.Winner, got.Turns, want.Seed, want.Winner, want.Turns)
	}
	if got.Sides != want.Sides {
		t.Errorf("Sides = %+v, want %+v", got.Sides, want.Sides)
	}
	if len(got.Placements) != len(want.Placements) {
		t.Fatalf("len(Placements) = %d, want %d", len(got.Placements), len(want.Placements))
	}
	for i := range want.Placements {
		if got.Placements[i] != want.Placements[i] {
			t.Errorf("Placements[%d] = %+v, want %+v", i, got.Placements[i], want.Placements[i])
		}
	}
	if len(got.Shots) != len(want.Shots) {
		t.Fatalf("len(Shots) = %d, want %d", len(got.Shots), len(want.Shots))
	}
	for i := range want.Shots {
		if got.Shots[i] != want.Shots[i] {
			t.Errorf("Shots[%d] = %+v, want %+v", i, got.Shots[i], want.Shots[i])
		}
	}
	if !got.StartedAt.Equal(want.StartedAt) || !got.FinishedAt.Equal(want.FinishedAt) {
		t.Errorf("times = %v..%v, want %v..%v", got.StartedAt, got.FinishedAt, want.StartedAt, want.FinishedAt)
	}

	// A stored journal must still replay to the same result
	if _, err := battle.Replay(got); err != nil {
		t.Errorf("Replay() of loaded journal failed: %v", err)
	}
}

func TestStoreDuplicateMatchRejected(t *testing.T) {
	store := openTestStore(t)
	j := playJournal(t, "dup", 7)

	if err := store.SaveJournal(j); err != nil {
		t.Fatalf("SaveJournal() failed: %v", err)
	}
	if err := store.SaveJournal(j); err == nil {
		t.Error("second SaveJournal() with the same match ID should fail")
	}

	// The failed save must not leave extra rows behind
	got, err := store.LoadJournal("dup")
	if err != nil {
		t.Fatalf("LoadJournal() failed: %v", err)
	}
	if len(got.Shots) != len(j.Shots) {
		t.Errorf("len(Shots) = %d after failed save, want %d", len(got.Shots), len(j.Shots))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadJournal("nope")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("LoadJournal(nope) error = %v, want ErrMatchNotFound", err)
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openTestStore(t)

	journals := make([]battle.Journal, 3)
	for i := range journals {
		journals[i] = playJournal(t, fmt.Sprintf("m%d", i), int64(i+1))
		if err := store.SaveJournal(journals[i]); err != nil {
			t.Fatalf("SaveJournal(%d) failed: %v", i, err)
		}
	}

	recent, err := store.RecentMatches(2)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentMatches(2) returned %d rows, want 2", len(recent))
	}

	// Newest first
	if recent[0].MatchID != "m2" || recent[1].MatchID != "m1" {
		t.Errorf("RecentMatches order = %s, %s; want m2, m1", recent[0].MatchID, recent[1].MatchID)
	}

	last := journals[2]
	s := recent[0]
	if s.Winner != last.Sides[last.Winner].Name || s.Loser != last.Sides[1-last.Winner].Name {
		t.Errorf("summary winner/loser = %s/%s", s.Winner, s.Loser)
	}
	if s.ShotsHit != battle.FleetCells() {
		t.Errorf("winner hits = %d, want %d", s.ShotsHit, battle.FleetCells())
	}
	if acc := s.Accuracy(); acc <= 0 || acc > 100 {
		t.Errorf("Accuracy() = %v, want within (0, 100]", acc)
	}
}

func TestMatchSummaryAccuracy(t *testing.T) {
	tests := []struct {
		fired, hit int
		want       float64
	}{
		{0, 0, 0},
		{4, 1, 25},
		{12, 12, 100},
	}

	for _, tt := range tests {
		m := MatchSummary{ShotsFired: tt.fired, ShotsHit: tt.hit}
		if got := m.Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%d/%d) = %v, want %v", tt.hit, tt.fired, got, tt.want)
		}
	}
}

// newMockStore returns a Store on top of sqlmock with migrations expected.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS matches").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := New(db)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return store, mock
}

func TestNewMigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() failed: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("disk I/O error"))
	if _, err := New(db); err == nil {
		t.Error("New() should fail when migration fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveJournalRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	j := battle.Journal{
		MatchID:    "broken",
		Placements: []battle.Placement{{Vessel: "Carrier"}},
		Shots:      []battle.Shot{{Turn: 1, Outcome: battle.ShotMiss}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO matches").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO placements").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO shots").WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	if err := store.SaveJournal(j); err == nil {
		t.Error("SaveJournal() should fail when a shot insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveJournalBeginFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))
	if err := store.SaveJournal(battle.Journal{MatchID: "x"}); err == nil {
		t.Error("SaveJournal() should fail when the transaction cannot begin")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRecentMatchesQueryFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM matches").WillReturnError(errors.New("no such table"))
	if _, err := store.RecentMatches(5); err == nil {
		t.Error("RecentMatches() should fail when the query fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestLoadJournalCorruptShot(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM matches").
		WithArgs("m").
		WillReturnRows(sqlmock.NewRows([]string{
			"seed", "side0_name", "side0_automated", "side1_name", "side1_automated",
			"winner", "turns", "started_at", "finished_at",
		}).AddRow(1, "A", false, "B", true, 0, 1, "2026-01-02T03:04:05.000000000Z", "2026-01-02T03:05:05.000000000Z"))
	mock.ExpectQuery("SELECT (.+) FROM placements").
		WithArgs("m").
		WillReturnRows(sqlmock.NewRows([]string{"side", "vessel", "cell_row", "cell_col", "orientation"}))
	mock.ExpectQuery("SELECT (.+) FROM shots").
		WithArgs("m").
		WillReturnRows(sqlmock.NewRows([]string{"turn", "side", "cell_row", "cell_col", "outcome", "skipped"}).
			AddRow(1, 0, 0, 0, "SPLASH", false))

	if _, err := store.LoadJournal("m"); err == nil {
		t.Error("LoadJournal() should reject an unknown shot outcome")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
