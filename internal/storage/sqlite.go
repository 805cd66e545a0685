// Package storage provides SQLite-based persistence for match journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/shiphunters/internal/battle"
	"github.com/vovakirdan/shiphunters/internal/engine"
)

// ErrMatchNotFound is returned when no journal exists for a match ID.
var ErrMatchNotFound = errors.New("storage: match not found")

// Store manages the SQLite database connection for match journals.
type Store struct {
	db *sql.DB
}

// MatchSummary is one row of the match history.
type MatchSummary struct {
	MatchID         string
	Seed            int64
	Winner          string
	Loser           string
	WinnerAutomated bool
	Turns           int
	ShotsFired      int // Winner's valid shots
	ShotsHit        int
	FinishedAt      time.Time
}

// Accuracy returns the winner's hit percentage.
func (m MatchSummary) Accuracy() float64 {
	if m.ShotsFired == 0 {
		return 0
	}
	return float64(m.ShotsHit) / float64(m.ShotsFired) * 100
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an already open database and runs migrations.
func New(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			seed INTEGER NOT NULL,
			side0_name TEXT NOT NULL,
			side0_automated INTEGER NOT NULL,
			side1_name TEXT NOT NULL,
			side1_automated INTEGER NOT NULL,
			winner INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			winner_shots INTEGER NOT NULL DEFAULT 0,
			winner_hits INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_finished ON matches(finished_at DESC);

		CREATE TABLE IF NOT EXISTS placements (
			match_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			side INTEGER NOT NULL,
			vessel TEXT NOT NULL,
			cell_row INTEGER NOT NULL,
			cell_col INTEGER NOT NULL,
			orientation TEXT NOT NULL,
			PRIMARY KEY (match_id, seq)
		);

		CREATE TABLE IF NOT EXISTS shots (
			match_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			side INTEGER NOT NULL,
			cell_row INTEGER NOT NULL,
			cell_col INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			skipped INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveJournal stores a match journal with all placements and shots in one
// transaction.
func (s *Store) SaveJournal(j battle.Journal) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	fired, hit := winnerShots(j)
	_, err = tx.Exec(
		`INSERT INTO matches
		 (match_id, seed, side0_name, side0_automated, side1_name, side1_automated,
		  winner, turns, winner_shots, winner_hits, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.MatchID, j.Seed,
		j.Sides[0].Name, j.Sides[0].Automated,
		j.Sides[1].Name, j.Sides[1].Automated,
		j.Winner, j.Turns, fired, hit,
		formatTime(j.StartedAt), formatTime(j.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}

	for i, p := range j.Placements {
		_, err = tx.Exec(
			`INSERT INTO placements (match_id, seq, side, vessel, cell_row, cell_col, orientation)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			j.MatchID, i, p.Side, p.Vessel, p.Start.Row, p.Start.Col, p.Orientation.String(),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save placement %d: %w", i, err)
		}
	}

	for i, sh := range j.Shots {
		_, err = tx.Exec(
			`INSERT INTO shots (match_id, seq, turn, side, cell_row, cell_col, outcome, skipped)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			j.MatchID, i, sh.Turn, sh.Side, sh.Target.Row, sh.Target.Col, sh.Outcome.String(), sh.Skipped,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save shot %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit journal: %w", err)
	}
	return nil
}

var _ engine.JournalSaver = (*Store)(nil)

// RecentMatches retrieves the most recently finished matches.
func (s *Store) RecentMatches(limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT match_id, seed, side0_name, side0_automated, side1_name, side1_automated,
		        winner, turns, winner_shots, winner_hits, finished_at
		 FROM matches
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var summaries []MatchSummary
	for rows.Next() {
		var (
			m          MatchSummary
			sides      [2]battle.JournalSide
			winner     int
			finishedAt string
		)
		if err := rows.Scan(
			&m.MatchID, &m.Seed,
			&sides[0].Name, &sides[0].Automated,
			&sides[1].Name, &sides[1].Automated,
			&winner, &m.Turns, &m.ShotsFired, &m.ShotsHit, &finishedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if winner == 0 || winner == 1 {
			m.Winner = sides[winner].Name
			m.WinnerAutomated = sides[winner].Automated
			m.Loser = sides[1-winner].Name
		}
		m.FinishedAt = parseTime(finishedAt)
		summaries = append(summaries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// LoadJournal reads back the journal of one match.
// Returns ErrMatchNotFound if the match was never saved.
func (s *Store) LoadJournal(matchID string) (battle.Journal, error) {
	j := battle.Journal{MatchID: matchID}
	var startedAt, finishedAt string

	err := s.db.QueryRow(
		`SELECT seed, side0_name, side0_automated, side1_name, side1_automated,
		        winner, turns, started_at, finished_at
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	).Scan(
		&j.Seed,
		&j.Sides[0].Name, &j.Sides[0].Automated,
		&j.Sides[1].Name, &j.Sides[1].Automated,
		&j.Winner, &j.Turns, &startedAt, &finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return j, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	if err != nil {
		return j, fmt.Errorf("storage: cannot query match: %w", err)
	}
	j.StartedAt = parseTime(startedAt)
	j.FinishedAt = parseTime(finishedAt)

	if j.Placements, err = s.loadPlacements(matchID); err != nil {
		return j, err
	}
	if j.Shots, err = s.loadShots(matchID); err != nil {
		return j, err
	}
	return j, nil
}

func (s *Store) loadPlacements(matchID string) ([]battle.Placement, error) {
	rows, err := s.db.Query(
		`SELECT side, vessel, cell_row, cell_col, orientation
		 FROM placements
		 WHERE match_id = ?
		 ORDER BY seq`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query placements: %w", err)
	}
	defer rows.Close()

	var placements []battle.Placement
	for rows.Next() {
		var (
			p           battle.Placement
			orientation string
		)
		if err := rows.Scan(&p.Side, &p.Vessel, &p.Start.Row, &p.Start.Col, &orientation); err != nil {
			return nil, fmt.Errorf("storage: cannot scan placement: %w", err)
		}
		if p.Orientation, err = battle.ParseOrientation(orientation); err != nil {
			return nil, fmt.Errorf("storage: corrupt placement: %w", err)
		}
		placements = append(placements, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return placements, nil
}

func (s *Store) loadShots(matchID string) ([]battle.Shot, error) {
	rows, err := s.db.Query(
		`SELECT turn, side, cell_row, cell_col, outcome, skipped
		 FROM shots
		 WHERE match_id = ?
		 ORDER BY seq`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query shots: %w", err)
	}
	defer rows.Close()

	var shots []battle.Shot
	for rows.Next() {
		var (
			sh      battle.Shot
			outcome string
		)
		if err := rows.Scan(&sh.Turn, &sh.Side, &sh.Target.Row, &sh.Target.Col, &outcome, &sh.Skipped); err != nil {
			return nil, fmt.Errorf("storage: cannot scan shot: %w", err)
		}
		if sh.Outcome, err = battle.ParseShotOutcome(outcome); err != nil {
			return nil, fmt.Errorf("storage: corrupt shot: %w", err)
		}
		shots = append(shots, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return shots, nil
}

// winnerShots counts the winner's valid shots and hits.
func winnerShots(j battle.Journal) (fired, hit int) {
	for _, sh := range j.Shots {
		if sh.Side != j.Winner || sh.Skipped {
			continue
		}
		fired++
		if sh.Outcome == battle.ShotHit {
			hit++
		}
	}
	return fired, hit
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
