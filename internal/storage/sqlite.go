// Package storage provides SQLite-based persistence for the solve journal:
// a record of every solve run, what input it was for and how it ended.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the solve journal.
type Store struct {
	db *sql.DB
}

// Outcome describes how a solve run ended.
type Outcome string

const (
	OutcomeSolved    Outcome = "solved"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Run is one journalled solve run.
type Run struct {
	ID        int64
	InputHash string // hex SHA-256 of the input bytes
	Segments  int    // total segments in the figure
	Solved    int    // segments with final lengths when the run ended
	Threshold int    // perfection threshold the run used
	Duration  time.Duration
	Outcome   Outcome
	CreatedAt time.Time
}

// Open creates or opens a journal database at the given path, creating
// parent directories as needed and migrating the schema. A leading ~ in the
// path is resolved against the user's home directory, so config values like
// "~/.sxbp/journal.db" work as written.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// the sqlite driver opens lazily; ping so a bad path fails here, not
	// on the first query
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_hash TEXT NOT NULL,
			segments INTEGER NOT NULL,
			solved INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_input_hash ON runs(input_hash);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(created_at DESC);
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

// SaveRun records a solve run in the journal.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (input_hash, segments, solved, threshold, duration_ms, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.InputHash, run.Segments, run.Solved, run.Threshold,
		run.Duration.Milliseconds(), string(run.Outcome),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent solve runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, input_hash, segments, solved, threshold, duration_ms, outcome, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// RunsForInput retrieves all runs for a given input hash, newest first.
func (s *Store) RunsForInput(inputHash string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, input_hash, segments, solved, threshold, duration_ms, outcome, created_at
		 FROM runs
		 WHERE input_hash = ?
		 ORDER BY created_at DESC, id DESC`,
		inputHash,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// scanRuns reads Run rows from a query result.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var outcome string
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.InputHash, &r.Segments, &r.Solved,
			&r.Threshold, &durationMS, &outcome, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Outcome = Outcome(outcome)

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// JournalStats contains aggregated statistics over all journalled runs.
type JournalStats struct {
	RunCount     int
	SolvedCount  int
	TotalSolving time.Duration
	LastRun      time.Time
}

// Stats retrieves aggregate statistics for the whole journal.
func (s *Store) Stats() (*JournalStats, error) {
	stats := &JournalStats{}
	var totalMS sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'solved' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(duration_ms), 0)
		 FROM runs`,
	).Scan(&stats.RunCount, &stats.SolvedCount, &totalMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get journal stats: %w", err)
	}
	if totalMS.Valid {
		stats.TotalSolving = time.Duration(totalMS.Int64) * time.Millisecond
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		switch v := lastRun.(type) {
		case time.Time:
			stats.LastRun = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				stats.LastRun = parsed
			}
		}
	}

	return stats, nil
}
