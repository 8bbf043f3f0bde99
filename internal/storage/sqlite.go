// Package storage provides SQLite-based persistence for mission runs and
// puzzle attempts. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one mission run.
type RunRecord struct {
	ID        int64
	Handle    string
	Outcome   string // "breached", "detected", "aborted"
	Solved    int
	Failed    int
	Alert     float64
	Completed []string
	Duration  time.Duration
	CreatedAt time.Time
}

// Attempt is one finished puzzle, in a mission or in practice.
type Attempt struct {
	ID        int64
	PuzzleID  string
	Mode      string
	Outcome   string
	Reason    string
	Elapsed   time.Duration
	CreatedAt time.Time
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
			handle TEXT NOT NULL,
			outcome TEXT NOT NULL,
			solved INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			alert REAL NOT NULL DEFAULT 0,
			completed TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome, duration_ms);

		CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			puzzle_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_puzzle ON attempts(puzzle_id);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (handle, outcome, solved, failed, alert, completed, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Handle, r.Outcome, r.Solved, r.Failed, r.Alert,
		strings.Join(r.Completed, ","),
		r.Duration.Milliseconds(),
		created.UTC().Format(timeLayout),
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

const runColumns = `id, handle, outcome, solved, failed, alert, completed, duration_ms, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
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

// BestRuns retrieves the fastest breached runs.
func (s *Store) BestRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE outcome = 'breached'
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var completed string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Handle, &r.Outcome, &r.Solved, &r.Failed, &r.Alert,
			&completed, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if completed != "" {
			r.Completed = strings.Split(completed, ",")
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs and attempts.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs; DELETE FROM attempts;"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveAttempt records a finished puzzle.
func (s *Store) SaveAttempt(a Attempt) (int64, error) {
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO attempts (puzzle_id, mode, outcome, reason, elapsed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.PuzzleID, a.Mode, a.Outcome, a.Reason, a.Elapsed.Milliseconds(),
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Stats contains aggregated run statistics.
type Stats struct {
	Runs      int
	Breached  int
	Detected  int
	Aborted   int
	BestTime  time.Duration // Fastest breach, 0 if none
	LastRunAt time.Time
}

// RunStats aggregates all recorded runs.
func (s *Store) RunStats() (*Stats, error) {
	stats := &Stats{}

	var best sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'breached'), 0),
		        COALESCE(SUM(outcome = 'detected'), 0),
		        COALESCE(SUM(outcome = 'aborted'), 0),
		        MIN(CASE WHEN outcome = 'breached' THEN duration_ms END)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Breached, &stats.Detected, &stats.Aborted, &best)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if best.Valid {
		stats.BestTime = time.Duration(best.Int64) * time.Millisecond
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRunAt = parseTime(lastRun)
	}

	return stats, nil
}

// PuzzleStats contains aggregated statistics for one puzzle.
type PuzzleStats struct {
	PuzzleID   string
	Attempts   int
	Solved     int
	BestTime   time.Duration // Fastest solve, 0 if none
	LastPlayed time.Time
}

// AllPuzzleStats retrieves statistics for every puzzle that was attempted.
func (s *Store) AllPuzzleStats() (map[string]*PuzzleStats, error) {
	rows, err := s.db.Query(
		`SELECT puzzle_id, COUNT(*),
		        COALESCE(SUM(outcome = 'solved'), 0),
		        MIN(CASE WHEN outcome = 'solved' THEN elapsed_ms END),
		        MAX(created_at)
		 FROM attempts
		 GROUP BY puzzle_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get puzzle stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PuzzleStats)
	for rows.Next() {
		var ps PuzzleStats
		var best sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&ps.PuzzleID, &ps.Attempts, &ps.Solved, &best, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		if best.Valid {
			ps.BestTime = time.Duration(best.Int64) * time.Millisecond
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.PuzzleID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
