// Package history records run summaries in a local SQLite database so
// `arcv history` can show what past runs did. History is advisory:
// failures here are logged and never fail a run.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"arcv/internal/archive"
	"arcv/internal/logging"
)

// DB wraps the run-history database.
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// RunRecord is one persisted run summary.
type RunRecord struct {
	ID         int64     `json:"id"`
	RanAt      time.Time `json:"ranAt"`
	DryRun     bool      `json:"dryRun"`
	Scanned    int       `json:"scanned"`
	Active     int       `json:"active"`
	Inactive   int       `json:"inactive"`
	Archived   int       `json:"archived"`
	Skipped    int       `json:"skipped"`
	DurationMs int64     `json:"durationMs"`
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string, logger *logging.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{conn: conn, logger: logger, dbPath: dbPath}
	if err := db.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return db, nil
}

func (db *DB) initializeSchema() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			ran_at      TEXT NOT NULL,
			dry_run     INTEGER NOT NULL,
			scanned     INTEGER NOT NULL,
			active      INTEGER NOT NULL,
			inactive    INTEGER NOT NULL,
			archived    INTEGER NOT NULL,
			skipped     INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)
	`)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordRun persists one run summary.
func (db *DB) RecordRun(report *archive.Report, duration time.Duration) error {
	_, err := db.conn.Exec(`
		INSERT INTO runs (ran_at, dry_run, scanned, active, inactive, archived, skipped, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		time.Now().UTC().Format(time.RFC3339),
		boolToInt(report.DryRun),
		report.Scanned,
		report.Active,
		report.Inactive,
		report.Archived,
		report.Skipped,
		duration.Milliseconds(),
	)
	return err
}

// RecentRuns returns up to limit run summaries, newest first.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, ran_at, dry_run, scanned, active, inactive, archived, skipped, duration_ms
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var ranAt string
		var dryRun int
		if err := rows.Scan(
			&rec.ID, &ranAt, &dryRun,
			&rec.Scanned, &rec.Active, &rec.Inactive,
			&rec.Archived, &rec.Skipped, &rec.DurationMs,
		); err != nil {
			return nil, err
		}
		rec.DryRun = dryRun != 0
		if t, err := time.Parse(time.RFC3339, ranAt); err == nil {
			rec.RanAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
