// Package reportstore provides SQLite-backed persistence for JobReports,
// adapted from the teacher's internal/usage.Store: the same
// open-migrate-insert-query shape, generalized from fixed usage-metric
// columns to a job's name/status/metrics/error, with the error-prone
// parts (token accounting, sync flags) dropped since a JobReport has no
// analogue for them.
//
// A reportstore.Store is deliberately NOT a crash-recovery mechanism: it
// records completed (or failed, or aborted) runs for later inspection,
// the same way the teacher's usage store is an audit trail rather than a
// resumable work queue.
package reportstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aceteam-ai/gobatch/batch"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_reports (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    name           TEXT NOT NULL,
    status         TEXT NOT NULL,
    started_at     TEXT NOT NULL,
    ended_at       TEXT NOT NULL,
    duration_ms    INTEGER NOT NULL DEFAULT 0,
    read_count     INTEGER NOT NULL DEFAULT 0,
    write_count    INTEGER NOT NULL DEFAULT 0,
    filter_count   INTEGER NOT NULL DEFAULT 0,
    error_count    INTEGER NOT NULL DEFAULT 0,
    last_error     TEXT NOT NULL DEFAULT '',
    hostname       TEXT NOT NULL DEFAULT '',
    recorded_at    TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_job_reports_name ON job_reports(name);
`

// Store persists JobReports to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the report database at dbPath and runs
// migrations, matching the teacher's usage.OpenStore WAL-mode convention
// so concurrent Executor workers can each record a report without
// blocking one another.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("reportstore: open: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("reportstore: enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("reportstore: run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one JobReport.
func (s *Store) Record(report *batch.JobReport) error {
	var lastErr string
	if report.LastError != nil {
		lastErr = report.LastError.Error()
	}

	_, err := s.db.Exec(`
		INSERT INTO job_reports (
			name, status, started_at, ended_at, duration_ms,
			read_count, write_count, filter_count, error_count,
			last_error, hostname
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Name, string(report.Status),
		report.Metrics.StartTime.UTC().Format(time.RFC3339),
		report.Metrics.EndTime.UTC().Format(time.RFC3339),
		report.Metrics.Duration().Milliseconds(),
		report.Metrics.ReadCount, report.Metrics.WriteCount,
		report.Metrics.FilterCount, report.Metrics.ErrorCount,
		lastErr, report.Environment.Hostname,
	)
	if err != nil {
		return fmt.Errorf("reportstore: insert report: %w", err)
	}
	return nil
}

// Record is a row read back from the store by RecentByName.
type Record struct {
	ID          int64
	Name        string
	Status      string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMs  int64
	ReadCount   int64
	WriteCount  int64
	FilterCount int64
	ErrorCount  int64
	LastError   string
	Hostname    string
}

// RecentByName returns up to limit of the most recent reports recorded
// under name, newest first.
func (s *Store) RecentByName(name string, limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, name, status, started_at, ended_at, duration_ms,
		       read_count, write_count, filter_count, error_count,
		       last_error, hostname
		FROM job_reports
		WHERE name = ?
		ORDER BY id DESC
		LIMIT ?`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("reportstore: query: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var startedAt, endedAt string
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Status, &startedAt, &endedAt, &r.DurationMs,
			&r.ReadCount, &r.WriteCount, &r.FilterCount, &r.ErrorCount,
			&r.LastError, &r.Hostname,
		); err != nil {
			return nil, fmt.Errorf("reportstore: scan row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		if t, err := time.Parse(time.RFC3339, endedAt); err == nil {
			r.EndedAt = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
