// Package history implements an optional SQLite-backed log of harness runs
// using database/sql. Each completed run appends one row with its tallies,
// schema verdict, and the merged-snapshot fingerprint, so regressions in the
// processor under test show up across runs, not just within one.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// SQLite driver; replace with your preferred driver if desired.
	_ "modernc.org/sqlite" // alternative: github.com/mattn/go-sqlite3
)

// Run is one recorded harness run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	Duration    time.Duration
	PassCount   int
	FailCount   int
	SchemaValid bool
	SchemaErrs  []string
	Fingerprint string // merged-snapshot content hash
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

const ddl = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at    TEXT    NOT NULL,
	duration_ms   INTEGER NOT NULL,
	pass_count    INTEGER NOT NULL,
	fail_count    INTEGER NOT NULL,
	schema_valid  INTEGER NOT NULL,
	schema_errors TEXT    NOT NULL,
	fingerprint   TEXT    NOT NULL
);`

// Open opens (or creates) the run log at the given DSN and ensures the
// schema exists.
//
// DSN is passed directly to database/sql; for example:
//
//	"file:statcheck.db?cache=shared"
//	"statcheck.db"
//	":memory:"
func Open(ctx context.Context, dsn string) (*Store, func(), error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("history: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("history: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("history: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("history: create table: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Store{db: db}, closeFn, nil
}

// Record appends one run and returns its assigned id.
func (s *Store) Record(ctx context.Context, r Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs
			(started_at, duration_ms, pass_count, fail_count, schema_valid, schema_errors, fingerprint)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.Duration.Milliseconds(),
		r.PassCount,
		r.FailCount,
		boolToInt(r.SchemaValid),
		strings.Join(r.SchemaErrs, "\n"),
		r.Fingerprint,
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, pass_count, fail_count, schema_valid, schema_errors, fingerprint
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  string
			durationMS int64
			valid      int
			errsJoined string
		)
		if err := rows.Scan(&r.ID, &startedAt, &durationMS, &r.PassCount, &r.FailCount, &valid, &errsJoined, &r.Fingerprint); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.SchemaValid = valid != 0
		if errsJoined != "" {
			r.SchemaErrs = strings.Split(errsJoined, "\n")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
