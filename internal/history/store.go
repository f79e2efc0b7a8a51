// Package history persists run outcomes in a local SQLite database. The
// conversion pipeline only writes here; nothing in it reads history back,
// so a nil store disables persistence without touching the pipeline.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run summarizes one completed conversion run.
type Run struct {
	ID                string
	StartedAt         time.Time
	FinishedAt        time.Time
	InputDir          string
	OutputDir         string
	Total             int
	Converted         int
	MetadataPreserved int
}

// FileOutcome records what happened to a single candidate.
type FileOutcome struct {
	Source            string
	Output            string
	Converted         bool
	MetadataPreserved bool
	// Failure names the failure class when the job did not convert
	// (decode, encode, metadata, unexpected). Empty on full success.
	Failure string
	Detail  string
}

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id                 TEXT PRIMARY KEY,
    started_at         TEXT NOT NULL,
    finished_at        TEXT NOT NULL,
    input_dir          TEXT NOT NULL,
    output_dir         TEXT NOT NULL,
    total              INTEGER NOT NULL,
    converted          INTEGER NOT NULL,
    metadata_preserved INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_files (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id             TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    source             TEXT NOT NULL,
    output             TEXT NOT NULL,
    converted          INTEGER NOT NULL,
    metadata_preserved INTEGER NOT NULL,
    failure            TEXT NOT NULL DEFAULT '',
    detail             TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// RecordRun stores a run and its per-file outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, files []FileOutcome) error {
	if s == nil || s.db == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, input_dir, output_dir, total, converted, metadata_preserved)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputDir,
		run.OutputDir,
		run.Total,
		run.Converted,
		run.MetadataPreserved,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range files {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_files (run_id, source, output, converted, metadata_preserved, failure, detail)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			file.Source,
			file.Output,
			boolToInt(file.Converted),
			boolToInt(file.MetadataPreserved),
			file.Failure,
			file.Detail,
		)
		if err != nil {
			return fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, input_dir, output_dir, total, converted, metadata_preserved
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.InputDir, &run.OutputDir,
			&run.Total, &run.Converted, &run.MetadataPreserved); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file outcomes of one run.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, converted, metadata_preserved, failure, detail
         FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileOutcome
	for rows.Next() {
		var file FileOutcome
		var converted, preserved int
		if err := rows.Scan(&file.Source, &file.Output, &converted, &preserved, &file.Failure, &file.Detail); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		file.Converted = converted != 0
		file.MetadataPreserved = preserved != 0
		files = append(files, file)
	}
	return files, rows.Err()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
