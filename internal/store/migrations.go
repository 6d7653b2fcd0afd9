package store

import (
	"context"
	"fmt"
)

type migration struct {
	version string
	sql     string
}

// Migrations run inside a single transaction in version order. Append
// new entries; never edit an applied one.
var migrations = []migration{
	{
		version: "0001_runs",
		sql: `CREATE TABLE runs (
    id TEXT PRIMARY KEY,
    status TEXT NOT NULL,
    started_at TEXT NOT NULL,
    finished_at TEXT,
    chapters_processed INTEGER NOT NULL DEFAULT 0,
    sections_found INTEGER NOT NULL DEFAULT 0,
    sections_skipped INTEGER NOT NULL DEFAULT 0,
    records_total INTEGER NOT NULL DEFAULT 0,
    records_matched INTEGER NOT NULL DEFAULT 0,
    error_message TEXT
)`,
	},
	{
		version: "0002_sections",
		sql: `CREATE TABLE sections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    chapter TEXT NOT NULL,
    title TEXT NOT NULL,
    start_page INTEGER NOT NULL,
    length INTEGER NOT NULL,
    preview TEXT NOT NULL,
    matchable INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX idx_sections_run_chapter ON sections(run_id, chapter)`,
	},
	{
		version: "0003_match_summaries",
		sql: `CREATE TABLE match_summaries (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    record_id TEXT NOT NULL,
    record_name TEXT NOT NULL,
    category TEXT,
    match_count INTEGER NOT NULL,
    best_score REAL NOT NULL,
    best_title TEXT,
    best_chapter TEXT,
    PRIMARY KEY (run_id, record_id)
)`,
	},
}

func (s *Store) applyMigrations(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, migration := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", migration.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, migration.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", migration.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", migration.version); err != nil {
			return fmt.Errorf("record migration %s: %w", migration.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}
