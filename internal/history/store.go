// Package history persists a log of research runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"vcscout/internal/domain"
)

// SQLiteStore implements domain.ResearchStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Set connection pool (single connection for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS research_runs (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		firm_name     TEXT NOT NULL,
		tool          TEXT NOT NULL,
		query_count   INTEGER DEFAULT 0,
		result_count  INTEGER DEFAULT 0,
		url_count     INTEGER DEFAULT 0,
		degraded      INTEGER DEFAULT 0,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_time ON research_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_firm ON research_runs(firm_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Record(ctx context.Context, run domain.ResearchRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO research_runs (firm_name, tool, query_count, result_count, url_count, degraded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.FirmName, run.Tool, run.QueryCount, run.ResultCount, run.URLCount, boolToInt(run.Degraded), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record research run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.ResearchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, firm_name, tool, query_count, result_count, url_count, degraded, created_at
		 FROM research_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query research runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ResearchRun
	for rows.Next() {
		var run domain.ResearchRun
		var degraded int
		if err := rows.Scan(&run.ID, &run.FirmName, &run.Tool, &run.QueryCount,
			&run.ResultCount, &run.URLCount, &degraded, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan research run: %w", err)
		}
		run.Degraded = degraded != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// NopStore discards research runs. Used when history is disabled.
type NopStore struct{}

func (NopStore) Record(ctx context.Context, run domain.ResearchRun) error { return nil }
func (NopStore) Recent(ctx context.Context, limit int) ([]domain.ResearchRun, error) {
	return nil, nil
}
func (NopStore) Close() error { return nil }
