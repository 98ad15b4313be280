package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Config wraps parameters for opening the store.
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// Store owns the process-wide handle to the SQLite file. It is opened once
// at startup and closed at process end; each command runs its own short
// transaction against it.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the SQLite file at cfg.Path and ensures the schema exists.
// Safe to call on every startup: the schema statements are idempotent.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(cfg.Path)
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d", cleanPath, busy.Milliseconds())

	logger.Info("opening database", "path", cleanPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("failed to open database", "path", cleanPath, "error", err)
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error("failed to ping database", "path", cleanPath, "error", err)
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		logger.Error("failed to ensure schema", "path", cleanPath, "error", err)
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Debug("database ready", "path", cleanPath)
	return s, nil
}

// Close closes the database connection gracefully
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.logger.Debug("closing database")
	return s.db.Close()
}

// HealthCheck pings the file to catch path issues early.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.db.PingContext(ctx)
}

// ensureSchema creates the jobs table if absent. AUTOINCREMENT keeps deleted
// ids from ever being reassigned.
func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	link TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'interested',
	deadline TEXT NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`)
	return err
}
