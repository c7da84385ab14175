// Package store implements the local durable store: journal and project
// collections plus the pending-operations queue, persisted in an embedded
// SQLite database. The store is the device's source of truth — write-through
// updates land here before any remote attempt — and it performs no retry of
// its own; failures surface to the caller.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	// Pure-Go SQLite driver (no CGO), registers as "sqlite".
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned by get operations when no record exists for the
// given id. Use errors.Is to check.
var ErrNotFound = errors.New("store: not found")

// Store is the SQLite-backed local durable store. All methods are safe for
// concurrent use; the database runs in WAL mode with a single writer
// connection.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	// keyMu guards lastKey, the most recently issued queue key. Keys are
	// unix-millis bumped by one on collision so they stay strictly
	// increasing within a process and across restarts (restored from
	// MAX(key) at open).
	keyMu   sync.Mutex
	lastKey int64

	nowFunc func() time.Time // injectable for deterministic tests
}

// Open opens (creating if needed) the database at path and applies any
// pending schema migrations. Use ":memory:" for tests. The DSN pragmas
// apply to every pooled connection.
func Open(path string, logger *slog.Logger) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"+
			"&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening database %s: %w", path, err)
	}

	// Sole-writer pattern: one connection, no writer contention.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, logger: logger, nowFunc: time.Now}

	if err := s.restoreLastKey(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("local store ready", slog.String("path", path))

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations applies embedded schema migrations via the goose v3
// Provider API (no global state, context-aware).
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	subFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("store: creating migration sub-filesystem: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, subFS)
	if err != nil {
		return fmt.Errorf("store: creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("store: running migrations: %w", err)
	}

	for _, r := range results {
		logger.Info("applied migration",
			slog.String("source", r.Source.Path),
			slog.Int64("duration_ms", r.Duration.Milliseconds()),
		)
	}

	return nil
}

// restoreLastKey seeds the key generator from the highest persisted queue
// key so keys stay strictly increasing across restarts.
func (s *Store) restoreLastKey(ctx context.Context) error {
	var maxKey sql.NullInt64

	err := s.db.QueryRowContext(ctx, `SELECT MAX(key) FROM pending_ops`).Scan(&maxKey)
	if err != nil {
		return fmt.Errorf("store: restoring queue key: %w", err)
	}

	if maxKey.Valid {
		s.lastKey = maxKey.Int64
	}

	return nil
}
