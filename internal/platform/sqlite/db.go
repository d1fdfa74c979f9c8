// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite provides a managed SQLite database handle for the Inkstone
// application.
//
// # Architecture
//
// This package mirrors the postgres package for single-node deployments: it
// opens the database file, applies connection pragmas, and verifies
// reachability. Schema migrations are handled separately by the migration
// package.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// busyTimeout is how long a statement waits on a locked database before
	// failing, in milliseconds.
	busyTimeout = 5000
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// Open opens (or creates) the SQLite database file at path.
//
// # Parameters
//   - ctx: Context for the initial reachability check.
//   - path: Filesystem path or DSN, e.g. "./inkstone.db" or
//     "file:test?mode=memory&cache=shared".
//   - logger: Structured logger for connection-level events.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %q: %w", path, err)
	}

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// journal_mode is not supported for in-memory databases; ignore errors.
	_, _ = db.ExecContext(ctx, `PRAGMA journal_mode=WAL`)

	if _, err := db.ExecContext(ctx, fmt.Sprintf(`PRAGMA busy_timeout=%d`, busyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to set busy_timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable foreign_keys: %w", err)
	}

	logger.Info("sqlite database opened", slog.String("path", path))

	return db, nil
}

// Ping verifies that the SQLite database is reachable.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}

	return nil
}
