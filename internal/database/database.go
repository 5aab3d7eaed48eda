// Package database handles PostgreSQL connection management and schema
// setup using goose. It owns the shared connection pool, the readiness
// probe used by the health endpoint, and the startup wait that gates the
// HTTP listener.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"recipebox/internal/apperr"
	"recipebox/internal/metrics"
)

//go:embed migrations
var embedMigrations embed.FS

// Default readiness wait parameters.
const (
	DefaultWaitAttempts = 20
	DefaultWaitInterval = 1000 * time.Millisecond
	// DefaultAttemptTimeout caps a single readiness probe, so a dial that
	// hangs counts as one failed attempt.
	DefaultAttemptTimeout = 2 * time.Second
)

// attemptTimeout is DefaultAttemptTimeout; tests shorten it.
var attemptTimeout = DefaultAttemptTimeout

// Execer is the part of *sql.DB the probe needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Connect opens a PostgreSQL connection pool capped at maxConns open
// connections. It does not wait for the server; call WaitUntilReady.
func Connect(dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	return db, nil
}

// Probe runs a trivial query against the store.
func Probe(ctx context.Context, db Execer) error {
	if _, err := db.ExecContext(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("database probe: %w", err)
	}
	return nil
}

// WaitUntilReady probes db up to attempts times, sleeping a constant
// interval between failed attempts. Each probe gets at most
// DefaultAttemptTimeout. It returns nil on the first successful probe and
// a DatabaseUnavailable error once every attempt has failed.
func WaitUntilReady(ctx context.Context, db Execer, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = DefaultWaitAttempts
	}
	if interval <= 0 {
		interval = DefaultWaitInterval
	}

	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(interval))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		defer cancel()
		if err := Probe(attemptCtx, db); err != nil {
			metrics.DBWaitAttempts.WithLabelValues("failure").Inc()
			slog.Warn("database not ready",
				"attempt", attempt,
				"max_attempts", attempts,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		metrics.DBWaitAttempts.WithLabelValues("success").Inc()
		return nil
	})
	if err != nil {
		return apperr.Wrap(apperr.DatabaseUnavailable,
			fmt.Sprintf("database not reachable after %d attempts", attempt), err)
	}

	slog.Info("database ready", "attempts", attempt)
	return nil
}

// Migrate runs all pending goose migrations from the embedded SQL files.
// Migrations are embedded at compile time so no external files are needed
// at runtime.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database schema applied")
	return nil
}
