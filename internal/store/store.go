// Package store holds one dataset in a private in-memory SQLite database for
// the duration of a dashboard build. Nothing is written to disk.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
const CurrentSchemaVersion = 1

// Snapshot is an in-memory copy of one generated dataset.
type Snapshot struct {
	ID string
	db *sql.DB
}

// Open creates an empty snapshot with a fresh ULID.
func Open(ctx context.Context) (*Snapshot, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	// Every connection to ":memory:" is a separate database; pin to one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Snapshot{ID: newID(), db: db}, nil
}

// Close releases the snapshot.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// newID returns a monotonic ULID string.
func newID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// migrate applies schema migrations based on user_version.
func migrate(ctx context.Context, db *sql.DB) error {
	version, err := GetUserVersion(ctx, db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS sales_days (
		  day_unix_nano INTEGER PRIMARY KEY,
		  daily_sales   REAL NOT NULL,
		  customers     INTEGER NOT NULL,
		  average_order REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
		  position INTEGER PRIMARY KEY,
		  drink    TEXT NOT NULL UNIQUE,
		  sales    INTEGER NOT NULL,
		  price    REAL NOT NULL,
		  rating   REAL NOT NULL,
		  category TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_products_sales ON products(sales DESC, position);
		CREATE INDEX IF NOT EXISTS idx_products_rating ON products(rating DESC, position);
		`
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(ctx, db, 1); err != nil {
			return err
		}
	}

	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(ctx context.Context, db *sql.DB, version int) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
