// Package storage is the client's durable local state: a single sqlite
// key-value table holding the cached session and the admin flag. It is the
// only thing that survives process restarts; everything else the client
// shows is refetched from the server.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/vehicleq/vehicleq-go/internal/client/migrations"
)

// Keys used in the localstate table. KeyAdminToken stores a presence
// marker, not a server credential; see AdminTokenValue.
const (
	KeyCurrentUser = "currentUser"
	KeyAdminToken  = "adminToken"

	// AdminTokenValue is the fixed marker persisted on successful admin
	// login. Its content is never sent to the server.
	AdminTokenValue = "admin-authenticated"
)

// Open opens (creating if needed) the local database at dsn and applies
// pending migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}
	// Single connection: the cache is single-user and this keeps
	// in-memory databases on the same connection as their schema.
	db.SetMaxOpenConns(1)
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate local db: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
