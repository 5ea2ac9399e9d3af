// Package storage opens the local database, applies migrations and
// bundles the repositories the client services work with.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/streakkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/invites"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/users"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store owns the database handle and the repositories built on it.
type Store struct {
	DB      *sql.DB
	Users   users.Repository
	Tasks   tasks.Repository
	Invites invites.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the database at dsn, enables
// foreign keys so task rows follow their owner, runs migrations and
// returns the repository bundle.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:      db,
		Users:   users.NewSQLiteRepository(db),
		Tasks:   tasks.NewSQLiteRepository(db),
		Invites: invites.NewSQLiteRepository(db),
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
