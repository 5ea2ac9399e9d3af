// Package storage opens the server database, applies migrations and
// bundles the repositories the services work with.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/streakkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/invites"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
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

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open connects to Postgres at dsn, verifies the connection, runs
// migrations and returns the repository bundle.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:      db,
		Users:   users.NewPostgresRepository(db),
		Tasks:   tasks.NewPostgresRepository(db),
		Invites: invites.NewPostgresRepository(db),
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
