package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Task) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `INSERT INTO tasks (id, owner, name, streak, longest_streak, last_done, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Owner, t.Name, t.Streak, t.LongestStreak, string(t.LastDone), t.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return t.ID, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT id, owner, name, streak, longest_streak, last_done, created_at
			FROM tasks WHERE id = $1`

	t := &models.Task{}
	var lastDone string
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Owner, &t.Name, &t.Streak, &t.LongestStreak, &lastDone, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	t.LastDone = streak.Day(lastDone)
	return t, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]models.Task, error) {
	query := `SELECT id, owner, name, streak, longest_streak, last_done, created_at
			FROM tasks WHERE owner = $1 ORDER BY streak DESC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		var t models.Task
		var lastDone string
		if err := rows.Scan(&t.ID, &t.Owner, &t.Name, &t.Streak, &t.LongestStreak, &lastDone, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.LastDone = streak.Day(lastDone)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) UpdateProgress(ctx context.Context, t *models.Task) error {
	query := `UPDATE tasks SET streak = $1, longest_streak = $2, last_done = $3
			WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query,
		t.Streak, t.LongestStreak, string(t.LastDone), t.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByID is idempotent: deleting an id that is already gone succeeds.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
