package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Task) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `INSERT INTO tasks (id, owner, name, streak, longest_streak, last_done, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Owner, t.Name, t.Streak, t.LongestStreak, string(t.LastDone), t.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert task: %w", err)
	}
	return t.ID, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT id, owner, name, streak, longest_streak, last_done, created_at
			FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	t := &models.Task{}
	var lastDone string
	err := row.Scan(&t.ID, &t.Owner, &t.Name, &t.Streak, &t.LongestStreak, &lastDone, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	t.LastDone = streak.Day(lastDone)
	return t, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, owner string) ([]models.Task, error) {
	query := `SELECT id, owner, name, streak, longest_streak, last_done, created_at
			FROM tasks WHERE owner = ? ORDER BY streak DESC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	return scanTasks(rows)
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Task, error) {
	query := `SELECT id, owner, name, streak, longest_streak, last_done, created_at
			FROM tasks ORDER BY streak DESC, created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	return scanTasks(rows)
}

func (r *SQLiteRepository) UpdateProgress(ctx context.Context, t *models.Task) error {
	query := `UPDATE tasks SET streak = ?, longest_streak = ?, last_done = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Streak, t.LongestStreak, string(t.LastDone), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename task: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByID is idempotent: deleting an id that is already gone succeeds.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
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
