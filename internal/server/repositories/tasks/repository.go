// Package tasks provides persistence for habits on the server.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

// Repository is the storage contract for tasks.
type Repository interface {
	// Create inserts a task, assigning a UUID when t.ID is empty.
	// Returns the task id.
	Create(ctx context.Context, t *models.Task) (string, error)

	// GetByID returns a task by id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// ListByOwner returns the owner's tasks ordered by streak descending,
	// oldest first for ties.
	ListByOwner(ctx context.Context, owner string) ([]models.Task, error)

	// UpdateProgress persists streak, longest streak and last-done day.
	// Returns common.ErrorNotFound when the task does not exist.
	UpdateProgress(ctx context.Context, t *models.Task) error

	// DeleteByID removes a task. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) error
}
