package tasks

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
)

// Repository describes CRUD and query operations for Task objects.
type Repository interface {
	// Create inserts a new task and assigns its id.
	Create(ctx context.Context, task *models.Task) (string, error)

	// GetByID returns a task by id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// ListByOwner returns the owner's tasks ordered by streak descending.
	ListByOwner(ctx context.Context, owner string) ([]models.Task, error)

	// ListAll returns every task. Used for maintenance views only.
	ListAll(ctx context.Context) ([]models.Task, error)

	// UpdateProgress persists the streak fields after a mark-done event.
	// Returns common.ErrorNotFound when the task does not exist.
	UpdateProgress(ctx context.Context, task *models.Task) error

	// Rename changes the task label.
	Rename(ctx context.Context, id, name string) error

	// DeleteByID removes a task. Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) error
}
