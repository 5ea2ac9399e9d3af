package users

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
)

// Repository describes the operations the rest of the client needs for
// user records. Implementations are backed by the local SQLite database.
type Repository interface {
	// Create inserts a new user. Returns common.ErrorAlreadyExists when
	// the username is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns a user by primary key, or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// AddXP credits delta experience points and returns the new total.
	// Returns common.ErrorNotFound when the user does not exist.
	AddXP(ctx context.Context, username string, delta int) (int, error)

	// SetAvatar updates the optional avatar reference.
	SetAvatar(ctx context.Context, username, avatar string) error

	// ListByXP returns up to limit users ordered by XP descending.
	// limit <= 0 means no limit.
	ListByXP(ctx context.Context, limit int) ([]models.User, error)
}
