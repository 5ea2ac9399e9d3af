// Package users provides persistence for user accounts on the server.
package users

import (
	"context"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

// Repository is the storage contract for accounts.
type Repository interface {
	// Create inserts a new user. Returns common.ErrorAlreadyExists when
	// the username is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByUsername returns a user by primary key, or common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// AddXP adds delta to the user's XP and returns the new total.
	// Returns common.ErrorNotFound when the user does not exist.
	AddXP(ctx context.Context, username string, delta int) (int, error)

	// SetAvatar stores the object key of the user's avatar.
	SetAvatar(ctx context.Context, username, key string) error

	// ListByXP returns up to limit users ordered by XP descending,
	// username ascending for ties.
	ListByXP(ctx context.Context, limit int) ([]models.User, error)
}
