package invites

import (
	"context"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
)

// Repository describes operations on invite tokens in the local store.
type Repository interface {
	// Put inserts an invite code. Returns common.ErrorAlreadyExists
	// when the code collides.
	Put(ctx context.Context, inv *models.Invite) error

	// GetByCode returns an invite by its code, or common.ErrorNotFound.
	GetByCode(ctx context.Context, code string) (*models.Invite, error)

	// Redeem decrements the remaining uses of a code that still has
	// uses left. Returns common.ErrInviteExhausted when none remain.
	Redeem(ctx context.Context, code string) error

	// List returns all invites, newest first.
	List(ctx context.Context) ([]models.Invite, error)

	// DeleteExpired removes invites whose expiry is before now and
	// returns how many were purged.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
