// Package invites provides persistence for signup invite tokens on the server.
package invites

import (
	"context"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

// Repository is the storage contract for invite tokens.
type Repository interface {
	// Put inserts an invite token. Returns common.ErrorAlreadyExists
	// when the code is taken.
	Put(ctx context.Context, inv *models.InviteToken) error

	// GetByCode returns an invite by its code, or common.ErrorNotFound.
	GetByCode(ctx context.Context, code string) (*models.InviteToken, error)

	// Redeem consumes one use. Returns common.ErrInviteExhausted when
	// no uses remain.
	Redeem(ctx context.Context, code string) error

	// List returns all invites, newest first.
	List(ctx context.Context) ([]models.InviteToken, error)

	// DeleteExpired removes invites whose deadline is before now and
	// returns how many were dropped.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
