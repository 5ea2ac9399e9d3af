package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/invites"
)

const inviteCodeLength = 6

// InviteService manages signup invite tokens. Its operations are gated
// by the admin key at the API layer.
type InviteService struct {
	invites invites.Repository
	nowFn   func() time.Time
}

// NewInviteService constructs an InviteService over the given repository.
func NewInviteService(i invites.Repository) *InviteService {
	return &InviteService{invites: i, nowFn: time.Now}
}

// Generate creates and stores a fresh code. uses is the number of
// redemptions allowed (minimum 1, single kind forces 1); expireDays 0
// means never.
func (s *InviteService) Generate(ctx context.Context, kind models.InviteKind, prefix string, uses, expireDays int) (*models.InviteToken, error) {
	if uses < 1 {
		uses = 1
	}
	if kind == models.InviteSingle {
		uses = 1
	}

	code, err := common.MakeInviteCode(inviteCodeLength, prefix)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	inv := &models.InviteToken{
		Code:      code,
		Kind:      kind,
		Uses:      uses,
		MaxUses:   uses,
		CreatedAt: now,
	}
	if expireDays > 0 {
		inv.ExpiresAt = now.AddDate(0, 0, expireDays)
	}

	if err := s.invites.Put(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns all known invites, newest first.
func (s *InviteService) List(ctx context.Context) ([]models.InviteToken, error) {
	return s.invites.List(ctx)
}

// Purge removes expired invites and returns how many were dropped.
func (s *InviteService) Purge(ctx context.Context) (int64, error) {
	return s.invites.DeleteExpired(ctx, s.nowFn())
}
