package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/invites"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
)

const inviteCodeLength = 6

// InviteService manages signup invite codes in the local store.
type InviteService interface {
	// Generate creates and stores a fresh code. uses is the number of
	// redemptions allowed (minimum 1); expireDays 0 means never.
	Generate(ctx context.Context, kind models.InviteKind, prefix string, uses, expireDays int) (*models.Invite, error)

	// List returns all known invites, newest first.
	List(ctx context.Context) ([]models.Invite, error)

	// Purge removes expired invites and returns how many were dropped.
	Purge(ctx context.Context) (int64, error)
}

type inviteService struct {
	invites invites.Repository
	nowFn   func() time.Time
}

// NewInviteService constructs an InviteService over the given repository.
func NewInviteService(i invites.Repository) InviteService {
	return &inviteService{invites: i, nowFn: time.Now}
}

func (s *inviteService) Generate(ctx context.Context, kind models.InviteKind, prefix string, uses, expireDays int) (*models.Invite, error) {
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
	inv := &models.Invite{
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

func (s *inviteService) List(ctx context.Context) ([]models.Invite, error) {
	return s.invites.List(ctx)
}

func (s *inviteService) Purge(ctx context.Context) (int64, error) {
	return s.invites.DeleteExpired(ctx, s.nowFn())
}
