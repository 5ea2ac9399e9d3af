// Package services contains server-side business logic: invite-gated
// signup, login with JWT issuing, habit bookkeeping, the leaderboard
// and avatar uploads.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/server/auth"
	"github.com/dmitrijs2005/streakkeeper/internal/server/config"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/invites"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
	"golang.org/x/crypto/bcrypt"
)

// Profile is the public view of an account.
type Profile struct {
	Username string
	XP       int
	Level    int
	Avatar   string
}

// UserService provides authentication-related operations:
// - Signup: redeem an invite and create the account
// - Login: verify credentials and mint a JWT
// - Profile / Leaderboard: read views
type UserService struct {
	db                    *sql.DB
	users                 users.Repository
	invites               invites.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	nowFn                 func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, u users.Repository, i invites.Repository, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		users:                 u,
		invites:               i,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		nowFn:                 time.Now,
	}
}

// Signup validates the invite code and creates the account. The invite
// redemption and the user insert share one transaction, so a duplicate
// username cannot burn a use.
func (s *UserService) Signup(ctx context.Context, username, password, inviteCode string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return common.ErrorValidation
	}

	code := common.NormalizeInviteCode(inviteCode)
	if code == "" {
		return common.ErrInviteInvalid
	}

	inv, err := s.invites.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInviteInvalid
		}
		return fmt.Errorf("invite lookup error: %w", err)
	}
	if inv.Expired(s.nowFn()) {
		return common.ErrInviteExpired
	}
	if inv.Uses <= 0 {
		return common.ErrInviteExhausted
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.nowFn(),
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := invites.NewPostgresRepository(tx).Redeem(ctx, code); err != nil {
			return err
		}
		return users.NewPostgresRepository(tx).Create(ctx, user)
	})
}

// Login verifies the password and, on success, returns a signed access token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", common.ErrorValidation
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	return auth.GenerateToken(user.Username, s.jwtSecret, s.tokenValidityDuration)
}

// Profile returns the public view of the named account.
func (s *UserService) Profile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Username: user.Username,
		XP:       user.XP,
		Level:    streak.Level(user.XP),
		Avatar:   user.Avatar,
	}, nil
}

// Leaderboard returns up to limit users ranked by XP.
func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	list, err := s.users.ListByXP(ctx, limit)
	if err != nil {
		return nil, err
	}
	board := make([]LeaderboardEntry, len(list))
	for i, u := range list {
		board[i] = LeaderboardEntry{Username: u.Username, XP: u.XP, Level: streak.Level(u.XP)}
	}
	return board, nil
}
