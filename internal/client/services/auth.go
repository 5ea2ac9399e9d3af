// Package services contains application services for the Streakkeeper
// client: account registration/login against the local store, habit
// bookkeeping and the leaderboard.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/invites"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"golang.org/x/crypto/argon2"
)

// Session identifies an authenticated user. It is created by Login and
// passed explicitly into every operation; there is no ambient
// current-user state.
type Session struct {
	Username string
}

// AuthService defines account operations for the CLI.
//
// Contract:
//   - Register: validate the invite code, derive a credential and create
//     the account. The invite redemption and the user insert share one
//     transaction.
//   - Login: verify the password against the stored credential and
//     return a Session.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username, password, inviteCode string) error
	Login(ctx context.Context, username, password string) (*Session, error)
}

type authService struct {
	db      *sql.DB
	users   users.Repository
	invites invites.Repository
	nowFn   func() time.Time
}

// NewAuthService constructs an AuthService backed by the local database.
func NewAuthService(db *sql.DB, u users.Repository, i invites.Repository) AuthService {
	return &authService{db: db, users: u, invites: i, nowFn: time.Now}
}

// deriveCredential maps (password, salt) to the stored verifier with
// argon2id. Parameters follow the argon2 package recommendation.
func deriveCredential(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

func (a *authService) Register(ctx context.Context, username, password, inviteCode string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return common.ErrorValidation
	}

	code := common.NormalizeInviteCode(inviteCode)
	if code == "" {
		return common.ErrInviteInvalid
	}

	inv, err := a.invites.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInviteInvalid
		}
		return fmt.Errorf("invite lookup error: %w", err)
	}
	if inv.Expired(a.nowFn()) {
		return common.ErrInviteExpired
	}
	if inv.Uses <= 0 {
		return common.ErrInviteExhausted
	}

	salt := common.GenerateRandByteArray(32)
	user := &models.User{
		Username:   username,
		Credential: deriveCredential(password, salt),
		Salt:       salt,
		CreatedAt:  a.nowFn(),
	}

	// Redeeming the invite and creating the account must not come apart.
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := invites.NewSQLiteRepository(tx).Redeem(ctx, code); err != nil {
			return err
		}
		return users.NewSQLiteRepository(tx).Create(ctx, user)
	})
}

func (a *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ErrorValidation
	}

	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("user lookup error: %w", err)
	}

	candidate := deriveCredential(password, user.Salt)
	if subtle.ConstantTimeCompare(user.Credential, candidate) == 0 {
		return nil, common.ErrorUnauthorized
	}

	return &Session{Username: user.Username}, nil
}
