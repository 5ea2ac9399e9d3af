package invites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Put(ctx context.Context, inv *models.Invite) error {
	query := `INSERT INTO invite_tokens (code, kind, uses, max_uses, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	var expires any
	if !inv.ExpiresAt.IsZero() {
		expires = inv.ExpiresAt
	}
	_, err := r.db.ExecContext(ctx, query,
		inv.Code, string(inv.Kind), inv.Uses, inv.MaxUses, inv.CreatedAt, expires)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("failed to insert invite: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByCode(ctx context.Context, code string) (*models.Invite, error) {
	query := `SELECT code, kind, uses, max_uses, created_at, expires_at
			FROM invite_tokens WHERE code = ?`
	row := r.db.QueryRowContext(ctx, query, code)

	inv := &models.Invite{}
	var kind string
	var expires sql.NullTime
	err := row.Scan(&inv.Code, &kind, &inv.Uses, &inv.MaxUses, &inv.CreatedAt, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select invite: %w", err)
	}
	inv.Kind = models.InviteKind(kind)
	if expires.Valid {
		inv.ExpiresAt = expires.Time
	}
	return inv, nil
}

// Redeem is guarded by "uses > 0" so a concurrent redemption of the last
// use cannot drive the counter negative.
func (r *SQLiteRepository) Redeem(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invite_tokens SET uses = uses - 1 WHERE code = ? AND uses > 0`, code)
	if err != nil {
		return fmt.Errorf("failed to redeem invite: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrInviteExhausted
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Invite, error) {
	query := `SELECT code, kind, uses, max_uses, created_at, expires_at
			FROM invite_tokens ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select invites: %w", err)
	}
	defer rows.Close()

	var result []models.Invite
	for rows.Next() {
		var inv models.Invite
		var kind string
		var expires sql.NullTime
		if err := rows.Scan(&inv.Code, &kind, &inv.Uses, &inv.MaxUses, &inv.CreatedAt, &expires); err != nil {
			return nil, err
		}
		inv.Kind = models.InviteKind(kind)
		if expires.Valid {
			inv.ExpiresAt = expires.Time
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invite_tokens WHERE expires_at IS NOT NULL AND expires_at < ?`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to purge invites: %w", err)
	}
	return res.RowsAffected()
}
