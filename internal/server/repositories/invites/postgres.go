package invites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresRepository) Put(ctx context.Context, inv *models.InviteToken) error {
	query := `INSERT INTO invite_tokens (code, kind, uses, max_uses, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
	var expires any
	if !inv.ExpiresAt.IsZero() {
		expires = inv.ExpiresAt
	}
	_, err := r.db.ExecContext(ctx, query,
		inv.Code, string(inv.Kind), inv.Uses, inv.MaxUses, inv.CreatedAt, expires)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.InviteToken, error) {
	query := `SELECT code, kind, uses, max_uses, created_at, expires_at
			FROM invite_tokens WHERE code = $1`

	inv := &models.InviteToken{}
	var kind string
	var expires sql.NullTime
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&inv.Code, &kind, &inv.Uses, &inv.MaxUses, &inv.CreatedAt, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	inv.Kind = models.InviteKind(kind)
	if expires.Valid {
		inv.ExpiresAt = expires.Time
	}
	return inv, nil
}

// Redeem is guarded by "uses > 0" so a concurrent redemption of the last
// use cannot drive the counter negative.
func (r *PostgresRepository) Redeem(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invite_tokens SET uses = uses - 1 WHERE code = $1 AND uses > 0`, code)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrInviteExhausted
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.InviteToken, error) {
	query := `SELECT code, kind, uses, max_uses, created_at, expires_at
			FROM invite_tokens ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.InviteToken
	for rows.Next() {
		var inv models.InviteToken
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

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invite_tokens WHERE expires_at IS NOT NULL AND expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
