package invites

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE invite_tokens (
  code TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  uses INTEGER NOT NULL,
  max_uses INTEGER NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  expires_at TIMESTAMP
);
`)
	require.NoError(t, err)

	return db
}

func newInvite(code string, uses int) *models.Invite {
	return &models.Invite{
		Code:      code,
		Kind:      models.InviteMulti,
		Uses:      uses,
		MaxUses:   uses,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPut_AndGetByCode(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	inv := newInvite("AB12CD", 3)
	require.NoError(t, r.Put(ctx, inv))

	got, err := r.GetByCode(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, models.InviteMulti, got.Kind)
	assert.Equal(t, 3, got.Uses)
	assert.True(t, got.ExpiresAt.IsZero(), "no expiry stored means zero time")
}

func TestPut_DuplicateCode(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, newInvite("AB12CD", 1)))
	assert.ErrorIs(t, r.Put(ctx, newInvite("AB12CD", 1)), common.ErrorAlreadyExists)
}

func TestGetByCode_Missing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRedeem_DecrementsAndExhausts(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, newInvite("AB12CD", 2)))

	require.NoError(t, r.Redeem(ctx, "AB12CD"))
	require.NoError(t, r.Redeem(ctx, "AB12CD"))
	assert.ErrorIs(t, r.Redeem(ctx, "AB12CD"), common.ErrInviteExhausted)

	got, err := r.GetByCode(ctx, "AB12CD")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Uses)
}

func TestDeleteExpired(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	expired := newInvite("OLD111", 1)
	expired.ExpiresAt = now.AddDate(0, 0, -1)
	fresh := newInvite("NEW222", 1)
	fresh.ExpiresAt = now.AddDate(0, 0, 1)
	forever := newInvite("EVER33", 1)

	for _, inv := range []*models.Invite{expired, fresh, forever} {
		require.NoError(t, r.Put(ctx, inv))
	}

	n, err := r.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
