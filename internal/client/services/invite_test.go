package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/invites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	db := setupDB(t)
	svc := NewInviteService(invites.NewSQLiteRepository(db))
	ctx := context.Background()

	inv, err := svc.Generate(ctx, models.InviteMulti, "TEAM", 5, 7)
	require.NoError(t, err)
	assert.Len(t, inv.Code, len("TEAM")+inviteCodeLength)
	assert.Equal(t, 5, inv.Uses)
	assert.Equal(t, 5, inv.MaxUses)
	assert.False(t, inv.ExpiresAt.IsZero())

	// stored and listable
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inv.Code, list[0].Code)
}

func TestGenerate_SingleForcesOneUse(t *testing.T) {
	db := setupDB(t)
	svc := NewInviteService(invites.NewSQLiteRepository(db))

	inv, err := svc.Generate(context.Background(), models.InviteSingle, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Uses)
	assert.True(t, inv.ExpiresAt.IsZero())
}

func TestPurge(t *testing.T) {
	db := setupDB(t)
	repo := invites.NewSQLiteRepository(db)
	svc := NewInviteService(repo)
	ctx := context.Background()

	seedInvite(t, db, "LIVE11", 1, time.Now().AddDate(0, 0, 7))
	seedInvite(t, db, "DEAD11", 1, time.Now().AddDate(0, 0, -1))
	seedInvite(t, db, "EVER11", 1, time.Time{})

	n, err := svc.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
