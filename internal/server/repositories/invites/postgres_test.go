package invites

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestPut(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+invite_tokens\s*\(code,\s*kind,\s*uses,\s*max_uses,\s*created_at,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`

	now := time.Now()
	mock.ExpectExec(q).
		WithArgs("AB12CD", "multi", 5, 5, now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inv := &models.InviteToken{Code: "AB12CD", Kind: models.InviteMulti, Uses: 5, MaxUses: 5, CreatedAt: now}
	if err := repo.Put(context.Background(), inv); err != nil {
		t.Fatalf("Put error: %v", err)
	}
}

func TestGetByCode(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+code,\s*kind,\s*uses,\s*max_uses,\s*created_at,\s*expires_at\s+FROM\s+invite_tokens\s+WHERE\s+code\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"code", "kind", "uses", "max_uses", "created_at", "expires_at"}).
		AddRow("AB12CD", "single", 1, 1, time.Now(), nil)
	mock.ExpectQuery(q).WithArgs("AB12CD").WillReturnRows(rows)

	got, err := repo.GetByCode(context.Background(), "AB12CD")
	if err != nil {
		t.Fatalf("GetByCode error: %v", err)
	}
	if got.Kind != models.InviteSingle || !got.ExpiresAt.IsZero() {
		t.Fatalf("unexpected invite: %+v", got)
	}

	mock.ExpectQuery(q).WithArgs("MISSING").WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetByCode(context.Background(), "MISSING"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestRedeem(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+invite_tokens\s+SET\s+uses\s*=\s*uses\s*-\s*1\s+WHERE\s+code\s*=\s*\$1\s+AND\s+uses\s*>\s*0\s*$`

	mock.ExpectExec(q).WithArgs("AB12CD").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.Redeem(context.Background(), "AB12CD"); err != nil {
		t.Fatalf("Redeem error: %v", err)
	}

	mock.ExpectExec(q).WithArgs("AB12CD").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Redeem(context.Background(), "AB12CD"); !errors.Is(err, common.ErrInviteExhausted) {
		t.Fatalf("want common.ErrInviteExhausted, got %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+invite_tokens\s+WHERE\s+expires_at\s+IS\s+NOT\s+NULL\s+AND\s+expires_at\s*<\s*\$1\s*$`

	now := time.Now()
	mock.ExpectExec(q).WithArgs(now).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}
	if n != 3 {
		t.Fatalf("unexpected count: %d", n)
	}
}
