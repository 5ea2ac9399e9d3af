package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*password_hash,\s*xp,\s*avatar,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`

	now := time.Now()
	mock.ExpectExec(q).
		WithArgs("alice", []byte("hash"), 0, "", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{Username: "alice", PasswordHash: []byte("hash"), CreatedAt: now}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`INSERT\s+INTO\s+users`).
		WithArgs("alice", []byte("hash"), 0, "", now).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: []byte("hash"), CreatedAt: now})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+username,\s*password_hash,\s*xp,\s*avatar,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"username", "password_hash", "xp", "avatar", "created_at"}).
		AddRow("alice", []byte("hash"), 120, "", time.Now())
	mock.ExpectQuery(q).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.Username != "alice" || got.XP != 120 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+username`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestAddXP(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+xp\s*=\s*xp\s*\+\s*\$1\s+WHERE\s+username\s*=\s*\$2\s+RETURNING\s+xp\s*$`

	rows := sqlmock.NewRows([]string{"xp"}).AddRow(58)
	mock.ExpectQuery(q).WithArgs(18, "alice").WillReturnRows(rows)

	total, err := repo.AddXP(context.Background(), "alice", 18)
	if err != nil {
		t.Fatalf("AddXP error: %v", err)
	}
	if total != 58 {
		t.Fatalf("unexpected total: %d", total)
	}
}

func TestAddXP_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+users\s+SET\s+xp`).
		WithArgs(10, "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.AddXP(context.Background(), "ghost", 10)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSetAvatar(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+avatar\s*=\s*\$1\s+WHERE\s+username\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs("users/2025/3/10/key", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.SetAvatar(context.Background(), "alice", "users/2025/3/10/key"); err != nil {
		t.Fatalf("SetAvatar error: %v", err)
	}

	mock.ExpectExec(q).WithArgs("k", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetAvatar(context.Background(), "ghost", "k"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByXP(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+username,\s*password_hash,\s*xp,\s*avatar,\s*created_at\s+FROM\s+users\s+ORDER\s+BY\s+xp\s+DESC,\s*username\s+ASC\s+LIMIT\s+\$1\s*$`

	rows := sqlmock.NewRows([]string{"username", "password_hash", "xp", "avatar", "created_at"}).
		AddRow("carol", []byte("h"), 130, "", time.Now()).
		AddRow("alice", []byte("h"), 120, "", time.Now())
	mock.ExpectQuery(q).WithArgs(8).WillReturnRows(rows)

	list, err := repo.ListByXP(context.Background(), 8)
	if err != nil {
		t.Fatalf("ListByXP error: %v", err)
	}
	if len(list) != 2 || list[0].Username != "carol" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
