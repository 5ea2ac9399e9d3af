package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
)

type fakeTasksRepo struct {
	created *models.Task

	getOut *models.Task
	getErr error

	listOut []models.Task

	updateErr error

	deletedID string
	deleteErr error
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (string, error) {
	f.created = task
	task.ID = "t-new"
	return task.ID, nil
}
func (f *fakeTasksRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTasksRepo) ListByOwner(ctx context.Context, owner string) ([]models.Task, error) {
	return f.listOut, nil
}
func (f *fakeTasksRepo) UpdateProgress(ctx context.Context, task *models.Task) error {
	return f.updateErr
}
func (f *fakeTasksRepo) DeleteByID(ctx context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}

func TestAdd(t *testing.T) {
	repo := &fakeTasksRepo{}
	svc := NewTaskService(nil, repo, &fakeUsersRepo{})
	ctx := context.Background()

	task, err := svc.Add(ctx, "alice", "  run  ")
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if task.Name != "run" || task.Owner != "alice" || task.ID != "t-new" {
		t.Fatalf("unexpected task: %+v", task)
	}

	if _, err := svc.Add(ctx, "alice", "   "); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestMarkDone_Extends(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := streak.DayOf(now.AddDate(0, 0, -1))

	task := &models.Task{ID: "t-1", Owner: "alice", Name: "run", Streak: 3, LongestStreak: 3, LastDone: yesterday}
	svc := NewTaskService(db, &fakeTasksRepo{getOut: task}, &fakeUsersRepo{})

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE\s+tasks\s+SET\s+streak`).
		WithArgs(4, 4, "2025-03-10", "t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	rows := sqlmock.NewRows([]string{"xp"}).AddRow(58)
	mock.ExpectQuery(`UPDATE\s+users\s+SET\s+xp`).
		WithArgs(18, "alice").
		WillReturnRows(rows)
	mock.ExpectCommit()

	res, err := svc.MarkDone(context.Background(), "alice", "t-1", now)
	if err != nil {
		t.Fatalf("MarkDone error: %v", err)
	}
	if res.Outcome != streak.OutcomeExtended || res.NewStreak != 4 || res.XPGained != 18 || res.XPTotal != 58 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkDone_SameDayIsNoop(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	today := streak.DayOf(now)

	task := &models.Task{ID: "t-1", Owner: "alice", Streak: 4, LastDone: today}
	user := &models.User{Username: "alice", XP: 58}
	svc := NewTaskService(nil, &fakeTasksRepo{getOut: task}, &fakeUsersRepo{getOut: user})

	res, err := svc.MarkDone(context.Background(), "alice", "t-1", now)
	if err != nil {
		t.Fatalf("MarkDone error: %v", err)
	}
	if res.Outcome != streak.OutcomeAlreadyDone || res.XPGained != 0 || res.XPTotal != 58 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMarkDone_OtherUsersTask(t *testing.T) {
	task := &models.Task{ID: "t-1", Owner: "alice"}
	svc := NewTaskService(nil, &fakeTasksRepo{getOut: task}, &fakeUsersRepo{})

	if _, err := svc.MarkDone(context.Background(), "bob", "t-1", time.Now()); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	// foreign task looks like a missing one
	repo := &fakeTasksRepo{getOut: &models.Task{ID: "t-1", Owner: "alice"}}
	svc := NewTaskService(nil, repo, &fakeUsersRepo{})
	if err := svc.Delete(ctx, "bob", "t-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if repo.deletedID != "" {
		t.Fatalf("delete should not have reached the repository")
	}

	// owner deletes
	if err := svc.Delete(ctx, "alice", "t-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if repo.deletedID != "t-1" {
		t.Fatalf("expected repository delete, got %q", repo.deletedID)
	}

	// missing task is a no-op
	repo = &fakeTasksRepo{getErr: common.ErrorNotFound}
	svc = NewTaskService(nil, repo, &fakeUsersRepo{})
	if err := svc.Delete(ctx, "alice", "gone"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestGenerate(t *testing.T) {
	repo := &fakeInvitesRepo{}
	svc := NewInviteService(repo)
	ctx := context.Background()

	inv, err := svc.Generate(ctx, models.InviteMulti, "TEAM", 5, 7)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(inv.Code) != len("TEAM")+inviteCodeLength || inv.Uses != 5 || inv.ExpiresAt.IsZero() {
		t.Fatalf("unexpected invite: %+v", inv)
	}
	if repo.put == nil {
		t.Fatalf("invite was not stored")
	}

	// single kind forces one use
	inv, err = svc.Generate(ctx, models.InviteSingle, "", 10, 0)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if inv.Uses != 1 || !inv.ExpiresAt.IsZero() {
		t.Fatalf("unexpected invite: %+v", inv)
	}
}
