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
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/streakkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
)

// DoneResult describes what a mark-done event did.
type DoneResult struct {
	Outcome   streak.Outcome
	NewStreak int
	XPGained  int
	XPTotal   int
	Level     int
	LeveledUp bool
}

// LeaderboardEntry is one row of the XP ranking.
type LeaderboardEntry struct {
	Username string
	XP       int
	Level    int
}

// TaskService provides habit operations scoped to an authenticated user.
type TaskService struct {
	db    *sql.DB
	tasks tasks.Repository
	users users.Repository
}

// NewTaskService constructs a TaskService backed by the server database.
func NewTaskService(db *sql.DB, t tasks.Repository, u users.Repository) *TaskService {
	return &TaskService{db: db, tasks: t, users: u}
}

func (s *TaskService) Add(ctx context.Context, owner, name string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		Owner:     owner,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, owner string) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, owner)
}

// MarkDone records today's completion of a task. The streak transition
// and the XP award are decided by the engine; the task-progress write
// and the user XP write then run in a single transaction so a crash
// cannot leave streak and XP out of step.
func (s *TaskService) MarkDone(ctx context.Context, owner, taskID string, now time.Time) (*DoneResult, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Owner != owner {
		return nil, common.ErrorNotFound
	}

	today := streak.DayOf(now)
	newStreak, outcome := streak.Advance(task.Streak, task.LastDone, today)

	if outcome == streak.OutcomeAlreadyDone {
		user, err := s.users.GetByUsername(ctx, owner)
		if err != nil {
			return nil, err
		}
		return &DoneResult{
			Outcome:   outcome,
			NewStreak: task.Streak,
			XPTotal:   user.XP,
			Level:     streak.Level(user.XP),
		}, nil
	}

	gained := streak.Award(outcome, newStreak)

	task.Streak = newStreak
	task.LastDone = today
	if newStreak > task.LongestStreak {
		task.LongestStreak = newStreak
	}

	var xpTotal int
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tasks.NewPostgresRepository(tx).UpdateProgress(ctx, task); err != nil {
			return err
		}
		total, err := users.NewPostgresRepository(tx).AddXP(ctx, owner, gained)
		if err != nil {
			return err
		}
		xpTotal = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &DoneResult{
		Outcome:   outcome,
		NewStreak: newStreak,
		XPGained:  gained,
		XPTotal:   xpTotal,
		Level:     streak.Level(xpTotal),
		LeveledUp: streak.LeveledUp(xpTotal, gained),
	}, nil
}

func (s *TaskService) Delete(ctx context.Context, owner, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// deleting a missing task is a no-op
			return nil
		}
		return err
	}
	if task.Owner != owner {
		return common.ErrorNotFound
	}
	return s.tasks.DeleteByID(ctx, taskID)
}
