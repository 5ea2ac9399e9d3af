package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/client/models"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/tasks"
	"github.com/dmitrijs2005/streakkeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
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

// Stats summarizes every task in the local database, across all
// accounts. Used by the maintenance view.
type Stats struct {
	Tasks         int
	ActiveStreaks int
	BestStreak    int
}

// TaskService defines habit operations for the CLI.
type TaskService interface {
	Add(ctx context.Context, s *Session, name string) (*models.Task, error)
	List(ctx context.Context, s *Session) ([]models.Task, error)
	MarkDone(ctx context.Context, s *Session, taskID string, now time.Time) (*DoneResult, error)
	Rename(ctx context.Context, s *Session, taskID, name string) error
	Delete(ctx context.Context, s *Session, taskID string) error
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Stats(ctx context.Context) (*Stats, error)
}

type taskService struct {
	db    *sql.DB
	tasks tasks.Repository
	users users.Repository
}

// NewTaskService constructs a TaskService backed by the local database.
func NewTaskService(db *sql.DB, t tasks.Repository, u users.Repository) TaskService {
	return &taskService{db: db, tasks: t, users: u}
}

func (s *taskService) Add(ctx context.Context, sess *Session, name string) (*models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	task := &models.Task{
		Owner:     sess.Username,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, sess *Session) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, sess.Username)
}

// MarkDone records today's completion of a task. The streak transition
// and the XP award are decided by the engine; the task-progress write
// and the user XP write then run in a single transaction so a crash
// cannot leave streak and XP out of step.
func (s *taskService) MarkDone(ctx context.Context, sess *Session, taskID string, now time.Time) (*DoneResult, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Owner != sess.Username {
		return nil, common.ErrorNotFound
	}

	today := streak.DayOf(now)
	newStreak, outcome := streak.Advance(task.Streak, task.LastDone, today)

	if outcome == streak.OutcomeAlreadyDone {
		user, err := s.users.GetByUsername(ctx, sess.Username)
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
		if err := tasks.NewSQLiteRepository(tx).UpdateProgress(ctx, task); err != nil {
			return err
		}
		total, err := users.NewSQLiteRepository(tx).AddXP(ctx, sess.Username, gained)
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

func (s *taskService) Rename(ctx context.Context, sess *Session, taskID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrorValidation
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Owner != sess.Username {
		return common.ErrorNotFound
	}
	return s.tasks.Rename(ctx, taskID, name)
}

func (s *taskService) Delete(ctx context.Context, sess *Session, taskID string) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// deleting a missing task is a no-op
			return nil
		}
		return err
	}
	if task.Owner != sess.Username {
		return common.ErrorNotFound
	}
	return s.tasks.DeleteByID(ctx, taskID)
}

func (s *taskService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
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

func (s *taskService) Stats(ctx context.Context) (*Stats, error) {
	list, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{Tasks: len(list)}
	for _, t := range list {
		if t.Streak > 0 {
			st.ActiveStreaks++
		}
		if t.LongestStreak > st.BestStreak {
			st.BestStreak = t.LongestStreak
		}
	}
	return st, nil
}
