package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/streak"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireSession() bool {
	if a.session == nil {
		printlnFn("Please login first")
		return false
	}
	return true
}

func (a *App) AddTask(ctx context.Context) error {
	if !a.requireSession() {
		return errNotLoggedIn
	}

	name, err := GetSimpleText(a.reader, "Task name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	task, err := a.taskService.Add(ctx, a.session, name)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			printlnFn("Task name must not be empty")
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("Added %q (id %s)", task.Name, task.ID))
	return nil
}

func (a *App) ListTasks(ctx context.Context) error {
	if !a.requireSession() {
		return errNotLoggedIn
	}

	tasks, err := a.taskService.List(ctx, a.session)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(tasks) == 0 {
		printlnFn("No tasks yet, use 'add' to create one")
		return nil
	}

	for _, t := range tasks {
		last := "never"
		if !t.LastDone.IsZero() {
			last = string(t.LastDone)
		}
		printlnFn(fmt.Sprintf("%s  %-20s streak %d (best %d), last done %s", t.ID, t.Name, t.Streak, t.LongestStreak, last))
	}
	return nil
}

func (a *App) MarkDone(ctx context.Context, args []string) error {
	if !a.requireSession() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		printlnFn("Usage: done <task id>")
		return nil
	}

	res, err := a.taskService.MarkDone(ctx, a.session, args[0], time.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("No such task")
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	switch res.Outcome {
	case streak.OutcomeAlreadyDone:
		printlnFn("Already done today")
	case streak.OutcomeExtended:
		printlnFn(fmt.Sprintf("Streak extended to %d days! +%d XP (total %d)", res.NewStreak, res.XPGained, res.XPTotal))
	case streak.OutcomeRestarted:
		printlnFn(fmt.Sprintf("Streak restarted. +%d XP (total %d)", res.XPGained, res.XPTotal))
	}

	if res.LeveledUp {
		printlnFn(fmt.Sprintf("Level up! You are now level %d", res.Level))
	}
	return nil
}

func (a *App) RenameTask(ctx context.Context, args []string) error {
	if !a.requireSession() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		printlnFn("Usage: rename <task id>")
		return nil
	}

	name, err := GetSimpleText(a.reader, "New name", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.taskService.Rename(ctx, a.session, args[0], name); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			printlnFn("Task name must not be empty")
		case errors.Is(err, common.ErrorNotFound):
			printlnFn("No such task")
		default:
			log.Printf("error: %v", err)
		}
		return err
	}
	printlnFn("Renamed")
	return nil
}

// Stats prints a maintenance summary of the whole local database,
// including other accounts' tasks.
func (a *App) Stats(ctx context.Context) error {
	st, err := a.taskService.Stats(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn(fmt.Sprintf("%d task(s), %d active streak(s), best streak %d days", st.Tasks, st.ActiveStreaks, st.BestStreak))
	return nil
}

func (a *App) DeleteTask(ctx context.Context, args []string) error {
	if !a.requireSession() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		printlnFn("Usage: delete <task id>")
		return nil
	}

	if err := a.taskService.Delete(ctx, a.session, args[0]); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	printlnFn("Deleted")
	return nil
}
