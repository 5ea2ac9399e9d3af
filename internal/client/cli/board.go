package cli

import (
	"context"
	"fmt"
	"log"
)

// Leaderboard prints the top users by XP. It works logged out too; the
// board is public.
func (a *App) Leaderboard(ctx context.Context) error {
	board, err := a.taskService.Leaderboard(ctx, a.config.LeaderboardSize)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(board) == 0 {
		printlnFn("Nobody on the board yet")
		return nil
	}

	for i, e := range board {
		printlnFn(fmt.Sprintf("%2d. %-20s XP %-6d level %d", i+1, e.Username, e.XP, e.Level))
	}
	return nil
}
