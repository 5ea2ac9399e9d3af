package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AddTask(ctx context.Context) error
	ListTasks(ctx context.Context) error
	MarkDone(ctx context.Context, args []string) error
	RenameTask(ctx context.Context, args []string) error
	DeleteTask(ctx context.Context, args []string) error
	Leaderboard(ctx context.Context) error
	Stats(ctx context.Context) error
	NewInvite(ctx context.Context) error
	ListInvites(ctx context.Context) error
	PurgeInvites(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Streakkeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sk> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, done <id>, rename <id>, delete <id>, board, stats, newinvite, invites, purgeinvites, logout, exit")
			} else {
				printlnFn("Available commands: register, login, board, stats, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "add":
			_ = a.AddTask(ctx)

		case "l", "list":
			_ = a.ListTasks(ctx)

		case "done", "mark":
			_ = a.MarkDone(ctx, args)

		case "rename":
			_ = a.RenameTask(ctx, args)

		case "delete", "del":
			_ = a.DeleteTask(ctx, args)

		case "board", "leaderboard":
			_ = a.Leaderboard(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "newinvite":
			_ = a.NewInvite(ctx)

		case "invites":
			_ = a.ListInvites(ctx)

		case "purgeinvites":
			_ = a.PurgeInvites(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
