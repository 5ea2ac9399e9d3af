// Package cli provides the interactive Streakkeeper command-line client.
//
// It wires configuration, the local store and the application services
// into an interactive REPL. Typical flow: validate an invite code or log
// in, then manage habits and watch the leaderboard.
//
// Key features:
//   - Register (invite-gated) / Login / Logout
//   - Add, list and delete habit tasks
//   - Mark a task done for today (streak and XP bookkeeping)
//   - Leaderboard of users by XP
//   - Generate and list invite codes
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
