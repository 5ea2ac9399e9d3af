package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/streakkeeper/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   local database path
//	-n int      leaderboard size
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "local database path")
	fs.IntVar(&config.LeaderboardSize, "n", config.LeaderboardSize, "leaderboard size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
