// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the Streakkeeper CLI.
//
// Fields:
//   - DatabasePath: path of the local SQLite file.
//   - LeaderboardSize: how many users the leaderboard shows.
type Config struct {
	DatabasePath    string
	LeaderboardSize int
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "streak.db"
	c.LeaderboardSize = 8
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
