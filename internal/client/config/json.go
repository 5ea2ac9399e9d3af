package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/streakkeeper/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading the optional
// JSON configuration file. After unmarshalling, its fields are copied
// into the runtime Config.
type JsonConfig struct {
	DatabasePath    string `json:"database_path"`
	LeaderboardSize int    `json:"leaderboard_size"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags. If no file is given, nothing happens. A file that
// cannot be read or parsed is a startup failure and panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.LeaderboardSize > 0 {
		config.LeaderboardSize = c.LeaderboardSize
	}
}
