package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/pattern-island/internal/progression"
	"github.com/vovakirdan/pattern-island/internal/storage"
)

//go:embed defaults/patternisland.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when no file is found.
func Default() Config {
	return Config{
		Progression: progression.DefaultRules(),
		Hint: HintConfig{
			Endpoint:        "https://generativelanguage.googleapis.com/v1beta",
			Model:           "gemini-2.5-flash",
			Timeout:         4 * time.Second,
			Temperature:     0.3,
			TopP:            0.8,
			MaxOutputTokens: 40,
			WordCap:         12,
			Generic: []string{
				"look at the pattern one more time",
				"what do you see repeating",
				"look for what repeats",
			},
		},
		Storage: StorageConfig{
			Path:       "~/.patternisland/patternisland.db",
			Key:        storage.StatsKey,
			LegacyKeys: []string{storage.LegacyStatsKey},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.patternisland/patternisland.log",
		},
		Server: ServerConfig{
			SSHHost:     "0.0.0.0",
			SSHPort:     2222,
			HostKeyPath: "~/.patternisland/ssh_host_key",
			HTTPAddr:    ":8080",
		},
		Source: "builtin",
	}
}
