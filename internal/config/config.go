// Package config provides YAML-based configuration loading for Pattern Island:
// progression constants, hint service settings, storage, audio and logging.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/pattern-island/internal/progression"
)

// Config is the full application configuration.
type Config struct {
	Progression progression.Rules `yaml:"progression"`
	Hint        HintConfig        `yaml:"hint"`
	Storage     StorageConfig     `yaml:"storage"`
	Audio       AudioConfig       `yaml:"audio"`
	Log         LogConfig         `yaml:"log"`
	Server      ServerConfig      `yaml:"server"`

	// Source names where the configuration was read from.
	Source string `yaml:"-"`
}

// HintConfig configures the remote hint service.
type HintConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Model           string        `yaml:"model"`
	APIKey          string        `yaml:"-"` // only from the environment
	Timeout         time.Duration `yaml:"timeout"`
	Temperature     float64       `yaml:"temperature"`
	TopP            float64       `yaml:"top_p"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	WordCap         int           `yaml:"word_cap"`
	Generic         []string      `yaml:"generic_phrases"` // replies matching these fall back locally
}

// StorageConfig configures the statistics database.
type StorageConfig struct {
	Path       string   `yaml:"path"`
	Key        string   `yaml:"key"`
	LegacyKeys []string `yaml:"legacy_keys"`
}

// AudioConfig configures sound effects.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 = mute, 1.0 = full
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // interactive sessions log here instead of the terminal
}

// ServerConfig configures the SSH and HTTP front ends.
type ServerConfig struct {
	SSHHost     string `yaml:"ssh_host"`
	SSHPort     int    `yaml:"ssh_port"`
	HostKeyPath string `yaml:"host_key_path"`
	HTTPAddr    string `yaml:"http_addr"`
}

// HintEnabled reports whether the remote hint service can be used.
func (c Config) HintEnabled() bool {
	return strings.TrimSpace(c.Hint.APIKey) != ""
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if err := c.Progression.Validate(); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("config: storage.key cannot be empty"))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("config: storage.path cannot be empty"))
	}
	if c.Hint.WordCap < 1 {
		errs = append(errs, fmt.Errorf("config: hint.word_cap must be at least 1 (got %d)", c.Hint.WordCap))
	}
	if c.Hint.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("config: hint.timeout must be positive (got %s)", c.Hint.Timeout))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("config: audio.volume must be within [0,1] (got %.2f)", c.Audio.Volume))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log.level %q", c.Log.Level))
	}
	if c.Server.SSHPort < 0 || c.Server.SSHPort > 65535 {
		errs = append(errs, fmt.Errorf("config: server.ssh_port out of range (got %d)", c.Server.SSHPort))
	}

	return errors.Join(errs...)
}
