package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "API_KEY", "PATTERN_ISLAND_DB", "PATTERN_ISLAND_LOG_LEVEL", "PATTERN_ISLAND_AUDIO", "PATTERN_ISLAND_HTTP_ADDR"} {
		t.Setenv(k, "")
	}
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg := Config{}
	require.NoError(t, yaml.Unmarshal(defaultYAML, &cfg))

	def := Default()
	assert.Equal(t, def.Progression, cfg.Progression)
	assert.Equal(t, def.Hint.Model, cfg.Hint.Model)
	assert.Equal(t, def.Hint.Timeout, cfg.Hint.Timeout)
	assert.Equal(t, def.Hint.Generic, cfg.Hint.Generic)
	assert.Equal(t, def.Storage, cfg.Storage)
	assert.Equal(t, def.Server, cfg.Server)
}

func TestLoadCustomPartialFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("progression:\n  stars:\n    boss_bonus: 30\nhint:\n  timeout: 2s\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Progression.Stars.BossBonus)
	assert.Equal(t, 50, cfg.Progression.Stars.NewLevel, "unset keys keep defaults")
	assert.Equal(t, 2*time.Second, cfg.Hint.Timeout)
	assert.Equal(t, 12, cfg.Hint.WordCap)
	assert.Equal(t, path, cfg.Source)
}

func TestLoadCustomMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCustomInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("progression: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "neg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("progression:\n  xp:\n    boss: -5\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xp.boss")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "secret")
	t.Setenv("PATTERN_ISLAND_DB", "/tmp/pi.db")
	t.Setenv("PATTERN_ISLAND_LOG_LEVEL", "DEBUG")
	t.Setenv("PATTERN_ISLAND_AUDIO", "false")

	cfg := Default()
	ApplyEnv(&cfg)

	assert.True(t, cfg.HintEnabled())
	assert.Equal(t, "secret", cfg.Hint.APIKey)
	assert.Equal(t, "/tmp/pi.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Audio.Enabled)
}

func TestGeminiKeyWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini")
	t.Setenv("API_KEY", "generic")
	cfg := Default()
	ApplyEnv(&cfg)
	assert.Equal(t, "gemini", cfg.Hint.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty key", func(c *Config) { c.Storage.Key = " " }, "storage.key"},
		{"empty path", func(c *Config) { c.Storage.Path = "" }, "storage.path"},
		{"zero word cap", func(c *Config) { c.Hint.WordCap = 0 }, "word_cap"},
		{"zero timeout", func(c *Config) { c.Hint.Timeout = 0 }, "hint.timeout"},
		{"loud", func(c *Config) { c.Audio.Volume = 1.5 }, "audio.volume"},
		{"log level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
		{"ssh port", func(c *Config) { c.Server.SSHPort = 70000 }, "ssh_port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path.db", got)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/x.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.db"), got)
}
