package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Load loads the configuration and applies environment overrides.
// Search order: customPath -> ~/.patternisland/config.yaml ->
// ./configs/patternisland.yaml -> embedded default -> Default().
// Files are decoded over Default(), so a partial file keeps the rest.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return finish(cfg)
	}

	candidates := []string{userConfigPath(fileName), filepath.Join("configs", "patternisland.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed := Default()
		if err := yaml.Unmarshal(data, &parsed); err == nil {
			parsed.Source = path
			return finish(parsed)
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return finish(Default()) // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv loads a .env file when present and applies environment overrides:
// GEMINI_API_KEY (or API_KEY), PATTERN_ISLAND_DB, PATTERN_ISLAND_LOG_LEVEL,
// PATTERN_ISLAND_AUDIO and PATTERN_ISLAND_HTTP_ADDR.
func ApplyEnv(cfg *Config) {
	// Ignore error so the game still starts when .env is absent.
	_ = godotenv.Load()

	if v := firstEnv("GEMINI_API_KEY", "API_KEY"); v != "" {
		cfg.Hint.APIKey = v
	}
	if v := os.Getenv("PATTERN_ISLAND_DB"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("PATTERN_ISLAND_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PATTERN_ISLAND_AUDIO"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = on
		}
	}
	if v := os.Getenv("PATTERN_ISLAND_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// userConfigPath returns the path in the user's config directory.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// HomeDir returns ~/.patternisland, or "" when the home directory is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".patternisland")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
