// Package logging builds the charmbracelet loggers used across Pattern Island.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger writing to w at the named level.
// Unknown levels fall back to info.
func New(w io.Writer, level, prefix string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps debug, info, warn and error to charm levels.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OpenFile creates a logger appending to path. Interactive terminal
// sessions use it so log lines never land on the screen being drawn.
// The returned closer must be closed on exit. When the file cannot be
// opened the logger discards output.
func OpenFile(path, level, prefix string) (*log.Logger, io.Closer) {
	if path == "" {
		return Discard(), io.NopCloser(nil)
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return Discard(), io.NopCloser(nil)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Discard(), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Discard(), io.NopCloser(nil)
	}
	return New(f, level, prefix), f
}
