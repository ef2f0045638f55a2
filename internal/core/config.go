// Package core holds the front-end neutral vocabulary shared by the terminal
// screens: the runtime configuration and the semantic input actions.
package core

// RuntimeConfig is passed to a terminal session when it starts.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Profile string // Player profile the session reads and writes
	LevelID int    // Level to open on start; 0 shows the island map
}

// DefaultProfile is used when no profile was given.
const DefaultProfile = "player"

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Profile: DefaultProfile,
	}
}

// WithSize returns a copy sized to a terminal. Non-positive sizes keep the
// previous values.
func (c RuntimeConfig) WithSize(w, h int) RuntimeConfig {
	if w > 0 {
		c.ScreenW = w
	}
	if h > 0 {
		c.ScreenH = h
	}
	return c
}
