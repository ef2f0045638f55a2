package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pattern-island/internal/core"
	"github.com/vovakirdan/pattern-island/internal/game"
)

// screen is the page a session is showing.
type screen int

const (
	screenHome screen = iota
	screenPlay
	screenStats
)

// SessionModel manages the full session flow: map -> level -> map -> stats.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	svc      *game.Service
	config   core.RuntimeConfig
	screen   screen
	home     HomeModel
	play     PlayModel
	stats    StatsModel
	quitting bool
}

// NewSessionModel creates a session. A non-zero cfg.LevelID opens that
// level right away; an unknown id falls back to the map.
func NewSessionModel(svc *game.Service, cfg core.RuntimeConfig) SessionModel {
	if cfg.Profile == "" {
		cfg.Profile = core.DefaultProfile
	}
	m := SessionModel{
		svc:    svc,
		config: cfg,
		home:   NewHomeModel(svc, cfg, cfg.LevelID),
	}
	if cfg.LevelID != 0 {
		if play, err := NewPlayModel(svc, cfg, cfg.LevelID); err == nil {
			m.play = play
			m.screen = screenPlay
		}
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config = m.config.WithSize(wsm.Width, wsm.Height)
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateHome(msg)
	}
}

// updateHome handles updates when the map is showing.
func (m SessionModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	newHome, cmd := m.home.Update(msg)
	if home, ok := newHome.(HomeModel); ok {
		m.home = home
	}

	if m.home.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.home.WantsStats() {
		m.stats = NewStatsModel(m.svc, m.config.Profile, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenStats
		return m, m.stats.Init()
	}

	if id := m.home.Selected(); id != 0 {
		play, err := NewPlayModel(m.svc, m.config, id)
		if err != nil {
			m.home = NewHomeModel(m.svc, m.config, id)
			return m, nil
		}
		m.play = play
		m.screen = screenPlay
		return m, m.play.Init()
	}

	return m, cmd
}

// updatePlay handles updates while a level is open.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPlay, cmd := m.play.Update(msg)
	if play, ok := newPlay.(PlayModel); ok {
		m.play = play
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to the map with fresh stats, focused on the last level played
	if m.play.BackToMenu() {
		m.home = NewHomeModel(m.svc, m.config, m.play.Attempt().Level.ID)
		m.play = PlayModel{}
		m.screen = screenHome
		return m, m.home.Init()
	}

	return m, cmd
}

// updateStats handles updates when the stats screen is showing.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newStats, cmd := m.stats.Update(msg)
	if stats, ok := newStats.(StatsModel); ok {
		m.stats = stats
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.stats.IsGoingBack() {
		m.home = NewHomeModel(m.svc, m.config, m.home.current().ID)
		m.screen = screenHome
		return m, m.home.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.home.View()
	}
}

// IsQuitting returns true once the user quit.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// Run starts the interactive game in the current terminal.
func Run(svc *game.Service, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
