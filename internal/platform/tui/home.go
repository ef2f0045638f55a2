package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pattern-island/internal/core"
	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
)

// Island map layout constants
const (
	categoryLabelWidth = 12 // Width of the category column
	rankBarWidth       = 24 // Cells in the rank progress bar
)

// HomeModel is the Bubble Tea model for the island map: profile summary,
// daily quests, badges and one row of level cells per category.
type HomeModel struct {
	svc       *game.Service
	config    core.RuntimeConfig
	theme     Theme
	keyMapper *KeyMapper
	help      help.Model

	stats  progression.UserStats
	rank   progression.RankProgress
	quests []progression.Quest
	rows   [][]pattern.Level // one row per category, in display order

	row, col   int
	selected   int // level id picked with Enter, 0 while browsing
	wantsStats bool
	quitting   bool
}

// NewHomeModel creates the island map with the cursor on focusID, or on the
// first level when focusID is not in the catalog.
func NewHomeModel(svc *game.Service, cfg core.RuntimeConfig, focusID int) HomeModel {
	stats := svc.Stats(context.Background(), cfg.Profile)
	rules := svc.Rules()

	m := HomeModel{
		svc:       svc,
		config:    cfg,
		theme:     DefaultTheme(),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		stats:     stats,
		rank:      rules.RankFor(stats.XP),
		quests:    rules.DailyQuests(stats),
	}
	for _, cat := range pattern.Categories() {
		if levels := svc.Catalog().ByCategory(cat); len(levels) > 0 {
			m.rows = append(m.rows, levels)
		}
	}
	m.focus(focusID)
	return m
}

func (m *HomeModel) focus(levelID int) {
	for r, levels := range m.rows {
		for c, l := range levels {
			if l.ID == levelID {
				m.row, m.col = r, c
				return
			}
		}
	}
}

// Init initializes the island map.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the island map.
func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config = m.config.WithSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for map navigation.
func (m HomeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if len(m.rows) == 0 {
		return m, nil
	}

	switch action {
	case core.ActionUp:
		if m.row > 0 {
			m.row--
		}
	case core.ActionDown:
		if m.row < len(m.rows)-1 {
			m.row++
		}
	case core.ActionLeft:
		if m.col > 0 {
			m.col--
		}
	case core.ActionRight:
		m.col++
	case core.ActionConfirm:
		m.selected = m.current().ID
	case core.ActionStats:
		m.wantsStats = true
	}
	m.col = min(m.col, len(m.rows[m.row])-1)

	return m, nil
}

func (m HomeModel) current() pattern.Level {
	return m.rows[m.row][m.col]
}

// View renders the island map.
func (m HomeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	t := m.theme

	b.WriteString("\n")
	b.WriteString(centerText(t.Title.Render("P A T T E R N   I S L A N D"), m.config.ScreenW))
	b.WriteString("\n\n")

	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	b.WriteString(m.renderRank())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		t.Panel.Render(m.renderQuests()),
		" ",
		t.Panel.Render(m.renderBadges()),
	))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n\n")

	b.WriteString(t.Help.Render(m.help.View(homeHelp())))
	return b.String()
}

func (m HomeModel) renderSummary() string {
	t := m.theme
	solved := len(m.stats.CompletedLevels)
	total := m.svc.Catalog().Len()
	parts := []string{
		t.Label.Render("Stars ") + t.Value.Render(fmt.Sprintf("★ %d", m.stats.Stars)),
		t.Label.Render("XP ") + t.Value.Render(fmt.Sprintf("%d", m.stats.XP)),
		t.Label.Render("Solved ") + t.Value.Render(fmt.Sprintf("%d/%d", solved, total)),
		t.Label.Render("Streak ") + t.Value.Render(fmt.Sprintf("x%d", m.stats.Streak)),
	}
	return strings.Join(parts, t.Muted.Render("  |  "))
}

func (m HomeModel) renderRank() string {
	t := m.theme
	line := t.Subtitle.Render(m.rank.Current.Title) + " " +
		t.progressBar(m.rank.Percent, rankBarWidth) + " " +
		t.Value.Render(fmt.Sprintf("%d%%", m.rank.Percent))
	if m.rank.Next != nil {
		line += t.Muted.Render(fmt.Sprintf("  %d XP to %s", m.rank.ToNext, m.rank.Next.Title))
	}
	return line
}

func (m HomeModel) renderQuests() string {
	t := m.theme
	lines := []string{t.Subtitle.Render("Daily Quests")}
	for _, q := range m.quests {
		mark := t.Muted.Render("[ ]")
		if q.Done {
			mark = t.QuestDone.Render("[✓]")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, q.Label, t.Label.Render(fmt.Sprintf("%d/%d", q.Progress, q.Goal))))
	}
	return strings.Join(lines, "\n")
}

func (m HomeModel) renderBadges() string {
	t := m.theme
	lines := []string{t.Subtitle.Render("Badges")}
	if len(m.stats.Badges) == 0 {
		lines = append(lines, t.Muted.Render("No badges yet"))
	}
	for _, id := range m.stats.Badges {
		lines = append(lines, t.Badge.Render(progression.LabelFor(id)))
	}
	return strings.Join(lines, "\n")
}

func (m HomeModel) renderGrid() string {
	t := m.theme
	var b strings.Builder
	for r, levels := range m.rows {
		label := levels[0].Category.Title()
		b.WriteString(t.Label.Render(fmt.Sprintf("%-*s", categoryLabelWidth, label)))
		for c, l := range levels {
			b.WriteString(m.renderCell(l, r == m.row && c == m.col))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCell draws one level: a check when done, B for a boss, otherwise
// its position in the category.
func (m HomeModel) renderCell(l pattern.Level, active bool) string {
	t := m.theme
	text := fmt.Sprintf("%2d", l.LevelInGroup)
	style := t.Cell
	switch {
	case m.stats.HasCompleted(l.ID):
		text = " ✓"
		style = t.CellDone
	case l.IsBoss:
		text = " B"
		style = t.CellBoss
	}
	if active {
		style = t.CellCursor
	}
	return style.Render(text)
}

func (m HomeModel) renderDetail() string {
	if len(m.rows) == 0 {
		return m.theme.Muted.Render("No levels available.")
	}
	t := m.theme
	l := m.current()
	line := fmt.Sprintf("Level %d  %s %d/%d  %s (%s)", l.ID, l.Category.Title(), l.LevelInGroup,
		pattern.LevelsPerCategory, l.Tier.Label(), l.Tier)
	out := t.Value.Render(line)
	if l.IsBoss {
		out += " " + t.Boss.Render("BOSS")
	}
	if m.stats.HasCompleted(l.ID) {
		out += " " + t.QuestDone.Render("done")
	}
	return out
}

// Selected returns the level id picked with Enter, or 0.
func (m HomeModel) Selected() int {
	return m.selected
}

// WantsStats returns true if the user asked for the statistics screen.
func (m HomeModel) WantsStats() bool {
	return m.wantsStats
}

// IsQuitting returns true if user requested to quit.
func (m HomeModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m HomeModel) Config() core.RuntimeConfig {
	return m.config
}
