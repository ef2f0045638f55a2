package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// Stats screen layout constants
const (
	maxRecent      = 100 // Max completions to load
	statsChrome    = 12  // Lines used by header, tabs and help
	minTableHeight = 5
)

// statsView is a table shown on the stats screen.
type statsView int

const (
	viewRecent statsView = iota
	viewCategories
	viewCount
)

func (v statsView) title() string {
	if v == viewCategories {
		return "By Category"
	}
	return "Recent Levels"
}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next table"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev table"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the statistics screen.
type StatsModel struct {
	report    game.Report
	loadErr   error
	view      statsView
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewStatsModel loads the profile report and builds the tables.
func NewStatsModel(svc *game.Service, profile string, width, height int) StatsModel {
	report, err := svc.Report(context.Background(), profile, maxRecent)

	m := StatsModel{
		report:  report,
		loadErr: err,
		keys:    DefaultStatsKeyMap(),
		help:    help.New(),
		theme:   DefaultTheme(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates the table for the current view.
func (m StatsModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.view {
	case viewCategories:
		columns = []table.Column{
			{Title: "Category", Width: 12},
			{Title: "Solved", Width: 8},
			{Title: "Plays", Width: 7},
			{Title: "Perfect", Width: 8},
			{Title: "Best", Width: 8},
		}
		summaries := make(map[pattern.Category]int, len(m.report.Categories))
		for i, s := range m.report.Categories {
			summaries[s.Category] = i
		}
		for _, g := range m.report.Explored.Groups {
			row := table.Row{g.Category.Title(), fmt.Sprintf("%d/%d", g.Completed, g.Total), "0", "0", "-"}
			if i, ok := summaries[g.Category]; ok {
				s := m.report.Categories[i]
				row[2] = fmt.Sprintf("%d", s.Plays)
				row[3] = fmt.Sprintf("%d", s.Perfect)
				row[4] = formatMs(s.BestSolveMs)
			}
			rows = append(rows, row)
		}

	default:
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Category", Width: 12},
			{Title: "Time", Width: 8},
			{Title: "Miss", Width: 5},
			{Title: "Hint", Width: 5},
			{Title: "XP", Width: 5},
			{Title: "Date", Width: 14},
		}
		for _, c := range m.report.Recent {
			usedHint := "-"
			if c.UsedHint {
				usedHint = "yes"
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", c.LevelID),
				c.Category.Title(),
				formatMs(c.SolveMs),
				fmt.Sprintf("%d", c.Mistakes),
				usedHint,
				fmt.Sprintf("+%d", c.XPGain),
				c.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-statsChrome, minTableHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// formatMs renders a duration in milliseconds as seconds.
func formatMs(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % viewCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + viewCount - 1) % viewCount
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	t := m.theme
	r := m.report
	var b strings.Builder

	title := fmt.Sprintf("STATS - %s", r.Profile)
	b.WriteString(t.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%s  ★ %d  XP %d  explored %d%%  best streak x%d  bosses %d  perfect %d",
		r.Rank.Current.Title, r.Stats.Stars, r.Stats.XP, r.Explored.Percent,
		r.Stats.BestStreak, r.Stats.BossesCompleted, r.Stats.PerfectCompletions)
	b.WriteString(t.Value.Render(summary))
	b.WriteString("\n")
	if r.Stats.FastestSolveMs != nil {
		b.WriteString(t.Label.Render("fastest solve " + formatMs(*r.Stats.FastestSolveMs)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	tabs := make([]string, 0, viewCount)
	for v := range viewCount {
		if v == m.view {
			tabs = append(tabs, t.CellCursor.Render(v.title()))
		} else {
			tabs = append(tabs, t.Cell.Render(v.title()))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	b.WriteString(t.Panel.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(t.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return empty.Render("Could not load history:\n" + m.loadErr.Error())
	case m.view == viewRecent && len(m.report.Recent) == 0:
		return empty.Render("No levels solved yet.\nPick a level on the island map!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the map.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}
