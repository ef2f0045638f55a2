package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pattern-island/internal/core"
	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/hint"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
)

// hintMsg carries a resolved hint back into the update loop.
type hintMsg struct {
	attemptID string
	result    hint.Result
	err       error
}

// PlayModel is the Bubble Tea model for solving one level at a time.
// A solved level advances to the next one in the catalog.
type PlayModel struct {
	svc       *game.Service
	config    core.RuntimeConfig
	theme     Theme
	keyMapper *KeyMapper
	help      help.Model

	attempt  game.Attempt
	cursor   int
	wrong    bool // wrong-answer feedback is showing
	wrongSeq int
	thinking bool
	award    *progression.Award
	nextID   int
	errText  string

	quitting   bool
	backToMenu bool
}

// NewPlayModel starts an attempt at levelID for the configured profile.
func NewPlayModel(svc *game.Service, cfg core.RuntimeConfig, levelID int) (PlayModel, error) {
	a, err := svc.Start(cfg.Profile, levelID)
	if err != nil {
		return PlayModel{}, err
	}
	return PlayModel{
		svc:       svc,
		config:    cfg,
		theme:     DefaultTheme(),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		attempt:   a,
	}, nil
}

// Init initializes the puzzle screen.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config = m.config.WithSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case hintMsg:
		if msg.attemptID != m.attempt.ID {
			return m, nil
		}
		m.thinking = false
		if msg.err != nil {
			if !errors.Is(msg.err, game.ErrHintPending) {
				m.errText = msg.err.Error()
			}
			return m, nil
		}
		res := msg.result
		m.attempt.Hint = &res
		m.attempt.UsedHint = true
		return m, nil

	case clearFeedbackMsg:
		if msg.attemptID == m.attempt.ID && msg.seq == m.wrongSeq {
			m.wrong = false
		}
		return m, nil

	case advanceMsg:
		if msg.attemptID != m.attempt.ID || !m.attempt.Solved {
			return m, nil
		}
		return m.advance()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.svc.End(m.attempt.ID)
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		m.svc.End(m.attempt.ID)
		m.backToMenu = true
		return m, nil
	}

	if m.attempt.Solved {
		if action == core.ActionConfirm {
			return m.advance()
		}
		return m, nil
	}

	options := m.attempt.Level.Options
	switch action {
	case core.ActionLeft:
		if m.cursor > 0 {
			m.cursor--
			m.svc.Hover(m.config.Profile, options[m.cursor].ID)
		}
	case core.ActionRight:
		if m.cursor < len(options)-1 {
			m.cursor++
			m.svc.Hover(m.config.Profile, options[m.cursor].ID)
		}
	case core.ActionConfirm:
		return m.choose(m.cursor)
	case core.ActionHint:
		return m.requestHint()
	default:
		if idx, ok := action.PickIndex(); ok && idx < len(options) {
			m.cursor = idx
			return m.choose(idx)
		}
	}
	return m, nil
}

// choose submits the option in slot idx.
func (m PlayModel) choose(idx int) (tea.Model, tea.Cmd) {
	m.svc.Click(m.config.Profile)
	res, err := m.svc.Choose(context.Background(), m.attempt.ID, m.attempt.Level.Options[idx].ID)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}

	hinted := m.attempt.Hint
	m.attempt = res.Attempt
	if m.attempt.Hint == nil {
		m.attempt.Hint = hinted
	}

	switch res.Outcome {
	case game.OutcomeWrong:
		m.wrong = true
		m.wrongSeq++
		return m, after(wrongFeedbackDelay, clearFeedbackMsg{attemptID: m.attempt.ID, seq: m.wrongSeq})
	case game.OutcomeCorrect:
		m.wrong = false
		m.award = res.Award
		m.nextID = res.NextLevelID
		return m, after(advanceDelay, advanceMsg{attemptID: m.attempt.ID})
	}
	return m, nil
}

// requestHint resolves a hint off the update loop. Repeated presses while
// one is pending or after it arrived do nothing.
func (m PlayModel) requestHint() (tea.Model, tea.Cmd) {
	if m.thinking || m.attempt.Hint != nil {
		return m, nil
	}
	m.thinking = true
	m.svc.Click(m.config.Profile)

	svc, id := m.svc, m.attempt.ID
	return m, func() tea.Msg {
		res, err := svc.Hint(context.Background(), id)
		return hintMsg{attemptID: id, result: res, err: err}
	}
}

// advance opens the next level, or returns to the map after the last one.
func (m PlayModel) advance() (tea.Model, tea.Cmd) {
	m.svc.End(m.attempt.ID)
	if m.nextID == 0 {
		m.backToMenu = true
		return m, nil
	}
	next, err := NewPlayModel(m.svc, m.config, m.nextID)
	if err != nil {
		m.backToMenu = true
		return m, nil
	}
	next.help.Width = m.help.Width
	return next, nil
}

// View renders the puzzle screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	l := m.attempt.Level
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(t.Instruction.Render(l.Instruction))
	b.WriteString("\n\n")
	b.WriteString(m.renderHint())
	b.WriteString("\n\n")

	cards := make([]string, 0, len(l.Sequence)+1)
	for _, it := range l.Sequence {
		cards = append(cards, t.RenderItem(it, false))
	}
	var revealed *pattern.Item
	if m.attempt.Solved {
		c := l.CorrectOption()
		revealed = &c
	}
	cards = append(cards, t.RenderPlaceholder(revealed))
	b.WriteString(RenderRow(cards))
	b.WriteString("\n\n")

	b.WriteString(m.renderFeedback())
	b.WriteString("\n\n")
	b.WriteString(m.renderOptions())
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(t.Wrong.Render(m.errText))
		b.WriteString("\n")
	}
	b.WriteString(t.Help.Render(m.help.View(playHelp())))
	return b.String()
}

func (m PlayModel) renderHeader() string {
	t := m.theme
	l := m.attempt.Level
	header := t.Title.Render(l.Category.Title()) + " " +
		t.Label.Render(fmt.Sprintf("%d/%d", l.LevelInGroup, pattern.LevelsPerCategory)) + "  " +
		t.Subtitle.Render(l.Tier.Label())
	if l.IsBoss {
		header += "  " + t.Boss.Render("BOSS LEVEL")
	}
	if m.attempt.Mistakes > 0 {
		header += "  " + t.Muted.Render(fmt.Sprintf("mistakes: %d", m.attempt.Mistakes))
	}
	return header
}

func (m PlayModel) renderHint() string {
	t := m.theme
	switch {
	case m.thinking:
		return t.HintBox.Render(t.Thinking.Render("Thinking..."))
	case m.attempt.Hint != nil:
		return t.HintBox.Render("Hint: " + m.attempt.Hint.Text)
	case m.attempt.Solved:
		return ""
	default:
		return t.Muted.Render("Stuck? Press h for a hint.")
	}
}

func (m PlayModel) renderFeedback() string {
	t := m.theme
	switch {
	case m.attempt.Solved && m.award != nil:
		line := t.Celebration.Render("Great job!") + " " +
			t.Value.Render(fmt.Sprintf("+%d XP", m.award.XPGain))
		if m.award.StarGain > 0 {
			line += " " + t.Value.Render(fmt.Sprintf("+%d ★", m.award.StarGain))
		}
		if m.award.Perfect {
			line += " " + t.Correct.Render("perfect")
		}
		for _, id := range m.award.NewBadges {
			line += " " + t.Badge.Render("New badge: "+progression.LabelFor(id))
		}
		return line
	case m.attempt.Solved:
		return t.Correct.Render("Solved!")
	case m.wrong:
		return t.Wrong.Render("Not quite. Try again!")
	default:
		return " "
	}
}

func (m PlayModel) renderOptions() string {
	t := m.theme
	options := m.attempt.Level.Options
	cols := make([]string, 0, len(options))
	for i, o := range options {
		active := i == m.cursor && !m.attempt.Solved
		card := t.RenderItem(o, active)
		label := t.OptionNumber.Render(fmt.Sprintf("%d", i+1))
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Center, card, label))
	}
	return RenderRow(cols)
}

// Attempt returns the attempt on screen.
func (m PlayModel) Attempt() game.Attempt {
	return m.attempt
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the map.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config (may have been updated by resize).
func (m PlayModel) Config() core.RuntimeConfig {
	return m.config
}
