package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pattern-island/internal/catalog"
	"github.com/vovakirdan/pattern-island/internal/core"
	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestService(t *testing.T) *game.Service {
	t.Helper()
	svc, err := game.NewService(game.Options{
		Catalog: catalog.MustBuild(catalog.NewRand(3)),
		Engine:  progression.NewEngine(progression.DefaultRules(), nil),
	})
	require.NoError(t, err)
	return svc
}

func send(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok, "Update returned %T", next)
	return sm, cmd
}

func optionSlot(l pattern.Level, correct bool) int {
	for i, o := range l.Options {
		if (o.ID == l.CorrectAnswerID) == correct {
			return i
		}
	}
	return -1
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionStats, false},
		{runes("h"), core.ActionHint, false},
		{runes("2"), core.ActionPick2, false},
		{runes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		assert.Equal(t, tt.want, got, "key %q", tt.msg.String())
		assert.Equal(t, tt.isQuit, quit, "key %q", tt.msg.String())
	}
}

func TestItemGlyph(t *testing.T) {
	tests := []struct {
		name string
		item pattern.Item
		want string
	}{
		{"emoji wins", pattern.Item{Emoji: "🍎", Value: pattern.Num(3), Shape: pattern.ShapeStar}, "🍎"},
		{"value", pattern.Item{Value: pattern.Num(12), Shape: pattern.ShapeCircle}, "12"},
		{"letter", pattern.Item{Value: pattern.Text("C")}, "C"},
		{"shape", pattern.Item{Shape: pattern.ShapeHeart}, "♥"},
		{"missing shape", pattern.Item{}, "●"},
		{"arrow up", pattern.Item{Shape: pattern.ShapeArrow}, "↑"},
		{"arrow right", pattern.Item{Shape: pattern.ShapeArrow, Rotation: 90}, "→"},
		{"arrow down", pattern.Item{Shape: pattern.ShapeArrow, Rotation: 180}, "↓"},
		{"arrow left", pattern.Item{Shape: pattern.ShapeArrow, Rotation: 270}, "←"},
		{"arrow diagonal", pattern.Item{Shape: pattern.ShapeArrow, Rotation: 45}, "↗"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, itemGlyph(tt.item))
		})
	}
}

func TestRenderItemSizes(t *testing.T) {
	th := DefaultTheme()
	small := th.RenderItem(pattern.Item{Shape: pattern.ShapeStar, Size: pattern.SizeSmall}, false)
	medium := th.RenderItem(pattern.Item{Shape: pattern.ShapeStar}, false)
	large := th.RenderItem(pattern.Item{Shape: pattern.ShapeStar, Size: pattern.SizeLarge}, false)

	assert.Less(t, lipgloss.Width(small), lipgloss.Width(medium))
	assert.Less(t, lipgloss.Width(medium), lipgloss.Width(large))
	assert.Less(t, lipgloss.Height(small), lipgloss.Height(large))
	assert.Equal(t, lipgloss.Width(medium), lipgloss.Width(th.RenderPlaceholder(nil)))
}

func TestColorFor(t *testing.T) {
	th := DefaultTheme()
	for _, c := range pattern.Palette() {
		assert.NotEqual(t, th.ColorFallback, th.ColorFor(c), "color %s", c)
	}
	assert.Equal(t, th.ColorFallback, th.ColorFor(pattern.Color("plaid")))
}

func TestSessionPlaysLevels(t *testing.T) {
	svc := newTestService(t)
	m := NewSessionModel(svc, core.RuntimeConfig{ScreenW: 120, ScreenH: 50, Profile: "kid"})
	assert.Contains(t, m.View(), "P A T T E R N")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenPlay, m.screen)
	level := m.play.Attempt().Level
	require.Equal(t, 1, level.ID)

	wrong := optionSlot(level, false)
	m, cmd := send(t, m, runes(string(rune('1'+wrong))))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.play.Attempt().Mistakes)
	assert.True(t, m.play.wrong)
	assert.Contains(t, m.View(), "Not quite")

	// A stale clear does not hide newer feedback.
	m, _ = send(t, m, clearFeedbackMsg{attemptID: m.play.Attempt().ID, seq: 0})
	assert.True(t, m.play.wrong)
	m, _ = send(t, m, clearFeedbackMsg{attemptID: m.play.Attempt().ID, seq: 1})
	assert.False(t, m.play.wrong)

	correct := optionSlot(level, true)
	m, cmd = send(t, m, runes(string(rune('1'+correct))))
	require.NotNil(t, cmd)
	solved := m.play.Attempt()
	assert.True(t, solved.Solved)
	assert.Contains(t, m.View(), "Great job!")
	assert.Equal(t, []int{1}, svc.Stats(context.Background(), "kid").CompletedLevels)

	m, _ = send(t, m, advanceMsg{attemptID: solved.ID})
	require.Equal(t, screenPlay, m.screen)
	assert.Equal(t, svc.Catalog().Next(1), m.play.Attempt().Level.ID)
	_, ok := svc.Attempt(solved.ID)
	assert.False(t, ok, "finished attempt must be released")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, screenHome, m.screen)
	assert.Equal(t, 2, m.home.current().ID)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenStats, m.screen)
	assert.Contains(t, m.View(), "STATS - kid")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, screenHome, m.screen)

	m, cmd = send(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
}

func TestSessionHint(t *testing.T) {
	svc := newTestService(t)
	m := NewSessionModel(svc, core.RuntimeConfig{ScreenW: 120, ScreenH: 50, Profile: "kid", LevelID: 4})
	require.Equal(t, screenPlay, m.screen)
	assert.Contains(t, m.View(), "Press h for a hint")

	m, cmd := send(t, m, runes("h"))
	require.NotNil(t, cmd)
	assert.True(t, m.play.thinking)
	assert.Contains(t, m.View(), "Thinking...")

	// A second press while thinking starts nothing.
	m, again := send(t, m, runes("h"))
	assert.Nil(t, again)

	msg := cmd()
	hm, ok := msg.(hintMsg)
	require.True(t, ok, "hint command returned %T", msg)
	require.NoError(t, hm.err)
	assert.Equal(t, "local", hm.result.Source)

	m, _ = send(t, m, msg)
	assert.False(t, m.play.thinking)
	require.NotNil(t, m.play.Attempt().Hint)
	assert.Contains(t, m.View(), "Hint:")
}

func TestSessionUnknownStartLevel(t *testing.T) {
	svc := newTestService(t)
	m := NewSessionModel(svc, core.RuntimeConfig{Profile: "kid", LevelID: 999})
	assert.Equal(t, screenHome, m.screen)
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, "ada", profileFor("  Ada "))
	assert.Equal(t, core.DefaultProfile, profileFor(""))
}
