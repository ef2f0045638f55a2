package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pattern-island/internal/core"
)

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "k", "up":
		return core.ActionUp, false
	case "s", "j", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "l", "right":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "h":
		return core.ActionHint, false
	case "tab", "t":
		return core.ActionStats, false
	case "1":
		return core.ActionPick1, false
	case "2":
		return core.ActionPick2, false
	case "3":
		return core.ActionPick3, false
	}
	return core.ActionNone, false
}

// HelpKeys lists bindings for a help bar.
type HelpKeys []key.Binding

// ShortHelp returns key bindings for the short help view.
func (k HelpKeys) ShortHelp() []key.Binding {
	return k
}

// FullHelp returns key bindings for the full help view.
func (k HelpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k}
}

// homeHelp describes the island map controls.
func homeHelp() HelpKeys {
	return HelpKeys{
		key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("arrows", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "stats")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// playHelp describes the level controls.
func playHelp() HelpKeys {
	return HelpKeys{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose")),
		key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "pick")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "map")),
	}
}
