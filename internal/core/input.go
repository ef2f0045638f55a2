package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter, Space
	ActionBack           // B, Escape
	ActionHint           // H
	ActionStats          // Tab, T
	ActionPick1          // 1
	ActionPick2          // 2
	ActionPick3          // 3
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionHint:
		return "Hint"
	case ActionStats:
		return "Stats"
	case ActionPick1:
		return "Pick1"
	case ActionPick2:
		return "Pick2"
	case ActionPick3:
		return "Pick3"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PickIndex returns the zero-based option slot of a pick action.
func (a Action) PickIndex() (int, bool) {
	switch a {
	case ActionPick1:
		return 0, true
	case ActionPick2:
		return 1, true
	case ActionPick3:
		return 2, true
	default:
		return 0, false
	}
}
