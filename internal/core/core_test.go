package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionHint, "Hint"},
		{ActionPick3, "Pick3"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestPickIndex(t *testing.T) {
	for i, a := range []Action{ActionPick1, ActionPick2, ActionPick3} {
		idx, ok := a.PickIndex()
		if !ok || idx != i {
			t.Errorf("%v.PickIndex() = %d, %v; want %d, true", a, idx, ok, i)
		}
	}
	if _, ok := ActionConfirm.PickIndex(); ok {
		t.Error("Confirm must not map to an option slot")
	}
}

func TestWithSize(t *testing.T) {
	cfg := DefaultConfig().WithSize(120, 0)
	if cfg.ScreenW != 120 || cfg.ScreenH != 24 {
		t.Errorf("WithSize(120, 0) = %dx%d, want 120x24", cfg.ScreenW, cfg.ScreenH)
	}
	if cfg.Profile != DefaultProfile {
		t.Errorf("profile = %q, want %q", cfg.Profile, DefaultProfile)
	}
}
