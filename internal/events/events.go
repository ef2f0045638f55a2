// Package events carries fire-and-forget game notifications from the game
// service to collaborators that react to them: sound, celebration effects,
// metrics and live event streams.
package events

import "github.com/vovakirdan/pattern-island/internal/pattern"

// Kind names an event type on the wire.
type Kind string

const (
	KindClick          Kind = "click"
	KindHover          Kind = "hover"
	KindHintRequested  Kind = "hint_requested"
	KindHintResolved   Kind = "hint_resolved"
	KindChoiceCorrect  Kind = "choice_correct"
	KindChoiceWrong    Kind = "choice_wrong"
	KindLevelCompleted Kind = "level_completed"
	KindBadgeUnlocked  Kind = "badge_unlocked"
	KindCelebration    Kind = "celebration"
)

// Event is a notification published on the Bus.
type Event interface {
	Kind() Kind
	event()
}

// Click is a button press in a front end.
type Click struct {
	Profile string `json:"profile"`
}

func (Click) Kind() Kind { return KindClick }
func (Click) event()     {}

// Hover is the cursor moving onto an option.
type Hover struct {
	Profile  string `json:"profile"`
	OptionID string `json:"optionId"`
}

func (Hover) Kind() Kind { return KindHover }
func (Hover) event()     {}

// HintRequested is sent when a player asks for a hint.
type HintRequested struct {
	Profile   string `json:"profile"`
	AttemptID string `json:"attemptId"`
	LevelID   int    `json:"levelId"`
}

func (HintRequested) Kind() Kind { return KindHintRequested }
func (HintRequested) event()     {}

// HintResolved carries the hint text and where it came from.
type HintResolved struct {
	Profile   string `json:"profile"`
	AttemptID string `json:"attemptId"`
	LevelID   int    `json:"levelId"`
	Source    string `json:"source"` // "remote" or "local"
	Text      string `json:"text"`
}

func (HintResolved) Kind() Kind { return KindHintResolved }
func (HintResolved) event()     {}

// ChoiceCorrect is sent when the correct option is picked.
type ChoiceCorrect struct {
	Profile   string `json:"profile"`
	AttemptID string `json:"attemptId"`
	LevelID   int    `json:"levelId"`
}

func (ChoiceCorrect) Kind() Kind { return KindChoiceCorrect }
func (ChoiceCorrect) event()     {}

// ChoiceWrong is sent for every wrong pick.
type ChoiceWrong struct {
	Profile   string `json:"profile"`
	AttemptID string `json:"attemptId"`
	LevelID   int    `json:"levelId"`
	OptionID  string `json:"optionId"`
	Mistakes  int    `json:"mistakes"`
}

func (ChoiceWrong) Kind() Kind { return KindChoiceWrong }
func (ChoiceWrong) event()     {}

// LevelCompleted is sent after the completion has been applied and saved.
type LevelCompleted struct {
	Profile   string           `json:"profile"`
	AttemptID string           `json:"attemptId"`
	LevelID   int              `json:"levelId"`
	Category  pattern.Category `json:"category"`
	Tier      pattern.Tier     `json:"tier"`
	Boss      bool             `json:"boss"`
	Mistakes  int              `json:"mistakes"`
	UsedHint  bool             `json:"usedHint"`
	SolveMs   int64            `json:"solveMs"`
	XPGain    int              `json:"xpGain"`
	StarGain  int              `json:"starGain"`
}

func (LevelCompleted) Kind() Kind { return KindLevelCompleted }
func (LevelCompleted) event()     {}

// BadgeUnlocked is sent once per newly earned badge.
type BadgeUnlocked struct {
	Profile string `json:"profile"`
	Badge   string `json:"badge"`
	Label   string `json:"label"`
}

func (BadgeUnlocked) Kind() Kind { return KindBadgeUnlocked }
func (BadgeUnlocked) event()     {}

// Celebration asks a front end to play its success effect.
type Celebration struct {
	Profile string `json:"profile"`
	LevelID int    `json:"levelId"`
	Boss    bool   `json:"boss"`
}

func (Celebration) Kind() Kind { return KindCelebration }
func (Celebration) event()     {}

// Envelope is the wire form of an event.
type Envelope struct {
	Kind  Kind  `json:"kind"`
	Event Event `json:"event"`
}

// Wrap builds the envelope of an event.
func Wrap(ev Event) Envelope {
	return Envelope{Kind: ev.Kind(), Event: ev}
}
