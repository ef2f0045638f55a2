package game

import (
	"time"

	"github.com/vovakirdan/pattern-island/internal/hint"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
)

// Outcome is the effect of a choice.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeWrong
	OutcomeCorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWrong:
		return "wrong"
	case OutcomeCorrect:
		return "correct"
	default:
		return "ignored"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Attempt is one try at a level.
type Attempt struct {
	ID        string        `json:"id"`
	Profile   string        `json:"profile"`
	Level     pattern.Level `json:"level"`
	StartedAt time.Time     `json:"startedAt"`
	SolvedAt  time.Time     `json:"solvedAt,omitzero"`
	Mistakes  int           `json:"mistakes"`
	UsedHint  bool          `json:"usedHint"`
	Solved    bool          `json:"solved"`
	Hint      *hint.Result  `json:"hint,omitempty"`

	hintPending bool
	touched     time.Time
}

// HintPending reports whether a hint request is in flight.
func (a Attempt) HintPending() bool {
	return a.hintPending
}

// Completion converts a solved attempt into a progression event.
func (a Attempt) Completion() progression.Completion {
	ms := a.SolvedAt.Sub(a.StartedAt).Milliseconds()
	return progression.Completion{
		Mistakes: a.Mistakes,
		UsedHint: a.UsedHint,
		SolveMs:  max(ms, 0),
	}
}

func (a *Attempt) snapshot() Attempt {
	out := *a
	out.Level = a.Level.Clone()
	if a.Hint != nil {
		h := *a.Hint
		out.Hint = &h
	}
	return out
}

// Result is the answer to a choice.
type Result struct {
	Outcome     Outcome               `json:"outcome"`
	Attempt     Attempt               `json:"attempt"`
	Award       *progression.Award    `json:"award,omitempty"`
	Stats       progression.UserStats `json:"stats,omitzero"`
	NextLevelID int                   `json:"nextLevelId,omitempty"`
}
