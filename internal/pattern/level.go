package pattern

// CorrectOptionID marks the correct option while options are being selected.
// Wrong options are numbered "opt-wrong-1" and "opt-wrong-2". The catalog
// swaps these markers for opaque ids before a level is published.
const CorrectOptionID = "opt-correct"

// OptionCount is the number of options offered per level.
const OptionCount = 3

// Level is one playable puzzle in the catalog.
// Levels are built once and treated as read-only afterwards.
type Level struct {
	ID              int      `json:"id"`
	Category        Category `json:"groupType"`
	LevelInGroup    int      `json:"levelInGroup"`
	Tier            Tier     `json:"difficulty"`
	IsBoss          bool     `json:"isBoss"`
	Sequence        []Item   `json:"sequence"`
	Options         []Item   `json:"options"`
	CorrectAnswerID string   `json:"correctAnswerId"`
	Instruction     string   `json:"instruction"`
}

// Clone returns a deep copy of the level so callers cannot alias catalog slices.
func (l Level) Clone() Level {
	out := l
	out.Sequence = append([]Item(nil), l.Sequence...)
	out.Options = append([]Item(nil), l.Options...)
	return out
}

// Option looks up an option by id.
func (l Level) Option(id string) (Item, bool) {
	for _, opt := range l.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Item{}, false
}

// CorrectOption returns the option carrying CorrectAnswerID.
func (l Level) CorrectOption() Item {
	opt, _ := l.Option(l.CorrectAnswerID)
	return opt
}

// IsCorrect reports whether the option id is the correct answer.
func (l Level) IsCorrect(optionID string) bool {
	return optionID == l.CorrectAnswerID
}
