package pattern

import (
	"fmt"
	"strings"
)

// Category is one of the eleven pattern families.
type Category string

const (
	CategoryColor    Category = "COLOR"
	CategoryShape    Category = "SHAPE"
	CategorySize     Category = "SIZE"
	CategoryNumber   Category = "NUMBER"
	CategoryEmoji    Category = "EMOJI"
	CategoryRotation Category = "ROTATION"
	CategoryAlphabet Category = "ALPHABET"
	CategoryQuantity Category = "QUANTITY"
	CategoryNature   Category = "NATURE"
	CategoryFruit    Category = "FRUIT"
	CategoryMirror   Category = "MIRROR"
)

// Categories returns every category in catalog order.
func Categories() []Category {
	return []Category{
		CategoryColor, CategoryShape, CategorySize, CategoryNumber,
		CategoryEmoji, CategoryRotation, CategoryAlphabet, CategoryQuantity,
		CategoryNature, CategoryFruit, CategoryMirror,
	}
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(s string) (Category, error) {
	want := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range Categories() {
		if c == want {
			return c, nil
		}
	}
	return "", fmt.Errorf("pattern: unknown category %q", s)
}

// Title returns the category name in title case for display.
func (c Category) Title() string {
	s := strings.ToLower(string(c))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Tier is the difficulty band derived from a level's index in its category.
type Tier int

const (
	TierBeginner Tier = iota + 1
	TierIntermediate
	TierAdvanced
)

// LevelsPerCategory is the number of levels in every category.
const LevelsPerCategory = 10

// MaxLevelID is the highest global level id; ids run from 1.
func MaxLevelID() int {
	return len(Categories()) * LevelsPerCategory
}

// BossEvery marks every n-th level in a category as a boss level.
const BossEvery = 5

// TierFor derives the tier of a 1-based level index: 1-3 beginner,
// 4-7 intermediate, 8-10 advanced.
func TierFor(levelInGroup int) Tier {
	switch {
	case levelInGroup <= 3:
		return TierBeginner
	case levelInGroup <= 7:
		return TierIntermediate
	default:
		return TierAdvanced
	}
}

// IsBossIndex reports whether a 1-based level index is a boss level.
func IsBossIndex(levelInGroup int) bool {
	return levelInGroup%BossEvery == 0
}

func (t Tier) String() string {
	switch t {
	case TierBeginner:
		return "beginner"
	case TierIntermediate:
		return "intermediate"
	case TierAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// Label returns the short "Tier n" badge shown next to a level.
func (t Tier) Label() string {
	return fmt.Sprintf("Tier %d", int(t))
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "beginner":
		*t = TierBeginner
	case "intermediate":
		*t = TierIntermediate
	case "advanced":
		*t = TierAdvanced
	default:
		return fmt.Errorf("pattern: unknown tier %q", string(b))
	}
	return nil
}
