package sequence

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// poolSize is the number of item-space indices shuffled to pick slots A-D.
const poolSize = 8

// Kit carries the cosmetic draws of one level instance. Rules read from it;
// only the random source decides which colors, shapes, emoji and angles
// a level shows, never the logical rule.
type Kit struct {
	Category     pattern.Category
	LevelInGroup int
	Tier         pattern.Tier

	Colors    []pattern.Color
	Shapes    []pattern.Shape
	Emojis    []string
	Rotations []int
	Pool      []int

	family Family
}

// NewKit draws the cosmetic parameters for a level. The draw order is fixed
// so a seeded source reproduces the same catalog.
func NewKit(rng *rand.Rand, f Family, levelInGroup int) *Kit {
	k := &Kit{
		Category:     f.Category,
		LevelInGroup: levelInGroup,
		Tier:         pattern.TierFor(levelInGroup),
		Colors:       shuffled(rng, pattern.Palette()),
		Shapes:       shuffled(rng, pattern.Shapes()),
		family:       f,
	}
	sets := pattern.EmojiSets()
	k.Emojis = shuffled(rng, sets[rng.Intn(len(sets))])
	k.Rotations = shuffled(rng, pattern.Rotations())

	pool := make([]int, poolSize)
	for i := range pool {
		pool[i] = i
	}
	k.Pool = shuffled(rng, pool)
	return k
}

// Numeric reports whether the level's distractors are value offsets.
func (k *Kit) Numeric() bool {
	return k.family.Numeric
}

// Base builds the idx-th item of the level's item space.
func (k *Kit) Base(idx int) pattern.Item {
	it := k.family.Base(k, idx)
	it.ID = fmt.Sprintf("item-%s-%d-%d", k.Category, k.LevelInGroup, idx)
	return it
}

// Slot returns stimulus slot n (0 = A, 1 = B, ...) from the shuffled pool.
func (k *Kit) Slot(n int) pattern.Item {
	return k.Base(k.Pool[n%len(k.Pool)])
}

// Generate builds the puzzle for a category level. Sequence items are
// given positional ids so two equal-looking items stay distinguishable.
func Generate(rng *rand.Rand, c pattern.Category, levelInGroup int) (*Kit, Puzzle, error) {
	f, err := Lookup(c)
	if err != nil {
		return nil, Puzzle{}, err
	}
	return GenerateFamily(rng, f, levelInGroup)
}

// GenerateFamily is Generate for a family that need not be registered.
func GenerateFamily(rng *rand.Rand, f Family, levelInGroup int) (*Kit, Puzzle, error) {
	c := f.Category
	if levelInGroup < 1 || levelInGroup > pattern.LevelsPerCategory {
		return nil, Puzzle{}, fmt.Errorf("sequence: level %d out of range 1-%d", levelInGroup, pattern.LevelsPerCategory)
	}

	rule := f.Rules[pattern.TierFor(levelInGroup)]
	if f.Base == nil || rule == nil {
		return nil, Puzzle{}, fmt.Errorf("sequence: family %q is incomplete", c)
	}

	k := NewKit(rng, f, levelInGroup)
	p := rule(k)
	if len(p.Sequence) == 0 {
		return nil, Puzzle{}, fmt.Errorf("sequence: %s level %d produced an empty sequence", c, levelInGroup)
	}

	seq := make([]pattern.Item, len(p.Sequence))
	for i, it := range p.Sequence {
		seq[i] = it.WithID(fmt.Sprintf("seq-%s-%d-%d", c, levelInGroup, i))
	}
	p.Sequence = seq
	p.Answer = p.Answer.WithID(fmt.Sprintf("answer-%s-%d", c, levelInGroup))
	return k, p, nil
}

func shuffled[T any](rng *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// spell lays out items by a letter template: "ABAB" with slots a, b gives
// a, b, a, b.
func spell(template string, slots ...pattern.Item) []pattern.Item {
	out := make([]pattern.Item, 0, len(template))
	for _, r := range template {
		out = append(out, slots[r-'A'])
	}
	return out
}

// byIndex selects a rule from variants by a function of the level index.
func byIndex(pick func(levelInGroup int) int, variants ...Rule) Rule {
	return func(k *Kit) Puzzle {
		return variants[pick(k.LevelInGroup)%len(variants)](k)
	}
}
