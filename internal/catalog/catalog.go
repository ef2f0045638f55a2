// Package catalog builds the fixed, ordered list of levels a session plays.
// The catalog is built once from a random source and is read-only afterwards.
package catalog

import (
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/vovakirdan/pattern-island/internal/distractor"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/sequence"
)

// BossPrefix is prepended to the instruction of every boss level.
const BossPrefix = "BOSS ROUND: "

// Catalog is the immutable level list. Accessors hand out copies.
type Catalog struct {
	levels []pattern.Level
	byID   map[int]int
}

// Build generates every category in catalog order, ten levels each, with
// global ids assigned category-major from 1. Any generation failure aborts
// the build.
func Build(rng *rand.Rand) (*Catalog, error) {
	cats := sequence.Registered()
	if len(cats) == 0 {
		return nil, fmt.Errorf("catalog: no sequence families registered")
	}
	families := make([]sequence.Family, 0, len(cats))
	for _, cat := range cats {
		f, err := sequence.Lookup(cat)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		families = append(families, f)
	}
	return buildFrom(rng, families)
}

func buildFrom(rng *rand.Rand, families []sequence.Family) (*Catalog, error) {
	c := &Catalog{
		levels: make([]pattern.Level, 0, len(families)*pattern.LevelsPerCategory),
		byID:   make(map[int]int, len(families)*pattern.LevelsPerCategory),
	}
	id := 1
	for _, f := range families {
		for i := 1; i <= pattern.LevelsPerCategory; i++ {
			lvl, err := buildLevel(rng, id, f, i)
			if err != nil {
				return nil, fmt.Errorf("catalog: level %d (%s %d): %w", id, f.Category, i, err)
			}
			c.byID[id] = len(c.levels)
			c.levels = append(c.levels, lvl)
			id++
		}
	}
	return c, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(rng *rand.Rand) *Catalog {
	c, err := Build(rng)
	if err != nil {
		panic(err)
	}
	return c
}

// NewRand returns a source for Build. Seed 0 means non-reproducible.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63()
	}
	return rand.New(rand.NewSource(seed))
}

func buildLevel(rng *rand.Rand, id int, f sequence.Family, levelInGroup int) (pattern.Level, error) {
	cat := f.Category
	kit, puzzle, err := sequence.GenerateFamily(rng, f, levelInGroup)
	if err != nil {
		return pattern.Level{}, err
	}

	var src distractor.Source = distractor.Pool{Build: kit.Base}
	if kit.Numeric() {
		src = distractor.Offsets{Correct: puzzle.Answer, Tier: kit.Tier}
	}
	options, err := distractor.Select(rng, puzzle.Answer, src)
	if err != nil {
		return pattern.Level{}, err
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	options, correctID := rekey(rng, options)

	boss := pattern.IsBossIndex(levelInGroup)
	instruction := puzzle.Instruction
	if boss {
		instruction = BossPrefix + instruction
	}

	return pattern.Level{
		ID:              id,
		Category:        cat,
		LevelInGroup:    levelInGroup,
		Tier:            kit.Tier,
		IsBoss:          boss,
		Sequence:        puzzle.Sequence,
		Options:         options,
		CorrectAnswerID: correctID,
		Instruction:     instruction,
	}, nil
}

// rekey replaces the selector's marker ids with opaque per-level tokens so
// an option's id says nothing about whether it is the answer. It returns
// the token given to the correct option.
func rekey(rng *rand.Rand, options []pattern.Item) ([]pattern.Item, string) {
	out := make([]pattern.Item, len(options))
	used := make(map[string]bool, len(options))
	correctID := ""
	for i, opt := range options {
		id := fmt.Sprintf("opt-%08x", rng.Uint32())
		for used[id] {
			id = fmt.Sprintf("opt-%08x", rng.Uint32())
		}
		used[id] = true
		if opt.ID == pattern.CorrectOptionID {
			correctID = id
		}
		out[i] = opt.WithID(id)
	}
	return out, correctID
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Levels returns a copy of every level in id order.
func (c *Catalog) Levels() []pattern.Level {
	return lo.Map(c.levels, func(l pattern.Level, _ int) pattern.Level { return l.Clone() })
}

// Level looks up a level by global id.
func (c *Catalog) Level(id int) (pattern.Level, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return pattern.Level{}, false
	}
	return c.levels[idx].Clone(), true
}

// ByCategory returns the ten levels of one category in order.
func (c *Catalog) ByCategory(cat pattern.Category) []pattern.Level {
	var out []pattern.Level
	for _, l := range c.levels {
		if l.Category == cat {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Next returns the id following id, or 0 after the last level.
func (c *Catalog) Next(id int) int {
	if _, ok := c.byID[id+1]; ok {
		return id + 1
	}
	return 0
}

// IDs returns every level id in order.
func (c *Catalog) IDs() []int {
	return lo.Map(c.levels, func(l pattern.Level, _ int) int { return l.ID })
}
