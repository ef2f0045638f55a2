// Package sequence holds the per-category puzzle generators.
// Each category registers a Family in init(): a base-item builder plus one
// rule per difficulty tier. The catalog builder discovers families through
// the registry instead of branching on category names.
package sequence

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// Puzzle is the logical output of a rule: the stimulus, the item that
// continues it and the instruction read to the player.
type Puzzle struct {
	Sequence    []pattern.Item
	Answer      pattern.Item
	Instruction string
}

// Rule builds a puzzle from a level's cosmetic kit.
type Rule func(k *Kit) Puzzle

// BaseFunc builds the idx-th item of a level's item space.
// Indices 0-7 seed the stimulus slots, 4-18 feed the distractor pool.
type BaseFunc func(k *Kit, idx int) pattern.Item

// Family describes how one category generates its levels.
type Family struct {
	Category pattern.Category
	// Numeric families draw distractors by value offset instead of from
	// the item space.
	Numeric bool
	Base    BaseFunc
	Rules   map[pattern.Tier]Rule
}

var (
	families = make(map[pattern.Category]Family)
	mu       sync.RWMutex
)

// Register adds a family to the registry.
// Panics on duplicates or when a tier has no rule, since both are wiring bugs.
func Register(f Family) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := families[f.Category]; exists {
		panic(fmt.Sprintf("sequence: family %q already registered", f.Category))
	}
	if f.Base == nil {
		panic(fmt.Sprintf("sequence: family %q has no base builder", f.Category))
	}
	for _, tier := range []pattern.Tier{pattern.TierBeginner, pattern.TierIntermediate, pattern.TierAdvanced} {
		if f.Rules[tier] == nil {
			panic(fmt.Sprintf("sequence: family %q has no %s rule", f.Category, tier))
		}
	}

	families[f.Category] = f
}

// Lookup returns the family registered for a category.
func Lookup(c pattern.Category) (Family, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := families[c]
	if !ok {
		return Family{}, fmt.Errorf("sequence: unknown category %q", c)
	}
	return f, nil
}

// Registered returns the categories with a family, in catalog order.
func Registered() []pattern.Category {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]pattern.Category, 0, len(families))
	for _, c := range pattern.Categories() {
		if _, ok := families[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Exists checks if a category has a registered family.
func Exists(c pattern.Category) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := families[c]
	return ok
}
