// Package distractor picks the wrong options shown next to a level's answer.
// Options are compared by visual key, never by id, so no two options a
// player sees can look alike.
package distractor

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// Wanted is the number of wrong options per level.
const Wanted = pattern.OptionCount - 1

// Item-space indices reserved for distractors. Stimulus slots come from 0-7.
const (
	PoolFirst = 4
	PoolLast  = 18
)

// ErrInsufficientCandidates means a source ran dry before yielding enough
// distinct wrong options. It points at a palette or pool bug.
var ErrInsufficientCandidates = errors.New("distractor: not enough distinct candidates")

// Source yields candidate wrong options in the order they should be tried.
type Source interface {
	Candidates(rng *rand.Rand) []pattern.Item
}

// Offsets derives numeric candidates from the correct value:
// +1, +2, +3, -1, -2 (floored at 1) and a tier-scaled jump.
type Offsets struct {
	Correct pattern.Item
	Tier    pattern.Tier
}

// Candidates implements Source.
func (o Offsets) Candidates(rng *rand.Rand) []pattern.Item {
	c, ok := o.Correct.Value.Int()
	if !ok {
		return nil
	}
	jump := 4
	if o.Tier == pattern.TierAdvanced {
		jump = 5
	}
	vals := []int{c + 1, c + 2, c + 3, max(1, c-1), max(1, c-2), c + jump}
	rng.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
	vals = lo.Without(lo.Uniq(vals), c)

	return lo.Map(vals, func(v int, _ int) pattern.Item {
		return o.Correct.WithValue(pattern.Num(v))
	})
}

// Pool draws candidates from the level's own item space.
type Pool struct {
	Build func(idx int) pattern.Item
}

// Candidates implements Source.
func (p Pool) Candidates(rng *rand.Rand) []pattern.Item {
	idx := lo.RangeFrom(PoolFirst, PoolLast-PoolFirst+1)
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return lo.Map(idx, func(i int, _ int) pattern.Item { return p.Build(i) })
}

// Select returns the option set for a level: the correct item first with id
// pattern.CorrectOptionID, then the first Wanted candidates whose look has
// not been seen, numbered opt-wrong-1, opt-wrong-2. Callers shuffle.
func Select(rng *rand.Rand, correct pattern.Item, src Source) ([]pattern.Item, error) {
	options := make([]pattern.Item, 0, pattern.OptionCount)
	options = append(options, correct.WithID(pattern.CorrectOptionID))
	seen := map[string]bool{correct.VisualKey(): true}

	for _, cand := range src.Candidates(rng) {
		if len(options) == pattern.OptionCount {
			break
		}
		key := cand.VisualKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, cand.WithID(fmt.Sprintf("opt-wrong-%d", len(options))))
	}

	if len(options) < pattern.OptionCount {
		return nil, fmt.Errorf("%w: got %d of %d for %s", ErrInsufficientCandidates, len(options)-1, Wanted, correct.VisualKey())
	}
	return options, nil
}
