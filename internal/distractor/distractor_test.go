package distractor

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

type fixedSource []pattern.Item

func (f fixedSource) Candidates(*rand.Rand) []pattern.Item { return f }

func TestSelectNumericOffsets(t *testing.T) {
	correct := pattern.Item{Color: pattern.ColorOrange, Value: pattern.Num(10)}
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		opts, err := Select(rng, correct, Offsets{Correct: correct, Tier: pattern.TierAdvanced})
		require.NoError(t, err)
		require.Len(t, opts, pattern.OptionCount)

		assert.Equal(t, pattern.CorrectOptionID, opts[0].ID)
		allowed := map[int]bool{11: true, 12: true, 13: true, 9: true, 8: true, 15: true}
		for _, o := range opts[1:] {
			v, ok := o.Value.Int()
			require.True(t, ok)
			assert.True(t, allowed[v], "unexpected distractor value %d", v)
			assert.Equal(t, pattern.ColorOrange, o.Color)
		}
		assertDistinct(t, opts)
	}
}

func TestOffsetsFloorAtOne(t *testing.T) {
	correct := pattern.Item{Value: pattern.Num(2)}
	rng := rand.New(rand.NewSource(1))
	cands := Offsets{Correct: correct, Tier: pattern.TierBeginner}.Candidates(rng)
	seen := map[int]bool{}
	for _, c := range cands {
		v, _ := c.Value.Int()
		assert.NotEqual(t, 2, v, "correct value must be removed")
		assert.GreaterOrEqual(t, v, 1)
		assert.False(t, seen[v], "duplicate candidate %d", v)
		seen[v] = true
	}
	assert.True(t, seen[6], "beginner jump is +4")
}

func TestOffsetsNonNumeric(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Empty(t, Offsets{Correct: pattern.Item{Value: pattern.Text("A")}}.Candidates(rng))
}

func TestSelectPoolSkipsLookalikes(t *testing.T) {
	sizes := []pattern.Size{pattern.SizeSmall, pattern.SizeMedium, pattern.SizeLarge}
	pool := Pool{Build: func(idx int) pattern.Item {
		return pattern.Item{ID: "cand", Shape: pattern.ShapeSquare, Size: sizes[idx%3]}
	}}
	correct := pattern.Item{Shape: pattern.ShapeSquare, Size: pattern.SizeSmall}

	opts, err := Select(rand.New(rand.NewSource(4)), correct, pool)
	require.NoError(t, err)
	assertDistinct(t, opts)
	assert.Equal(t, "opt-wrong-1", opts[1].ID)
	assert.Equal(t, "opt-wrong-2", opts[2].ID)
}

func TestSelectInsufficient(t *testing.T) {
	correct := pattern.Item{Shape: pattern.ShapeCircle, Color: pattern.ColorRed}
	src := fixedSource{
		{Shape: pattern.ShapeCircle, Color: pattern.ColorRed},
		{Shape: pattern.ShapeCircle, Color: pattern.ColorBlue},
		{Shape: pattern.ShapeCircle, Color: pattern.ColorBlue, Size: pattern.SizeMedium},
	}
	_, err := Select(rand.New(rand.NewSource(1)), correct, src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientCandidates))
}

func TestPoolCoversRange(t *testing.T) {
	var got []int
	pool := Pool{Build: func(idx int) pattern.Item {
		got = append(got, idx)
		return pattern.Item{}
	}}
	pool.Candidates(rand.New(rand.NewSource(2)))
	assert.ElementsMatch(t, []int{4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}, got)
}

func assertDistinct(t *testing.T, opts []pattern.Item) {
	t.Helper()
	keys := map[string]bool{}
	for _, o := range opts {
		k := o.VisualKey()
		assert.False(t, keys[k], "duplicate look %s", k)
		keys[k] = true
	}
}
