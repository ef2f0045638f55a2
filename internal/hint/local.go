// Package hint resolves short strategy hints for a level. A remote
// generative service is tried first; a deterministic local table answers
// whenever the remote path is unavailable, slow or unhelpful.
package hint

import (
	"fmt"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

const defaultLocalHint = "Say the pattern out loud. Then choose next piece."

var localHints = map[pattern.Category]string{
	pattern.CategoryColor:    "Say the colors aloud. Which color repeats next?",
	pattern.CategoryShape:    "Point to each shape in order and find the repeat.",
	pattern.CategorySize:     "Watch size order: small, medium, large. What follows?",
	pattern.CategoryRotation: "Notice arrow turns. Keep turning same amount each time.",
	pattern.CategoryAlphabet: "Say letters aloud and move forward in alphabet.",
	pattern.CategoryQuantity: "Count the dots and compare each step.",
	pattern.CategoryMirror:   "Fold it in your mind. Right side matches left.",
}

// Local returns the rule-based hint for a level. It is defined for every
// category and never fails.
func Local(level pattern.Level) string {
	if level.Category == pattern.CategoryNumber {
		return numberHint(level.Sequence)
	}
	if h, ok := localHints[level.Category]; ok {
		return h
	}
	return defaultLocalHint
}

func numberHint(seq []pattern.Item) string {
	nums := make([]int, 0, len(seq))
	for _, it := range seq {
		if n, ok := it.Value.Int(); ok {
			nums = append(nums, n)
		}
	}

	if len(nums) >= 4 {
		diffs := make([]int, len(nums)-1)
		for i := 1; i < len(nums); i++ {
			diffs[i-1] = nums[i] - nums[i-1]
		}
		if allEqual(diffs) {
			return fmt.Sprintf("Count up by %d each step.", diffs[0])
		}
		if doubles(nums) {
			return "Each number doubles. What comes next?"
		}
		if nums[2] == nums[0]+nums[1] && nums[3] == nums[1]+nums[2] {
			return "Add the last two numbers to get next."
		}
	}
	return "Check how much each number changes each step."
}

func allEqual(xs []int) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func doubles(nums []int) bool {
	for i := 1; i < len(nums); i++ {
		if nums[i] != nums[i-1]*2 {
			return false
		}
	}
	return true
}

