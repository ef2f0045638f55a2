package sequence

import "github.com/vovakirdan/pattern-island/internal/pattern"

// Alphabet and quantity share a shape: a start value shifted by level
// index and a fixed step ladder per tier.

func init() {
	Register(Family{
		Category: pattern.CategoryAlphabet,
		Base: func(k *Kit, idx int) pattern.Item {
			shift := k.LevelInGroup % 10
			return letter('A' + shift + idx%(26-shift))
		},
		Rules: map[pattern.Tier]Rule{
			pattern.TierBeginner:     letterSteps("Move one letter forward each time.", 0, 1, 2, 3),
			pattern.TierIntermediate: letterSteps("Skip one letter each step. What's next?", 0, 2, 4, 6),
			pattern.TierAdvanced:     letterSteps("Two-letter blocks jump forward. Find next letter.", 0, 1, 3, 4, 6),
		},
	})

	Register(Family{
		Category: pattern.CategoryQuantity,
		Base: func(k *Kit, idx int) pattern.Item {
			return dots((idx+k.LevelInGroup)%9 + 1)
		},
		Rules: map[pattern.Tier]Rule{
			pattern.TierBeginner:     dotSteps("Count the amount. Which count comes next?", 0, 1, 2, 3),
			pattern.TierIntermediate: dotSteps("Count by twos using quantity.", 0, 2, 4, 6, 8),
			pattern.TierAdvanced:     dotSteps("Add bigger amounts each step: +1, +2, +3...", 0, 1, 3, 6, 10),
		},
	})
}

func letter(code int) pattern.Item {
	return pattern.Item{Color: pattern.ColorPink, Value: pattern.Text(string(rune(code)))}
}

func dots(n int) pattern.Item {
	return pattern.Item{Shape: pattern.ShapeDot, Color: pattern.ColorSlate, Value: pattern.Num(n)}
}

// letterSteps starts at one of A-H and spells the offsets; the last
// offset is the answer.
func letterSteps(instruction string, offsets ...int) Rule {
	return steps(instruction, offsets, func(k *Kit, off int) pattern.Item {
		return letter('A' + k.LevelInGroup%8 + off)
	})
}

func dotSteps(instruction string, offsets ...int) Rule {
	return steps(instruction, offsets, func(k *Kit, off int) pattern.Item {
		return dots(1 + k.LevelInGroup%3 + off)
	})
}

func steps(instruction string, offsets []int, build func(k *Kit, off int) pattern.Item) Rule {
	return func(k *Kit) Puzzle {
		items := make([]pattern.Item, len(offsets))
		for i, off := range offsets {
			items[i] = build(k, off).WithID(k.Slot(i).ID)
		}
		last := len(items) - 1
		return Puzzle{Sequence: items[:last], Answer: items[last], Instruction: instruction}
	}
}
