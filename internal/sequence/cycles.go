package sequence

import "github.com/vovakirdan/pattern-island/internal/pattern"

// Repeating-cycle families: the rule is a letter template over three
// cosmetic slots, only the look of each slot changes per category.

func init() {
	Register(Family{
		Category: pattern.CategoryColor,
		Base: func(k *Kit, idx int) pattern.Item {
			return pattern.Item{Shape: pattern.ShapeCircle, Color: k.Colors[idx%len(k.Colors)]}
		},
		Rules: cycleRules(colorSlots,
			"Find the next repeating color.",
			"Three colors repeat in order. What's next?",
			"Each color appears twice. Which color returns now?",
		),
	})

	Register(Family{
		Category: pattern.CategoryShape,
		Base: func(k *Kit, idx int) pattern.Item {
			return pattern.Item{Shape: k.Shapes[idx%len(k.Shapes)], Color: pattern.ColorIndigo}
		},
		Rules: map[pattern.Tier]Rule{
			pattern.TierBeginner:     template(shapeSlots, "ABAB", 'A', "Which shape repeats next?"),
			pattern.TierIntermediate: template(shapeSlots, "ABCAB", 'C', "Follow the 3-shape cycle."),
			pattern.TierAdvanced:     template(shapeSlots, "ABBAB", 'B', "One shape appears twice each cycle. Pick next."),
		},
	})

	Register(Family{
		Category: pattern.CategoryEmoji,
		Base: func(k *Kit, idx int) pattern.Item {
			return pattern.Item{Emoji: k.Emojis[idx%len(k.Emojis)]}
		},
		Rules: cycleRules(emojiSlots,
			"Which emoji comes next in the repeat?",
			"Emoji team repeats in order. What's next?",
			"Each emoji appears twice. Which one returns?",
		),
	})

	Register(Family{
		Category: pattern.CategoryFruit,
		Base: func(k *Kit, idx int) pattern.Item {
			fruits := pattern.Fruits()
			return pattern.Item{Emoji: fruits[(idx+k.LevelInGroup)%len(fruits)]}
		},
		Rules: cycleRules(fruitSlots,
			"Fruit pair repeats. Which fruit comes next?",
			"Three-fruit basket pattern. Find next fruit.",
			"Each fruit appears twice in order.",
		),
	})
}

type slotFunc func(k *Kit) []pattern.Item

// cycleRules is the ABAB / ABCAB / AABBCC ladder shared by color, emoji and fruit.
func cycleRules(slots slotFunc, beginner, intermediate, advanced string) map[pattern.Tier]Rule {
	return map[pattern.Tier]Rule{
		pattern.TierBeginner:     template(slots, "ABAB", 'A', beginner),
		pattern.TierIntermediate: template(slots, "ABCAB", 'C', intermediate),
		pattern.TierAdvanced:     template(slots, "AABBCC", 'A', advanced),
	}
}

func template(slots slotFunc, layout string, answer rune, instruction string) Rule {
	return func(k *Kit) Puzzle {
		s := slots(k)
		return Puzzle{
			Sequence:    spell(layout, s...),
			Answer:      s[answer-'A'],
			Instruction: instruction,
		}
	}
}

func colorSlots(k *Kit) []pattern.Item {
	out := make([]pattern.Item, 3)
	for i := range out {
		it := k.Slot(i)
		it.Shape = pattern.ShapeCircle
		it.Color = k.Colors[i]
		out[i] = it
	}
	return out
}

func shapeSlots(k *Kit) []pattern.Item {
	out := make([]pattern.Item, 3)
	for i := range out {
		it := k.Slot(i)
		it.Shape = k.Shapes[i]
		it.Color = pattern.ColorIndigo
		out[i] = it
	}
	return out
}

func emojiSlots(k *Kit) []pattern.Item {
	out := make([]pattern.Item, 3)
	for i := range out {
		out[i] = pattern.Item{ID: k.Slot(i).ID, Emoji: k.Emojis[i]}
	}
	return out
}

func fruitSlots(k *Kit) []pattern.Item {
	fruits := pattern.Fruits()
	out := make([]pattern.Item, 3)
	for i := range out {
		out[i] = pattern.Item{ID: k.Slot(i).ID, Emoji: fruits[(k.LevelInGroup+i)%len(fruits)]}
	}
	return out
}
