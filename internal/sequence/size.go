package sequence

import "github.com/vovakirdan/pattern-island/internal/pattern"

var sizes = []pattern.Size{pattern.SizeSmall, pattern.SizeMedium, pattern.SizeLarge}

func init() {
	Register(Family{
		Category: pattern.CategorySize,
		Base: func(k *Kit, idx int) pattern.Item {
			return pattern.Item{Shape: pattern.ShapeSquare, Color: pattern.ColorGreen, Size: sizes[idx%len(sizes)]}
		},
		Rules: map[pattern.Tier]Rule{
			pattern.TierBeginner: sizeVariants(
				sizeRule{"SML", 'S', "Small, medium, large... then what?"},
				sizeRule{"LMS", 'L', "Big to small then repeat. What's next?"},
				sizeRule{"SSM", 'M', "Two small, two medium... choose next size."},
				sizeRule{"MLML", 'M', "Middle and large alternate. What's next?"},
			),
			pattern.TierIntermediate: sizeVariants(
				sizeRule{"SMLM", 'S', "Size goes up then down. What comes next?"},
				sizeRule{"LMSM", 'L', "Size goes down then up. Pick next."},
				sizeRule{"SMMLL", 'S', "Each step repeats before growing. Next size?"},
				sizeRule{"SLMSL", 'M', "Follow the size jump pattern."},
			),
			pattern.TierAdvanced: sizeVariants(
				sizeRule{"SSMMLL", 'S', "Pairs of sizes loop back. Which starts again?"},
				sizeRule{"SLSLML", 'S', "Two-size bounce with a middle twist. Next?"},
				sizeRule{"SMLLMS", 'S', "Mirror the size pattern. What follows?"},
				sizeRule{"MSLMS", 'L', "Three-size sequence repeats. Pick next."},
			),
		},
	})
}

// sizeRule spells a layout with S, M and L standing for the three sizes.
type sizeRule struct {
	layout      string
	answer      rune
	instruction string
}

// sizeVariants picks one of four layouts per tier by (levelInGroup-1) % 4.
func sizeVariants(rules ...sizeRule) Rule {
	variants := make([]Rule, len(rules))
	for i, r := range rules {
		r := r
		variants[i] = func(k *Kit) Puzzle {
			slots := sizeSlots(k)
			seq := make([]pattern.Item, 0, len(r.layout))
			for _, c := range r.layout {
				seq = append(seq, slots[c])
			}
			return Puzzle{Sequence: seq, Answer: slots[r.answer], Instruction: r.instruction}
		}
	}
	return byIndex(func(i int) int { return i - 1 }, variants...)
}

func sizeSlots(k *Kit) map[rune]pattern.Item {
	out := make(map[rune]pattern.Item, 3)
	for i, letter := range "SML" {
		it := k.Slot(i)
		it.Shape = pattern.ShapeSquare
		it.Color = pattern.ColorGreen
		it.Size = sizes[i]
		out[letter] = it
	}
	return out
}
