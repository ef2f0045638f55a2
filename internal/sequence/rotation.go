package sequence

import "github.com/vovakirdan/pattern-island/internal/pattern"

func init() {
	Register(Family{
		Category: pattern.CategoryRotation,
		Base: func(k *Kit, idx int) pattern.Item {
			return arrow(k.Rotations[idx%len(k.Rotations)])
		},
		Rules: map[pattern.Tier]Rule{
			// A-D point up, right, down and left.
			pattern.TierBeginner:     template(arrowSlots, "ABC", 'D', "Arrow turns a quarter turn each step. Next?"),
			pattern.TierIntermediate: template(arrowSlots, "ACAC", 'A', "Arrow flips between opposite directions."),
			pattern.TierAdvanced:     template(arrowSlots, "ABDAB", 'D', "Turn pattern repeats: up, right, left..."),
		},
	})
}

func arrow(deg int) pattern.Item {
	return pattern.Item{Shape: pattern.ShapeArrow, Color: pattern.ColorCobalt}.WithRotation(deg)
}

func arrowSlots(k *Kit) []pattern.Item {
	out := make([]pattern.Item, 4)
	for i := range out {
		out[i] = arrow(i * 90).WithID(k.Slot(i).ID)
	}
	return out
}
