package sequence

import "github.com/vovakirdan/pattern-island/internal/pattern"

var skyIcons = []pattern.Shape{pattern.ShapeSun, pattern.ShapeCloud, pattern.ShapeMoon, pattern.ShapeStar}

func init() {
	Register(Family{
		Category: pattern.CategoryNature,
		Base: func(k *Kit, idx int) pattern.Item {
			return sky(skyIcons[(idx+k.LevelInGroup)%len(skyIcons)])
		},
		Rules: map[pattern.Tier]Rule{
			// A sun, B cloud, C moon, D star.
			pattern.TierBeginner:     template(skySlots, "ABAB", 'A', "Weather cycle repeats. Which sky icon is next?"),
			pattern.TierIntermediate: template(skySlots, "ABCDAB", 'C', "Day to night cycle repeats. What's next?"),
			pattern.TierAdvanced:     template(skySlots, "ACACD", 'A', "Two-part sky rhythm with a sparkle break. Next?"),
		},
	})

	Register(Family{
		Category: pattern.CategoryMirror,
		Base: func(k *Kit, idx int) pattern.Item {
			shift := idx + k.LevelInGroup
			return pattern.Item{
				Shape: k.Shapes[shift%len(k.Shapes)],
				Color: k.Colors[shift%len(k.Colors)],
			}
		},
		Rules: map[pattern.Tier]Rule{
			pattern.TierBeginner:     template(mirrorSlots, "ABB", 'A', "Mirror it: left side and right side must match."),
			pattern.TierIntermediate: template(mirrorSlots, "ABCB", 'A', "Complete the mirror around the center."),
			pattern.TierAdvanced:     template(mirrorSlots, "ABCCB", 'A', "Symmetry challenge: finish the reflected side."),
		},
	})
}

func sky(s pattern.Shape) pattern.Item {
	color := pattern.ColorYellow
	switch s {
	case pattern.ShapeSun:
		color = pattern.ColorSunshine
	case pattern.ShapeMoon:
		color = pattern.ColorNight
	case pattern.ShapeCloud:
		color = pattern.ColorSky
	}
	return pattern.Item{Shape: s, Color: color}
}

func skySlots(k *Kit) []pattern.Item {
	out := make([]pattern.Item, len(skyIcons))
	for i, s := range skyIcons {
		out[i] = sky(s).WithID(k.Slot(i).ID)
	}
	return out
}

func mirrorSlots(k *Kit) []pattern.Item {
	return []pattern.Item{k.Slot(0), k.Slot(1), k.Slot(2)}
}
