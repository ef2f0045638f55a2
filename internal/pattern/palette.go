package pattern

// Color is a token naming one entry of the fixed palette. Front ends map
// tokens to concrete terminal or CSS colors.
type Color string

// The nine colors shuffled per level for color, mirror and shape pools.
const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorOrange Color = "orange"
	ColorIndigo Color = "indigo"
	ColorTeal   Color = "teal"
)

// Fixed tokens used by single-color categories.
const (
	ColorCobalt   Color = "cobalt"
	ColorSlate    Color = "slate"
	ColorSunshine Color = "sunshine"
	ColorNight    Color = "night"
	ColorSky      Color = "sky"
)

// Palette returns the shuffleable colors in canonical order.
func Palette() []Color {
	return []Color{
		ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple,
		ColorPink, ColorOrange, ColorIndigo, ColorTeal,
	}
}

// Shapes returns the shuffleable shapes in canonical order.
// Arrow and dot are reserved for the rotation and quantity categories.
func Shapes() []Shape {
	return []Shape{
		ShapeCircle, ShapeSquare, ShapeTriangle, ShapeStar,
		ShapeHeart, ShapeSun, ShapeMoon, ShapeCloud,
	}
}

// EmojiSets returns the themed four-emoji sets a level may draw from.
func EmojiSets() [][]string {
	return [][]string{
		{"🦁", "🐯", "🐘", "🦒"},
		{"🍎", "🍌", "🍇", "🍓"},
		{"🚗", "🚀", "🚁", "🚲"},
		{"⚽", "🏀", "🎾", "🏐"},
		{"🍦", "🍩", "🍕", "🍔"},
		{"🐶", "🐱", "🐭", "🐹"},
	}
}

// Fruits returns the fruit emoji used by the fruit category.
func Fruits() []string {
	return []string{"🍎", "🍌", "🍇", "🍒", "🍓", "🍍"}
}

// Rotations returns the four quarter-turn angles.
func Rotations() []int {
	return []int{0, 90, 180, 270}
}
