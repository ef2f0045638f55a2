package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

var shapeGlyphs = map[pattern.Shape]string{
	pattern.ShapeCircle:   "●",
	pattern.ShapeSquare:   "■",
	pattern.ShapeTriangle: "▲",
	pattern.ShapeStar:     "★",
	pattern.ShapeHeart:    "♥",
	pattern.ShapeDot:      "•",
	pattern.ShapeSun:      "☀",
	pattern.ShapeMoon:     "☾",
	pattern.ShapeCloud:    "☁",
}

// arrowGlyphs is indexed by rotation / 45; an unrotated arrow points up.
var arrowGlyphs = [...]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// itemGlyph returns the text drawn inside a card. Emoji win over values,
// values win over shapes, and a missing shape draws a circle.
func itemGlyph(it pattern.Item) string {
	switch {
	case it.Emoji != "":
		return it.Emoji
	case !it.Value.IsZero():
		return it.Value.String()
	case it.Shape == pattern.ShapeArrow:
		return arrowGlyphs[pattern.NormalizeRotation(it.Rotation+22)/45%len(arrowGlyphs)]
	}
	if g, ok := shapeGlyphs[it.Shape]; ok {
		return g
	}
	return shapeGlyphs[pattern.ShapeCircle]
}

// cardSize returns the inner width and height of a card.
func cardSize(s pattern.Size) (w, h int) {
	switch s {
	case pattern.SizeSmall:
		return 5, 1
	case pattern.SizeLarge:
		return 11, 5
	default:
		return 7, 3
	}
}

// RenderItem draws an item as a colored card. Items without a color use blue.
func (t Theme) RenderItem(it pattern.Item, active bool) string {
	color := it.Color
	if color == "" {
		color = pattern.ColorBlue
	}
	w, h := cardSize(it.Size)

	style := t.Card
	if active {
		style = t.CardActive
	}
	return style.
		Width(w).
		Height(h).
		AlignVertical(lipgloss.Center).
		Background(t.ColorFor(color)).
		Foreground(lipgloss.Color("255")).
		Bold(true).
		Render(itemGlyph(it))
}

// RenderPlaceholder draws the answer slot: a question mark until revealed
// holds the solved item.
func (t Theme) RenderPlaceholder(revealed *pattern.Item) string {
	if revealed != nil {
		return t.RenderItem(*revealed, false)
	}
	w, h := cardSize(pattern.SizeMedium)
	return t.Placeholder.
		Width(w).
		Height(h).
		AlignVertical(lipgloss.Center).
		Render("?")
}

// RenderRow lays cards side by side, vertically centered.
func RenderRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	spaced := make([]string, 0, len(cards)*2-1)
	for i, c := range cards {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, spaced...)
}

// progressBar renders a bar of width cells filled to percent.
func (t Theme) progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	full := percent * width / 100
	return t.BarFull.Render(strings.Repeat("█", full)) +
		t.BarEmpty.Render(strings.Repeat("░", width-full))
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
