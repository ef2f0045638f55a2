package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// Theme contains all configurable visual styles for the game screens.
type Theme struct {
	// Header styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style

	// Island map styles
	Cell       lipgloss.Style
	CellDone   lipgloss.Style
	CellBoss   lipgloss.Style
	CellCursor lipgloss.Style
	BarFull    lipgloss.Style
	BarEmpty   lipgloss.Style
	QuestDone  lipgloss.Style
	Badge      lipgloss.Style

	// Puzzle styles
	Boss          lipgloss.Style
	Instruction   lipgloss.Style
	HintBox       lipgloss.Style
	Thinking      lipgloss.Style
	Card          lipgloss.Style
	CardActive    lipgloss.Style
	Placeholder   lipgloss.Style
	Wrong         lipgloss.Style
	Correct       lipgloss.Style
	Celebration   lipgloss.Style
	Panel         lipgloss.Style
	OptionNumber  lipgloss.Style
	ValueOnShape  lipgloss.Style
	ColorFallback lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
		CellDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Padding(0, 1),
		CellBoss:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true).Padding(0, 1),
		CellCursor: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),
		BarFull:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		BarEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		QuestDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),

		Boss:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Instruction: lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).MarginTop(1),
		HintBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("220")).
			Foreground(lipgloss.Color("229")).
			Padding(0, 1),
		Thinking: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Align(lipgloss.Center),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("229")).
			Align(lipgloss.Center),
		Placeholder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("51")).
			Foreground(lipgloss.Color("51")).
			Bold(true).
			Align(lipgloss.Center),
		Wrong:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Celebration: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		OptionNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ValueOnShape:  lipgloss.NewStyle().Bold(true),
		ColorFallback: lipgloss.Color("255"),
	}
}

// paletteColors maps palette tokens to ANSI 256-color codes.
var paletteColors = map[pattern.Color]lipgloss.Color{
	pattern.ColorRed:      lipgloss.Color("196"),
	pattern.ColorBlue:     lipgloss.Color("33"),
	pattern.ColorGreen:    lipgloss.Color("40"),
	pattern.ColorYellow:   lipgloss.Color("226"),
	pattern.ColorPurple:   lipgloss.Color("135"),
	pattern.ColorPink:     lipgloss.Color("205"),
	pattern.ColorOrange:   lipgloss.Color("208"),
	pattern.ColorIndigo:   lipgloss.Color("62"),
	pattern.ColorTeal:     lipgloss.Color("37"),
	pattern.ColorCobalt:   lipgloss.Color("27"),
	pattern.ColorSlate:    lipgloss.Color("246"),
	pattern.ColorSunshine: lipgloss.Color("220"),
	pattern.ColorNight:    lipgloss.Color("60"),
	pattern.ColorSky:      lipgloss.Color("117"),
}

// ColorFor returns the terminal color of a palette token.
func (t Theme) ColorFor(c pattern.Color) lipgloss.Color {
	if col, ok := paletteColors[c]; ok {
		return col
	}
	return t.ColorFallback
}
