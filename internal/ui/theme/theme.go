package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/content"
)

// Color palette: muted office tones with loud compliance red.
var (
	Primary   = lipgloss.Color("#4574C4") // Call blue
	Secondary = lipgloss.Color("#70AD47") // Green
	Accent    = lipgloss.Color("#FFC642") // Gold
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#ED7D31") // Orange
	Analysis  = lipgloss.Color("#A78BFA") // Lavender
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// BlockColor is the accent used for a script block of the given kind.
func BlockColor(kind content.BlockKind) color.Color {
	switch kind {
	case content.BlockVerbatim:
		return Primary
	case content.BlockCompliance:
		return Error
	case content.BlockAnalysis:
		return Analysis
	case content.BlockTransition:
		return Secondary
	case content.BlockBranching:
		return Warning
	default:
		return Text
	}
}

// Hex parses a content color like "#ffc642", falling back to Primary.
func Hex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return Primary
	}
	return lipgloss.Color(s)
}
