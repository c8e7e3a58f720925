package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered card layouts.
func ContentWidth(frameWidth int) int {
	// Leave room for border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 96)
}

// Frame wraps content in a rounded border, centered within the given
// dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width,
// bordered in accent.
func Card(content string, cw int, accent color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Badge renders a short inverted label.
func Badge(label string, bg color.Color) string {
	return lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(bg).
		Bold(true).
		Padding(0, 1).
		Render(label)
}
