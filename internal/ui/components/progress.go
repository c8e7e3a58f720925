package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	result += renderBar(p.Percent, barWidth, theme.ProgressFilled)

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

func renderBar(fraction float64, width int, filledStyle lipgloss.Style) string {
	filled := min(max(int(float64(width)*fraction), 0), width)
	return filledStyle.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
}

// SeekBar is the player's scrubber: a bar with a handle, drawn at a known
// column so mouse positions can be mapped back to a fraction.
type SeekBar struct {
	// Left is the column of the first bar cell within the rendered screen.
	Left     int
	Width    int
	Fraction float64
	Dragging bool
}

// View renders the bar with its handle.
func (s SeekBar) View() string {
	if s.Width <= 0 {
		return ""
	}
	handle := min(max(int(float64(s.Width-1)*s.Fraction+0.5), 0), s.Width-1)

	handleStyle := lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Primary)
	if s.Dragging {
		handleStyle = handleStyle.Background(theme.Accent)
	}

	return theme.ProgressFilled.Render(strings.Repeat(" ", handle)) +
		handleStyle.Render("●") +
		theme.ProgressEmpty.Render(strings.Repeat(" ", s.Width-handle-1))
}

// Contains reports whether column x lies on the bar.
func (s SeekBar) Contains(x int) bool {
	return x >= s.Left && x < s.Left+s.Width
}

// FractionAt maps column x to a fraction of the bar, clamped to [0, 1].
func (s SeekBar) FractionAt(x int) float64 {
	if s.Width <= 1 {
		return 0
	}
	f := float64(x-s.Left) / float64(s.Width-1)
	return min(max(f, 0), 1)
}
