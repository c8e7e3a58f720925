package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/playlist"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

const titleFull = `╔═╗╔═╗╦  ╦    ╔═╗╔═╗╔═╗╔═╗╦ ╦
║  ╠═╣║  ║    ║  ║ ║╠═╣║  ╠═╣
╚═╝╩ ╩╩═╝╩═╝  ╚═╝╚═╝╩ ╩╚═╝╩ ╩`

const titleCompact = "C A L L · C O A C H"

// stats is the summary shown above the menu.
type stats struct {
	tracks    int
	seconds   int
	exercises int
	cards     int
}

func collectStats(deps Deps) stats {
	s := stats{
		tracks:  len(deps.Pack.Tracks),
		seconds: playlist.TotalDuration(deps.Pack.Tracks),
		cards:   len(deps.Pack.Flashcards),
	}
	if deps.Practice.Catalog != nil {
		s.exercises = len(deps.Practice.IDs())
	}
	return s
}

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Sales call training")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + sub)
}

// renderStatsBar renders the pack summary in a bordered box matching
// content width.
func renderStatsBar(s stats, cw int, compact bool) string {
	audio := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	exercise := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	card := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var text string
	if compact {
		text = fmt.Sprintf("%s %s %s",
			audio.Render(fmt.Sprintf("♪%d", s.tracks)),
			exercise.Render(fmt.Sprintf("✎%d", s.exercises)),
			card.Render(fmt.Sprintf("▤%d", s.cards)))
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			audio.Render(fmt.Sprintf("♪ %d TRACKS · %s", s.tracks, playlist.FormatTime(float64(s.seconds)))),
			exercise.Render(fmt.Sprintf("✎ %d EXERCISES", s.exercises)),
			card.Render(fmt.Sprintf("▤ %d CARDS", s.cards)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		BorderForeground(theme.Accent)
	normalBtn := base.Foreground(theme.Text)
	disabledBtn := base.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderDetail(detail string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(detail)
}

func renderError(err error, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + err.Error())
}

// renderFrame wraps content in a double-border frame, centered vertically
// and horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
