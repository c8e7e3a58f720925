package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/playlist"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

const (
	margin    = 2
	timeWidth = 5
	listWidth = 46
)

func (s *Screen) View(width, height int) string {
	pad := strings.Repeat(" ", margin)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	track, _ := s.ctrl.CurrentTrack()

	lines := []string{""}

	heading := lipgloss.NewStyle().Foreground(theme.Hex(track.Color)).Bold(true).Render(track.Title)
	lines = append(lines, pad+transportIcon(s.ctrl.Transport())+"  "+heading+"  "+dim.Render(s.levels()))
	lines = append(lines, "")

	s.seek = components.SeekBar{
		Left:     margin + timeWidth + 1,
		Width:    max(width-2*margin-2*(timeWidth+1), 10),
		Fraction: s.ctrl.TrackProgress(),
		Dragging: s.ctrl.Dragging(),
	}
	s.seekRow = len(lines)
	lines = append(lines, pad+
		fmt.Sprintf("%*s ", timeWidth, playlist.FormatTime(s.ctrl.DisplayPosition()))+
		s.seek.View()+
		fmt.Sprintf(" %-*s", timeWidth, playlist.FormatTime(s.ctrl.Duration())))
	lines = append(lines, "")

	lines = append(lines, pad+components.NewProgressBar("Playlist", s.ctrl.Progress(), true, width-2*margin).View())
	lines = append(lines, "")
	lines = append(lines, pad+theme.Heading.Render("Modules"))
	s.listTop = len(lines)

	body := s.renderList()
	if scriptWidth := width - listWidth - 3 - margin; scriptWidth >= 30 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "   ", s.renderScript(track, scriptWidth))
	}

	out := strings.Join(lines, "\n") + "\n" + body
	if s.ctrl.Finished() {
		out += "\n\n" + pad + components.Card(
			theme.Correct.Render("All training modules complete!")+"\n"+
				dim.Render("Enter or r to listen again. Esc to go back."),
			min(components.ContentWidth(width), 60), theme.Success)
	}
	return out
}

func (s *Screen) levels() string {
	vol := fmt.Sprintf("vol %d%%", int(s.ctrl.Volume()*100+0.5))
	if s.ctrl.Muted() {
		vol = "muted"
	}
	return fmt.Sprintf("%s · %gx · %s", s.ctrl.Transport(), s.ctrl.Rate(), vol)
}

func transportIcon(t playlist.Transport) string {
	switch t {
	case playlist.Playing:
		return theme.Correct.Render("▶")
	case playlist.Paused:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("❚❚")
	case playlist.Loading:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("…")
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("■")
	}
}

func (s *Screen) renderList() string {
	current := s.ctrl.CurrentIndex()
	titleWidth := listWidth - margin - 4 - timeWidth - 1

	rows := make([]string, 0, s.ctrl.TrackCount())
	for i, t := range s.ctrl.Tracks() {
		marker := "  "
		switch {
		case i == current:
			marker = theme.Selected.Render("▸ ")
		case s.ctrl.IsCompleted(i):
			marker = theme.Correct.Render("✓ ")
		}

		title := truncate(t.Title, titleWidth)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == current {
			style = style.Foreground(theme.Hex(t.Color)).Bold(true)
		}
		rows = append(rows, strings.Repeat(" ", margin)+marker+
			style.Render(fmt.Sprintf("%-*s", titleWidth, title))+
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %*s", timeWidth, t.DisplayDuration)))
	}
	return strings.Join(rows, "\n")
}

// renderScript outlines the script module that goes with the track.
func (s *Screen) renderScript(t playlist.Track, width int) string {
	m, ok := s.opts.Pack.ModuleForTrack(t.ModuleKey)
	if !ok {
		return theme.Hint.Render("No script for this module.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Hex(m.Color)).Bold(true).Render(m.Title))
	for _, sub := range m.Subsections {
		b.WriteString("\n• " + truncate(sub.Title, width-2))
		if n := countKind(sub.Blocks, content.BlockCompliance); n > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("  ⚠ %d", n)))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func countKind(blocks []content.Block, kind content.BlockKind) int {
	n := 0
	for _, b := range blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
