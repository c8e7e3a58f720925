package scripts

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

var kindLabels = map[content.BlockKind]string{
	content.BlockVerbatim:   "SAY",
	content.BlockCompliance: "REQUIRED",
	content.BlockAnalysis:   "ANALYZE",
	content.BlockTransition: "TRANSITION",
	content.BlockBranching:  "IF / THEN",
}

// RenderModule renders one script module at width and returns the line on
// which each subsection starts.
func RenderModule(m content.Module, width int) (string, map[string]int) {
	var b strings.Builder
	anchors := make(map[string]int, len(m.Subsections))
	line := 0
	write := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
		line += lipgloss.Height(s)
	}

	write(lipgloss.NewStyle().Bold(true).Foreground(theme.Hex(m.Color)).Render(m.Title))
	write("")
	for _, sub := range m.Subsections {
		anchors[sub.ID] = line
		write(theme.Heading.Render(sub.Title))
		for _, blk := range sub.Blocks {
			write(RenderBlock(blk, width))
		}
		write("")
	}
	return b.String(), anchors
}

// RenderBlock renders a script block with a colored rule in its kind's
// color.
func RenderBlock(blk content.Block, width int) string {
	accent := theme.BlockColor(blk.Kind)
	text := lipgloss.NewStyle().Foreground(theme.Text)
	if blk.Kind == content.BlockVerbatim {
		text = text.Italic(true)
	}

	var parts []string
	if label, ok := kindLabels[blk.Kind]; ok {
		parts = append(parts, lipgloss.NewStyle().Foreground(accent).Bold(true).Render(label))
	}
	parts = append(parts, text.Render(blk.Text))
	if blk.Warning != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚠ "+blk.Warning))
	}
	for _, br := range blk.Branches {
		cond := lipgloss.NewStyle().Foreground(accent).Bold(true).Render("If " + br.Condition)
		parts = append(parts, cond+"\n  → "+br.Response)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(accent).
		PaddingLeft(1).
		MarginTop(1).
		Width(max(width-2, 10)).
		Render(strings.Join(parts, "\n"))
}

// RenderCompliance lists the compliance requirements.
func RenderCompliance(reqs []content.Requirement, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Error).Render("Compliance requirements"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Every call must include these phrases."))
	b.WriteString("\n")

	for i, r := range reqs {
		body := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(fmt.Sprintf("%d. %q", i+1, r.Phrase))
		if r.Context != "" {
			body += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render("When: "+r.Context)
		}
		if r.Legal != "" {
			body += "\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render("Why: "+r.Legal)
		}
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Error).
			PaddingLeft(1).
			MarginTop(1).
			Width(max(width-2, 10)).
			Render(body))
		b.WriteString("\n")
	}
	return b.String()
}
