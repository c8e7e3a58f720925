package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// ChoiceList is a single-answer selector. Once an option is chosen the
// list locks and shows the result until Reset.
type ChoiceList struct {
	Prompt   string
	Options  []string
	Selected int
	// Chosen is -1 until an option is picked.
	Chosen  int
	Correct bool
}

// NewChoiceList creates an unlocked list with the first option selected.
func NewChoiceList(prompt string, options []string) ChoiceList {
	return ChoiceList{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
	}
}

// Locked reports whether an option has been chosen.
func (c ChoiceList) Locked() bool {
	return c.Chosen >= 0
}

// Reveal records the outcome of the chosen option for rendering.
func (c *ChoiceList) Reveal(correct bool) {
	c.Correct = correct
}

// Update handles navigation. Enter or a digit chooses an option.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Locked() {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch s := kmsg.String(); s {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(c.Options) {
				c.Selected = i
				c.Chosen = i
			}
		}
	}

	return c, nil
}

// View renders the prompt and options.
func (c ChoiceList) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Locked() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case c.Locked() && i == c.Chosen && c.Correct:
			style = theme.Correct
		case c.Locked() && i == c.Chosen:
			style = theme.Incorrect
		case c.Locked():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
