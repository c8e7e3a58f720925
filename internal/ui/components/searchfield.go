package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// SearchField wraps bubbles/textinput with the app's styling.
type SearchField struct {
	Model textinput.Model
}

// NewSearchField creates a focused input.
func NewSearchField(placeholder string, width int) SearchField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "⌕ "
	ti.CharLimit = 80
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()
	return SearchField{Model: ti}
}

// Init returns the initial command.
func (s SearchField) Init() tea.Cmd {
	return s.Model.Focus()
}

// Update handles messages.
func (s SearchField) Update(msg tea.Msg) (SearchField, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the input inside a rounded box.
func (s SearchField) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Render(s.Model.View())
}

// Value returns the current input value.
func (s SearchField) Value() string {
	return s.Model.Value()
}

// SetValue replaces the input value.
func (s *SearchField) SetValue(v string) {
	s.Model.SetValue(v)
}
