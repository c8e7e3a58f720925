// Package glossary is the glossary browser: a filter field over the term
// list with the selected definition underneath.
package glossary

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/layout"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// Screen browses glossary terms.
type Screen struct {
	terms    []content.Term
	field    components.SearchField
	category string

	matches  []int
	selected int
	offset   int
}

var (
	_ screen.Screen        = (*Screen)(nil)
	_ screen.InputCapturer = (*Screen)(nil)
)

// New creates the browser with an optional initial filter.
func New(terms []content.Term, filter string) *Screen {
	s := &Screen{
		terms: terms,
		field: components.NewSearchField("Filter terms…", 40),
	}
	s.field.SetValue(filter)
	s.filter()
	return s
}

// Categories returns the distinct term categories, sorted.
func (s *Screen) Categories() []string {
	var cats []string
	for _, t := range s.terms {
		if t.Category != "" && !slices.Contains(cats, t.Category) {
			cats = append(cats, t.Category)
		}
	}
	slices.Sort(cats)
	return cats
}

func (s *Screen) filter() {
	q := strings.ToLower(strings.TrimSpace(s.field.Value()))
	s.matches = s.matches[:0]
	for i, t := range s.terms {
		if s.category != "" && t.Category != s.category {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(t.Term), q) || strings.Contains(strings.ToLower(t.Definition), q) {
			s.matches = append(s.matches, i)
		}
	}
	s.selected = min(s.selected, max(len(s.matches)-1, 0))
}

// Matches returns the terms passing the current filter.
func (s *Screen) Matches() []content.Term {
	out := make([]content.Term, len(s.matches))
	for i, m := range s.matches {
		out[i] = s.terms[m]
	}
	return out
}

func (s *Screen) Init() tea.Cmd {
	return s.field.Init()
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up", "ctrl+p":
			s.selected = max(s.selected-1, 0)
			return s, nil
		case "down", "ctrl+n":
			s.selected = min(s.selected+1, max(len(s.matches)-1, 0))
			return s, nil
		case "tab":
			cats := s.Categories()
			i := slices.Index(cats, s.category)
			// -1 (all) steps to the first category, the last wraps to all.
			if i+1 < len(cats) {
				s.category = cats[i+1]
			} else {
				s.category = ""
			}
			s.filter()
			return s, nil
		}
	}

	before := s.field.Value()
	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	if s.field.Value() != before {
		s.selected = 0
		s.filter()
	}
	return s, cmd
}

// CapturingInput reports true: the filter field always has focus.
func (s *Screen) CapturingInput() bool {
	return true
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	category := "all categories"
	if s.category != "" {
		category = s.category
	}
	head := s.field.View() + "  " + dim.Render(category)

	var detail string
	if len(s.matches) > 0 {
		t := s.terms[s.matches[s.selected]]
		detail = components.Card(
			theme.Heading.Render(t.Term)+"\n"+lipgloss.NewStyle().Foreground(theme.Text).Render(t.Definition),
			cw, theme.Primary)
	} else {
		detail = dim.Render("No matching terms.")
	}

	listHeight := max(height-lipgloss.Height(head)-lipgloss.Height(detail)-3, 3)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+listHeight {
		s.offset = s.selected - listHeight + 1
	}

	var lines []string
	for i := s.offset; i < len(s.matches) && i < s.offset+listHeight; i++ {
		t := s.terms[s.matches[i]]
		label := fmt.Sprintf("%-28s %s", t.Term, dim.Render(t.Category))
		if i == s.selected {
			lines = append(lines, theme.Selected.Render("▸ ")+theme.Selected.Render(label))
		} else {
			lines = append(lines, "  "+theme.Unselected.Render(label))
		}
	}
	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		head + "\n\n" + strings.Join(lines, "\n") + "\n" + detail)
}

func (s *Screen) Title() string {
	return "Glossary"
}

func (s *Screen) Status() string {
	return fmt.Sprintf("%d/%d terms", len(s.matches), len(s.terms))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "type", Description: "Filter"},
		{Key: "↑↓", Description: "Select"},
		{Key: "Tab", Description: "Category"},
	}
}
