// Package find is the full-text search screen over the content pack.
package find

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/router"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/screens/glossary"
	"github.com/salesdojo/callcoach/internal/screens/scripts"
	"github.com/salesdojo/callcoach/internal/search"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/layout"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// Options configures the search screen.
type Options struct {
	Pack *content.Pack
	// Listen is passed on to script screens opened from a result.
	Listen scripts.ListenFunc
	Logger *slog.Logger
}

// Screen searches as the user types. Enter opens the selected result.
type Screen struct {
	opts  Options
	index *search.Index
	log   *slog.Logger

	field    components.SearchField
	results  []search.Result
	selected int
	offset   int
}

var (
	_ screen.Screen        = (*Screen)(nil)
	_ screen.InputCapturer = (*Screen)(nil)
)

// New creates the search screen.
func New(opts Options) *Screen {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{
		opts:  opts,
		index: search.New(opts.Pack),
		log:   logger,
		field: components.NewSearchField("Search scripts, compliance, glossary, cards…", 50),
	}
}

// Results returns the results for the current query.
func (s *Screen) Results() []search.Result {
	return s.results
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
			s.selected = min(s.selected+1, max(len(s.results)-1, 0))
			return s, nil
		case "enter":
			return s, s.open()
		}
	}

	before := s.field.Value()
	var cmd tea.Cmd
	s.field, cmd = s.field.Update(msg)
	if q := s.field.Value(); q != before {
		s.results = s.index.Search(q)
		s.selected, s.offset = 0, 0
		s.log.Debug("search", "query", q, "results", len(s.results))
	}
	return s, cmd
}

// open pushes the screen that shows the selected result in context.
func (s *Screen) open() tea.Cmd {
	if len(s.results) == 0 {
		return nil
	}
	r := s.results[s.selected]

	switch r.Kind {
	case search.KindScript:
		opts := scripts.Options{Pack: s.opts.Pack, Module: r.ModuleKey, Listen: s.opts.Listen, Logger: s.opts.Logger}
		for _, m := range s.opts.Pack.Modules {
			if m.Key == r.ModuleKey && r.Subsection < len(m.Subsections) {
				opts.Subsection = m.Subsections[r.Subsection].ID
			}
		}
		return router.PushCmd(scripts.New(opts))
	case search.KindCompliance:
		return router.PushCmd(scripts.New(scripts.Options{Pack: s.opts.Pack, Module: scripts.ComplianceTab, Logger: s.opts.Logger}))
	case search.KindGlossary:
		return router.PushCmd(glossary.New(s.opts.Pack.Glossary, r.Title))
	}
	return nil
}

// CapturingInput reports true: the query field always has focus.
func (s *Screen) CapturingInput() bool {
	return true
}

var kindColors = map[search.Kind]lipgloss.Style{
	search.KindScript:     lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
	search.KindCompliance: lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
	search.KindGlossary:   lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true),
	search.KindFlashcard:  lipgloss.NewStyle().Foreground(theme.Analysis).Bold(true),
}

func (s *Screen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	head := s.field.View()
	query := s.field.Value()

	// Each result takes two lines.
	per := max((height-lipgloss.Height(head)-4)/2, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+per {
		s.offset = s.selected - per + 1
	}

	var lines []string
	switch {
	case strings.TrimSpace(query) == "":
		lines = append(lines, dim.Render("Type to search."))
	case len(s.results) == 0:
		lines = append(lines, dim.Render(fmt.Sprintf("No results for %q.", query)))
	}
	snippetWidth := max(width-10, 20)
	for i := s.offset; i < len(s.results) && i < s.offset+per; i++ {
		r := s.results[i]
		label := kindColors[r.Kind].Render(strings.ToUpper(string(r.Kind)))
		title := r.Title
		if r.Context != "" {
			title += dim.Render(" · " + r.Context)
		}
		prefix := "  "
		if i == s.selected {
			prefix = theme.Selected.Render("▸ ")
			title = theme.Selected.Render(r.Title) + dim.Render(strings.TrimPrefix(title, r.Title))
		}
		lines = append(lines,
			prefix+label+"  "+title,
			"    "+lipgloss.NewStyle().Foreground(theme.Text).Render(search.Snippet(r.Text, query, snippetWidth)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(head + "\n\n" + strings.Join(lines, "\n"))
}

func (s *Screen) Title() string {
	return "Search"
}

func (s *Screen) Status() string {
	if s.field.Value() == "" {
		return ""
	}
	return fmt.Sprintf("%d results", len(s.results))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "type", Description: "Search"},
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
	}
}
