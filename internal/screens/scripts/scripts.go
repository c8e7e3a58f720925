// Package scripts renders the call-script reference: one tab per script
// module plus a tab for the compliance requirements.
package scripts

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/router"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/layout"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// ListenFunc opens the audio player at a playlist index.
type ListenFunc func(start int) (screen.Screen, error)

// Options configures the reference screen.
type Options struct {
	Pack *content.Pack
	// Module selects the initial tab by module key.
	Module string
	// Subsection scrolls the initial tab to a subsection id.
	Subsection string
	// Listen is optional. When set, p plays the module's track.
	Listen ListenFunc
	Logger *slog.Logger
}

// Screen is the script reference.
type Screen struct {
	opts Options
	log  *slog.Logger

	tab int
	vp  viewport.Model

	width, height int
	// anchors maps subsection ids to content lines for the current tab.
	anchors map[string]int
	pending string
	err     error
}

var _ screen.Screen = (*Screen)(nil)

// New opens the reference.
func New(opts Options) *Screen {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Screen{opts: opts, log: logger, pending: opts.Subsection}
	for i, m := range opts.Pack.Modules {
		if m.Key == opts.Module {
			s.tab = i
		}
	}
	if opts.Module == ComplianceTab {
		s.tab = len(opts.Pack.Modules)
	}
	s.vp = viewport.New()
	s.vp.SoftWrap = true
	s.vp.MouseWheelEnabled = true
	return s
}

// ComplianceTab selects the compliance requirements tab in Options.Module.
const ComplianceTab = "compliance"

func (s *Screen) tabs() int {
	return len(s.opts.Pack.Modules) + 1
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "right", "l":
			s.switchTab((s.tab + 1) % s.tabs())
			return s, nil
		case "shift+tab", "left", "h":
			s.switchTab((s.tab - 1 + s.tabs()) % s.tabs())
			return s, nil
		case "home", "g":
			s.vp.GotoTop()
			return s, nil
		case "end", "G":
			s.vp.GotoBottom()
			return s, nil
		case "p":
			return s, s.listen()
		}
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *Screen) switchTab(i int) {
	s.tab = i
	s.err = nil
	s.vp.GotoTop()
	s.refresh()
}

func (s *Screen) module() (content.Module, bool) {
	if s.tab < len(s.opts.Pack.Modules) {
		return s.opts.Pack.Modules[s.tab], true
	}
	return content.Module{}, false
}

func (s *Screen) listen() tea.Cmd {
	m, ok := s.module()
	if !ok || s.opts.Listen == nil {
		return nil
	}
	idx, ok := s.opts.Pack.TrackIndex(m.Track)
	if !ok {
		s.err = fmt.Errorf("no recording for %s", m.Title)
		return nil
	}
	player, err := s.opts.Listen(idx)
	if err != nil {
		s.log.Error("open player", "module", m.Key, "error", err)
		s.err = err
		return nil
	}
	return router.PushCmd(player)
}

// refresh re-renders the current tab into the viewport.
func (s *Screen) refresh() {
	cw := max(s.width-4, 20)
	var body string
	if m, ok := s.module(); ok {
		body, s.anchors = RenderModule(m, cw)
	} else {
		body, s.anchors = RenderCompliance(s.opts.Pack.Compliance, cw), nil
	}
	s.vp.SetContent(body)
}

func (s *Screen) View(width, height int) string {
	tabs := s.renderTabs(width)
	footer := ""
	if s.err != nil {
		footer = "\n" + theme.Incorrect.Render("  "+s.err.Error())
	}

	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.refresh()
	}
	s.vp.SetWidth(max(width-2, 10))
	s.vp.SetHeight(max(height-lipgloss.Height(tabs)-lipgloss.Height(footer)-1, 3))

	if s.pending != "" {
		if line, ok := s.anchors[s.pending]; ok {
			s.vp.SetYOffset(line)
		}
		s.pending = ""
	}

	return tabs + "\n" + lipgloss.NewStyle().PaddingLeft(1).Render(s.vp.View()) + footer
}

func (s *Screen) renderTabs(width int) string {
	var parts []string
	for i, m := range s.opts.Pack.Modules {
		parts = append(parts, tabLabel(m.Key, theme.Hex(m.Color), i == s.tab))
	}
	parts = append(parts, tabLabel("COMPLIANCE", theme.Error, s.tab == len(s.opts.Pack.Modules)))
	return lipgloss.NewStyle().Width(width).Padding(1, 1, 0).Render(strings.Join(parts, " "))
}

func tabLabel(label string, accent color.Color, active bool) string {
	if active {
		return components.Badge(label, accent)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1).Render(label)
}

func (s *Screen) Title() string {
	if m, ok := s.module(); ok {
		return "Scripts: " + m.Title
	}
	return "Scripts: Compliance"
}

func (s *Screen) Status() string {
	return fmt.Sprintf("%d/%d  %3.0f%%", s.tab+1, s.tabs(), s.vp.ScrollPercent()*100)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next section"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if _, ok := s.module(); ok && s.opts.Listen != nil {
		hints = append(hints, layout.KeyHint{Key: "p", Description: "Play recording"})
	}
	return hints
}
