package home

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/router"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/screens/cards"
	"github.com/salesdojo/callcoach/internal/screens/find"
	"github.com/salesdojo/callcoach/internal/screens/glossary"
	"github.com/salesdojo/callcoach/internal/screens/practice"
	"github.com/salesdojo/callcoach/internal/screens/scripts"
	"github.com/salesdojo/callcoach/internal/ui/components"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Pack     *content.Pack
	Practice practice.Options
	// Listen opens the audio player. Nil disables the listen item.
	Listen scripts.ListenFunc
	Logger *slog.Logger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      stats
	err        error
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	h := &HomeScreen{deps: deps, stats: collectStats(deps), disabled: map[int]bool{}}

	push := func(open func() (screen.Screen, error)) func() tea.Cmd {
		return func() tea.Cmd {
			s, err := open()
			if err != nil {
				h.deps.Logger.Error("open screen", "error", err)
				h.err = err
				return nil
			}
			h.err = nil
			return router.PushCmd(s)
		}
	}

	items := []components.MenuItem{
		{Label: "LISTEN", Detail: "Play the training recordings", Action: push(func() (screen.Screen, error) {
			return deps.Listen(0)
		}), Disabled: deps.Listen == nil || len(deps.Pack.Tracks) == 0},
		{Label: "SCRIPTS", Detail: "Read the call script", Action: push(func() (screen.Screen, error) {
			return scripts.New(scripts.Options{Pack: deps.Pack, Listen: deps.Listen, Logger: deps.Logger}), nil
		})},
		{Label: "PRACTICE", Detail: "Drag-sort and decision exercises", Action: push(func() (screen.Screen, error) {
			return practice.New(deps.Practice), nil
		}), Disabled: deps.Practice.Catalog == nil},
		{Label: "FLASHCARDS", Detail: "Study the card deck", Action: push(func() (screen.Screen, error) {
			return cards.New(deps.Pack.Flashcards, deps.Practice.Seed, deps.Logger), nil
		}), Disabled: len(deps.Pack.Flashcards) == 0},
		{Label: "GLOSSARY", Detail: "Look up a term", Action: push(func() (screen.Screen, error) {
			return glossary.New(deps.Pack.Glossary, ""), nil
		})},
		{Label: "SEARCH", Detail: "Search everything", Action: push(func() (screen.Screen, error) {
			return find.New(find.Options{Pack: deps.Pack, Listen: deps.Listen, Logger: deps.Logger}), nil
		})},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	for i, item := range items {
		h.menuLabels = append(h.menuLabels, item.Label)
		if item.Disabled {
			h.disabled[i] = true
		}
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 90

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}
	sections = append(sections, renderDetail(h.menu.Items[h.menu.Selected].Detail, cw))
	if h.err != nil {
		sections = append(sections, renderError(h.err, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
