// Package practice holds the exercise screens: the exercise picker, the
// drag-sort exercises and the decision tree.
package practice

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/decisiontree"
	"github.com/salesdojo/callcoach/internal/dragsort"
	"github.com/salesdojo/callcoach/internal/exercises"
	"github.com/salesdojo/callcoach/internal/logging"
	"github.com/salesdojo/callcoach/internal/router"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// DecisionTreeID selects the decision tree in Open.
const DecisionTreeID = "decision-tree"

// Options holds what the exercise screens need.
type Options struct {
	Catalog *exercises.Catalog
	Tree    decisiontree.Tree
	// Seed fixes the shuffle. Zero shuffles randomly.
	Seed   uint64
	Logger *slog.Logger
}

// IDs lists every exercise Open accepts.
func (o Options) IDs() []string {
	return append(o.Catalog.IDs(), DecisionTreeID)
}

// Open creates the screen for exercise id.
func Open(opts Options, id string) (screen.Screen, error) {
	logger := logging.Session(opts.Logger, "exercise")

	if id == DecisionTreeID {
		return NewTreeScreen(opts.Tree, logger)
	}

	ex, ok := opts.Catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown exercise %q", id)
	}
	var engineOpts []dragsort.Option
	if opts.Seed != 0 {
		engineOpts = append(engineOpts, dragsort.WithSeed(opts.Seed))
	}
	engine, err := opts.Catalog.NewEngine(id, engineOpts...)
	if err != nil {
		return nil, err
	}
	return NewSortScreen(ex, engine, logger), nil
}

// ListScreen lets the user pick an exercise.
type ListScreen struct {
	opts Options
	menu components.Menu
	err  error
}

var _ screen.Screen = (*ListScreen)(nil)

// New creates the exercise picker.
func New(opts Options) *ListScreen {
	l := &ListScreen{opts: opts}

	var items []components.MenuItem
	for _, ex := range opts.Catalog.List() {
		items = append(items, components.MenuItem{Label: ex.Title, Detail: ex.Summary, Action: l.open(ex.ID)})
	}
	title, summary := opts.Tree.Title, opts.Tree.Summary
	if title == "" {
		title = "Decision Tree"
	}
	items = append(items, components.MenuItem{Label: title, Detail: summary, Action: l.open(DecisionTreeID)})

	l.menu = components.NewMenu(items)
	return l
}

func (l *ListScreen) open(id string) func() tea.Cmd {
	return func() tea.Cmd {
		s, err := Open(l.opts, id)
		if err != nil {
			l.err = err
			return nil
		}
		l.err = nil
		return router.PushCmd(s)
	}
}

func (l *ListScreen) Init() tea.Cmd {
	return nil
}

func (l *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *ListScreen) View(width, height int) string {
	out := theme.Heading.Render("Practice exercises") + "\n\n" + l.menu.View()
	if l.err != nil {
		out += "\n" + theme.Incorrect.Render(l.err.Error())
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

func (l *ListScreen) Title() string {
	return "Practice"
}
