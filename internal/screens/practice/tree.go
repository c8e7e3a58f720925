package practice

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/decisiontree"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/layout"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// TreeScreen walks the decision-tree exercise one question at a time.
type TreeScreen struct {
	session *decisiontree.Session
	log     *slog.Logger

	node decisiontree.Node
	list components.ChoiceList
	// revealed is set while the response to the last answer is shown.
	revealed bool
}

var _ screen.Screen = (*TreeScreen)(nil)

// NewTreeScreen starts a session over tree.
func NewTreeScreen(tree decisiontree.Tree, logger *slog.Logger) (*TreeScreen, error) {
	session, err := decisiontree.NewSession(tree)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &TreeScreen{session: session, log: logger.With("exercise", DecisionTreeID)}
	t.showCurrent()
	return t, nil
}

// Session exposes the exercise state.
func (t *TreeScreen) Session() *decisiontree.Session {
	return t.session
}

func (t *TreeScreen) showCurrent() {
	t.revealed = false
	node, ok := t.session.Current()
	if !ok {
		return
	}
	t.node = node
	opts := make([]string, len(node.Options))
	for i, o := range node.Options {
		opts[i] = o.Text
	}
	t.list = components.NewChoiceList(node.Question, opts)
}

func (t *TreeScreen) Init() tea.Cmd {
	return nil
}

func (t *TreeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return t, nil
	}

	if t.session.Done() && !t.revealed {
		if kmsg.String() == "r" || kmsg.String() == "enter" {
			t.session.Reset()
			t.showCurrent()
		}
		return t, nil
	}

	if t.revealed {
		switch kmsg.String() {
		case "enter", "space":
			if t.session.Done() {
				t.revealed = false
				t.log.Info("decision tree complete", "score", t.session.Score(), "answered", t.session.Answered())
			} else {
				t.showCurrent()
			}
		}
		return t, nil
	}

	var cmd tea.Cmd
	t.list, cmd = t.list.Update(kmsg)
	if t.list.Locked() {
		choice, err := t.session.Choose(t.list.Chosen)
		if err != nil {
			t.log.Warn("choice rejected", "node", t.node.ID, "error", err)
			t.showCurrent()
			return t, cmd
		}
		t.list.Reveal(choice.Correct)
		t.revealed = true
	}
	return t, cmd
}

func (t *TreeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	tree := t.session.Tree()

	var sections []string
	sections = append(sections,
		theme.Heading.Render(tree.Title),
		components.NewProgressBar("Progress", t.session.Progress(), true, cw).View(),
	)

	if t.session.Done() && !t.revealed {
		summary := fmt.Sprintf("You scored %d of %d (%d%%).", t.session.Score(), t.session.Total(), t.session.Percent())
		sections = append(sections,
			components.Card(theme.Correct.Render("Exercise complete")+"\n\n"+summary+"\n"+dim.Render("Press r to try again."), cw, theme.Success))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
	}

	card := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(t.node.Title)
	if t.node.Description != "" {
		card += "\n" + dim.Render(t.node.Description)
	}
	card += "\n\n" + t.list.View()

	if t.revealed {
		if c, ok := t.session.LastChoice(); ok {
			verdict := theme.Correct.Render("✓ ")
			if !c.Correct {
				verdict = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("→ ")
			}
			card += "\n" + verdict + lipgloss.NewStyle().Width(cw-8).Render(c.Response)
			card += "\n\n" + dim.Render("Press Enter to continue.")
		}
	}
	sections = append(sections, components.Card(card, cw, theme.Border))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n\n"))
}

func (t *TreeScreen) Title() string {
	return "Decision Tree"
}

func (t *TreeScreen) Status() string {
	return fmt.Sprintf("score %d/%d", t.session.Score(), t.session.Answered())
}

func (t *TreeScreen) KeyHints() []layout.KeyHint {
	if t.revealed {
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	if t.session.Done() {
		return []layout.KeyHint{{Key: "r", Description: "Restart"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/1-9", Description: "Answer"},
	}
}
