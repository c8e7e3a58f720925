package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/router"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// New creates an AppModel showing initial.
func New(initial screen.Screen) AppModel {
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.PopCmd()
			}
			return m, nil
		case "q":
			if m.router.Depth() == 1 && !m.capturingInput() {
				return m, tea.Quit
			}
		}

	// Screens see mouse coordinates relative to their content area.
	case tea.MouseClickMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	case tea.MouseMotionMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	case tea.MouseReleaseMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	case tea.MouseWheelMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturingInput() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	if c, ok := m.router.Active().(screen.PointerCapturer); ok && c.CapturingPointer() {
		v.MouseMode = tea.MouseModeAllMotion
	}

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints,
			layout.KeyHint{Key: "Esc", Description: "Back"},
			layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
		)
	} else if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "q", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program with initial as the bottom screen.
// Every screen still on the stack is closed when the program exits.
func Run(initial screen.Screen) error {
	p := tea.NewProgram(New(initial))
	final, err := p.Run()
	if m, ok := final.(AppModel); ok {
		m.router.CloseAll()
	}
	if err != nil {
		slog.Error("program exited with error", "error", err)
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
