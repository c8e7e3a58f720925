package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/salesdojo/callcoach/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies the text on the right of the header.
type StatusProvider interface {
	Status() string
}

// Closer is implemented by screens that own resources (a media player,
// pointer grabs). The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// PointerCapturer is implemented by screens that track the pointer outside
// of button presses. While CapturingPointer is true the app asks the
// terminal to report every mouse movement.
type PointerCapturer interface {
	CapturingPointer() bool
}

// InputCapturer is implemented by screens with a focused text field. While
// CapturingInput is true, printable keys reach the screen instead of the
// app's global shortcuts.
type InputCapturer interface {
	CapturingInput() bool
}
