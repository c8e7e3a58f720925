package playlist

import (
	"fmt"

	"charm.land/bubbles/v2/key"
)

// SkipSeconds is the step for the left/right time skip.
const SkipSeconds = 10

// VolumeStep is the step for the up/down volume keys.
const VolumeStep = 0.1

// Keymap holds the player's key bindings.
type Keymap struct {
	PlayPause  key.Binding
	Back       key.Binding
	Forward    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Start      key.Binding
	End        key.Binding
	Next       key.Binding
	Previous   key.Binding
	Slower     key.Binding
	Faster     key.Binding
	Mute       key.Binding
	Restart    key.Binding
	Jump       key.Binding
}

// DefaultKeymap returns the standard player bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		PlayPause:  key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "play/pause")),
		Back:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "-10s")),
		Forward:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "+10s")),
		VolumeUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "vol+")),
		VolumeDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "vol-")),
		Start:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "start")),
		End:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "end")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Previous:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev")),
		Slower:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "slower")),
		Faster:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "faster")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "listen again")),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump"),
		),
	}
}

// HandleKey applies the binding matching k. It reports whether k was
// consumed.
func (c *Controller) HandleKey(km Keymap, k fmt.Stringer) bool {
	switch {
	case key.Matches(k, km.PlayPause):
		c.TogglePlayPause()
	case key.Matches(k, km.Back):
		c.SkipTime(-SkipSeconds)
	case key.Matches(k, km.Forward):
		c.SkipTime(SkipSeconds)
	case key.Matches(k, km.VolumeUp):
		c.AdjustVolume(VolumeStep)
	case key.Matches(k, km.VolumeDown):
		c.AdjustVolume(-VolumeStep)
	case key.Matches(k, km.Start):
		c.SeekTo(0)
	case key.Matches(k, km.End):
		c.SeekTo(c.duration)
	case key.Matches(k, km.Next):
		c.Next()
	case key.Matches(k, km.Previous):
		c.Previous()
	case key.Matches(k, km.Slower):
		c.CycleRate(-1)
	case key.Matches(k, km.Faster):
		c.CycleRate(1)
	case key.Matches(k, km.Mute):
		c.ToggleMute()
	case key.Matches(k, km.Restart):
		c.Restart()
	case key.Matches(k, km.Jump):
		idx := int(k.String()[0]-'1')
		if idx >= len(c.tracks) {
			return false
		}
		c.SkipToTrack(idx)
	default:
		return false
	}
	return true
}

// ShortHelp lists the bindings shown in the footer.
func (km Keymap) ShortHelp() []key.Binding {
	return []key.Binding{km.PlayPause, km.Back, km.Forward, km.VolumeUp, km.VolumeDown, km.Next, km.Previous, km.Slower, km.Faster, km.Mute}
}
