package player

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/salesdojo/callcoach/internal/media"
)

// Messages carry their owning screen so a stale pump or timer from a
// closed player is ignored by the next one.

type mediaEventMsg struct {
	owner *Screen
	event media.Event
}

type tickMsg struct {
	owner *Screen
}

type settleMsg struct {
	owner *Screen
	fn    func()
}

// waitForEvent blocks until the element emits or the screen closes.
func waitForEvent(owner *Screen, events <-chan media.Event, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-events:
			return mediaEventMsg{owner: owner, event: ev}
		case <-done:
			return nil
		}
	}
}

func tick(owner *Screen, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{owner: owner}
	})
}

// loopScheduler turns playlist.Scheduler calls into commands that deliver
// the deferred function back to Update.
type loopScheduler struct {
	owner   *Screen
	pending []tea.Cmd
	// later builds the command for one call; nil uses a tea.Tick.
	later func(d time.Duration, fn func()) tea.Cmd
}

func (s *loopScheduler) After(d time.Duration, fn func()) {
	if s.later != nil {
		s.pending = append(s.pending, s.later(d, fn))
		return
	}
	owner := s.owner
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return settleMsg{owner: owner, fn: fn}
	}))
}

func (s *loopScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
