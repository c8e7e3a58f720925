// Package player is the audio training player: the playlist controller
// bound to keys, mouse and a media backend.
package player

import (
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/media"
	"github.com/salesdojo/callcoach/internal/playlist"
	"github.com/salesdojo/callcoach/internal/pointer"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/layout"
)

// DefaultTick is how often a host-clocked element is advanced.
const DefaultTick = 250 * time.Millisecond

// Options configures a player screen.
type Options struct {
	Pack    *content.Pack
	Element media.Element
	// Start is the track cued when the screen opens.
	Start    int
	Autoplay bool
	Tick     time.Duration

	Resolver    playlist.Resolver
	SettleDelay time.Duration
	// Volume is the starting level; nil means full volume.
	Volume *float64
	Rate   float64
	Logger *slog.Logger
}

// Screen is the player. It owns the element through its controller.
type Screen struct {
	opts   Options
	ctrl   *playlist.Controller
	sched  *loopScheduler
	keys   playlist.Keymap
	log    *slog.Logger
	ticker media.Ticker

	tracker *pointer.Tracker
	grab    *pointer.Grab

	done   chan struct{}
	closed bool

	// Layout from the last View, used to hit-test the mouse.
	seek    components.SeekBar
	seekRow int
	listTop int
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.Closer          = (*Screen)(nil)
	_ screen.PointerCapturer = (*Screen)(nil)
)

// New creates a player over the pack's playlist.
func New(opts Options) *Screen {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Screen{
		opts:    opts,
		keys:    playlist.DefaultKeymap(),
		log:     logger,
		tracker: pointer.NewTracker(),
		done:    make(chan struct{}),
		seekRow: -1,
		listTop: -1,
	}
	s.sched = &loopScheduler{owner: s}
	if t, ok := opts.Element.(media.Ticker); ok {
		s.ticker = t
	}

	s.ctrl = playlist.New(opts.Pack.Tracks, opts.Element, s.sched, playlist.Options{
		Resolver:    opts.Resolver,
		SettleDelay: opts.SettleDelay,
		Volume:      opts.Volume,
		Rate:        opts.Rate,
		Logger:      logger,
		OnTrackCompleted: func(i int) {
			logger.Info("track completed", "track", opts.Pack.Tracks[i].ModuleKey)
		},
		OnAllTracksCompleted: func() {
			logger.Info("playlist completed")
		},
	})
	return s
}

// Controller exposes the playback session.
func (s *Screen) Controller() *playlist.Controller {
	return s.ctrl
}

func (s *Screen) Init() tea.Cmd {
	start := min(max(s.opts.Start, 0), max(s.ctrl.TrackCount()-1, 0))
	if s.opts.Autoplay {
		s.ctrl.LoadAndPlay(start)
	} else {
		s.ctrl.Cue(start)
	}

	cmds := []tea.Cmd{waitForEvent(s, s.opts.Element.Events(), s.done), s.sched.drain()}
	if s.ticker != nil {
		cmds = append(cmds, tick(s, s.opts.Tick))
	}
	return tea.Batch(cmds...)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.closed {
		return s, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case mediaEventMsg:
		if msg.owner != s {
			return s, nil
		}
		s.ctrl.HandleEvent(msg.event)
		cmd = waitForEvent(s, s.opts.Element.Events(), s.done)

	case tickMsg:
		if msg.owner != s {
			return s, nil
		}
		s.ticker.Advance(s.opts.Tick.Seconds())
		cmd = tick(s, s.opts.Tick)

	case settleMsg:
		if msg.owner != s {
			return s, nil
		}
		msg.fn()

	case tea.KeyPressMsg:
		if s.ctrl.Finished() && msg.String() == "enter" {
			s.ctrl.Restart()
			break
		}
		s.ctrl.HandleKey(s.keys, msg)

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			s.click(msg.X, msg.Y)
		}

	case tea.MouseMotionMsg:
		s.tracker.Move(pointer.Point{X: msg.X, Y: msg.Y})

	case tea.MouseReleaseMsg:
		s.tracker.Up(pointer.Point{X: msg.X, Y: msg.Y})
	}

	return s, tea.Batch(cmd, s.sched.drain())
}

// click starts a seek drag on the bar or selects a playlist row.
func (s *Screen) click(x, y int) {
	if y == s.seekRow && s.seek.Contains(x) {
		s.beginSeekDrag(x)
		return
	}
	if s.listTop >= 0 {
		if i := y - s.listTop; i >= 0 && i < s.ctrl.TrackCount() {
			s.ctrl.SkipToTrack(i)
		}
	}
}

func (s *Screen) beginSeekDrag(x int) {
	if !s.ctrl.BeginDrag() {
		return
	}
	s.ctrl.UpdateDrag(s.seek.FractionAt(x))

	s.grab.Release()
	s.grab = s.tracker.Acquire(pointer.Handlers{
		Move: func(p pointer.Point) {
			s.ctrl.UpdateDrag(s.seek.FractionAt(p.X))
		},
		Up: func(p pointer.Point) {
			s.ctrl.UpdateDrag(s.seek.FractionAt(p.X))
			s.ctrl.EndDrag()
			s.grab.Release()
		},
	})
}

// CapturingPointer reports whether a seek drag holds the pointer.
func (s *Screen) CapturingPointer() bool {
	return s.tracker.Active()
}

// Close stops playback and drops every grab. Safe to call twice.
func (s *Screen) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.tracker.ReleaseAll()
	s.ctrl.Close()
	close(s.done)
}

func (s *Screen) Title() string {
	return "Training Audio"
}

// Status shows the track counter and clock in the header.
func (s *Screen) Status() string {
	return fmt.Sprintf("%d/%d  %s / %s",
		s.ctrl.CurrentIndex()+1, s.ctrl.TrackCount(),
		playlist.FormatTime(s.ctrl.DisplayPosition()), playlist.FormatTime(s.ctrl.Duration()))
}

func (s *Screen) KeyHints() []layout.KeyHint {
	k := s.keys
	hints := layout.HintsFromBindings([]key.Binding{k.PlayPause, k.Back, k.Forward, k.Previous, k.Next, k.Faster, k.Mute})
	if s.ctrl.Finished() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "listen again"})
	}
	return hints
}
