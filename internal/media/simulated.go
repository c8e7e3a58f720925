package media

import (
	"sync"
)

// eventBuffer is the capacity of an element's event channel.
const eventBuffer = 256

// DurationFunc resolves the length of a source in seconds. A return of 0
// means the source has no metadata.
type DurationFunc func(source string) float64

// Simulated is an Element that plays nothing and advances a virtual clock
// whenever the host calls Advance. It is the default backend and the one
// used for walkthroughs on machines without an audio player.
type Simulated struct {
	mu sync.Mutex

	durationOf DurationFunc
	denyNext   bool

	source   string
	loaded   bool
	playing  bool
	position float64
	duration float64
	volume   float64
	rate     float64

	events chan Event
	done   chan struct{}
	closed bool
}

var _ Element = (*Simulated)(nil)
var _ Ticker = (*Simulated)(nil)

// SimulatedOption configures a Simulated element.
type SimulatedOption func(*Simulated)

// WithAutoplayBlock makes the first Play call fail with ErrPlaybackDenied,
// mimicking a host that blocks playback until the user interacts.
func WithAutoplayBlock() SimulatedOption {
	return func(s *Simulated) { s.denyNext = true }
}

// NewSimulated creates a Simulated element.
func NewSimulated(durationOf DurationFunc, opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		durationOf: durationOf,
		volume:     1,
		rate:       1,
		events:     make(chan Event, eventBuffer),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulated) SetSource(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = url
	s.loaded = false
	s.playing = false
	s.position = 0
	s.duration = 0
}

func (s *Simulated) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Load resolves the duration and emits loadedmetadata when it is known.
func (s *Simulated) Load() error {
	s.mu.Lock()
	if s.source == "" {
		s.mu.Unlock()
		return nil
	}
	s.loaded = true
	s.position = 0
	if s.durationOf != nil {
		s.duration = s.durationOf(s.source)
	}
	ev := Event{Kind: EventMetadataLoaded, Source: s.source, Value: s.duration}
	known := s.duration > 0
	s.mu.Unlock()

	if known {
		s.emit(ev, true)
	}
	return nil
}

func (s *Simulated) Play() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrUnavailable
	}
	if s.denyNext {
		s.denyNext = false
		s.mu.Unlock()
		return ErrPlaybackDenied
	}
	if !s.loaded {
		s.mu.Unlock()
		return ErrPlaybackDenied
	}
	if s.playing {
		s.mu.Unlock()
		return nil
	}
	s.playing = true
	ev := Event{Kind: EventPlay, Source: s.source}
	s.mu.Unlock()

	s.emit(ev, true)
	return nil
}

func (s *Simulated) Pause() {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = false
	ev := Event{Kind: EventPause, Source: s.source}
	s.mu.Unlock()

	s.emit(ev, true)
}

func (s *Simulated) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Simulated) SetCurrentTime(seconds float64) {
	s.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	if s.duration > 0 && seconds > s.duration {
		seconds = s.duration
	}
	s.position = seconds
	ev := Event{Kind: EventTimeUpdate, Source: s.source, Value: seconds}
	s.mu.Unlock()

	s.emit(ev, false)
}

func (s *Simulated) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

func (s *Simulated) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *Simulated) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
}

func (s *Simulated) PlaybackRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rate
}

func (s *Simulated) SetPlaybackRate(r float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rate = r
}

// Advance moves the virtual clock forward by elapsed wall seconds scaled
// by the playback rate. Reaching the end emits ended and stops.
func (s *Simulated) Advance(elapsedSeconds float64) {
	s.mu.Lock()
	if !s.playing || s.duration <= 0 {
		s.mu.Unlock()
		return
	}
	s.position += elapsedSeconds * s.rate
	ended := false
	if s.position >= s.duration {
		s.position = s.duration
		s.playing = false
		ended = true
	}
	update := Event{Kind: EventTimeUpdate, Source: s.source, Value: s.position}
	end := Event{Kind: EventEnded, Source: s.source}
	s.mu.Unlock()

	s.emit(update, false)
	if ended {
		s.emit(end, true)
	}
}

func (s *Simulated) Events() <-chan Event {
	return s.events
}

func (s *Simulated) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.playing = false
		close(s.done)
	}
	return nil
}

// emit delivers ev. Time updates are dropped when the buffer is full; other
// events wait for room unless the element is closed.
func (s *Simulated) emit(ev Event, must bool) {
	if !must {
		select {
		case s.events <- ev:
		default:
		}
		return
	}
	select {
	case s.events <- ev:
	case <-s.done:
	}
}
