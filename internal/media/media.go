// Package media provides the single-track playback primitive the playlist
// controller drives, plus the backends that implement it.
package media

import "errors"

// ErrPlaybackDenied is returned by Play when the backend refuses to start
// playback (autoplay policy, player busy, player not running).
var ErrPlaybackDenied = errors.New("playback denied")

// ErrUnavailable is returned when the backend process cannot be reached.
var ErrUnavailable = errors.New("media backend unavailable")

// Element is a single media element. It holds one source at a time and
// reports progress asynchronously through Events.
type Element interface {
	SetSource(url string)
	Source() string
	Load() error
	Play() error
	Pause()

	CurrentTime() float64
	SetCurrentTime(seconds float64)
	// Duration returns 0 until metadata for the current source is known.
	Duration() float64

	Volume() float64
	SetVolume(v float64)
	PlaybackRate() float64
	SetPlaybackRate(r float64)

	Events() <-chan Event
	Close() error
}

// Ticker is implemented by elements that advance on the host's clock
// instead of their own.
type Ticker interface {
	Advance(elapsedSeconds float64)
}

// EventKind identifies a media event.
type EventKind int

const (
	EventTimeUpdate EventKind = iota
	EventMetadataLoaded
	EventEnded
	EventPlay
	EventPause
)

func (k EventKind) String() string {
	switch k {
	case EventTimeUpdate:
		return "timeupdate"
	case EventMetadataLoaded:
		return "loadedmetadata"
	case EventEnded:
		return "ended"
	case EventPlay:
		return "play"
	case EventPause:
		return "pause"
	default:
		return "unknown"
	}
}

// Event is emitted by an Element. Source is the source that was assigned
// when the event was produced, so consumers can drop events from a source
// they have already abandoned.
type Event struct {
	Kind   EventKind
	Source string
	// Value carries the position for time updates and the duration for
	// metadata events.
	Value float64
}
