// Package playlist coordinates a single media element against a fixed,
// ordered list of training tracks: transport state, seeking, seek-bar
// dragging, completion tracking and auto-advance.
package playlist

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/salesdojo/callcoach/internal/media"
)

// DefaultSettleDelay separates a track's end from the next track's load so
// the new play request does not race the element's own stop.
const DefaultSettleDelay = 100 * time.Millisecond

// Transport is the playback transport state.
type Transport int

const (
	Idle Transport = iota
	Loading
	Playing
	Paused
)

func (t Transport) String() string {
	switch t {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Scheduler runs fn on the caller's event loop after d.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Options configures a Controller.
type Options struct {
	Resolver    Resolver
	SettleDelay time.Duration
	// Volume is the initial level in [0,1]; nil means 1.
	Volume *float64
	// Rate is the initial playback rate; zero means 1.
	Rate   float64
	Logger *slog.Logger

	OnTrackCompleted     func(index int)
	OnAllTracksCompleted func()
}

// Controller owns the playback session for one player lifetime.
type Controller struct {
	tracks []Track
	el     media.Element
	sched  Scheduler
	opts   Options
	log    *slog.Logger

	index       int
	loadedIndex int
	source      string
	transport   Transport
	position    float64
	duration    float64
	completed   map[int]bool
	finished    bool

	rate   float64
	volume float64
	muted  bool

	drag *DragState

	// gen changes on every track switch; deferred work compares it to
	// decide whether it is still wanted.
	gen    uint64
	closed bool
}

// New creates a Controller over tracks. The controller takes ownership of
// el and closes it in Close.
func New(tracks []Track, el media.Element, sched Scheduler, opts Options) *Controller {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		tracks:      tracks,
		el:          el,
		sched:       sched,
		opts:        opts,
		log:         logger,
		loadedIndex: -1,
		completed:   make(map[int]bool),
		rate:        1,
		volume:      1,
	}
	if opts.Rate > 0 {
		c.rate = clampRate(opts.Rate)
	}
	if opts.Volume != nil {
		c.volume = clamp01(*opts.Volume)
	}
	return c
}

// TrackCount returns the number of tracks in the playlist.
func (c *Controller) TrackCount() int {
	return len(c.tracks)
}

// Tracks returns the playlist.
func (c *Controller) Tracks() []Track {
	return c.tracks
}

// CurrentTrack returns the track at the current index.
func (c *Controller) CurrentTrack() (Track, bool) {
	if c.index < 0 || c.index >= len(c.tracks) {
		return Track{}, false
	}
	return c.tracks[c.index], true
}

// CurrentIndex returns the current track index.
func (c *Controller) CurrentIndex() int { return c.index }

// Transport returns the transport state.
func (c *Controller) Transport() Transport { return c.transport }

// Position returns the committed playback position in seconds.
func (c *Controller) Position() float64 { return c.position }

// Duration returns the current track's duration, or 0 when unknown.
func (c *Controller) Duration() float64 { return c.duration }

// Finished reports whether the last track has played to its end.
func (c *Controller) Finished() bool { return c.finished }

// Completed returns the completed track indices in ascending order.
func (c *Controller) Completed() []int {
	out := make([]int, 0, len(c.completed))
	for i := range c.completed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// IsCompleted reports whether track i has played to its end this session.
func (c *Controller) IsCompleted(i int) bool { return c.completed[i] }

// Cue assigns and loads track index without starting playback.
func (c *Controller) Cue(index int) {
	if !c.switchTo(index) {
		return
	}
	c.transport = Idle
}

// LoadAndPlay switches to track index and starts it. Calls made while a
// load is in flight are ignored. A play rejection leaves the session
// Paused; the user can start playback manually.
func (c *Controller) LoadAndPlay(index int) {
	if !c.switchTo(index) {
		return
	}
	c.play()
}

// switchTo performs the load half of LoadAndPlay and leaves the transport
// in Loading on success.
func (c *Controller) switchTo(index int) bool {
	if c.closed || index < 0 || index >= len(c.tracks) {
		return false
	}
	if c.transport == Loading {
		return false
	}

	c.gen++
	c.transport = Loading
	c.finished = false
	c.drag = nil

	c.el.Pause()
	c.el.SetCurrentTime(0)

	src := c.opts.Resolver.Resolve(c.tracks[index])
	c.source = src
	c.index = index
	c.loadedIndex = -1
	c.position = 0
	c.duration = 0

	c.el.SetSource(src)
	c.el.SetPlaybackRate(c.rate)
	c.el.SetVolume(c.effectiveVolume())

	if err := c.el.Load(); err != nil {
		c.log.Warn("track load failed", "track", c.tracks[index].ModuleKey, "error", err)
		c.transport = Paused
		return false
	}
	c.loadedIndex = index
	if d := c.el.Duration(); validSeconds(d) && d > 0 {
		c.duration = d
	}
	return true
}

// play attempts playback from Loading, Paused or Idle.
func (c *Controller) play() {
	c.transport = Loading
	if err := c.el.Play(); err != nil {
		c.log.Debug("playback denied", "track", c.index, "error", err)
		c.transport = Paused
		return
	}
	c.transport = Playing
}

// TogglePlayPause pauses when playing and plays otherwise. It is ignored
// while a load is in flight.
func (c *Controller) TogglePlayPause() {
	if c.closed || len(c.tracks) == 0 || c.transport == Loading {
		return
	}
	if c.transport == Playing {
		c.el.Pause()
		c.transport = Paused
		return
	}
	if c.finished {
		c.Restart()
		return
	}
	if c.loadedIndex != c.index {
		c.LoadAndPlay(c.index)
		return
	}
	c.play()
}

// SkipToTrack selects a track directly from the playlist.
func (c *Controller) SkipToTrack(index int) {
	c.LoadAndPlay(index)
}

// Previous moves to the previous track. No-op on the first track.
func (c *Controller) Previous() {
	if c.index > 0 {
		c.SkipToTrack(c.index - 1)
	}
}

// Next moves to the next track. No-op on the last track.
func (c *Controller) Next() {
	if c.index < len(c.tracks)-1 {
		c.SkipToTrack(c.index + 1)
	}
}

// Restart clears completion and plays from the first track.
func (c *Controller) Restart() {
	if c.closed || len(c.tracks) == 0 {
		return
	}
	c.completed = make(map[int]bool)
	c.finished = false
	c.LoadAndPlay(0)
}

// SkipTime moves the position by delta seconds within the current track.
func (c *Controller) SkipTime(delta float64) {
	if c.duration <= 0 {
		return
	}
	c.SeekTo(c.position + delta)
}

// SeekTo sets the position, clamped into [0, duration]. Ignored until the
// duration is known.
func (c *Controller) SeekTo(seconds float64) {
	if c.closed || c.duration <= 0 || !validSeconds(seconds) {
		return
	}
	seconds = math.Max(0, math.Min(seconds, c.duration))
	c.position = seconds
	c.el.SetCurrentTime(seconds)
}

// Rates are the playback-rate presets, slowest first.
var Rates = []float64{0.5, 0.75, 1, 1.25, 1.5, 2}

// Rate returns the playback rate.
func (c *Controller) Rate() float64 { return c.rate }

// SetPlaybackRate applies r (clamped to the preset range) immediately and
// keeps it for later loads.
func (c *Controller) SetPlaybackRate(r float64) {
	if !validSeconds(r) {
		return
	}
	c.rate = clampRate(r)
	c.el.SetPlaybackRate(c.rate)
}

// CycleRate steps through Rates by step without wrapping.
func (c *Controller) CycleRate(step int) {
	i := sort.SearchFloat64s(Rates, c.rate)
	if i < len(Rates) && Rates[i] != c.rate && step < 0 {
		// Between presets: the lower neighbour is one step down.
		i--
		step++
	}
	i += step
	if i < 0 {
		i = 0
	}
	if i >= len(Rates) {
		i = len(Rates) - 1
	}
	c.SetPlaybackRate(Rates[i])
}

// Volume returns the stored volume level, ignoring mute.
func (c *Controller) Volume() float64 { return c.volume }

// Muted reports whether output is muted.
func (c *Controller) Muted() bool { return c.muted }

// SetVolume sets the volume, clamped to [0,1]. Raising the volume above
// zero unmutes.
func (c *Controller) SetVolume(v float64) {
	if !validSeconds(v) {
		return
	}
	c.volume = math.Round(clamp01(v)*100) / 100
	if c.volume > 0 {
		c.muted = false
	}
	c.el.SetVolume(c.effectiveVolume())
}

// AdjustVolume changes the volume by delta.
func (c *Controller) AdjustVolume(delta float64) {
	c.SetVolume(c.volume + delta)
}

// ToggleMute silences output without losing the stored volume.
func (c *Controller) ToggleMute() {
	c.muted = !c.muted
	c.el.SetVolume(c.effectiveVolume())
}

func (c *Controller) effectiveVolume() float64 {
	if c.muted {
		return 0
	}
	return c.volume
}

// HandleEvent applies an event from the media element. Events produced for
// a source other than the one currently assigned are dropped, as are events
// arriving while an advance to the next track is pending.
func (c *Controller) HandleEvent(ev media.Event) {
	if c.closed || ev.Source != c.source || c.loadedIndex != c.index {
		return
	}
	switch ev.Kind {
	case media.EventTimeUpdate:
		c.OnTimeUpdate(ev.Value)
	case media.EventMetadataLoaded:
		c.OnMetadataLoaded(ev.Value)
	case media.EventEnded:
		c.OnEnded()
	case media.EventPlay:
		c.OnPlay()
	case media.EventPause:
		c.OnPause()
	}
}

// OnTimeUpdate records the element's position. While the seek handle is
// dragged the committed position is left alone.
func (c *Controller) OnTimeUpdate(t float64) {
	if c.drag != nil || !validSeconds(t) {
		return
	}
	if t < 0 {
		t = 0
	}
	if c.duration > 0 && t > c.duration {
		t = c.duration
	}
	c.position = t
}

// OnMetadataLoaded records the current track's duration.
func (c *Controller) OnMetadataLoaded(d float64) {
	if !validSeconds(d) || d <= 0 {
		return
	}
	c.duration = d
	if c.position > d {
		c.position = d
	}
}

// OnPlay mirrors a play started outside the controller.
func (c *Controller) OnPlay() {
	if c.transport == Paused || c.transport == Idle {
		c.transport = Playing
	}
}

// OnPause mirrors a pause issued outside the controller.
func (c *Controller) OnPause() {
	if c.transport == Playing {
		c.transport = Paused
	}
}

// OnEnded marks the current track complete and advances. The next track
// is loaded after the settle delay; if the user switches tracks in the
// meantime the deferred load is dropped.
func (c *Controller) OnEnded() {
	if c.closed || len(c.tracks) == 0 {
		return
	}
	ended := c.index
	c.completed[ended] = true
	c.position = c.duration
	if c.opts.OnTrackCompleted != nil {
		c.opts.OnTrackCompleted(ended)
	}

	next := ended + 1
	if next >= len(c.tracks) {
		c.transport = Idle
		if !c.finished {
			c.finished = true
			if c.opts.OnAllTracksCompleted != nil {
				c.opts.OnAllTracksCompleted()
			}
		}
		return
	}

	c.gen++
	gen := c.gen
	c.index = next
	c.position = 0
	c.duration = 0
	c.transport = Paused

	c.sched.After(c.opts.SettleDelay, func() {
		if c.closed || c.gen != gen || c.index != next {
			return
		}
		c.LoadAndPlay(next)
	})
}

// Progress returns overall playlist progress in [0,1]. It is 0 while the
// current track's duration is unknown.
func (c *Controller) Progress() float64 {
	if c.duration <= 0 || len(c.tracks) == 0 {
		return 0
	}
	p := (float64(c.index) + c.DisplayPosition()/c.duration) / float64(len(c.tracks))
	return clamp01(p)
}

// TrackProgress returns progress within the current track in [0,1].
func (c *Controller) TrackProgress() float64 {
	if c.duration <= 0 {
		return 0
	}
	return clamp01(c.DisplayPosition() / c.duration)
}

// Close releases the session: any drag is dropped, pending deferred work
// becomes inert and the media element is closed.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.drag = nil
	c.gen++
	c.el.Pause()
	if err := c.el.Close(); err != nil {
		c.log.Debug("media close failed", "error", err)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clampRate(r float64) float64 {
	return math.Max(Rates[0], math.Min(Rates[len(Rates)-1], r))
}

func validSeconds(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
