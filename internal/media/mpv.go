package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/DexterLB/mpvipc"
)

// mpv property observer ids.
const (
	observeTimePos  = 1
	observeDuration = 2
	observePause    = 3
)

var observed = []struct {
	id   int
	name string
}{
	{observeTimePos, "time-pos"},
	{observeDuration, "duration"},
	{observePause, "pause"},
}

// MPVOptions configures the mpv backend.
type MPVOptions struct {
	// Path is the mpv executable. Default: "mpv".
	Path string
	// SocketPath is the JSON IPC socket. Default: a file in os.TempDir().
	SocketPath string
	// StartTimeout bounds how long to wait for the IPC socket to appear.
	StartTimeout time.Duration
	Logger       *slog.Logger
}

func (o *MPVOptions) withDefaults() {
	if o.Path == "" {
		o.Path = "mpv"
	}
	if o.SocketPath == "" {
		o.SocketPath = filepath.Join(os.TempDir(), fmt.Sprintf("callcoach-mpv-%d.sock", os.Getpid()))
	}
	if o.StartTimeout <= 0 {
		o.StartTimeout = 5 * time.Second
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// MPV drives an external mpv process over its JSON IPC socket.
type MPV struct {
	opts MPVOptions
	proc *exec.Cmd
	conn *mpvipc.Connection

	mu       sync.Mutex
	source   string
	position float64
	duration float64
	volume   float64
	rate     float64
	paused   bool

	ipcEvents chan *mpvipc.Event
	stopIPC   chan struct{}
	queue     *eventQueue
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

var _ Element = (*MPV)(nil)

// StartMPV launches mpv in idle mode and connects to its IPC socket.
func StartMPV(ctx context.Context, opts MPVOptions) (*MPV, error) {
	opts.withDefaults()

	_ = os.Remove(opts.SocketPath)

	proc := exec.Command(opts.Path,
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--pause=yes",
		"--input-ipc-server="+opts.SocketPath,
	)
	if err := proc.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	m, err := dialMPV(ctx, opts)
	if err != nil {
		_ = proc.Process.Kill()
		_ = proc.Wait()
		return nil, err
	}
	m.proc = proc
	return m, nil
}

// dialMPV connects to a running mpv and observes the properties the
// element reports.
func dialMPV(ctx context.Context, opts MPVOptions) (*MPV, error) {
	opts.withDefaults()

	conn := mpvipc.NewConnection(opts.SocketPath)
	if err := open(ctx, conn, opts.StartTimeout); err != nil {
		return nil, fmt.Errorf("connect mpv ipc: %w", err)
	}

	m := newMPV(conn, opts)
	for _, p := range observed {
		if _, err := conn.Call("observe_property", p.id, p.name); err != nil {
			m.Close()
			return nil, fmt.Errorf("observe %s: %w", p.name, err)
		}
	}
	return m, nil
}

// open retries until mpv has created its socket.
func open(ctx context.Context, conn *mpvipc.Connection, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		err := conn.Open()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Join(ErrUnavailable, err)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func newMPV(conn *mpvipc.Connection, opts MPVOptions) *MPV {
	m := &MPV{
		opts:   opts,
		conn:   conn,
		volume: 1,
		rate:   1,
		paused: true,
		queue:  newEventQueue(),
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	m.ipcEvents, m.stopIPC = conn.NewEventListener()
	go m.pump()
	go m.queue.run(m.events, m.done)
	return m
}

// pump translates IPC events into the queue. It never blocks on the
// consumer of Events, so command replies keep flowing.
func (m *MPV) pump() {
	for ev := range m.ipcEvents {
		if ev == nil {
			continue
		}
		if out, ok := m.translate(ev); ok {
			m.queue.push(out)
		}
	}
}

func (m *MPV) translate(ev *mpvipc.Event) (Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Name {
	case "end-file":
		if ev.Reason != "eof" {
			return Event{}, false
		}
		m.paused = true
		return Event{Kind: EventEnded, Source: m.source}, true

	case "property-change":
		switch int64(ev.ID) {
		case observeTimePos:
			pos, ok := ev.Data.(float64)
			if !ok {
				return Event{}, false
			}
			m.position = pos
			return Event{Kind: EventTimeUpdate, Source: m.source, Value: pos}, true

		case observeDuration:
			dur, ok := ev.Data.(float64)
			if !ok || dur <= 0 {
				return Event{}, false
			}
			m.duration = dur
			return Event{Kind: EventMetadataLoaded, Source: m.source, Value: dur}, true

		case observePause:
			paused, ok := ev.Data.(bool)
			if !ok || paused == m.paused {
				return Event{}, false
			}
			m.paused = paused
			kind := EventPlay
			if paused {
				kind = EventPause
			}
			return Event{Kind: kind, Source: m.source}, true
		}
	}
	return Event{}, false
}

func (m *MPV) set(property string, value any) {
	if err := m.conn.Set(property, value); err != nil {
		m.opts.Logger.Debug("mpv set failed", "property", property, "error", err)
	}
}

func (m *MPV) SetSource(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = url
	m.position = 0
	m.duration = 0
}

func (m *MPV) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *MPV) Load() error {
	src := m.Source()
	if src == "" {
		return nil
	}
	if _, err := m.conn.Call("loadfile", src, "replace"); err != nil {
		return fmt.Errorf("load %s: %w", src, err)
	}
	return nil
}

func (m *MPV) Play() error {
	if err := m.conn.Set("pause", false); err != nil {
		return errors.Join(ErrPlaybackDenied, err)
	}
	return nil
}

func (m *MPV) Pause() {
	m.set("pause", true)
}

func (m *MPV) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MPV) SetCurrentTime(seconds float64) {
	m.mu.Lock()
	m.position = seconds
	m.mu.Unlock()
	m.set("time-pos", seconds)
}

func (m *MPV) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MPV) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume maps [0,1] onto mpv's 0-100 scale.
func (m *MPV) SetVolume(v float64) {
	m.mu.Lock()
	m.volume = v
	m.mu.Unlock()
	m.set("volume", v*100)
}

func (m *MPV) PlaybackRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rate
}

func (m *MPV) SetPlaybackRate(r float64) {
	m.mu.Lock()
	m.rate = r
	m.mu.Unlock()
	m.set("speed", r)
}

func (m *MPV) Events() <-chan Event {
	return m.events
}

// Close drops the IPC connection and terminates the mpv process.
func (m *MPV) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.done)
		close(m.stopIPC)
		err = m.conn.Close()
		if m.proc != nil {
			waited := make(chan error, 1)
			go func() { waited <- m.proc.Wait() }()
			_ = m.proc.Process.Signal(syscall.SIGTERM)
			select {
			case <-waited:
			case <-time.After(time.Second):
				_ = m.proc.Process.Kill()
				<-waited
			}
			_ = os.Remove(m.opts.SocketPath)
		}
	})
	return err
}

// eventQueue is an unbounded FIFO between the IPC reader and the Events
// channel. Consecutive time updates collapse into the latest one.
type eventQueue struct {
	mu      sync.Mutex
	pending []Event
	wake    chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{wake: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev Event) {
	q.mu.Lock()
	n := len(q.pending)
	if ev.Kind == EventTimeUpdate && n > 0 && q.pending[n-1].Kind == EventTimeUpdate {
		q.pending[n-1] = ev
	} else {
		q.pending = append(q.pending, ev)
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *eventQueue) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return Event{}, false
	}
	ev := q.pending[0]
	q.pending = q.pending[1:]
	return ev, true
}

// run forwards queued events to out until done closes.
func (q *eventQueue) run(out chan<- Event, done <-chan struct{}) {
	for {
		ev, ok := q.pop()
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-done:
				return
			}
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}
