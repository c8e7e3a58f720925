package media

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMPV answers IPC requests on a unix socket the way mpv does.
type fakeMPV struct {
	conn net.Conn

	mu       sync.Mutex
	commands [][]any
	failOn   map[string]string
}

type fakeRequest struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

func newFakeMPV(t *testing.T) (*fakeMPV, *MPV) {
	t.Helper()
	dir, err := os.MkdirTemp("", "mpv")
	require.NoError(t, err)
	socket := filepath.Join(dir, "ipc.sock")

	ln, err := net.Listen("unix", socket)
	require.NoError(t, err)
	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	f := &fakeMPV{failOn: map[string]string{}}
	connected := make(chan *MPV, 1)
	failed := make(chan error, 1)
	go func() {
		m, err := dialMPV(context.Background(), MPVOptions{SocketPath: socket, StartTimeout: time.Second})
		if err != nil {
			failed <- err
			return
		}
		connected <- m
	}()

	select {
	case f.conn = <-accepted:
	case <-time.After(time.Second):
		t.Fatal("client never connected")
	}
	go f.serve()

	var m *MPV
	select {
	case m = <-connected:
	case err := <-failed:
		t.Fatalf("dial: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out subscribing to properties")
	}

	t.Cleanup(func() {
		m.Close()
		f.conn.Close()
		ln.Close()
		os.RemoveAll(dir)
	})
	return f, m
}

func (f *fakeMPV) serve() {
	scanner := bufio.NewScanner(f.conn)
	for scanner.Scan() {
		var req fakeRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil || len(req.Command) == 0 {
			continue
		}
		f.mu.Lock()
		f.commands = append(f.commands, req.Command)
		status := "success"
		if name, ok := req.Command[0].(string); ok {
			if msg, fail := f.failOn[name]; fail {
				status = msg
			}
		}
		f.mu.Unlock()

		f.send(map[string]any{"request_id": req.RequestID, "error": status, "data": nil})
	}
}

func (f *fakeMPV) send(v any) {
	line, _ := json.Marshal(v)
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, _ = f.conn.Write(append(line, '\n'))
}

// sent returns the commands received after the property subscriptions.
func (f *fakeMPV) sent() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]any
	for _, c := range f.commands {
		if c[0] != "observe_property" {
			out = append(out, c)
		}
	}
	return out
}

func nextEvent(t *testing.T, m *MPV) Event {
	t.Helper()
	select {
	case ev := <-m.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for media event")
		return Event{}
	}
}

func TestMPV_ObservesPropertiesOnConnect(t *testing.T) {
	f, _ := newFakeMPV(t)

	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.commands, 3)
	assert.Equal(t, []any{"observe_property", float64(observeTimePos), "time-pos"}, f.commands[0])
	assert.Equal(t, []any{"observe_property", float64(observeDuration), "duration"}, f.commands[1])
	assert.Equal(t, []any{"observe_property", float64(observePause), "pause"}, f.commands[2])
}

func TestMPV_LoadAndPlay(t *testing.T) {
	f, m := newFakeMPV(t)

	m.SetSource("https://example.test/intro.wav")
	require.NoError(t, m.Load())
	require.NoError(t, m.Play())

	cmds := f.sent()
	require.Len(t, cmds, 2)
	assert.Equal(t, []any{"loadfile", "https://example.test/intro.wav", "replace"}, cmds[0])
	assert.Equal(t, []any{"set_property", "pause", false}, cmds[1])
}

func TestMPV_PlayRejected(t *testing.T) {
	f, m := newFakeMPV(t)
	f.mu.Lock()
	f.failOn["set_property"] = "property unavailable"
	f.mu.Unlock()

	m.SetSource("a.wav")
	err := m.Play()
	assert.ErrorIs(t, err, ErrPlaybackDenied)
}

func TestMPV_PropertyEvents(t *testing.T) {
	f, m := newFakeMPV(t)
	m.SetSource("a.wav")

	f.send(map[string]any{"event": "property-change", "id": observeDuration, "name": "duration", "data": 90.5})
	ev := nextEvent(t, m)
	assert.Equal(t, EventMetadataLoaded, ev.Kind)
	assert.Equal(t, 90.5, ev.Value)
	assert.Equal(t, "a.wav", ev.Source)
	assert.Equal(t, 90.5, m.Duration())

	f.send(map[string]any{"event": "property-change", "id": observeTimePos, "name": "time-pos", "data": 12.25})
	ev = nextEvent(t, m)
	assert.Equal(t, EventTimeUpdate, ev.Kind)
	assert.Equal(t, 12.25, ev.Value)

	f.send(map[string]any{"event": "property-change", "id": observePause, "name": "pause", "data": false})
	ev = nextEvent(t, m)
	assert.Equal(t, EventPlay, ev.Kind)
}

func TestMPV_NullPropertiesIgnored(t *testing.T) {
	f, m := newFakeMPV(t)
	m.SetSource("a.wav")

	f.send(map[string]any{"event": "property-change", "id": observeTimePos, "name": "time-pos", "data": nil})
	f.send(map[string]any{"event": "end-file", "reason": "eof"})

	ev := nextEvent(t, m)
	assert.Equal(t, EventEnded, ev.Kind, "null time-pos must not produce an event")
}

func TestMPV_EndFileOnlyOnEOF(t *testing.T) {
	f, m := newFakeMPV(t)
	m.SetSource("a.wav")

	f.send(map[string]any{"event": "end-file", "reason": "stop"})
	f.send(map[string]any{"event": "end-file", "reason": "eof"})

	ev := nextEvent(t, m)
	assert.Equal(t, EventEnded, ev.Kind)
	select {
	case extra := <-m.Events():
		t.Fatalf("unexpected extra event %v", extra.Kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMPV_VolumeScaled(t *testing.T) {
	f, m := newFakeMPV(t)
	m.SetVolume(0.4)

	require.Len(t, f.sent(), 1)
	assert.Equal(t, []any{"set_property", "volume", 40.0}, f.sent()[0])
	assert.Equal(t, 0.4, m.Volume())
}

func TestMPV_UnreadEventsDoNotStallCommands(t *testing.T) {
	f, m := newFakeMPV(t)
	m.SetSource("a.wav")

	const backlog = eventBuffer + 50
	for range backlog {
		f.send(map[string]any{"event": "end-file", "reason": "eof"})
	}

	played := make(chan error, 1)
	go func() { played <- m.Play() }()
	select {
	case err := <-played:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("command blocked behind undelivered events")
	}

	for range backlog {
		assert.Equal(t, EventEnded, nextEvent(t, m).Kind)
	}
}

func TestEventQueue_CollapsesTimeUpdates(t *testing.T) {
	q := newEventQueue()
	q.push(Event{Kind: EventTimeUpdate, Value: 1})
	q.push(Event{Kind: EventTimeUpdate, Value: 2})
	q.push(Event{Kind: EventPause})
	q.push(Event{Kind: EventTimeUpdate, Value: 3})

	var got []Event
	for {
		ev, ok := q.pop()
		if !ok {
			break
		}
		got = append(got, ev)
	}
	assert.Equal(t, []Event{
		{Kind: EventTimeUpdate, Value: 2},
		{Kind: EventPause},
		{Kind: EventTimeUpdate, Value: 3},
	}, got)
}
