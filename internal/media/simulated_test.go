package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedDuration(d float64) DurationFunc {
	return func(string) float64 { return d }
}

// drain returns every event currently buffered.
func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestSimulated_LoadEmitsMetadata(t *testing.T) {
	s := NewSimulated(fixedDuration(120))
	s.SetSource("intro.wav")
	require.NoError(t, s.Load())

	events := drain(s.Events())
	require.Len(t, events, 1)
	assert.Equal(t, EventMetadataLoaded, events[0].Kind)
	assert.Equal(t, "intro.wav", events[0].Source)
	assert.Equal(t, 120.0, events[0].Value)
	assert.Equal(t, 120.0, s.Duration())
}

func TestSimulated_PlayBeforeLoadIsDenied(t *testing.T) {
	s := NewSimulated(fixedDuration(120))
	s.SetSource("intro.wav")
	assert.ErrorIs(t, s.Play(), ErrPlaybackDenied)
}

func TestSimulated_AutoplayBlockDeniesFirstPlayOnly(t *testing.T) {
	s := NewSimulated(fixedDuration(60), WithAutoplayBlock())
	s.SetSource("a.wav")
	require.NoError(t, s.Load())

	assert.ErrorIs(t, s.Play(), ErrPlaybackDenied)
	assert.NoError(t, s.Play())
}

func TestSimulated_AdvanceScalesByRateAndEnds(t *testing.T) {
	s := NewSimulated(fixedDuration(10))
	s.SetSource("a.wav")
	require.NoError(t, s.Load())
	require.NoError(t, s.Play())
	drain(s.Events())

	s.SetPlaybackRate(2)
	s.Advance(3)
	assert.InDelta(t, 6.0, s.CurrentTime(), 1e-9)

	s.Advance(3)
	assert.InDelta(t, 10.0, s.CurrentTime(), 1e-9)

	events := drain(s.Events())
	assert.Equal(t, []EventKind{EventTimeUpdate, EventTimeUpdate, EventEnded}, kinds(events))

	// Stopped at the end: further ticks are inert.
	s.Advance(5)
	assert.Empty(t, drain(s.Events()))
}

func TestSimulated_PausedDoesNotAdvance(t *testing.T) {
	s := NewSimulated(fixedDuration(10))
	s.SetSource("a.wav")
	require.NoError(t, s.Load())
	require.NoError(t, s.Play())
	s.Pause()
	s.Advance(4)
	assert.Zero(t, s.CurrentTime())
}

func TestSimulated_SetCurrentTimeClamps(t *testing.T) {
	s := NewSimulated(fixedDuration(10))
	s.SetSource("a.wav")
	require.NoError(t, s.Load())

	s.SetCurrentTime(-3)
	assert.Zero(t, s.CurrentTime())
	s.SetCurrentTime(50)
	assert.Equal(t, 10.0, s.CurrentTime())
}

func TestSimulated_SetSourceResetsState(t *testing.T) {
	s := NewSimulated(fixedDuration(10))
	s.SetSource("a.wav")
	require.NoError(t, s.Load())
	require.NoError(t, s.Play())
	s.Advance(2)

	s.SetSource("b.wav")
	assert.Zero(t, s.CurrentTime())
	assert.Zero(t, s.Duration())
	assert.Equal(t, "b.wav", s.Source())
}

func TestSimulated_PlayAfterCloseIsUnavailable(t *testing.T) {
	s := NewSimulated(fixedDuration(10))
	s.SetSource("a.wav")
	require.NoError(t, s.Load())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Play(), ErrUnavailable)
}
