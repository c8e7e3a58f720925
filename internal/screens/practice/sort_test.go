package practice

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdojo/callcoach/internal/dragsort"
	"github.com/salesdojo/callcoach/internal/exercises"
	"github.com/salesdojo/callcoach/internal/logging"
	"github.com/salesdojo/callcoach/internal/screen"
)

func orderingExercise() exercises.Exercise {
	return exercises.Exercise{
		ID:           "flow",
		Title:        "Call Flow",
		Instructions: "Order the sections.",
		Success:      "Nice.",
		Config: dragsort.Config{
			Mode: dragsort.Ordering,
			Items: []dragsort.Item{
				{ID: "open", Text: "Opening"},
				{ID: "disc", Text: "Discovery"},
				{ID: "close", Text: "Close"},
			},
			Zones:  []dragsort.Zone{{ID: "flow", Title: "Flow"}},
			Target: "flow",
			Order:  []string{"open", "disc", "close"},
		},
	}
}

func newSortScreen(t *testing.T) *SortScreen {
	t.Helper()
	ex := orderingExercise()
	engine, err := dragsort.New(ex.Config, dragsort.WithSeed(7))
	require.NoError(t, err)
	s := NewSortScreen(ex, engine, logging.Discard())
	s.Init()
	t.Cleanup(s.Close)
	return s
}

type keyReceiver interface {
	Update(tea.Msg) (screen.Screen, tea.Cmd)
}

// press sends a single printable key.
func press(s keyReceiver, k string) {
	s.Update(tea.KeyPressMsg{Code: rune(k[0]), Text: k})
}

func TestSortScreenStartsOnFirstItem(t *testing.T) {
	s := newSortScreen(t)
	assert.Equal(t, rowItem, s.rows[s.cursor].kind)
	assert.Equal(t, dragsort.Unplaced, s.rows[s.cursor].zone)
	assert.Equal(t, "0/3 placed", s.Status())
}

func TestSortScreenSendToZoneAndGrade(t *testing.T) {
	s := newSortScreen(t)
	for _, id := range []string{"open", "disc", "close"} {
		s.cursor = s.rowOfItem(id)
		press(s, "1")
	}
	assert.Equal(t, []string{"open", "disc", "close"}, s.engine.ItemsIn("flow"))
	assert.Equal(t, "3/3 placed", s.Status())
	// The cursor follows the last moved item.
	assert.Equal(t, "close", s.rows[s.cursor].item)

	press(s, "g")
	res, ok := s.engine.LastGrade()
	require.True(t, ok)
	assert.True(t, res.FullyCorrect)
	assert.Equal(t, "3/3 correct", s.Status())
	assert.Contains(t, s.View(80, 30), "Perfect!")
}

func TestSortScreenNudge(t *testing.T) {
	s := newSortScreen(t)
	for _, id := range []string{"disc", "open"} {
		s.cursor = s.rowOfItem(id)
		press(s, "1")
	}
	require.Equal(t, []string{"disc", "open"}, s.engine.ItemsIn("flow"))

	s.cursor = s.rowOfItem("open")
	press(s, "K")
	assert.Equal(t, []string{"open", "disc"}, s.engine.ItemsIn("flow"))
	assert.Equal(t, "open", s.rows[s.cursor].item)

	// Already first: nothing to do.
	press(s, "K")
	assert.Equal(t, []string{"open", "disc"}, s.engine.ItemsIn("flow"))
}

func TestSortScreenKeyboardCarry(t *testing.T) {
	s := newSortScreen(t)
	s.cursor = s.rowOfItem("open")
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	require.True(t, s.gesture.Active())

	// Walk down to the end row of the flow zone, the last row.
	for range len(s.rows) {
		press(s, "j")
	}
	require.Equal(t, rowEnd, s.rows[s.cursor].kind)
	require.Equal(t, dragsort.ZoneID("flow"), s.rows[s.cursor].zone)

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	assert.False(t, s.gesture.Active())
	assert.Equal(t, []string{"open"}, s.engine.ItemsIn("flow"))
	assert.Equal(t, "open", s.rows[s.cursor].item)
}

func TestSortScreenCancelCarry(t *testing.T) {
	s := newSortScreen(t)
	s.cursor = s.rowOfItem("disc")
	s.Update(tea.KeyPressMsg{Code: tea.KeySpace})
	press(s, "j")
	press(s, "c")

	assert.False(t, s.gesture.Active())
	assert.Empty(t, s.engine.ItemsIn("flow"))
	assert.Equal(t, "disc", s.rows[s.cursor].item)
}

func TestSortScreenUnplaceAndReset(t *testing.T) {
	s := newSortScreen(t)
	s.cursor = s.rowOfItem("open")
	press(s, "1")
	press(s, "u")
	assert.Empty(t, s.engine.ItemsIn("flow"))
	assert.Len(t, s.engine.ItemsIn(dragsort.Unplaced), 3)

	press(s, "1")
	press(s, "g")
	press(s, "r")
	assert.Equal(t, dragsort.Unstarted, s.engine.Phase())
	assert.Equal(t, 0, s.engine.Attempts())
	assert.Len(t, s.engine.ItemsIn(dragsort.Unplaced), 3)
}

// screenY returns the content row at which rows[i] was last drawn.
func screenY(s *SortScreen, i int) int {
	return s.rowsTop + i - s.offset
}

func TestSortScreenMouseDrag(t *testing.T) {
	s := newSortScreen(t)
	s.View(80, 30)
	require.GreaterOrEqual(t, s.rowsTop, 0)

	from := s.rowOfItem("disc")
	s.Update(tea.MouseClickMsg{X: 6, Y: screenY(s, from), Button: tea.MouseLeft})
	require.True(t, s.CapturingPointer())
	require.True(t, s.gesture.Active())

	header := -1
	for i, r := range s.rows {
		if r.kind == rowHeader && r.zone == "flow" {
			header = i
		}
	}
	require.GreaterOrEqual(t, header, 0)

	s.Update(tea.MouseMotionMsg{X: 6, Y: screenY(s, header)})
	zone, index, hovering := s.gesture.Target()
	assert.True(t, hovering)
	assert.Equal(t, dragsort.ZoneID("flow"), zone)
	assert.Equal(t, 0, index)

	s.Update(tea.MouseReleaseMsg{X: 6, Y: screenY(s, header), Button: tea.MouseLeft})
	assert.False(t, s.CapturingPointer())
	assert.Equal(t, []string{"disc"}, s.engine.ItemsIn("flow"))
}

func TestSortScreenMouseReleaseOutsideCancels(t *testing.T) {
	s := newSortScreen(t)
	s.View(80, 30)

	from := s.rowOfItem("open")
	s.Update(tea.MouseClickMsg{X: 6, Y: screenY(s, from), Button: tea.MouseLeft})
	s.Update(tea.MouseReleaseMsg{X: 6, Y: 0, Button: tea.MouseLeft})

	assert.False(t, s.CapturingPointer())
	assert.Empty(t, s.engine.ItemsIn("flow"))
	assert.Len(t, s.engine.ItemsIn(dragsort.Unplaced), 3)
}

func TestSortScreenCloseReleasesDrag(t *testing.T) {
	s := newSortScreen(t)
	s.View(80, 30)
	s.Update(tea.MouseClickMsg{X: 6, Y: screenY(s, s.rowOfItem("open")), Button: tea.MouseLeft})
	require.True(t, s.CapturingPointer())

	s.Close()
	assert.False(t, s.CapturingPointer())
	assert.False(t, s.gesture.Active())
}
