package home

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/exercises"
	"github.com/salesdojo/callcoach/internal/logging"
	"github.com/salesdojo/callcoach/internal/router"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/screens/practice"
)

type stubScreen struct{ screen.Screen }

func testDeps(t *testing.T, listen func(int) (screen.Screen, error)) Deps {
	t.Helper()
	pack, err := content.Load(content.LoadOptions{})
	require.NoError(t, err)
	catalog, err := exercises.NewCatalog(pack.Exercises)
	require.NoError(t, err)
	return Deps{
		Pack:     pack,
		Practice: practice.Options{Catalog: catalog, Tree: pack.DecisionTree, Logger: logging.Discard()},
		Listen:   listen,
		Logger:   logging.Discard(),
	}
}

func enter(h *HomeScreen) tea.Cmd {
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestHomeListenDisabledWithoutPlayer(t *testing.T) {
	h := New(testDeps(t, nil))
	assert.True(t, h.disabled[0])
	assert.Equal(t, 1, h.menu.Selected)
	assert.Contains(t, h.View(120, 40), "SCRIPTS")
}

func TestHomeListenPushesPlayer(t *testing.T) {
	player := stubScreen{}
	var starts []int
	h := New(testDeps(t, func(start int) (screen.Screen, error) {
		starts = append(starts, start)
		return player, nil
	}))
	require.Equal(t, 0, h.menu.Selected)

	cmd := enter(h)
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, player, msg.Screen)
	assert.Equal(t, []int{0}, starts)
}

func TestHomeShowsOpenError(t *testing.T) {
	h := New(testDeps(t, func(int) (screen.Screen, error) {
		return nil, errors.New("mpv not found")
	}))
	assert.Nil(t, enter(h))
	assert.Contains(t, h.View(120, 40), "mpv not found")
}

func TestHomeMenuOpensScreens(t *testing.T) {
	h := New(testDeps(t, nil))
	want := []string{"Scripts: ", "Practice", "Flashcards", "Glossary", "Search"}
	for i, title := range want {
		h.menu.Selected = i + 1
		cmd := enter(h)
		require.NotNil(t, cmd, title)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok, title)
		assert.Contains(t, msg.Screen.Title(), title)
	}
}

func TestHomeQuit(t *testing.T) {
	h := New(testDeps(t, nil))
	h.menu.Selected = len(h.menu.Items) - 1
	cmd := enter(h)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeStats(t *testing.T) {
	deps := testDeps(t, nil)
	h := New(deps)
	assert.Equal(t, len(deps.Pack.Tracks), h.stats.tracks)
	assert.Equal(t, len(deps.Practice.IDs()), h.stats.exercises)
	assert.Contains(t, h.View(120, 40), "TRACKS")
}
