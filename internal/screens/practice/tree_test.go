package practice

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdojo/callcoach/internal/decisiontree"
	"github.com/salesdojo/callcoach/internal/logging"
)

func testTree() decisiontree.Tree {
	return decisiontree.Tree{
		Title: "Options",
		Start: "first",
		Nodes: []decisiontree.Node{
			{ID: "first", Title: "Option 1", Question: "Can they pay in full?", Options: []decisiontree.Option{
				{Text: "Yes", Response: "Then they would not be calling.", Next: "second"},
				{Text: "No", Response: "Right.", Next: "second", Correct: true},
			}},
			{ID: "second", Title: "Option 2", Question: "Would a loan help?", Options: []decisiontree.Option{
				{Text: "No, it adds debt", Response: "Correct.", Next: decisiontree.Complete, Correct: true},
				{Text: "Yes", Response: "Another loan only moves the debt.", Next: decisiontree.Complete},
			}},
		},
	}
}

func newTreeScreen(t *testing.T) *TreeScreen {
	t.Helper()
	s, err := NewTreeScreen(testTree(), logging.Discard())
	require.NoError(t, err)
	return s
}

func TestTreeScreenInvalidTree(t *testing.T) {
	_, err := NewTreeScreen(decisiontree.Tree{Start: "missing"}, nil)
	assert.Error(t, err)
}

func TestTreeScreenAnswerAndContinue(t *testing.T) {
	s := newTreeScreen(t)
	assert.Contains(t, s.View(80, 30), "Can they pay in full?")

	press(s, "2")
	assert.True(t, s.revealed)
	assert.Equal(t, 1, s.session.Score())
	assert.Contains(t, s.View(80, 30), "Right.")
	assert.Equal(t, "score 1/1", s.Status())

	// Further answers are ignored until the response is dismissed.
	press(s, "1")
	assert.Equal(t, 1, s.session.Answered())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.False(t, s.revealed)
	assert.Equal(t, "second", s.node.ID)
	assert.Contains(t, s.View(80, 30), "Would a loan help?")
}

func TestTreeScreenCompletesAndRestarts(t *testing.T) {
	s := newTreeScreen(t)
	press(s, "1")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	press(s, "1")
	require.True(t, s.session.Done())
	assert.Contains(t, s.View(80, 30), "Correct.")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(80, 30)
	assert.Contains(t, view, "You scored 1 of 2 (50%).")

	press(s, "r")
	assert.False(t, s.session.Done())
	assert.Equal(t, 0, s.session.Answered())
	assert.Equal(t, "first", s.node.ID)
}

func TestTreeScreenNavigateThenEnter(t *testing.T) {
	s := newTreeScreen(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	c, ok := s.session.LastChoice()
	require.True(t, ok)
	assert.Equal(t, 1, c.Option)
	assert.True(t, c.Correct)
}
