package dragsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGesture_DropMovesItem(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	g := NewGesture(e)

	require.True(t, g.Begin("B"))
	assert.Equal(t, Unplaced, g.From())
	g.Over("Y", -1)

	moved, err := g.Drop()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"B"}, e.ItemsIn("Y"))
	assert.False(t, g.Active())
}

func TestGesture_DropWithoutTargetCancels(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	g := NewGesture(e)
	before := e.Snapshot()

	require.True(t, g.Begin("A"))
	g.Over("X", 0)
	g.Leave()
	moved, err := g.Drop()

	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, before, e.Snapshot())
}

func TestGesture_DropOnUnknownZoneLeavesPartition(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	g := NewGesture(e)
	before := e.Snapshot()

	require.True(t, g.Begin("A"))
	g.Over("nowhere", -1)
	moved, err := g.Drop()

	assert.ErrorIs(t, err, ErrUnknownZone)
	assert.False(t, moved)
	assert.Equal(t, before, e.Snapshot())
}

func TestGesture_BeginUnknownItem(t *testing.T) {
	g := NewGesture(newEngine(t, categorizeConfig()))
	assert.False(t, g.Begin("ghost"))
	assert.False(t, g.Active())

	g.Over("X", 0)
	_, _, ok := g.Target()
	assert.False(t, ok)
}
