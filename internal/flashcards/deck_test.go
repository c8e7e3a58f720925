package flashcards

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCards() []Card {
	return []Card{
		{ID: "a", Category: "compliance", Difficulty: "easy", Front: "A?", Back: "A."},
		{ID: "b", Category: "script", Difficulty: "medium", Front: "B?", Back: "B."},
		{ID: "c", Category: "compliance", Difficulty: "hard", Front: "C?", Back: "C."},
		{ID: "d", Category: "objection", Difficulty: "hard", Front: "D?", Back: "D."},
	}
}

func TestDeck_NavigationWraps(t *testing.T) {
	d := NewDeck(sampleCards(), nil)
	c, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "a", c.ID)

	d.Flip()
	assert.True(t, d.Flipped())
	d.Next()
	assert.False(t, d.Flipped(), "moving resets the flip")

	d.Previous()
	d.Previous()
	c, _ = d.Current()
	assert.Equal(t, "d", c.ID)
	d.Next()
	c, _ = d.Current()
	assert.Equal(t, "a", c.ID)
}

func TestDeck_FilterAndCycle(t *testing.T) {
	d := NewDeck(sampleCards(), nil)

	d.Filter("compliance")
	assert.Equal(t, 2, d.Len())
	c, _ := d.Current()
	assert.Equal(t, "a", c.ID)

	d.CycleCategory()
	assert.Equal(t, "script", d.Category())
	d.CycleCategory()
	assert.Equal(t, "objection", d.Category(), "categories without cards are skipped")
	d.CycleCategory()
	assert.Equal(t, "", d.Category())
	assert.Equal(t, 4, d.Len())

	d.Filter("legal")
	_, ok := d.Current()
	assert.False(t, ok)
	d.Next()
	d.Mark(Known)
}

func TestDeck_MarksAndProgress(t *testing.T) {
	d := NewDeck(sampleCards(), nil)
	d.Mark(Known)
	d.Mark(Review)
	d.Mark(Known)

	known, review, total := d.Progress()
	assert.Equal(t, 2, known)
	assert.Equal(t, 1, review)
	assert.Equal(t, 4, total)
	assert.Equal(t, Review, d.MarkOf("b"))
	assert.Equal(t, 3, d.Position())

	d.Filter("compliance")
	known, _, total = d.Progress()
	assert.Equal(t, 2, known)
	assert.Equal(t, 2, total)

	d.ResetMarks()
	known, review, _ = d.Progress()
	assert.Zero(t, known)
	assert.Zero(t, review)
}

func TestDeck_ShuffleKeepsCards(t *testing.T) {
	d := NewDeck(sampleCards(), rand.New(rand.NewPCG(1, 2)))
	d.Shuffle()

	seen := map[string]bool{}
	for i := 0; i < d.Len(); i++ {
		c, _ := d.Current()
		seen[c.ID] = true
		d.Next()
	}
	assert.Len(t, seen, 4)
}
