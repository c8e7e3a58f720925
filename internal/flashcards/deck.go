package flashcards

import (
	"math/rand/v2"
	"slices"
)

// Mark is the learner's self-assessment of a card.
type Mark int

const (
	Unmarked Mark = iota
	Known
	Review
)

// Deck is an in-session study deck. Marks reset when the deck is rebuilt.
type Deck struct {
	cards    []Card
	view     []int
	pos      int
	flipped  bool
	category string
	marks    map[string]Mark
	rng      *rand.Rand
}

// NewDeck creates a deck over cards in their given order. A nil rng uses a
// randomly seeded source.
func NewDeck(cards []Card, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d := &Deck{
		cards: cards,
		marks: make(map[string]Mark),
		rng:   rng,
	}
	d.rebuild()
	return d
}

func (d *Deck) rebuild() {
	d.view = d.view[:0]
	for i, c := range d.cards {
		if d.category == "" || c.Category == d.category {
			d.view = append(d.view, i)
		}
	}
	d.pos = 0
	d.flipped = false
}

// Len returns the number of cards in the current view.
func (d *Deck) Len() int { return len(d.view) }

// Position returns the zero-based position within the current view.
func (d *Deck) Position() int { return d.pos }

// Current returns the card on top.
func (d *Deck) Current() (Card, bool) {
	if len(d.view) == 0 {
		return Card{}, false
	}
	return d.cards[d.view[d.pos]], true
}

// Flipped reports whether the back is showing.
func (d *Deck) Flipped() bool { return d.flipped }

// Flip turns the current card over.
func (d *Deck) Flip() { d.flipped = !d.flipped }

// Next moves to the next card, wrapping at the end.
func (d *Deck) Next() {
	if len(d.view) == 0 {
		return
	}
	d.pos = (d.pos + 1) % len(d.view)
	d.flipped = false
}

// Previous moves to the previous card, wrapping at the start.
func (d *Deck) Previous() {
	if len(d.view) == 0 {
		return
	}
	d.pos = (d.pos - 1 + len(d.view)) % len(d.view)
	d.flipped = false
}

// Shuffle reorders the current view and returns to its first card.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.view), func(i, j int) { d.view[i], d.view[j] = d.view[j], d.view[i] })
	d.pos = 0
	d.flipped = false
}

// Category returns the active filter; empty means all cards.
func (d *Deck) Category() string { return d.category }

// Filter restricts the view to one category. Empty shows every card.
func (d *Deck) Filter(category string) {
	d.category = category
	d.rebuild()
}

// CycleCategory steps the filter through "all" and each category that has
// cards.
func (d *Deck) CycleCategory() {
	options := []string{""}
	for _, c := range Categories {
		if slices.ContainsFunc(d.cards, func(card Card) bool { return card.Category == c }) {
			options = append(options, c)
		}
	}
	i := slices.Index(options, d.category)
	d.Filter(options[(i+1)%len(options)])
}

// Mark records m for the current card and advances.
func (d *Deck) Mark(m Mark) {
	card, ok := d.Current()
	if !ok {
		return
	}
	if m == Unmarked {
		delete(d.marks, card.ID)
	} else {
		d.marks[card.ID] = m
	}
	d.Next()
}

// MarkOf returns the mark for card id.
func (d *Deck) MarkOf(id string) Mark { return d.marks[id] }

// Progress counts known and review cards in the current view.
func (d *Deck) Progress() (known, review, total int) {
	for _, i := range d.view {
		switch d.marks[d.cards[i].ID] {
		case Known:
			known++
		case Review:
			review++
		}
	}
	return known, review, len(d.view)
}

// ResetMarks clears every mark.
func (d *Deck) ResetMarks() {
	clear(d.marks)
	d.pos = 0
	d.flipped = false
}
