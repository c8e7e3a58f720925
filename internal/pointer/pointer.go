// Package pointer provides scoped capture of terminal-wide mouse motion and
// release while a drag is in progress.
//
// A component that starts a drag acquires a Grab; from then on every motion
// and release the app receives is routed to it, wherever the pointer is.
// The grab must be released on drag end and on teardown.
package pointer

import "sort"

// Point is a cell position in screen coordinates.
type Point struct {
	X, Y int
}

// Handlers receive captured pointer input. Either may be nil.
type Handlers struct {
	Move func(Point)
	Up   func(Point)
}

// Tracker routes captured pointer input to live grabs.
type Tracker struct {
	nextID uint64
	grabs  map[uint64]Handlers
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{grabs: make(map[uint64]Handlers)}
}

// Grab is one live capture. Release is idempotent.
type Grab struct {
	t  *Tracker
	id uint64
}

// Acquire registers h until the returned grab is released.
func (t *Tracker) Acquire(h Handlers) *Grab {
	t.nextID++
	t.grabs[t.nextID] = h
	return &Grab{t: t, id: t.nextID}
}

// Release detaches the grab's handlers.
func (g *Grab) Release() {
	if g == nil || g.t == nil {
		return
	}
	delete(g.t.grabs, g.id)
	g.t = nil
}

// Live reports whether the grab is still registered.
func (g *Grab) Live() bool {
	if g == nil || g.t == nil {
		return false
	}
	_, ok := g.t.grabs[g.id]
	return ok
}

// Active reports whether any grab is live.
func (t *Tracker) Active() bool {
	return len(t.grabs) > 0
}

// Count returns the number of live grabs.
func (t *Tracker) Count() int {
	return len(t.grabs)
}

// Move dispatches pointer motion to every live grab in acquisition order.
func (t *Tracker) Move(p Point) {
	for _, h := range t.snapshot() {
		if h.Move != nil {
			h.Move(p)
		}
	}
}

// Up dispatches a pointer release. Handlers usually release their grab.
func (t *Tracker) Up(p Point) {
	for _, h := range t.snapshot() {
		if h.Up != nil {
			h.Up(p)
		}
	}
}

// ReleaseAll drops every grab without notifying handlers.
func (t *Tracker) ReleaseAll() {
	clear(t.grabs)
}

// snapshot lets handlers release grabs while being dispatched to.
func (t *Tracker) snapshot() []Handlers {
	ids := make([]uint64, 0, len(t.grabs))
	for id := range t.grabs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Handlers, len(ids))
	for i, id := range ids {
		out[i] = t.grabs[id]
	}
	return out
}
