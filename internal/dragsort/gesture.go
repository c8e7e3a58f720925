package dragsort

// Gesture adapts a pointer or keyboard drag onto the engine: pick an item
// up, hover over a drop position, then drop or cancel. Dropping without a
// hover target is a cancel.
type Gesture struct {
	e *Engine

	item   string
	from   ZoneID
	over   ZoneID
	index  int
	active bool
	hover  bool
}

// NewGesture returns an idle gesture bound to e.
func NewGesture(e *Engine) *Gesture {
	return &Gesture{e: e}
}

// Begin picks up item. It fails when the item is not in any zone.
func (g *Gesture) Begin(item string) bool {
	zone, ok := g.e.ZoneOf(item)
	if !ok {
		return false
	}
	*g = Gesture{e: g.e, item: item, from: zone, active: true}
	return true
}

// Over records the current drop position. index < 0 means the end of zone.
func (g *Gesture) Over(zone ZoneID, index int) {
	if !g.active {
		return
	}
	g.over = zone
	g.index = index
	g.hover = true
}

// Leave clears the hover target, e.g. when the pointer exits every zone.
func (g *Gesture) Leave() {
	g.hover = false
}

// Drop commits the move and ends the gesture. It reports whether the
// partition changed.
func (g *Gesture) Drop() (bool, error) {
	if !g.active {
		return false, nil
	}
	item, from, to, index, hover := g.item, g.from, g.over, g.index, g.hover
	g.Cancel()
	if !hover {
		return false, nil
	}
	var err error
	if index < 0 {
		err = g.e.MoveItem(item, from, to)
	} else {
		err = g.e.MoveItemTo(item, from, to, index)
	}
	return err == nil, err
}

// Cancel abandons the gesture.
func (g *Gesture) Cancel() {
	*g = Gesture{e: g.e}
}

// Active reports whether an item is picked up.
func (g *Gesture) Active() bool { return g.active }

// Item returns the picked-up item.
func (g *Gesture) Item() string { return g.item }

// From returns the zone the item was picked up from.
func (g *Gesture) From() ZoneID { return g.from }

// Target returns the hover position, if any.
func (g *Gesture) Target() (ZoneID, int, bool) {
	return g.over, g.index, g.active && g.hover
}
