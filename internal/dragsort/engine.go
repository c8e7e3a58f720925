package dragsort

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// Phase is the exercise lifecycle state.
type Phase int

const (
	Unstarted Phase = iota
	InProgress
	Graded
)

func (p Phase) String() string {
	switch p {
	case Unstarted:
		return "unstarted"
	case InProgress:
		return "in progress"
	case Graded:
		return "graded"
	default:
		return "unknown"
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the shuffle source.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed makes shuffles reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// Engine holds one exercise's partition. It is not safe for concurrent use.
type Engine struct {
	cfg   Config
	items map[string]Item
	zones map[ZoneID][]string
	rng   *rand.Rand

	attempts int
	phase    Phase
	last     *GradeResult
}

// New validates cfg and returns an initialized engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid exercise: %w", err)
	}
	e := &Engine{
		cfg:   cfg,
		items: make(map[string]Item, len(cfg.Items)),
	}
	for _, it := range cfg.Items {
		e.items[it.ID] = it
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.Initialize()
	return e, nil
}

// Initialize shuffles every item into Unplaced, empties the other zones and
// clears attempts and the last grade.
func (e *Engine) Initialize() {
	e.zones = make(map[ZoneID][]string, len(e.cfg.Zones)+1)
	for _, z := range e.cfg.Zones {
		e.zones[z.ID] = nil
	}
	ids := make([]string, len(e.cfg.Items))
	for i, it := range e.cfg.Items {
		ids[i] = it.ID
	}
	e.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	e.zones[Unplaced] = ids

	e.attempts = 0
	e.last = nil
	e.phase = Unstarted
}

// Reset re-initializes with a fresh shuffle.
func (e *Engine) Reset() {
	e.Initialize()
}

// Config returns the exercise configuration.
func (e *Engine) Config() Config { return e.cfg }

// Mode returns the grading mode.
func (e *Engine) Mode() Mode { return e.cfg.Mode }

// Zones returns the declared zones, excluding Unplaced.
func (e *Engine) Zones() []Zone { return e.cfg.Zones }

// Item looks up an item by id.
func (e *Engine) Item(id string) (Item, bool) {
	it, ok := e.items[id]
	return it, ok
}

// Attempts returns how many times the exercise has been graded since the
// last reset.
func (e *Engine) Attempts() int { return e.attempts }

// Phase returns the lifecycle state.
func (e *Engine) Phase() Phase { return e.phase }

// LastGrade returns the most recent grade, if any.
func (e *Engine) LastGrade() (GradeResult, bool) {
	if e.last == nil {
		return GradeResult{}, false
	}
	return *e.last, true
}

// ItemsIn returns a copy of zone's sequence.
func (e *Engine) ItemsIn(zone ZoneID) []string {
	return slices.Clone(e.zones[zone])
}

// ZoneOf returns the zone currently holding id.
func (e *Engine) ZoneOf(id string) (ZoneID, bool) {
	for z, seq := range e.zones {
		if slices.Contains(seq, id) {
			return z, true
		}
	}
	return "", false
}

// Snapshot returns a deep copy of the partition.
func (e *Engine) Snapshot() map[ZoneID][]string {
	out := make(map[ZoneID][]string, len(e.zones))
	for z, seq := range e.zones {
		out[z] = slices.Clone(seq)
	}
	return out
}

// MoveItem moves id from one zone to the end of another.
func (e *Engine) MoveItem(id string, from, to ZoneID) error {
	return e.move(id, from, to, -1)
}

// MoveItemTo moves id from one zone into another, in front of the item
// currently at index. Within one zone, index refers to the sequence before
// the move, so dropping an item onto a later neighbour lands it just ahead
// of that neighbour. Out-of-range indices are clamped.
func (e *Engine) MoveItemTo(id string, from, to ZoneID, index int) error {
	if index < 0 {
		index = 0
	}
	return e.move(id, from, to, index)
}

// Reposition moves id within its current zone so that it ends up at index.
func (e *Engine) Reposition(id string, index int) error {
	zone, ok := e.ZoneOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	cur := slices.Index(e.zones[zone], id)
	if index > cur {
		index++
	}
	return e.MoveItemTo(id, zone, zone, index)
}

// MoveToUnplaced returns id to the Unplaced zone.
func (e *Engine) MoveToUnplaced(id string) error {
	zone, ok := e.ZoneOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return e.MoveItem(id, zone, Unplaced)
}

// move is the single mutation primitive. index < 0 appends. On error the
// partition is untouched.
func (e *Engine) move(id string, from, to ZoneID, index int) error {
	src, ok := e.zones[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownZone, from)
	}
	if _, ok := e.zones[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownZone, to)
	}
	removed := slices.Index(src, id)
	if removed < 0 {
		return fmt.Errorf("%w: %q not in %q", ErrNotInZone, id, from)
	}

	e.zones[from] = slices.Delete(slices.Clone(src), removed, removed+1)

	dst := slices.DeleteFunc(slices.Clone(e.zones[to]), func(s string) bool { return s == id })
	if index < 0 {
		index = len(dst)
	} else if from == to && removed < index {
		index--
	}
	index = max(0, min(index, len(dst)))
	e.zones[to] = slices.Insert(dst, index, id)

	e.phase = InProgress
	return nil
}
