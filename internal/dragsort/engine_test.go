package dragsort

import (
	"math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderingConfig() Config {
	ids := []string{"intro", "discovery", "credit", "options", "program", "closing"}
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Text: id}
	}
	return Config{
		Mode:   Ordering,
		Items:  items,
		Zones:  []Zone{{ID: "call-flow", Title: "Call Flow"}},
		Target: "call-flow",
		Order:  ids,
	}
}

func categorizeConfig() Config {
	return Config{
		Mode:  Categorize,
		Items: []Item{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Zones: []Zone{{ID: "X"}, {ID: "Y"}, {ID: "Z"}},
		Accept: map[ZoneID][]string{
			"X": {"A", "C"},
			"Y": {"B"},
		},
	}
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, WithSeed(42))
	require.NoError(t, err)
	return e
}

func allItems(snap map[ZoneID][]string) []string {
	var out []string
	for _, seq := range snap {
		out = append(out, seq...)
	}
	sort.Strings(out)
	return out
}

func TestNew_ShufflesIntoUnplaced(t *testing.T) {
	e := newEngine(t, orderingConfig())

	assert.Len(t, e.ItemsIn(Unplaced), 6)
	assert.Empty(t, e.ItemsIn("call-flow"))
	assert.Equal(t, Unstarted, e.Phase())
	assert.Zero(t, e.Attempts())

	a, _ := New(orderingConfig(), WithSeed(7))
	b, _ := New(orderingConfig(), WithSeed(7))
	assert.Equal(t, a.ItemsIn(Unplaced), b.ItemsIn(Unplaced), "same seed, same shuffle")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no items", func(c *Config) { c.Items = nil }, "no items"},
		{"duplicate item", func(c *Config) { c.Items = append(c.Items, Item{ID: "A"}) }, `duplicate item "A"`},
		{"reserved zone", func(c *Config) { c.Zones = append(c.Zones, Zone{ID: Unplaced}) }, "reserved"},
		{"unknown accept zone", func(c *Config) { c.Accept["Q"] = nil }, `unknown zone "Q"`},
		{"unknown accept item", func(c *Config) { c.Accept["Z"] = []string{"nope"} }, `unknown item "nope"`},
		{"item in two zones", func(c *Config) { c.Accept["Z"] = []string{"A"} }, `item "A" accepted by both`},
		{"item with no home", func(c *Config) { c.Items = append(c.Items, Item{ID: "D"}) }, `item "D" is accepted by no zone`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := categorizeConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			_, err = New(cfg)
			assert.Error(t, err)
		})
	}

	t.Run("ordering target must be declared", func(t *testing.T) {
		cfg := orderingConfig()
		cfg.Target = "elsewhere"
		assert.ErrorContains(t, cfg.Validate(), "target zone")
	})
	t.Run("valid configs", func(t *testing.T) {
		assert.NoError(t, orderingConfig().Validate())
		assert.NoError(t, categorizeConfig().Validate())
	})
}

func TestMoveItem_InvalidMovesAreNoOps(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	before := e.Snapshot()

	assert.ErrorIs(t, e.MoveItem("A", "X", "Y"), ErrNotInZone)
	assert.ErrorIs(t, e.MoveItem("A", Unplaced, "nowhere"), ErrUnknownZone)
	assert.ErrorIs(t, e.MoveItem("A", "nowhere", "X"), ErrUnknownZone)
	assert.ErrorIs(t, e.MoveToUnplaced("ghost"), ErrUnknownItem)

	assert.Equal(t, before, e.Snapshot())
	assert.Equal(t, Unstarted, e.Phase())
}

func TestMoveItemTo_DropOnLaterNeighbour(t *testing.T) {
	e := newEngine(t, orderingConfig())
	for _, id := range []string{"intro", "discovery", "credit", "options"} {
		require.NoError(t, e.MoveItem(id, Unplaced, "call-flow"))
	}

	// Drop "intro" onto "credit": it lands just ahead of it.
	require.NoError(t, e.MoveItemTo("intro", "call-flow", "call-flow", 2))
	assert.Equal(t, []string{"discovery", "intro", "credit", "options"}, e.ItemsIn("call-flow"))

	// Drop "options" onto "discovery".
	require.NoError(t, e.MoveItemTo("options", "call-flow", "call-flow", 0))
	assert.Equal(t, []string{"options", "discovery", "intro", "credit"}, e.ItemsIn("call-flow"))

	// Past the end clamps.
	require.NoError(t, e.MoveItemTo("options", "call-flow", "call-flow", 99))
	assert.Equal(t, []string{"discovery", "intro", "credit", "options"}, e.ItemsIn("call-flow"))
}

func TestMoveItemTo_AcrossZonesAtIndex(t *testing.T) {
	e := newEngine(t, orderingConfig())
	require.NoError(t, e.MoveItem("intro", Unplaced, "call-flow"))
	require.NoError(t, e.MoveItem("closing", Unplaced, "call-flow"))

	require.NoError(t, e.MoveItemTo("credit", Unplaced, "call-flow", 1))
	assert.Equal(t, []string{"intro", "credit", "closing"}, e.ItemsIn("call-flow"))
	assert.NotContains(t, e.ItemsIn(Unplaced), "credit")
}

// Moving X to index i within its zone leaves zone[i] == X and keeps the
// others in relative order.
func TestReposition(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		r := rand.New(rand.NewPCG(seed, 1))
		e := newEngine(t, orderingConfig())
		for _, id := range e.ItemsIn(Unplaced) {
			require.NoError(t, e.MoveItem(id, Unplaced, "call-flow"))
		}

		before := e.ItemsIn("call-flow")
		x := before[r.IntN(len(before))]
		i := r.IntN(len(before))

		require.NoError(t, e.Reposition(x, i))
		after := e.ItemsIn("call-flow")

		assert.Equal(t, x, after[i])
		rest := func(seq []string) []string {
			return slices.DeleteFunc(slices.Clone(seq), func(s string) bool { return s == x })
		}
		assert.Equal(t, rest(before), rest(after))
	}
}

// Any sequence of moves and resets keeps every item in exactly one zone.
func TestPartitionInvariant(t *testing.T) {
	cfg := categorizeConfig()
	want := []string{"A", "B", "C"}
	zones := []ZoneID{Unplaced, "X", "Y", "Z", "bogus"}

	for seed := uint64(0); seed < 100; seed++ {
		r := rand.New(rand.NewPCG(seed, 3))
		e, err := New(cfg, WithRand(r))
		require.NoError(t, err)

		for step := 0; step < 200; step++ {
			id := want[r.IntN(len(want))]
			from := zones[r.IntN(len(zones))]
			to := zones[r.IntN(len(zones))]
			switch r.IntN(10) {
			case 0:
				e.Reset()
			case 1:
				_ = e.MoveToUnplaced(id)
			case 2, 3, 4:
				_ = e.MoveItemTo(id, from, to, r.IntN(5)-1)
			default:
				_ = e.MoveItem(id, from, to)
			}
			require.Equal(t, want, allItems(e.Snapshot()), "seed %d step %d", seed, step)
		}
	}
}

func TestGrade_Idempotent(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	require.NoError(t, e.MoveItem("A", Unplaced, "X"))

	first := e.Grade()
	assert.Equal(t, 1, e.Attempts())
	second := e.Grade()
	assert.Equal(t, 2, e.Attempts())
	assert.Equal(t, first, second)
	assert.Equal(t, Graded, e.Phase())

	last, ok := e.LastGrade()
	require.True(t, ok)
	assert.Equal(t, second, last)
}

func TestGrade_OrderingBoundary(t *testing.T) {
	cfg := orderingConfig()

	e := newEngine(t, cfg)
	for _, id := range cfg.Order {
		require.NoError(t, e.MoveItem(id, Unplaced, "call-flow"))
	}
	res := e.Grade()
	assert.True(t, res.FullyCorrect)
	assert.Equal(t, 6, res.Correct)
	assert.Equal(t, 6, res.Total)

	for i := 0; i+1 < len(cfg.Order); i++ {
		e.Reset()
		swapped := slices.Clone(cfg.Order)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]
		for _, id := range swapped {
			require.NoError(t, e.MoveItem(id, Unplaced, "call-flow"))
		}
		res := e.Grade()
		assert.False(t, res.FullyCorrect, "swap at %d", i)
		assert.Equal(t, 4, res.Correct)
		assert.False(t, res.Marks[swapped[i]])
	}
}

func TestGrade_OrderingPartial(t *testing.T) {
	cfg := orderingConfig()
	e := newEngine(t, cfg)
	for _, id := range cfg.Order[:3] {
		require.NoError(t, e.MoveItem(id, Unplaced, "call-flow"))
	}
	res := e.Grade()
	assert.False(t, res.FullyCorrect)
	assert.Equal(t, 3, res.Correct)
	assert.Len(t, res.Marks, 3)
}

func TestGrade_CategorizeScenario(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	require.NoError(t, e.MoveItem("A", Unplaced, "X"))
	require.NoError(t, e.MoveItem("C", Unplaced, "X"))
	require.NoError(t, e.MoveItem("B", Unplaced, "Y"))

	res := e.Grade()
	assert.True(t, res.FullyCorrect)
	assert.Equal(t, 3, res.Correct)

	require.NoError(t, e.MoveItem("B", "Y", "X"))
	res = e.Grade()
	assert.False(t, res.FullyCorrect)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, map[string]bool{"A": true, "B": false, "C": true}, res.Marks)
}

func TestGrade_EmptyZoneMustStayEmpty(t *testing.T) {
	cfg := categorizeConfig()
	cfg.Items = append(cfg.Items, Item{ID: "D"})
	cfg.Accept["X"] = []string{"A", "C", "D"}
	e := newEngine(t, cfg)

	require.NoError(t, e.MoveItem("A", Unplaced, "X"))
	require.NoError(t, e.MoveItem("C", Unplaced, "X"))
	require.NoError(t, e.MoveItem("B", Unplaced, "Y"))
	require.NoError(t, e.MoveItem("D", Unplaced, "Z"))

	res := e.Grade()
	assert.False(t, res.FullyCorrect)
	assert.Equal(t, 3, res.Correct)
}

func TestGrade_PartialCategorizeNotFullyCorrect(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	require.NoError(t, e.MoveItem("A", Unplaced, "X"))
	require.NoError(t, e.MoveItem("C", Unplaced, "X"))

	res := e.Grade()
	assert.False(t, res.FullyCorrect)
	assert.Equal(t, 2, res.Correct)
}

func TestPhaseTransitions(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	assert.Equal(t, Unstarted, e.Phase())

	require.NoError(t, e.MoveItem("A", Unplaced, "X"))
	assert.Equal(t, InProgress, e.Phase())

	e.Grade()
	assert.Equal(t, Graded, e.Phase())

	require.NoError(t, e.MoveToUnplaced("A"))
	assert.Equal(t, InProgress, e.Phase())

	e.Reset()
	assert.Equal(t, Unstarted, e.Phase())
	assert.Zero(t, e.Attempts())
	_, ok := e.LastGrade()
	assert.False(t, ok)
	assert.Len(t, e.ItemsIn(Unplaced), 3)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := newEngine(t, categorizeConfig())
	snap := e.Snapshot()
	snap[Unplaced][0] = "mutated"
	assert.NotContains(t, e.ItemsIn(Unplaced), "mutated")
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Categorize")
	require.NoError(t, err)
	assert.Equal(t, Categorize, m)

	m, err = ParseMode("ordering")
	require.NoError(t, err)
	assert.Equal(t, Ordering, m)

	_, err = ParseMode("matching")
	assert.Error(t, err)
}
