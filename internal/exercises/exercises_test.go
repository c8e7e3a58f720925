package exercises

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/dragsort"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	p, err := content.Load(content.LoadOptions{})
	require.NoError(t, err)
	c, err := NewCatalog(p.Exercises)
	require.NoError(t, err)
	return c
}

func TestCatalog_BuiltInExercises(t *testing.T) {
	c := loadCatalog(t)
	assert.Equal(t, []string{CallFlow, ComplianceCheckpoint, QuestionSorter}, c.IDs())

	flow, ok := c.Get(CallFlow)
	require.True(t, ok)
	assert.Equal(t, dragsort.Ordering, flow.Config.Mode)
	assert.Equal(t, []string{
		"intro-opening", "discovery-info", "credit-analysis",
		"five-options", "program-explanation", "closing-final",
	}, flow.Config.Order)

	sorter, _ := c.Get(QuestionSorter)
	assert.Equal(t, dragsort.Categorize, sorter.Config.Mode)
	assert.Len(t, sorter.Config.Items, 10)
	assert.Len(t, sorter.Config.Accept["current"], 5)
	assert.Len(t, sorter.Config.Accept["past-due"], 5)

	compliance, _ := c.Get(ComplianceCheckpoint)
	assert.Len(t, compliance.Config.Zones, 6)
	assert.Len(t, compliance.Config.Accept, 3, "only moments with disclosures have answer keys")
}

func solve(t *testing.T, e *dragsort.Engine, cfg dragsort.Config) {
	t.Helper()
	switch cfg.Mode {
	case dragsort.Ordering:
		for _, id := range cfg.Order {
			require.NoError(t, e.MoveItem(id, dragsort.Unplaced, cfg.Target))
		}
	case dragsort.Categorize:
		for zone, ids := range cfg.Accept {
			for _, id := range ids {
				require.NoError(t, e.MoveItem(id, dragsort.Unplaced, zone))
			}
		}
	}
}

func TestCatalog_EveryExerciseIsSolvable(t *testing.T) {
	c := loadCatalog(t)
	for _, ex := range c.List() {
		t.Run(ex.ID, func(t *testing.T) {
			e, err := c.NewEngine(ex.ID, dragsort.WithSeed(1))
			require.NoError(t, err)

			solve(t, e, ex.Config)
			res := e.Grade()
			assert.True(t, res.FullyCorrect)
			assert.Equal(t, res.Total, res.Correct)
		})
	}
}

func TestComplianceCheckpoint_EmptyMomentMustStayEmpty(t *testing.T) {
	c := loadCatalog(t)
	ex, _ := c.Get(ComplianceCheckpoint)
	e, err := c.NewEngine(ComplianceCheckpoint, dragsort.WithSeed(1))
	require.NoError(t, err)

	solve(t, e, ex.Config)
	require.NoError(t, e.MoveItem("credit-impact", "program-explanation", "closing"))

	res := e.Grade()
	assert.False(t, res.FullyCorrect)
	assert.Equal(t, 7, res.Correct)
	assert.False(t, res.Marks["credit-impact"])
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(content.Exercise{ID: "x", Mode: "matching"})
	assert.ErrorContains(t, err, `exercise "x"`)

	_, err = Build(content.Exercise{
		ID:    "y",
		Mode:  "ordering",
		Zones: []content.ExerciseZone{{ID: "flow", Title: "Flow"}},
		Items: []content.ExerciseItem{{ID: "a", Text: "A"}},
		Order: []string{"a"},
	})
	assert.ErrorContains(t, err, "target zone")

	c := loadCatalog(t)
	_, err = c.NewEngine("nope")
	assert.Error(t, err)
}
