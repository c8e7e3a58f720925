// Package exercises turns drag-sort exercise definitions from the content
// pack into ready-to-play engines.
package exercises

import (
	"fmt"
	"sort"

	"github.com/salesdojo/callcoach/internal/content"
	"github.com/salesdojo/callcoach/internal/dragsort"
)

// Well-known exercise ids.
const (
	CallFlow             = "call-flow"
	QuestionSorter       = "question-sorter"
	ComplianceCheckpoint = "compliance-checkpoint"
)

// Exercise is a validated exercise definition.
type Exercise struct {
	ID           string
	Title        string
	Summary      string
	Instructions string
	Success      string
	Config       dragsort.Config
}

// Catalog holds the exercises available to the app.
type Catalog struct {
	list []Exercise
	byID map[string]int
}

// NewCatalog validates every definition. A single bad exercise fails the
// whole catalog so content mistakes surface at startup.
func NewCatalog(defs []content.Exercise) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(defs))}
	for _, def := range defs {
		ex, err := Build(def)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("exercise %q defined twice", ex.ID)
		}
		c.byID[ex.ID] = len(c.list)
		c.list = append(c.list, ex)
	}
	return c, nil
}

// Build converts a content definition into an engine configuration.
func Build(def content.Exercise) (Exercise, error) {
	mode, err := dragsort.ParseMode(def.Mode)
	if err != nil {
		return Exercise{}, fmt.Errorf("exercise %q: %w", def.ID, err)
	}

	cfg := dragsort.Config{
		Mode:   mode,
		Target: dragsort.ZoneID(def.Target),
		Order:  def.Order,
	}
	for _, it := range def.Items {
		cfg.Items = append(cfg.Items, dragsort.Item{ID: it.ID, Text: it.Text, Detail: it.Detail, Meta: it.Meta})
	}
	for _, z := range def.Zones {
		id := dragsort.ZoneID(z.ID)
		cfg.Zones = append(cfg.Zones, dragsort.Zone{ID: id, Title: z.Title, Description: z.Description})
		if mode == dragsort.Categorize && len(z.Accept) > 0 {
			if cfg.Accept == nil {
				cfg.Accept = make(map[dragsort.ZoneID][]string)
			}
			cfg.Accept[id] = z.Accept
		}
	}
	if err := cfg.Validate(); err != nil {
		return Exercise{}, fmt.Errorf("exercise %q: %w", def.ID, err)
	}

	return Exercise{
		ID:           def.ID,
		Title:        def.Title,
		Summary:      def.Summary,
		Instructions: def.Instructions,
		Success:      def.Success,
		Config:       cfg,
	}, nil
}

// List returns the exercises in content order.
func (c *Catalog) List() []Exercise {
	return c.list
}

// IDs returns the exercise ids, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.list))
	for _, ex := range c.list {
		ids = append(ids, ex.ID)
	}
	sort.Strings(ids)
	return ids
}

// Get looks up an exercise.
func (c *Catalog) Get(id string) (Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return c.list[i], true
}

// NewEngine starts a fresh attempt at exercise id.
func (c *Catalog) NewEngine(id string, opts ...dragsort.Option) (*dragsort.Engine, error) {
	ex, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown exercise %q", id)
	}
	return dragsort.New(ex.Config, opts...)
}
