// Package dragsort implements the drag-and-drop sorting exercise engine: a
// set of items partitioned across named zones, an invariant-preserving move
// primitive, and grading for ordering and categorization exercises.
package dragsort

import (
	"errors"
	"fmt"
	"strings"
)

// ZoneID names a zone.
type ZoneID string

// Unplaced holds items the user has not sorted yet. It exists in every
// exercise.
const Unplaced ZoneID = "unplaced"

var (
	ErrUnknownZone = errors.New("dragsort: unknown zone")
	ErrNotInZone   = errors.New("dragsort: item not in zone")
	ErrUnknownItem = errors.New("dragsort: unknown item")
)

// Mode selects how a partition is graded.
type Mode int

const (
	// Ordering grades one target zone position by position.
	Ordering Mode = iota
	// Categorize grades each zone's item set.
	Categorize
)

func (m Mode) String() string {
	switch m {
	case Ordering:
		return "ordering"
	case Categorize:
		return "categorize"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "ordering" or "categorize".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordering", "order":
		return Ordering, nil
	case "categorize", "categorization", "category":
		return Categorize, nil
	}
	return 0, fmt.Errorf("unknown exercise mode %q", s)
}

// Item is one draggable card.
type Item struct {
	ID     string
	Text   string
	Detail string
	Meta   map[string]string
}

// Zone is a named drop target.
type Zone struct {
	ID          ZoneID
	Title       string
	Description string
}

// Config describes one exercise.
type Config struct {
	Mode  Mode
	Items []Item
	// Zones are the drop targets, excluding Unplaced.
	Zones []Zone

	// Ordering mode.
	Target ZoneID
	Order  []string

	// Categorize mode: the item ids that belong in each zone. A zone
	// missing from the map must end up empty.
	Accept map[ZoneID][]string
}

// Validate reports every structural problem in c.
func (c Config) Validate() error {
	var errs []error

	if len(c.Items) == 0 {
		errs = append(errs, errors.New("no items"))
	}
	items := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		switch {
		case it.ID == "":
			errs = append(errs, errors.New("item with empty id"))
		case items[it.ID]:
			errs = append(errs, fmt.Errorf("duplicate item %q", it.ID))
		}
		items[it.ID] = true
	}

	zones := make(map[ZoneID]bool, len(c.Zones))
	for _, z := range c.Zones {
		switch {
		case z.ID == "":
			errs = append(errs, errors.New("zone with empty id"))
		case z.ID == Unplaced:
			errs = append(errs, fmt.Errorf("zone %q is reserved", Unplaced))
		case zones[z.ID]:
			errs = append(errs, fmt.Errorf("duplicate zone %q", z.ID))
		}
		zones[z.ID] = true
	}
	if len(c.Zones) == 0 {
		errs = append(errs, errors.New("no zones"))
	}

	switch c.Mode {
	case Ordering:
		if !zones[c.Target] {
			errs = append(errs, fmt.Errorf("target zone %q is not declared", c.Target))
		}
		if len(c.Order) == 0 {
			errs = append(errs, errors.New("ordering exercise without an order"))
		}
		seen := make(map[string]bool, len(c.Order))
		for _, id := range c.Order {
			if !items[id] {
				errs = append(errs, fmt.Errorf("order references unknown item %q", id))
			}
			if seen[id] {
				errs = append(errs, fmt.Errorf("order lists %q twice", id))
			}
			seen[id] = true
		}
	case Categorize:
		owner := make(map[string]ZoneID)
		for z, ids := range c.Accept {
			if !zones[z] {
				errs = append(errs, fmt.Errorf("answer key references unknown zone %q", z))
			}
			for _, id := range ids {
				if !items[id] {
					errs = append(errs, fmt.Errorf("zone %q accepts unknown item %q", z, id))
				}
				if prev, dup := owner[id]; dup {
					errs = append(errs, fmt.Errorf("item %q accepted by both %q and %q", id, prev, z))
				}
				owner[id] = z
			}
		}
		for _, it := range c.Items {
			if it.ID != "" && owner[it.ID] == "" {
				errs = append(errs, fmt.Errorf("item %q is accepted by no zone", it.ID))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported mode %v", c.Mode))
	}

	return errors.Join(errs...)
}
