// Package content loads the training content pack: the playlist, drag-sort
// exercises, the decision tree, glossary, flashcards and call scripts.
//
// The pack is embedded in the binary. Individual files can be overridden
// from a directory, which lets trainers update content without a rebuild.
package content

import (
	"github.com/salesdojo/callcoach/internal/decisiontree"
	"github.com/salesdojo/callcoach/internal/flashcards"
	"github.com/salesdojo/callcoach/internal/playlist"
)

// Pack is the fully loaded content.
type Pack struct {
	Tracks       []playlist.Track
	Exercises    []Exercise
	DecisionTree decisiontree.Tree
	Glossary     []Term
	Flashcards   []flashcards.Card
	Modules      []Module
	Compliance   []Requirement
}

// Exercise is a drag-sort exercise definition.
type Exercise struct {
	ID           string         `yaml:"id"`
	Title        string         `yaml:"title"`
	Summary      string         `yaml:"summary"`
	Instructions string         `yaml:"instructions"`
	Mode         string         `yaml:"mode"`
	Target       string         `yaml:"target"`
	Order        []string       `yaml:"order"`
	Success      string         `yaml:"success"`
	Zones        []ExerciseZone `yaml:"zones"`
	Items        []ExerciseItem `yaml:"items"`
}

// ExerciseZone is a drop target. Accept lists the items that belong there.
type ExerciseZone struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Accept      []string `yaml:"accept"`
}

// ExerciseItem is a draggable card.
type ExerciseItem struct {
	ID     string            `yaml:"id"`
	Text   string            `yaml:"text"`
	Detail string            `yaml:"detail"`
	Meta   map[string]string `yaml:"meta"`
}

// Term is a glossary entry.
type Term struct {
	Term       string `yaml:"term"`
	Definition string `yaml:"definition"`
	Category   string `yaml:"category"`
}

// Requirement is a compliance phrase the rep must say.
type Requirement struct {
	ID      string `yaml:"id"`
	Phrase  string `yaml:"phrase"`
	Context string `yaml:"context"`
	Legal   string `yaml:"legal"`
}

// Module is one call-script section, linked to a playlist track by module key.
type Module struct {
	Key         string       `yaml:"key"`
	Track       string       `yaml:"track"`
	Title       string       `yaml:"title"`
	Color       string       `yaml:"color"`
	Subsections []Subsection `yaml:"subsections"`
}

// Subsection groups script blocks under a heading.
type Subsection struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Blocks []Block `yaml:"blocks"`
}

// BlockKind discriminates script blocks.
type BlockKind string

const (
	BlockVerbatim   BlockKind = "verbatim"
	BlockCompliance BlockKind = "compliance"
	BlockAnalysis   BlockKind = "analysis"
	BlockTransition BlockKind = "transition"
	BlockBranching  BlockKind = "branching"
	BlockRegular    BlockKind = "regular"
)

// BlockKinds lists every kind, in the order the schema enumerates them.
var BlockKinds = []BlockKind{BlockVerbatim, BlockCompliance, BlockAnalysis, BlockTransition, BlockBranching, BlockRegular}

// Block is one piece of script. Warning is set on compliance blocks and
// Branches on branching blocks.
type Block struct {
	Kind     BlockKind `yaml:"kind"`
	Text     string    `yaml:"text"`
	Warning  string    `yaml:"warning,omitempty"`
	Branches []Branch  `yaml:"branches,omitempty"`
}

// Branch is one conditional path in a branching block.
type Branch struct {
	Condition string `yaml:"condition"`
	Response  string `yaml:"response"`
	Next      string `yaml:"next,omitempty"`
}

// Exercise looks up an exercise by id.
func (p *Pack) Exercise(id string) (Exercise, bool) {
	for _, ex := range p.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}

// ModuleForTrack returns the script module linked to a playlist module key.
func (p *Pack) ModuleForTrack(key string) (Module, bool) {
	for _, m := range p.Modules {
		if m.Track == key {
			return m, true
		}
	}
	return Module{}, false
}

// TrackIndex returns the playlist index of the track with module key.
func (p *Pack) TrackIndex(key string) (int, bool) {
	for i, t := range p.Tracks {
		if t.ModuleKey == key {
			return i, true
		}
	}
	return 0, false
}
