// Package decisiontree runs the branching "5 options" practice exercise:
// each node asks a question with a fixed set of answers, and each answer
// leads to another node or completes the exercise.
package decisiontree

import (
	"errors"
	"fmt"
)

// Complete is the Next value that ends the exercise.
const Complete = "complete"

var (
	ErrFinished      = errors.New("decision tree already complete")
	ErrUnknownOption = errors.New("no such option")
)

// Option is one answer to a node's question.
type Option struct {
	Text     string `yaml:"text" json:"text"`
	Response string `yaml:"response" json:"response"`
	Next     string `yaml:"next" json:"next"`
	Correct  bool   `yaml:"correct" json:"correct"`
}

// Node is one question in the tree.
type Node struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Question    string   `yaml:"question" json:"question"`
	Options     []Option `yaml:"options" json:"options"`
}

// Tree is a complete exercise definition.
type Tree struct {
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary" json:"summary"`
	Start   string `yaml:"start" json:"start"`
	Nodes   []Node `yaml:"nodes" json:"nodes"`
}

// Node looks up a node by id.
func (t Tree) Node(id string) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate checks that the start node exists, ids are unique and every
// option leads somewhere.
func (t Tree) Validate() error {
	var errs []error
	ids := make(map[string]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.ID == "" || n.ID == Complete {
			errs = append(errs, fmt.Errorf("invalid node id %q", n.ID))
		}
		if ids[n.ID] {
			errs = append(errs, fmt.Errorf("duplicate node %q", n.ID))
		}
		ids[n.ID] = true
	}
	if !ids[t.Start] {
		errs = append(errs, fmt.Errorf("start node %q not found", t.Start))
	}
	for _, n := range t.Nodes {
		if len(n.Options) == 0 {
			errs = append(errs, fmt.Errorf("node %q has no options", n.ID))
		}
		for i, o := range n.Options {
			if o.Next != Complete && !ids[o.Next] {
				errs = append(errs, fmt.Errorf("node %q option %d leads to unknown node %q", n.ID, i+1, o.Next))
			}
		}
	}
	return errors.Join(errs...)
}
