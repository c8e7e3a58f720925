package decisiontree

import (
	"fmt"
	"math"
)

// Choice records one answered question.
type Choice struct {
	Node     string
	Option   int
	Correct  bool
	Response string
}

// Session walks a tree from its start node.
type Session struct {
	tree    Tree
	current string
	visited []string
	choices []Choice
	score   int
	done    bool
}

// NewSession validates t and positions a session at its start node.
func NewSession(t Tree) (*Session, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decision tree: %w", err)
	}
	s := &Session{tree: t}
	s.Reset()
	return s, nil
}

// Reset returns to the start node and clears the score.
func (s *Session) Reset() {
	s.current = s.tree.Start
	s.visited = nil
	s.choices = nil
	s.score = 0
	s.done = false
}

// Tree returns the exercise definition.
func (s *Session) Tree() Tree { return s.tree }

// Current returns the node awaiting an answer. It returns false once the
// exercise is complete.
func (s *Session) Current() (Node, bool) {
	if s.done {
		return Node{}, false
	}
	return s.tree.Node(s.current)
}

// Choose answers the current node with option i (zero-based), records the
// node as visited, scores the answer and moves on.
func (s *Session) Choose(i int) (Choice, error) {
	node, ok := s.Current()
	if !ok {
		return Choice{}, ErrFinished
	}
	if i < 0 || i >= len(node.Options) {
		return Choice{}, fmt.Errorf("%w: %d", ErrUnknownOption, i+1)
	}
	opt := node.Options[i]

	c := Choice{Node: node.ID, Option: i, Correct: opt.Correct, Response: opt.Response}
	s.visited = append(s.visited, node.ID)
	s.choices = append(s.choices, c)
	if opt.Correct {
		s.score++
	}
	if opt.Next == Complete {
		s.done = true
	} else {
		s.current = opt.Next
	}
	return c, nil
}

// LastChoice returns the most recent answer.
func (s *Session) LastChoice() (Choice, bool) {
	if len(s.choices) == 0 {
		return Choice{}, false
	}
	return s.choices[len(s.choices)-1], true
}

// Done reports whether the exercise is complete.
func (s *Session) Done() bool { return s.done }

// Score returns the number of correct answers.
func (s *Session) Score() int { return s.score }

// Answered returns the number of questions answered.
func (s *Session) Answered() int { return len(s.choices) }

// Visited returns the answered node ids in order.
func (s *Session) Visited() []string {
	return append([]string(nil), s.visited...)
}

// Total is the number of questions in the tree. A single path may
// answer fewer.
func (s *Session) Total() int { return len(s.tree.Nodes) }

// Percent is the score over every question in the tree, rounded to the
// nearest whole percent.
func (s *Session) Percent() int {
	if len(s.tree.Nodes) == 0 {
		return 0
	}
	return int(math.Round(float64(s.score) * 100 / float64(len(s.tree.Nodes))))
}

// Progress is the share of the tree's nodes visited so far, in [0,1].
func (s *Session) Progress() float64 {
	if len(s.tree.Nodes) == 0 {
		return 0
	}
	if s.done {
		return 1
	}
	return float64(len(s.visited)) / float64(len(s.tree.Nodes))
}
