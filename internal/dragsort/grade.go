package dragsort

import "slices"

// GradeResult is the outcome of one check.
type GradeResult struct {
	// Correct counts correctly placed items: matching positions in
	// ordering mode, items in an accepting zone in categorize mode.
	Correct int
	Total   int
	// FullyCorrect is true only for a complete, exact answer.
	FullyCorrect bool
	// Marks holds per-item correctness for every placed item.
	Marks map[string]bool
}

// Grade scores the current partition, records it as the last result and
// counts an attempt. Partial partitions are gradeable but never fully
// correct.
func (e *Engine) Grade() GradeResult {
	var res GradeResult
	switch e.cfg.Mode {
	case Ordering:
		res = e.gradeOrdering()
	case Categorize:
		res = e.gradeCategorize()
	}
	e.attempts++
	e.phase = Graded
	e.last = &res
	return res
}

func (e *Engine) gradeOrdering() GradeResult {
	seq := e.zones[e.cfg.Target]
	res := GradeResult{
		Total: len(e.cfg.Order),
		Marks: make(map[string]bool, len(seq)),
	}
	for i, id := range seq {
		ok := i < len(e.cfg.Order) && e.cfg.Order[i] == id
		res.Marks[id] = ok
		if ok {
			res.Correct++
		}
	}
	res.FullyCorrect = len(e.zones[Unplaced]) == 0 &&
		len(seq) == len(e.cfg.Order) &&
		res.Correct == len(e.cfg.Order)
	return res
}

func (e *Engine) gradeCategorize() GradeResult {
	res := GradeResult{
		Total: len(e.cfg.Items),
		Marks: make(map[string]bool, len(e.cfg.Items)),
	}
	exact := len(e.zones[Unplaced]) == 0
	for _, z := range e.cfg.Zones {
		want := e.cfg.Accept[z.ID]
		got := e.zones[z.ID]
		for _, id := range got {
			ok := slices.Contains(want, id)
			res.Marks[id] = ok
			if ok {
				res.Correct++
			}
		}
		if !sameSet(got, want) {
			exact = false
		}
	}
	res.FullyCorrect = exact
	return res
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !slices.Contains(b, id) {
			return false
		}
	}
	return true
}
