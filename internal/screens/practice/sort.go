package practice

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/dragsort"
	"github.com/salesdojo/callcoach/internal/exercises"
	"github.com/salesdojo/callcoach/internal/pointer"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/layout"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowItem
	rowEnd
)

// row is one line of the zone list. Item rows drop in front of their item;
// header rows drop at the top of the zone and end rows at the bottom.
type row struct {
	kind  rowKind
	zone  dragsort.ZoneID
	index int
	item  string
}

func (r row) slot() (dragsort.ZoneID, int) {
	switch r.kind {
	case rowHeader:
		return r.zone, 0
	case rowEnd:
		return r.zone, -1
	default:
		return r.zone, r.index
	}
}

// SortScreen plays one drag-sort exercise with keyboard or mouse.
type SortScreen struct {
	ex      exercises.Exercise
	engine  *dragsort.Engine
	gesture *dragsort.Gesture
	log     *slog.Logger

	tracker *pointer.Tracker
	grab    *pointer.Grab

	rows   []row
	cursor int
	offset int
	// Screen row of rows[offset] in the last View; -1 before the first.
	rowsTop int
	visible int
}

var (
	_ screen.Screen          = (*SortScreen)(nil)
	_ screen.Closer          = (*SortScreen)(nil)
	_ screen.PointerCapturer = (*SortScreen)(nil)
)

// NewSortScreen creates a screen over a fresh engine for ex.
func NewSortScreen(ex exercises.Exercise, engine *dragsort.Engine, logger *slog.Logger) *SortScreen {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SortScreen{
		ex:      ex,
		engine:  engine,
		gesture: dragsort.NewGesture(engine),
		log:     logger.With("exercise", ex.ID),
		tracker: pointer.NewTracker(),
		rowsTop: -1,
	}
	s.rebuild()
	s.cursor = s.firstItemRow()
	return s
}

// Engine exposes the exercise state.
func (s *SortScreen) Engine() *dragsort.Engine {
	return s.engine
}

func (s *SortScreen) zoneOrder() []dragsort.Zone {
	zones := []dragsort.Zone{{ID: dragsort.Unplaced, Title: "Unplaced"}}
	return append(zones, s.engine.Zones()...)
}

// rebuild recomputes the row list from the partition.
func (s *SortScreen) rebuild() {
	s.rows = s.rows[:0]
	for _, z := range s.zoneOrder() {
		s.rows = append(s.rows, row{kind: rowHeader, zone: z.ID})
		for i, id := range s.engine.ItemsIn(z.ID) {
			s.rows = append(s.rows, row{kind: rowItem, zone: z.ID, index: i, item: id})
		}
		s.rows = append(s.rows, row{kind: rowEnd, zone: z.ID})
	}
	s.cursor = min(max(s.cursor, 0), len(s.rows)-1)
}

func (s *SortScreen) firstItemRow() int {
	for i, r := range s.rows {
		if r.kind == rowItem {
			return i
		}
	}
	return 0
}

func (s *SortScreen) rowOfItem(id string) int {
	for i, r := range s.rows {
		if r.kind == rowItem && r.item == id {
			return i
		}
	}
	return s.cursor
}

// step moves the cursor to the next row it may rest on: item rows when
// idle, item and end rows while carrying.
func (s *SortScreen) step(dir int) {
	for i := s.cursor + dir; i >= 0 && i < len(s.rows); i += dir {
		r := s.rows[i]
		if r.kind == rowItem || (s.gesture.Active() && r.kind == rowEnd) {
			s.cursor = i
			break
		}
	}
	if s.gesture.Active() {
		s.gesture.Over(s.rows[s.cursor].slot())
	}
}

func (s *SortScreen) Init() tea.Cmd {
	s.log.Info("exercise started", "mode", s.engine.Mode().String(), "items", len(s.ex.Config.Items))
	return nil
}

func (s *SortScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		s.handleKey(msg.String())

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			s.press(msg.Y)
		}

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			s.offset = max(s.offset-1, 0)
		case tea.MouseWheelDown:
			s.offset = min(s.offset+1, max(len(s.rows)-1, 0))
		}

	case tea.MouseMotionMsg:
		s.tracker.Move(pointer.Point{X: msg.X, Y: msg.Y})

	case tea.MouseReleaseMsg:
		s.tracker.Up(pointer.Point{X: msg.X, Y: msg.Y})
	}
	return s, nil
}

func (s *SortScreen) handleKey(k string) {
	switch k {
	case "up", "k":
		s.step(-1)
	case "down", "j":
		s.step(1)
	case "shift+up", "K":
		s.nudge(-1)
	case "shift+down", "J":
		s.nudge(1)
	case "space", "enter":
		if s.gesture.Active() {
			s.drop()
		} else if r := s.rows[s.cursor]; r.kind == rowItem {
			s.gesture.Begin(r.item)
			s.gesture.Over(r.slot())
		}
	case "c":
		item := s.gesture.Item()
		s.gesture.Cancel()
		s.cursor = s.rowOfItem(item)
	case "u", "0":
		if r := s.rows[s.cursor]; r.kind == rowItem && !s.gesture.Active() {
			s.apply(s.engine.MoveToUnplaced(r.item), r.item)
		}
	case "g":
		s.grade()
	case "r":
		s.gesture.Cancel()
		s.engine.Reset()
		s.rebuild()
		s.cursor = s.firstItemRow()
		s.log.Info("exercise reset")
	default:
		// 1-9 sends the item under the cursor to the end of that zone.
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' && !s.gesture.Active() {
			zones := s.engine.Zones()
			i := int(k[0] - '1')
			if r := s.rows[s.cursor]; r.kind == rowItem && i < len(zones) {
				s.apply(s.engine.MoveItem(r.item, r.zone, zones[i].ID), r.item)
			}
		}
	}
}

// nudge moves the item under the cursor one place within its zone.
func (s *SortScreen) nudge(dir int) {
	r := s.rows[s.cursor]
	if r.kind != rowItem || s.gesture.Active() {
		return
	}
	target := r.index + dir
	if target < 0 || target >= len(s.engine.ItemsIn(r.zone)) {
		return
	}
	s.apply(s.engine.Reposition(r.item, target), r.item)
}

func (s *SortScreen) drop() {
	item := s.gesture.Item()
	_, err := s.gesture.Drop()
	s.apply(err, item)
}

// apply refreshes rows after a move and keeps the cursor on the item.
func (s *SortScreen) apply(err error, item string) {
	if err != nil {
		s.log.Warn("move rejected", "item", item, "error", err)
	}
	s.rebuild()
	s.cursor = s.rowOfItem(item)
}

func (s *SortScreen) grade() {
	s.gesture.Cancel()
	res := s.engine.Grade()
	s.log.Info("exercise graded",
		"attempt", s.engine.Attempts(),
		"correct", res.Correct,
		"total", res.Total,
		"fully_correct", res.FullyCorrect)
}

// press picks up the item under the pointer and captures the pointer until
// release.
func (s *SortScreen) press(y int) {
	r, ok := s.rowAt(y)
	if !ok || r.kind != rowItem {
		return
	}
	s.cursor = s.rowOfItem(r.item)
	if !s.gesture.Begin(r.item) {
		return
	}

	s.grab.Release()
	s.grab = s.tracker.Acquire(pointer.Handlers{
		Move: func(p pointer.Point) {
			if over, ok := s.rowAt(p.Y); ok {
				s.gesture.Over(over.slot())
			} else {
				s.gesture.Leave()
			}
		},
		Up: func(p pointer.Point) {
			if over, ok := s.rowAt(p.Y); ok {
				s.gesture.Over(over.slot())
			} else {
				s.gesture.Leave()
			}
			s.drop()
			s.grab.Release()
		},
	})
}

// rowAt maps a content-relative screen row to a zone row.
func (s *SortScreen) rowAt(y int) (row, bool) {
	if s.rowsTop < 0 || y < s.rowsTop || y >= s.rowsTop+s.visible {
		return row{}, false
	}
	i := s.offset + y - s.rowsTop
	if i < 0 || i >= len(s.rows) {
		return row{}, false
	}
	return s.rows[i], true
}

// CapturingPointer reports whether a mouse drag is live.
func (s *SortScreen) CapturingPointer() bool {
	return s.tracker.Active()
}

// Close drops any live drag.
func (s *SortScreen) Close() {
	s.tracker.ReleaseAll()
	s.gesture.Cancel()
}

func (s *SortScreen) Title() string {
	return s.ex.Title
}

func (s *SortScreen) Status() string {
	if res, ok := s.engine.LastGrade(); ok && s.engine.Phase() == dragsort.Graded {
		return fmt.Sprintf("%d/%d correct", res.Correct, res.Total)
	}
	placed := len(s.ex.Config.Items) - len(s.engine.ItemsIn(dragsort.Unplaced))
	return fmt.Sprintf("%d/%d placed", placed, len(s.ex.Config.Items))
}

func (s *SortScreen) KeyHints() []layout.KeyHint {
	if s.gesture.Active() {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose spot"},
			{Key: "Space", Description: "Drop"},
			{Key: "c", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Pick up"},
		{Key: "1-9", Description: "Send to zone"},
		{Key: "u", Description: "Unplace"},
		{Key: "g", Description: "Check"},
		{Key: "r", Description: "Reset"},
	}
}

func (s *SortScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	pad := "  "

	head := []string{
		"",
		pad + theme.Heading.Render(s.ex.Title),
		pad + dim.Render(s.ex.Instructions),
		"",
	}
	footer := s.renderFooter(width)

	s.rowsTop = len(head)
	s.visible = max(height-len(head)-lipgloss.Height(footer)-1, 3)
	s.scrollToCursor()

	end := min(s.offset+s.visible, len(s.rows))
	lines := make([]string, 0, end-s.offset)
	for _, r := range s.rows[s.offset:end] {
		lines = append(lines, s.renderRow(r, width))
	}
	for len(lines) < s.visible {
		lines = append(lines, "")
	}

	return strings.Join(head, "\n") + "\n" + strings.Join(lines, "\n") + "\n\n" + footer
}

func (s *SortScreen) scrollToCursor() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.visible {
		s.offset = s.cursor - s.visible + 1
	}
	s.offset = min(max(s.offset, 0), max(len(s.rows)-s.visible, 0))
}

func (s *SortScreen) renderRow(r row, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	zone, index, hovering := s.gesture.Target()
	n := len(s.engine.ItemsIn(r.zone))
	targeted := hovering && zone == r.zone &&
		((r.kind == rowItem && index == r.index) || (r.kind == rowEnd && (index < 0 || index >= n)))

	switch r.kind {
	case rowHeader:
		title := string(r.zone)
		number := ""
		for i, z := range s.zoneOrder() {
			if z.ID == r.zone {
				title = z.Title
				if i > 0 {
					number = fmt.Sprintf("%d ", i)
				}
				if z.Description != "" {
					title += dim.Render("  " + z.Description)
				}
			}
		}
		return "  " + theme.Heading.Render(number) + lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(title)

	case rowEnd:
		if targeted {
			return "    " + theme.Selected.Render("▸ drop here")
		}
		if n == 0 {
			return "    " + dim.Render("(empty)")
		}
		return ""
	}

	it, _ := s.engine.Item(r.item)
	text := it.Text
	if max(width-12, 10) < len([]rune(text)) {
		text = string([]rune(text)[:max(width-13, 9)]) + "…"
	}

	mark := "  "
	if res, ok := s.engine.LastGrade(); ok && s.engine.Phase() == dragsort.Graded && r.zone != dragsort.Unplaced {
		if res.Marks[r.item] {
			mark = theme.Correct.Render("✓ ")
		} else {
			mark = theme.Incorrect.Render("✗ ")
		}
	}

	prefix := "    "
	style := theme.Unselected
	switch {
	case s.gesture.Active() && s.gesture.Item() == r.item:
		style = lipgloss.NewStyle().Foreground(theme.Accent).Italic(true)
	case s.rows[s.cursor] == r:
		prefix = "  ▸ "
		style = theme.Selected
	}
	if targeted {
		prefix = "  " + theme.Selected.Render("⇢ ")
	}
	return prefix + mark + style.Render(text)
}

func (s *SortScreen) renderFooter(width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var lines []string

	if r := s.rows[s.cursor]; r.kind == rowItem {
		it, _ := s.engine.Item(r.item)
		if it.Detail != "" {
			lines = append(lines, "  "+dim.Render(it.Detail))
		}
		if s.engine.Phase() == dragsort.Graded {
			for _, k := range slices.Sorted(maps.Keys(it.Meta)) {
				lines = append(lines, "  "+dim.Render(k+": "+it.Meta[k]))
			}
		}
	}

	if res, ok := s.engine.LastGrade(); ok && s.engine.Phase() == dragsort.Graded {
		summary := fmt.Sprintf("Attempt %d: %d of %d correct.", s.engine.Attempts(), res.Correct, res.Total)
		if res.FullyCorrect {
			lines = append(lines, "  "+theme.Correct.Render("Perfect! "+s.ex.Success))
		} else {
			lines = append(lines, "  "+theme.Incorrect.Render(summary+" Keep going, then press g to check again."))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
