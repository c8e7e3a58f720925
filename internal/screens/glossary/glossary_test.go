package glossary

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/salesdojo/callcoach/internal/content"
)

func testTerms() []content.Term {
	return []content.Term{
		{Term: "Debt Settlement", Definition: "Negotiating a reduced payoff.", Category: "program"},
		{Term: "Charge-off", Definition: "A debt written off by the creditor.", Category: "credit"},
		{Term: "Escrow", Definition: "The dedicated account holding savings.", Category: "program"},
	}
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestGlossaryFilterByText(t *testing.T) {
	s := New(testTerms(), "")
	assert.Len(t, s.Matches(), 3)

	typeText(s, "debt")
	got := s.Matches()
	assert.Len(t, got, 2)
	assert.Equal(t, "Debt Settlement", got[0].Term)
	assert.Equal(t, "2/3 terms", s.Status())
}

func TestGlossaryInitialFilter(t *testing.T) {
	s := New(testTerms(), "escrow")
	assert.Len(t, s.Matches(), 1)
	assert.Contains(t, s.View(100, 30), "The dedicated account holding savings.")
}

func TestGlossaryCategoryCycle(t *testing.T) {
	s := New(testTerms(), "")
	assert.Equal(t, []string{"credit", "program"}, s.Categories())

	tab := tea.KeyPressMsg{Code: tea.KeyTab}
	s.Update(tab)
	assert.Len(t, s.Matches(), 1)
	s.Update(tab)
	assert.Len(t, s.Matches(), 2)
	s.Update(tab)
	assert.Len(t, s.Matches(), 3)
}

func TestGlossarySelection(t *testing.T) {
	s := New(testTerms(), "")
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, s.selected)
	assert.Contains(t, s.View(100, 30), "The dedicated account holding savings.")

	typeText(s, "zzz")
	assert.Empty(t, s.Matches())
	assert.Contains(t, s.View(100, 30), "No matching terms.")
}
