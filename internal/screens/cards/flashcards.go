// Package cards is the flashcard study screen.
package cards

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/salesdojo/callcoach/internal/flashcards"
	"github.com/salesdojo/callcoach/internal/screen"
	"github.com/salesdojo/callcoach/internal/ui/components"
	"github.com/salesdojo/callcoach/internal/ui/layout"
	"github.com/salesdojo/callcoach/internal/ui/theme"
)

// Screen studies a deck one card at a time.
type Screen struct {
	deck *flashcards.Deck
	log  *slog.Logger
}

var _ screen.Screen = (*Screen)(nil)

// New creates the study screen. A non-zero seed makes shuffles
// reproducible.
func New(cards []flashcards.Card, seed uint64, logger *slog.Logger) *Screen {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Screen{deck: flashcards.NewDeck(cards, rng), log: logger}
}

// Deck exposes the study state.
func (s *Screen) Deck() *flashcards.Deck {
	return s.deck
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "space", "enter", "f":
			s.deck.Flip()
		case "right", "l", "n":
			s.deck.Next()
		case "left", "h", "p":
			s.deck.Previous()
		case "k", "y":
			s.deck.Mark(flashcards.Known)
		case "r":
			s.deck.Mark(flashcards.Review)
		case "s":
			s.deck.Shuffle()
		case "c", "tab":
			s.deck.CycleCategory()
			s.log.Debug("flashcard filter", "category", s.deck.Category(), "cards", s.deck.Len())
		case "x":
			s.deck.ResetMarks()
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			s.deck.Flip()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 72)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	card, ok := s.deck.Current()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dim.Render("No cards in this category."))
	}

	category := s.deck.Category()
	if category == "" {
		category = "all"
	}
	head := fmt.Sprintf("%s  %s  %s",
		components.Badge(strings.ToUpper(card.Category), categoryColor(card.Category)),
		dim.Render(card.Difficulty),
		dim.Render("filter: "+category))

	side, text, accent := "FRONT", card.Front, theme.Primary
	if s.deck.Flipped() {
		side, text, accent = "BACK", card.Back, theme.Secondary
	}
	switch s.deck.MarkOf(card.ID) {
	case flashcards.Known:
		side += "  " + theme.Correct.Render("✓ known")
	case flashcards.Review:
		side += "  " + lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("↻ review")
	}

	face := lipgloss.NewStyle().
		Width(cw - 4).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Bold(!s.deck.Flipped()).
		Render(text)

	known, review, total := s.deck.Progress()
	progress := components.NewProgressBar(
		fmt.Sprintf("Card %d of %d", s.deck.Position()+1, s.deck.Len()),
		float64(s.deck.Position()+1)/float64(total), false, cw).View()
	tally := fmt.Sprintf("%s   %s   %s",
		theme.Correct.Render(fmt.Sprintf("%d known", known)),
		lipgloss.NewStyle().Foreground(theme.Warning).Render(fmt.Sprintf("%d to review", review)),
		dim.Render(fmt.Sprintf("%d unmarked", total-known-review)))

	body := strings.Join([]string{
		head,
		"",
		components.Card(dim.Render(side)+"\n"+face, cw, accent),
		"",
		progress,
		tally,
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func categoryColor(category string) color.Color {
	switch category {
	case "compliance":
		return theme.Error
	case "script":
		return theme.Primary
	case "process":
		return theme.Secondary
	case "legal":
		return theme.Warning
	default:
		return theme.Analysis
	}
}

func (s *Screen) Title() string {
	return "Flashcards"
}

func (s *Screen) Status() string {
	known, _, total := s.deck.Progress()
	return fmt.Sprintf("%d/%d known", known, total)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "k", Description: "Known"},
		{Key: "r", Description: "Review"},
		{Key: "s", Description: "Shuffle"},
		{Key: "c", Description: "Category"},
	}
}
