// Package flashcards holds the study deck: the card model, an in-session
// deck with flip/known/review tracking, and an importer from spreadsheets.
package flashcards

import (
	"fmt"
	"slices"
	"strings"
)

// Categories are the card categories, in display order.
var Categories = []string{"compliance", "script", "process", "legal", "objection"}

// Difficulties are the accepted difficulty levels.
var Difficulties = []string{"easy", "medium", "hard"}

// Card is one flashcard.
type Card struct {
	ID         string `yaml:"id" json:"id"`
	Category   string `yaml:"category" json:"category"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
	Front      string `yaml:"front" json:"front"`
	Back       string `yaml:"back" json:"back"`
}

// Validate checks required fields and enumerations.
func (c Card) Validate() error {
	switch {
	case strings.TrimSpace(c.Front) == "":
		return fmt.Errorf("card %q: front is empty", c.ID)
	case strings.TrimSpace(c.Back) == "":
		return fmt.Errorf("card %q: back is empty", c.ID)
	case !slices.Contains(Categories, c.Category):
		return fmt.Errorf("card %q: unknown category %q", c.ID, c.Category)
	case !slices.Contains(Difficulties, c.Difficulty):
		return fmt.Errorf("card %q: unknown difficulty %q", c.ID, c.Difficulty)
	}
	return nil
}

// Slug turns free text into a card id.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
