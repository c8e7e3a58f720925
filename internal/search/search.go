// Package search finds text across the content pack: script blocks,
// compliance requirements, glossary terms and flashcards.
package search

import (
	"slices"
	"strings"

	"github.com/salesdojo/callcoach/internal/content"
)

// Kind tags a result with the content it came from.
type Kind string

const (
	KindScript     Kind = "script"
	KindCompliance Kind = "compliance"
	KindGlossary   Kind = "glossary"
	KindFlashcard  Kind = "flashcard"
)

// Result is one match. Location fields are set according to Kind.
type Result struct {
	Kind  Kind
	Title string
	// Context is a secondary label: the subsection, requirement context,
	// glossary category or card category.
	Context string
	Text    string

	// Script results.
	ModuleKey  string
	Subsection int
	Block      int
	BlockKind  content.BlockKind

	// Compliance and flashcard results.
	ID string
}

// Index searches one content pack.
type Index struct {
	pack *content.Pack
}

// New creates an index over p.
func New(p *content.Pack) *Index {
	return &Index{pack: p}
}

// Search returns every case-insensitive substring match for query, grouped
// by kind in a fixed order. A blank query matches nothing.
func (ix *Index) Search(query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	has := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}

	var out []Result
	for _, m := range ix.pack.Modules {
		for si, sub := range m.Subsections {
			for bi, b := range sub.Blocks {
				if !has(b.Text, b.Warning) && !branchesMatch(b.Branches, has) {
					continue
				}
				text := b.Text
				if !has(text) && has(b.Warning) {
					text = b.Warning
				}
				out = append(out, Result{
					Kind:       KindScript,
					Title:      m.Title,
					Context:    sub.Title,
					Text:       text,
					ModuleKey:  m.Key,
					Subsection: si,
					Block:      bi,
					BlockKind:  b.Kind,
				})
			}
		}
	}

	for _, r := range ix.pack.Compliance {
		if has(r.Phrase, r.Context, r.Legal) {
			out = append(out, Result{Kind: KindCompliance, Title: r.Phrase, Context: r.Context, Text: r.Legal, ID: r.ID})
		}
	}

	for _, t := range ix.pack.Glossary {
		if has(t.Term, t.Definition) {
			out = append(out, Result{Kind: KindGlossary, Title: t.Term, Context: t.Category, Text: t.Definition})
		}
	}

	for _, c := range ix.pack.Flashcards {
		if has(c.Front, c.Back) {
			out = append(out, Result{Kind: KindFlashcard, Title: c.Front, Context: c.Category, Text: c.Back, ID: c.ID})
		}
	}
	return out
}

func branchesMatch(bs []content.Branch, has func(...string) bool) bool {
	for _, b := range bs {
		if has(b.Condition, b.Response) {
			return true
		}
	}
	return false
}

// Snippet returns up to width runes of text around the first match of
// query, with ellipses where text was cut.
func Snippet(text, query string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if width <= 0 || len(runes) <= width {
		return text
	}

	lower := []rune(strings.ToLower(text))
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	at := indexRunes(lower, q)
	if at < 0 || len(lower) != len(runes) {
		return string(runes[:width-1]) + "…"
	}

	start := at - (width-len(q))/2
	start = max(0, min(start, len(runes)-width))
	end := start + width

	out := slices.Clone(runes[start:end])
	if start > 0 {
		out[0] = '…'
	}
	if end < len(runes) {
		out[len(out)-1] = '…'
	}
	return string(out)
}

func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return -1
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if s[i+j] != sub[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
