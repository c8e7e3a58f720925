package flashcards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// DeckFormat is the format version written by WriteDeck.
const DeckFormat = "v1.0.0"

// ImportOptions configures a spreadsheet import.
type ImportOptions struct {
	// Sheet names the workbook sheet. Default: the first sheet.
	Sheet string
	// Defaults for rows that leave category or difficulty blank.
	DefaultCategory   string
	DefaultDifficulty string
}

// ImportResult holds the cards read and per-row problems.
type ImportResult struct {
	Cards     []Card
	Processed int
	Skipped   int
	Errors    []string
}

var columnAliases = map[string]string{
	"id":         "id",
	"front":      "front",
	"question":   "front",
	"prompt":     "front",
	"back":       "back",
	"answer":     "back",
	"category":   "category",
	"topic":      "category",
	"difficulty": "difficulty",
	"level":      "difficulty",
}

// positional is used when the first row is not a recognizable header.
var positional = map[string]int{"front": 0, "back": 1, "category": 2, "difficulty": 3}

// Import reads cards from an .xlsx or .csv file.
func Import(path string, opts ImportOptions) (*ImportResult, error) {
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = "script"
	}
	if opts.DefaultDifficulty == "" {
		opts.DefaultDifficulty = "medium"
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path, opts.Sheet)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return importRows(rows, opts), nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func importRows(rows [][]string, opts ImportOptions) *ImportResult {
	res := &ImportResult{}
	if len(rows) == 0 {
		return res
	}

	cols, start := headerColumns(rows[0])
	seen := make(map[string]int)

	for i := start; i < len(rows); i++ {
		row := rows[i]
		cell := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		card := Card{
			ID:         cell("id"),
			Front:      cell("front"),
			Back:       cell("back"),
			Category:   strings.ToLower(cell("category")),
			Difficulty: strings.ToLower(cell("difficulty")),
		}
		if card.Front == "" && card.Back == "" {
			continue
		}
		res.Processed++

		if card.Category == "" {
			card.Category = opts.DefaultCategory
		}
		if card.Difficulty == "" {
			card.Difficulty = opts.DefaultDifficulty
		}
		if card.ID == "" {
			card.ID = Slug(card.Front)
		}
		if n := seen[card.ID]; n > 0 {
			seen[card.ID] = n + 1
			card.ID = fmt.Sprintf("%s-%d", card.ID, n+1)
		} else {
			seen[card.ID] = 1
		}

		if err := card.Validate(); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		res.Cards = append(res.Cards, card)
	}
	return res
}

// headerColumns maps field names to column indices. When the first row is
// not a header, the fixed positional layout applies and data starts at row 0.
func headerColumns(header []string) (map[string]int, int) {
	cols := make(map[string]int)
	for i, h := range header {
		if field, ok := columnAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[field]; !dup {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["front"]; ok {
		return cols, 1
	}
	return positional, 0
}

type deckFile struct {
	Format string `yaml:"format"`
	Cards  []Card `yaml:"cards"`
}

// WriteDeck encodes cards in the flashcard content format.
func WriteDeck(w io.Writer, cards []Card) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(deckFile{Format: DeckFormat, Cards: cards}); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return enc.Close()
}
