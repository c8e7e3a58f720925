package flashcards

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func TestImport_CSVWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	data := "Question,Answer,Topic,Level\n" +
		"Recorded line?,Say it first,compliance,easy\n" +
		"Opt out?,Any time,,\n" +
		",,,\n" +
		"Bad category,Something,gossip,easy\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	res, err := Import(path, ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Processed)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Cards, 2)
	assert.Equal(t, Card{ID: "recorded-line", Category: "compliance", Difficulty: "easy", Front: "Recorded line?", Back: "Say it first"}, res.Cards[0])
	assert.Equal(t, "script", res.Cards[1].Category)
	assert.Equal(t, "medium", res.Cards[1].Difficulty)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row 5")
}

func TestImport_CSVPositional(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.csv")
	data := "FCRA?,Authorization first,legal,hard\nFCRA?,Again,legal,hard\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	res, err := Import(path, ImportOptions{})
	require.NoError(t, err)
	require.Len(t, res.Cards, 2)
	assert.Equal(t, "fcra", res.Cards[0].ID)
	assert.Equal(t, "fcra-2", res.Cards[1].ID)
}

func TestImport_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"id", "front", "back", "category", "difficulty"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"fees", "Fee rate?", "25% in most states", "process", "medium"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res, err := Import(path, ImportOptions{})
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "fees", res.Cards[0].ID)
	assert.Equal(t, "process", res.Cards[0].Category)
}

func TestImport_UnsupportedExtension(t *testing.T) {
	_, err := Import("cards.txt", ImportOptions{})
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestWriteDeck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDeck(&buf, sampleCards()[:1]))

	var got deckFile
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, DeckFormat, got.Format)
	assert.Equal(t, sampleCards()[:1], got.Cards)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "option-4-debt-settlement-target", Slug("Option 4: Debt Settlement (TARGET)"))
	assert.Equal(t, "", Slug("  ?? "))
}
