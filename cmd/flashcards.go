package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/salesdojo/callcoach/internal/flashcards"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Manage flashcard decks",
}

var flashcardsImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Convert a spreadsheet of cards into a flashcards.yaml deck",
	Long: `Read cards from an Excel workbook or CSV file and write them in the
content deck format. Columns are matched by header (front/question,
back/answer, category/topic, difficulty/level, id); without a header the
columns are front, back, category, difficulty.

Put the result in your content directory as flashcards.yaml to use it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		output, _ := cmd.Flags().GetString("output")

		res, err := flashcards.Import(args[0], flashcards.ImportOptions{
			Sheet:             sheet,
			DefaultCategory:   category,
			DefaultDifficulty: difficulty,
		})
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		errOut := cmd.ErrOrStderr()
		for _, msg := range res.Errors {
			fmt.Fprintln(errOut, "skipped:", msg)
		}
		if len(res.Cards) == 0 {
			return fmt.Errorf("no valid cards in %s", args[0])
		}

		var w io.Writer = cmd.OutOrStdout()
		if output != "" && output != "-" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		if err := flashcards.WriteDeck(w, res.Cards); err != nil {
			return err
		}

		fmt.Fprintf(errOut, "%d cards imported (%d rows read, %d skipped)\n", len(res.Cards), res.Processed, res.Skipped)
		return nil
	},
}

func init() {
	flashcardsImportCmd.Flags().StringP("output", "o", "", "Write the deck to this file instead of stdout")
	flashcardsImportCmd.Flags().String("sheet", "", "Workbook sheet to read (default: the first)")
	flashcardsImportCmd.Flags().String("category", "", "Category for rows without one (default: script)")
	flashcardsImportCmd.Flags().String("difficulty", "", "Difficulty for rows without one (default: medium)")

	flashcardsCmd.AddCommand(flashcardsImportCmd)
}
