package cli

import (
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/extract"
	"github.com/avolkova/xbrlgen/internal/pipeline"
	"github.com/spf13/cobra"
)

var extractOut string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <document.docx>",
	Short: "Extract tagged fields from a document",
	Long: `Extract reads the tagged content controls from a DOCX document and
writes them as raw facts, without normalizing or emitting anything.
Useful for inspecting what the document actually carries.

Example:
  xbrlgen extract report.docx
  xbrlgen extract report.docx --json raw_facts.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractOut, "json", "raw_facts.json", "output JSON path")
}

func runExtract(cmd *cobra.Command, args []string) error {
	docxPath := args[0]

	rawFacts, err := extract.ExtractFile(docxPath)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if err := pipeline.WriteJSON(extractOut, rawFacts); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Extracted %d tagged fields to %s\n", len(rawFacts), extractOut)
	return nil
}
