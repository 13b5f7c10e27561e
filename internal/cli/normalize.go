package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/normalize"
	"github.com/avolkova/xbrlgen/internal/pipeline"
	"github.com/avolkova/xbrlgen/internal/registry"
	"github.com/avolkova/xbrlgen/internal/transform"
	"github.com/spf13/cobra"
)

var normalizeOut string

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <raw_facts.json>",
	Short: "Normalize extracted raw facts against the fact model",
	Long: `Normalize applies the declared transforms to raw fact values and binds
each fact to its concept, context, unit, and decimals declaration.
Facts that fail are reported individually; the rest are written out.

Example:
  xbrlgen normalize raw_facts.json
  xbrlgen normalize raw_facts.json --facts model/facts.yml --json canonical_facts.json`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVar(&factsFile, "facts", "model/facts.yml", "fact rules file")
	normalizeCmd.Flags().StringVar(&normalizeOut, "json", "canonical_facts.json", "output JSON path")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read raw facts: %w", err)
	}

	var rawFacts []model.RawFact
	if err := json.Unmarshal(data, &rawFacts); err != nil {
		return fmt.Errorf("parse raw facts: %w", err)
	}

	facts, err := registry.LoadFacts(factsFile)
	if err != nil {
		return fmt.Errorf("load fact rules: %w", err)
	}

	normalizer := normalize.NewNormalizer(facts, transform.NewRegistry())
	canonical, normErrs := normalizer.Normalize(rawFacts)

	for _, e := range normErrs {
		fmt.Fprintf(os.Stderr, "✗ %s\n", e.Error())
	}

	if err := pipeline.WriteJSON(normalizeOut, canonical); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Normalized %d of %d facts to %s\n", len(canonical), len(rawFacts), normalizeOut)
	if len(canonical) == 0 {
		return fmt.Errorf("no facts normalized (%d failed)", len(normErrs))
	}
	return nil
}
