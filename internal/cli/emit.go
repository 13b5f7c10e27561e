package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/emit"
	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/registry"
	"github.com/spf13/cobra"
)

var emitOut string

// emitCmd represents the emit command
var emitCmd = &cobra.Command{
	Use:   "emit <canonical_facts.json>",
	Short: "Emit an XBRL instance from normalized facts",
	Long: `Emit assembles an XBRL instance document from already-normalized facts:
schemaRef, the contexts and units the facts reference, and one fact
element per canonical fact. Unknown context or unit references and
undeclared namespace prefixes abort emission; no partial document is
written.

Example:
  xbrlgen emit canonical_facts.json
  xbrlgen emit canonical_facts.json --out report.xbrl --schema-location relative`,
	Args: cobra.ExactArgs(1),
	RunE: runEmit,
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVar(&emitOut, "out", "report.xbrl", "output instance path")
	emitCmd.Flags().StringVar(&contextsFile, "contexts", "model/contexts.yml", "context registry file")
	emitCmd.Flags().StringVar(&unitsFile, "units", "model/units.yml", "unit registry file")
	emitCmd.Flags().StringVar(&entrypointsFile, "entrypoints", "taxonomy/entrypoints.yml", "taxonomy entry point file")
	addEmitterFlags(emitCmd)
}

func runEmit(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read canonical facts: %w", err)
	}

	var facts []model.CanonicalFact
	if err := json.Unmarshal(data, &facts); err != nil {
		return fmt.Errorf("parse canonical facts: %w", err)
	}
	for i := range facts {
		if err := facts[i].Rehydrate(); err != nil {
			return fmt.Errorf("fact %s: %w", facts[i].FactID, err)
		}
	}

	contexts, err := registry.LoadContexts(contextsFile)
	if err != nil {
		return fmt.Errorf("load contexts: %w", err)
	}
	units, err := registry.LoadUnits(unitsFile)
	if err != nil {
		return fmt.Errorf("load units: %w", err)
	}
	taxonomy, err := registry.LoadTaxonomy(entrypointsFile)
	if err != nil {
		return fmt.Errorf("load taxonomy entrypoints: %w", err)
	}

	cfg := model.EmitterConfig{
		SchemaLocation: model.SchemaLocationMode(schemaLocation),
		CatalogURI:     catalogURI,
	}
	emitter := emit.NewEmitter(contexts, units, taxonomy, cfg, taxonomyCache)

	instance, err := emitter.Emit(facts)
	if err != nil {
		return fmt.Errorf("emit failed: %w", err)
	}

	if err := os.WriteFile(emitOut, instance, 0644); err != nil {
		return fmt.Errorf("write instance: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Emitted %d facts to %s (%d bytes)\n", len(facts), emitOut, len(instance))
	return nil
}
