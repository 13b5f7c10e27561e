package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outDir          string
	factsFile       string
	contextsFile    string
	unitsFile       string
	entrypointsFile string
	taxonomyCache   string
	schemaLocation  string
	catalogURI      string
	noValidate      bool
	noCache         bool
	arelleBinary    string
	arelleTimeout   time.Duration
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <document.docx>",
	Short: "Convert a tagged document into an XBRL instance",
	Long: `Convert runs the full pipeline on a single document:
- Extract tagged fields from DOCX content controls
- Normalize raw values against the declarative fact model
- Emit an XBRL instance with contexts, units, and schemaRef
- Validate the instance with Arelle (if installed)

Facts that fail normalization are reported and skipped; the remaining
facts still produce an instance. Structural errors (unknown context or
unit references, undeclared namespace prefixes) abort emission.

Example:
  xbrlgen convert report.docx
  xbrlgen convert report.docx --out ./out --no-validate
  xbrlgen convert report.docx --facts model/facts.yml --schema-location relative`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&outDir, "out", "out", "output directory for artifacts")
	addModelFlags(convertCmd)
	addEmitterFlags(convertCmd)
	addValidationFlags(convertCmd)
}

// addModelFlags registers the registry file flags shared by several commands.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&factsFile, "facts", "model/facts.yml", "fact rules file")
	cmd.Flags().StringVar(&contextsFile, "contexts", "model/contexts.yml", "context registry file")
	cmd.Flags().StringVar(&unitsFile, "units", "model/units.yml", "unit registry file")
	cmd.Flags().StringVar(&entrypointsFile, "entrypoints", "taxonomy/entrypoints.yml", "taxonomy entry point file")
}

func addEmitterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&taxonomyCache, "taxonomy-cache", "taxonomy_cache", "extracted taxonomy directory")
	cmd.Flags().StringVar(&schemaLocation, "schema-location", "absolute", "schemaRef mode (absolute, relative, catalog)")
	cmd.Flags().StringVar(&catalogURI, "catalog-uri", "", "schemaRef URI for catalog mode")
}

func addValidationFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "skip external validation")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the validation report cache")
	cmd.Flags().StringVar(&arelleBinary, "arelle", "arelleCmdLine", "Arelle binary name or path")
	cmd.Flags().DurationVar(&arelleTimeout, "timeout", 2*time.Minute, "validation timeout")
}

// buildConfig assembles the configuration from defaults and flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Model.FactsFile = factsFile
	cfg.Model.ContextsFile = contextsFile
	cfg.Model.UnitsFile = unitsFile
	cfg.Taxonomy.EntrypointsFile = entrypointsFile
	cfg.Taxonomy.CacheDir = taxonomyCache
	cfg.Output.Dir = outDir
	cfg.Output.Verbose = verbose
	cfg.Emitter.SchemaLocation = model.SchemaLocationMode(schemaLocation)
	cfg.Emitter.CatalogURI = catalogURI
	cfg.Validation.Enabled = !noValidate
	cfg.Validation.Binary = arelleBinary
	cfg.Validation.Timeout = arelleTimeout
	cfg.Cache.Enabled = !noCache
	return cfg
}

func runConvert(cmd *cobra.Command, args []string) error {
	docxPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), arelleTimeout+time.Minute)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Converting: %s\n", docxPath)
		fmt.Fprintf(os.Stderr, "Output:     %s\n", outDir)
		fmt.Fprintln(os.Stderr)
	}

	cfg := buildConfig()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, runErr := p.Run(ctx, docxPath, outDir)
	if report != nil {
		pipeline.RenderSummary(os.Stderr, report)
	}
	if runErr != nil {
		return fmt.Errorf("convert failed: %w", runErr)
	}

	return nil
}
