package cli

import (
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/taxonomy"
	"github.com/spf13/cobra"
)

var taxonomyArchive string

// taxonomyCmd represents the taxonomy command
var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage the local taxonomy cache",
	Long: `Manage the extracted taxonomy the emitter resolves schemaRef against.

The taxonomy ships as a zip archive; setup extracts it into the cache
directory and lists the entry point schemas found inside.`,
}

var taxonomySetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Extract the taxonomy archive into the cache directory",
	Long: `Setup replaces the taxonomy cache with the contents of the archive
and discovers entry point schemas.

Example:
  xbrlgen taxonomy setup
  xbrlgen taxonomy setup --archive gri-sustainability-taxonomy.zip --taxonomy-cache ./taxonomy_cache`,
	RunE: runTaxonomySetup,
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.AddCommand(taxonomySetupCmd)

	taxonomySetupCmd.Flags().StringVar(&taxonomyArchive, "archive", "gri-sustainability-taxonomy.zip", "taxonomy archive path")
	taxonomySetupCmd.Flags().StringVar(&taxonomyCache, "taxonomy-cache", "taxonomy_cache", "extracted taxonomy directory")
}

func runTaxonomySetup(cmd *cobra.Command, args []string) error {
	entrypoints, err := taxonomy.Setup(taxonomyArchive, taxonomyCache)
	if err != nil {
		return fmt.Errorf("taxonomy setup failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Extracted taxonomy to %s\n", taxonomyCache)
	if len(entrypoints) == 0 {
		fmt.Fprintf(os.Stderr, "! No entry point schemas found in archive\n")
		return nil
	}
	fmt.Fprintf(os.Stderr, "✓ Found %d entry point schema(s):\n", len(entrypoints))
	for _, ep := range entrypoints {
		fmt.Fprintf(os.Stderr, "  · %s\n", ep)
	}
	return nil
}
