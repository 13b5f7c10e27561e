package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/cache"
	"github.com/avolkova/xbrlgen/internal/validate"
	"github.com/spf13/cobra"
)

var validateReport string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <instance.xbrl>",
	Short: "Validate an XBRL instance with Arelle",
	Long: `Validate runs the external Arelle validator against an instance
document and classifies its findings. When Arelle is not installed a
basic well-formedness check runs instead. Reports for unchanged
instances are served from the cache.

Example:
  xbrlgen validate report.xbrl
  xbrlgen validate report.xbrl --report validation.txt --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateReport, "report", "validation.txt", "validation report path")
	addValidationFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	instancePath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), arelleTimeout)
	defer cancel()

	cfg := buildConfig()

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		reportCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	validator := validate.NewValidator(cfg.Validation, reportCache)
	result, err := validator.Validate(ctx, instancePath, validateReport)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	status := "FAILED"
	if result.Passed {
		status = "passed"
	}
	cached := ""
	if result.Cached {
		cached = " (cached)"
	}
	fmt.Fprintf(os.Stderr, "Validation %s [%s]%s\n", status, result.Tool, cached)
	for _, line := range result.Errors {
		fmt.Fprintf(os.Stderr, "  ✗ %s\n", line)
	}
	for _, line := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  ! %s\n", line)
	}
	if verbose {
		for _, line := range result.Infos {
			fmt.Fprintf(os.Stderr, "  · %s\n", line)
		}
	}

	if !result.Passed {
		return fmt.Errorf("instance failed validation with %d errors", len(result.Errors))
	}
	return nil
}
