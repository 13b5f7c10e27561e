package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/avolkova/xbrlgen/internal/model"
)

// WriteJSON writes v as indented JSON, the format of the intermediate
// artifacts (raw_facts.json, canonical_facts.json, run reports).
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints the human-readable run summary. Per-fact
// normalization failures and a fatal emission failure are different
// failure classes and are never conflated.
func RenderSummary(w io.Writer, report *model.RunReport) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Conversion Summary\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Input:            %s\n", report.Input)
	fmt.Fprintf(w, "  Run:              %s\n", report.RunID)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Raw facts:        %d\n", report.RawFacts)
	fmt.Fprintf(w, "  Normalized:       %d succeeded, %d failed\n", report.CanonicalFacts, report.FailedFacts)

	for _, reason := range report.NormalizationErrors {
		fmt.Fprintf(w, "    ✗ %s\n", reason)
	}

	if report.EmissionError != "" {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "  ✗ Document emission failed: %s\n", report.EmissionError)
		fmt.Fprintf(w, "\n")
		return
	}

	if report.Artifacts.Instance != "" {
		fmt.Fprintf(w, "  Instance:         %s\n", report.Artifacts.Instance)
	}

	if v := report.Validation; v != nil {
		status := "FAILED"
		if v.Passed {
			status = "passed"
		}
		cached := ""
		if v.Cached {
			cached = " (cached)"
		}
		fmt.Fprintf(w, "  Validation:       %s [%s]%s\n", status, v.Tool, cached)
		for _, line := range v.Errors {
			fmt.Fprintf(w, "    ✗ %s\n", line)
		}
	} else {
		fmt.Fprintf(w, "  Validation:       not run\n")
	}

	fmt.Fprintf(w, "  Duration:         %.2fs\n", report.Duration)
	fmt.Fprintf(w, "\n")
}
