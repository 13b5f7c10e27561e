// Package validate hands the emitted instance to an external XBRL schema
// validator (Arelle). The core never validates taxonomy schemas itself;
// its only obligation is that the schemaRef it embedded resolves for the
// external tool. When Arelle is not installed the package falls back to a
// basic well-formedness check.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/avolkova/xbrlgen/internal/cache"
	"github.com/avolkova/xbrlgen/internal/model"
)

// Validator runs arelleCmdLine against instance files. Reports are cached
// by instance content hash so re-validating an unchanged instance skips
// the external process.
type Validator struct {
	binary  string
	timeout time.Duration
	cache   cache.Cache // nil disables caching
}

// NewValidator creates a validator. c may be nil to disable report caching.
func NewValidator(cfg model.ValidationConfig, c cache.Cache) *Validator {
	binary := cfg.Binary
	if binary == "" {
		binary = "arelleCmdLine"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Validator{binary: binary, timeout: timeout, cache: c}
}

// Validate validates the instance at instancePath. When reportPath is
// non-empty the full validator output is written there. The returned error
// covers operational failures only; validation findings land in the report.
func (v *Validator) Validate(ctx context.Context, instancePath, reportPath string) (*model.ValidationReport, error) {
	data, err := os.ReadFile(instancePath)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}

	key := cache.Key(data)
	if v.cache != nil {
		if cached, found := v.cache.Get(key); found {
			var report model.ValidationReport
			if err := json.Unmarshal(cached, &report); err == nil {
				report.Cached = true
				slog.Debug("validation report served from cache", "instance", instancePath)
				return &report, nil
			}
		}
	}

	binPath, err := exec.LookPath(v.binary)
	if err != nil {
		slog.Warn("arelle not found, falling back to basic XML validation", "binary", v.binary)
		report := BasicCheck(data)
		v.store(key, report)
		return report, nil
	}

	abs, err := filepath.Abs(instancePath)
	if err != nil {
		return nil, fmt.Errorf("resolve instance path: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binPath, "--file", abs, "--validate")
	output, runErr := cmd.CombinedOutput()
	if runCtx.Err() != nil {
		return nil, fmt.Errorf("arelle timed out after %v", v.timeout)
	}

	report := parseOutput(string(output))
	report.Tool = "arelle"
	report.Passed = runErr == nil && len(report.Errors) == 0

	if reportPath != "" {
		if err := writeReportFile(reportPath, abs, string(output)); err != nil {
			slog.Warn("could not write validation report", "path", reportPath, "error", err)
		}
	}

	v.store(key, report)
	return report, nil
}

func (v *Validator) store(key string, report *model.ValidationReport) {
	if v.cache == nil {
		return
	}
	if data, err := json.Marshal(report); err == nil {
		_ = v.cache.Set(key, data, 0)
	}
}

// parseOutput classifies Arelle's line-oriented output.
func parseOutput(output string) *model.ValidationReport {
	report := &model.ValidationReport{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "[error]") || strings.HasPrefix(line, "[fatal]"):
			report.Errors = append(report.Errors, line)
		case strings.HasPrefix(line, "[warning]") || strings.HasPrefix(line, "[message:"):
			report.Warnings = append(report.Warnings, line)
		case strings.HasPrefix(line, "[info]"):
			report.Infos = append(report.Infos, line)
		}
	}
	return report
}

func writeReportFile(path, instance, output string) error {
	var b strings.Builder
	b.WriteString("XBRL VALIDATION REPORT\n")
	b.WriteString("======================\n\n")
	b.WriteString("Instance: " + instance + "\n\n")
	b.WriteString(output)
	if !strings.HasSuffix(output, "\n") {
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}
