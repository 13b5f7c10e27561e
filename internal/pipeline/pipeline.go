// Package pipeline orchestrates the full document conversion: extract
// tagged fields from the source document, normalize them against the
// declarative registries, emit the XBRL instance, and hand it to the
// external validator. Registries are loaded once and shared read-only;
// every run gets an independent fact accumulator.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/avolkova/xbrlgen/internal/cache"
	"github.com/avolkova/xbrlgen/internal/emit"
	"github.com/avolkova/xbrlgen/internal/extract"
	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/normalize"
	"github.com/avolkova/xbrlgen/internal/registry"
	"github.com/avolkova/xbrlgen/internal/transform"
	"github.com/avolkova/xbrlgen/internal/validate"
	"github.com/google/uuid"
)

// Pipeline converts tagged documents into validated XBRL instances.
type Pipeline struct {
	config     *model.Config
	normalizer *normalize.Normalizer
	emitter    *emit.Emitter
	validator  *validate.Validator
}

// NewPipeline loads the declarative registries from the configured paths
// and assembles the pipeline. Registry errors are fatal: a run cannot start
// with a broken model.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	facts, err := registry.LoadFacts(cfg.Model.FactsFile)
	if err != nil {
		return nil, fmt.Errorf("load fact rules: %w", err)
	}
	contexts, err := registry.LoadContexts(cfg.Model.ContextsFile)
	if err != nil {
		return nil, fmt.Errorf("load contexts: %w", err)
	}
	units, err := registry.LoadUnits(cfg.Model.UnitsFile)
	if err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	taxonomy, err := registry.LoadTaxonomy(cfg.Taxonomy.EntrypointsFile)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy entrypoints: %w", err)
	}

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		reportCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		config:     cfg,
		normalizer: normalize.NewNormalizer(facts, transform.NewRegistry()),
		emitter:    emit.NewEmitter(contexts, units, taxonomy, cfg.Emitter, cfg.Taxonomy.CacheDir),
		validator:  validate.NewValidator(cfg.Validation, reportCache),
	}, nil
}

// Run converts one document, writing artifacts into outDir. The returned
// report is non-nil whenever the run got past extraction, including on a
// fatal emission error; the error return marks failures that left no
// usable instance.
func (p *Pipeline) Run(ctx context.Context, docxPath, outDir string) (*model.RunReport, error) {
	report := &model.RunReport{
		RunID:     uuid.NewString(),
		Input:     docxPath,
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		report.Duration = time.Since(report.StartedAt).Seconds()
	}()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	// Step 1: extract tagged fields.
	rawFacts, err := extract.ExtractFile(docxPath)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if len(rawFacts) == 0 {
		return nil, fmt.Errorf("no tagged content controls found in %s", docxPath)
	}
	report.RawFacts = len(rawFacts)
	slog.Info("extracted tagged fields", "run", report.RunID, "input", docxPath, "facts", len(rawFacts))

	rawPath := filepath.Join(outDir, "raw_facts.json")
	if err := WriteJSON(rawPath, rawFacts); err != nil {
		return nil, err
	}
	report.Artifacts.RawFacts = rawPath

	// Step 2: normalize. Per-fact failures are collected, never fatal.
	canonical, normErrs := p.normalizer.Normalize(rawFacts)
	report.CanonicalFacts = len(canonical)
	report.FailedFacts = len(normErrs)
	for _, e := range normErrs {
		report.NormalizationErrors = append(report.NormalizationErrors, e.Error())
		slog.Warn("fact rejected", "run", report.RunID, "factId", e.FactID, "kind", string(e.Kind), "reason", e.Reason)
	}
	if len(canonical) == 0 {
		return report, fmt.Errorf("no facts normalized (%d failed)", len(normErrs))
	}

	canonicalPath := filepath.Join(outDir, "canonical_facts.json")
	if err := WriteJSON(canonicalPath, canonical); err != nil {
		return report, err
	}
	report.Artifacts.CanonicalFacts = canonicalPath

	// Step 3: emit. Structural failures abort the document entirely.
	instance, err := p.emitter.Emit(canonical)
	if err != nil {
		report.EmissionError = err.Error()
		return report, fmt.Errorf("emit: %w", err)
	}

	instancePath := filepath.Join(outDir, "report.xbrl")
	if err := os.WriteFile(instancePath, instance, 0644); err != nil {
		return report, fmt.Errorf("write instance: %w", err)
	}
	report.Artifacts.Instance = instancePath
	slog.Info("instance emitted", "run", report.RunID, "path", instancePath, "bytes", len(instance))

	// Step 4: validate (optional). A failed validation is recorded, not
	// fatal; an unreachable validator only logs.
	if p.config.Validation.Enabled {
		validationPath := filepath.Join(outDir, "validation.txt")
		result, err := p.validator.Validate(ctx, instancePath, validationPath)
		if err != nil {
			slog.Warn("validation could not run", "run", report.RunID, "error", err)
		} else {
			report.Validation = result
			if _, statErr := os.Stat(validationPath); statErr == nil {
				report.Artifacts.Validation = validationPath
			}
		}
	}

	return report, nil
}
