package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avolkova/xbrlgen/internal/model"
)

// Converter runs one document conversion. Implemented by pipeline.Pipeline;
// defined here so batch processing does not depend on pipeline internals.
type Converter interface {
	Run(ctx context.Context, docxPath, outDir string) (*model.RunReport, error)
}

// ConvertJob converts a single document into its own output directory.
type ConvertJob struct {
	Path      string
	OutDir    string
	Converter Converter
}

// Execute runs the conversion job.
func (j *ConvertJob) Execute(ctx context.Context) Result {
	report, err := j.Converter.Run(ctx, j.Path, j.OutDir)
	return &ConvertResult{
		Path:   j.Path,
		OutDir: j.OutDir,
		Report: report,
		Error:  err,
	}
}

// ConvertResult is the outcome of one conversion job.
type ConvertResult struct {
	Path   string
	OutDir string
	Report *model.RunReport
	Error  error
}

// GetError returns the error from the conversion result.
func (r *ConvertResult) GetError() error {
	return r.Error
}

// BatchProcessor converts multiple documents concurrently. The registries
// inside the converter are shared read-only; each run accumulates its own
// facts and report.
type BatchProcessor struct {
	converter   Converter
	concurrency int
	outputRoot  string
}

// NewBatchProcessor creates a batch processor writing one output directory
// per document under outputRoot.
func NewBatchProcessor(converter Converter, concurrency int, outputRoot string) *BatchProcessor {
	return &BatchProcessor{
		converter:   converter,
		concurrency: concurrency,
		outputRoot:  outputRoot,
	}
}

// ProcessPaths converts multiple documents concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ConvertResult {
	if len(paths) == 0 {
		return []*ConvertResult{}
	}

	pool := NewSizedPool(b.concurrency, len(paths))
	pool.Start()

	outDirs := outputDirs(b.outputRoot, paths)
	for i, path := range paths {
		job := &ConvertJob{
			Path:      path,
			OutDir:    outDirs[i],
			Converter: b.converter,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	convertResults := make([]*ConvertResult, len(results))
	for i, result := range results {
		convertResults[i] = result.(*ConvertResult)
	}

	return convertResults
}

// ProcessFile reads document paths from a list file and converts them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*ConvertResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Empty lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// outputDirs assigns each path a distinct directory under root. Paths that
// share a basename get a numeric suffix so concurrent conversions cannot
// overwrite each other's artifacts.
func outputDirs(root string, paths []string) []string {
	dirs := make([]string, len(paths))
	used := make(map[string]bool, len(paths))

	for i, path := range paths {
		slug := documentSlug(path)
		candidate := slug
		for n := 2; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s-%d", slug, n)
		}
		used[candidate] = true
		dirs[i] = filepath.Join(root, candidate)
	}

	return dirs
}

// documentSlug derives the per-document output directory name from its path.
func documentSlug(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		base = "document"
	}
	return base
}
