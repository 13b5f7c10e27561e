package model

import "time"

// RunReport summarizes one document conversion run. Normalization failures
// and an emission failure are different classes: the former leave a partial
// fact list, the latter aborts the document entirely.
type RunReport struct {
	RunID     string    `json:"run_id"`
	Input     string    `json:"input"`
	StartedAt time.Time `json:"started_at"`
	Duration  float64   `json:"duration_seconds"`

	RawFacts       int `json:"raw_facts"`
	CanonicalFacts int `json:"canonical_facts"`
	FailedFacts    int `json:"failed_facts"`

	NormalizationErrors []string `json:"normalization_errors,omitempty"`
	EmissionError       string   `json:"emission_error,omitempty"`

	Artifacts  Artifacts         `json:"artifacts"`
	Validation *ValidationReport `json:"validation,omitempty"`
}

// Artifacts lists the files a run wrote.
type Artifacts struct {
	RawFacts       string `json:"raw_facts,omitempty"`
	CanonicalFacts string `json:"canonical_facts,omitempty"`
	Instance       string `json:"instance,omitempty"`
	Validation     string `json:"validation,omitempty"`
}

// ValidationReport is the parsed outcome of the external validator.
type ValidationReport struct {
	Tool     string   `json:"tool"` // "arelle" or "xml"
	Passed   bool     `json:"passed"`
	Cached   bool     `json:"cached,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Infos    []string `json:"infos,omitempty"`
}

// Succeeded reports whether the run produced an instance document. Partial
// normalization failure still counts as success when at least the document
// was emitted; callers decide whether partial data is acceptable.
func (r *RunReport) Succeeded() bool {
	return r.EmissionError == "" && r.Artifacts.Instance != ""
}
