package registry

import (
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/model"
	"gopkg.in/yaml.v3"
)

// ContextTable serves reporting period definitions by id.
type ContextTable struct {
	entries map[string]model.ContextEntry
}

type contextsFile struct {
	Contexts map[string]contextYAML `yaml:"contexts"`
}

// contextYAML mirrors the nested contexts.yml shape; it is flattened into
// model.ContextEntry after validation.
type contextYAML struct {
	ID     string `yaml:"id"`
	Entity struct {
		Identifier struct {
			Scheme string `yaml:"scheme"`
			Value  string `yaml:"value"`
		} `yaml:"identifier"`
	} `yaml:"entity"`
	Period struct {
		Type      string `yaml:"type"`
		Instant   string `yaml:"instant"`
		StartDate string `yaml:"startDate"`
		EndDate   string `yaml:"endDate"`
	} `yaml:"period"`
}

// LoadContexts reads a contexts.yml registry file.
func LoadContexts(path string) (*ContextTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contexts registry: %w", err)
	}
	var file contextsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse contexts registry %s: %w", path, err)
	}

	entries := make([]model.ContextEntry, 0, len(file.Contexts))
	for key, raw := range file.Contexts {
		id := raw.ID
		if id == "" {
			id = key
		}
		entry := model.ContextEntry{
			ID: id,
			Entity: model.EntityIdentifier{
				Scheme: raw.Entity.Identifier.Scheme,
				Value:  raw.Entity.Identifier.Value,
			},
			Period:    model.PeriodKind(raw.Period.Type),
			Instant:   raw.Period.Instant,
			StartDate: raw.Period.StartDate,
			EndDate:   raw.Period.EndDate,
		}
		entries = append(entries, entry)
	}
	return NewContextTable(entries)
}

// NewContextTable validates and builds a table from already-parsed entries.
// Identifiers must be unique and each entry must populate exactly the
// period fields its kind requires.
func NewContextTable(entries []model.ContextEntry) (*ContextTable, error) {
	table := &ContextTable{entries: make(map[string]model.ContextEntry, len(entries))}
	for _, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("context entry with empty id")
		}
		if _, dup := table.entries[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate context id %q", entry.ID)
		}
		switch entry.Period {
		case model.PeriodInstant:
			if entry.Instant == "" || entry.StartDate != "" || entry.EndDate != "" {
				return nil, fmt.Errorf("context %s: instant period requires exactly an instant date", entry.ID)
			}
		case model.PeriodDuration:
			if entry.StartDate == "" || entry.EndDate == "" || entry.Instant != "" {
				return nil, fmt.Errorf("context %s: duration period requires exactly startDate and endDate", entry.ID)
			}
		default:
			return nil, fmt.Errorf("context %s: unknown period kind %q", entry.ID, entry.Period)
		}
		table.entries[entry.ID] = entry
	}
	return table, nil
}

// Lookup returns the context with the given id.
func (t *ContextTable) Lookup(id string) (model.ContextEntry, bool) {
	entry, ok := t.entries[id]
	return entry, ok
}

// Len returns the number of contexts.
func (t *ContextTable) Len() int { return len(t.entries) }
