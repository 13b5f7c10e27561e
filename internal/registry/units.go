package registry

import (
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/model"
	"gopkg.in/yaml.v3"
)

// UnitTable serves measurement unit definitions by id.
type UnitTable struct {
	entries map[string]model.UnitEntry
}

type unitsFile struct {
	Units map[string]model.UnitEntry `yaml:"units"`
}

// LoadUnits reads a units.yml registry file.
func LoadUnits(path string) (*UnitTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read units registry: %w", err)
	}
	var file unitsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse units registry %s: %w", path, err)
	}

	entries := make([]model.UnitEntry, 0, len(file.Units))
	for key, entry := range file.Units {
		if entry.ID == "" {
			entry.ID = key
		}
		entries = append(entries, entry)
	}
	return NewUnitTable(entries)
}

// NewUnitTable validates and builds a table from already-parsed entries.
func NewUnitTable(entries []model.UnitEntry) (*UnitTable, error) {
	table := &UnitTable{entries: make(map[string]model.UnitEntry, len(entries))}
	for _, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("unit entry with empty id")
		}
		if entry.Measure == "" {
			return nil, fmt.Errorf("unit %s: missing measure", entry.ID)
		}
		if _, dup := table.entries[entry.ID]; dup {
			return nil, fmt.Errorf("duplicate unit id %q", entry.ID)
		}
		table.entries[entry.ID] = entry
	}
	return table, nil
}

// Lookup returns the unit with the given id.
func (t *UnitTable) Lookup(id string) (model.UnitEntry, bool) {
	entry, ok := t.entries[id]
	return entry, ok
}

// Len returns the number of units.
func (t *UnitTable) Len() int { return len(t.entries) }
