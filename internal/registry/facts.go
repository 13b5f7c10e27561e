// Package registry loads and serves the declarative lookup tables: fact
// rules, reporting contexts, units and taxonomy entry points. Tables are
// built once at startup from YAML files and are read-only afterwards.
package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/avolkova/xbrlgen/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFact is returned by Resolve for identifiers with no rule.
var ErrUnknownFact = errors.New("unknown factId")

// FactTable resolves raw fact identifiers to their declarative rules.
// Lookup is exact-match, case-sensitive; there is no fuzzy matching.
type FactTable struct {
	rules map[string]model.FactRule
}

type factsFile struct {
	Facts map[string]model.FactRule `yaml:"facts"`
}

// LoadFacts reads a facts.yml registry file.
func LoadFacts(path string) (*FactTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facts registry: %w", err)
	}
	var file factsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse facts registry %s: %w", path, err)
	}
	return NewFactTable(file.Facts)
}

// NewFactTable validates and builds a table from already-parsed rules.
func NewFactTable(rules map[string]model.FactRule) (*FactTable, error) {
	table := &FactTable{rules: make(map[string]model.FactRule, len(rules))}
	for factID, rule := range rules {
		rule.FactID = factID
		if rule.Concept == "" {
			return nil, fmt.Errorf("fact rule %s: missing concept", factID)
		}
		if !rule.Kind.Valid() {
			return nil, fmt.Errorf("fact rule %s: unknown value kind %q", factID, rule.Kind)
		}
		if rule.ContextRef == "" {
			return nil, fmt.Errorf("fact rule %s: missing contextRef", factID)
		}
		if rule.Kind.IsNumeric() && rule.UnitRef == "" {
			return nil, fmt.Errorf("fact rule %s: numeric kind requires unitRef", factID)
		}
		table.rules[factID] = rule
	}
	return table, nil
}

// Resolve returns the rule for factID, or ErrUnknownFact.
func (t *FactTable) Resolve(factID string) (model.FactRule, error) {
	rule, ok := t.rules[factID]
	if !ok {
		return model.FactRule{}, fmt.Errorf("%w: %s", ErrUnknownFact, factID)
	}
	return rule, nil
}

// Len returns the number of rules.
func (t *FactTable) Len() int { return len(t.rules) }
