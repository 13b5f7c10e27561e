package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/xbrlgen/internal/model"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFacts(t *testing.T) {
	path := writeTemp(t, "facts.yml", `
facts:
  total_revenue_2025:
    concept: gri:Revenue
    type: monetary
    contextRef: ctx_2025_duration
    unitRef: unit_eur
    decimals: 0
    transform: num-comma-decimal
  organization_name:
    concept: gri:OrganizationName
    type: string
    contextRef: ctx_2025_duration
  revenue_exact:
    concept: gri:Revenue
    type: monetary
    contextRef: ctx_2025_duration
    unitRef: unit_eur
    decimals: INF
`)

	table, err := LoadFacts(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	rule, err := table.Resolve("total_revenue_2025")
	require.NoError(t, err)
	assert.Equal(t, "total_revenue_2025", rule.FactID)
	assert.Equal(t, "gri:Revenue", rule.Concept)
	assert.Equal(t, model.KindMonetary, rule.Kind)
	assert.Equal(t, "ctx_2025_duration", rule.ContextRef)
	assert.Equal(t, "unit_eur", rule.UnitRef)
	assert.Equal(t, model.DecimalsOf(0), rule.Decimals)
	assert.Equal(t, "num-comma-decimal", rule.Transform)

	rule, err = table.Resolve("organization_name")
	require.NoError(t, err)
	assert.Empty(t, rule.Transform)
	assert.Empty(t, rule.UnitRef)

	rule, err = table.Resolve("revenue_exact")
	require.NoError(t, err)
	assert.True(t, rule.Decimals.Inf)
}

func TestLoadFactsResolveUnknown(t *testing.T) {
	path := writeTemp(t, "facts.yml", `
facts:
  employees_2025:
    concept: gri:NumberOfEmployees
    type: decimal
    contextRef: ctx_2025_duration
    unitRef: unit_pure
`)

	table, err := LoadFacts(path)
	require.NoError(t, err)

	_, err = table.Resolve("head_count")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFact)
	assert.Contains(t, err.Error(), "head_count")
}

func TestNewFactTableValidation(t *testing.T) {
	tests := []struct {
		name string
		rule model.FactRule
	}{
		{name: "missing concept", rule: model.FactRule{Kind: model.KindString, ContextRef: "c"}},
		{name: "bad kind", rule: model.FactRule{Concept: "gri:X", Kind: "integer", ContextRef: "c"}},
		{name: "missing contextRef", rule: model.FactRule{Concept: "gri:X", Kind: model.KindString}},
		{name: "numeric without unitRef", rule: model.FactRule{Concept: "gri:X", Kind: model.KindMonetary, ContextRef: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFactTable(map[string]model.FactRule{"f1": tt.rule})
			require.Error(t, err)
		})
	}
}

func TestLoadFactsMissingFile(t *testing.T) {
	_, err := LoadFacts(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLoadFactsMalformedYAML(t *testing.T) {
	path := writeTemp(t, "facts.yml", "facts: [not a map")
	_, err := LoadFacts(path)
	require.Error(t, err)
}
