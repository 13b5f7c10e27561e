package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/xbrlgen/internal/model"
)

func TestLoadContexts(t *testing.T) {
	path := writeTemp(t, "contexts.yml", `
contexts:
  ctx_2025_duration:
    entity:
      identifier:
        scheme: https://www.globalreporting.org
        value: EXAMPLE-ORG-001
    period:
      type: duration
      startDate: "2025-01-01"
      endDate: "2025-12-31"
  ctx_2025_instant:
    entity:
      identifier:
        scheme: https://www.globalreporting.org
        value: EXAMPLE-ORG-001
    period:
      type: instant
      instant: "2025-12-31"
`)

	table, err := LoadContexts(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	entry, ok := table.Lookup("ctx_2025_duration")
	require.True(t, ok)
	assert.Equal(t, model.PeriodDuration, entry.Period)
	assert.Equal(t, "2025-01-01", entry.StartDate)
	assert.Equal(t, "2025-12-31", entry.EndDate)
	assert.Empty(t, entry.Instant)
	assert.Equal(t, "https://www.globalreporting.org", entry.Entity.Scheme)
	assert.Equal(t, "EXAMPLE-ORG-001", entry.Entity.Value)

	entry, ok = table.Lookup("ctx_2025_instant")
	require.True(t, ok)
	assert.Equal(t, model.PeriodInstant, entry.Period)
	assert.Equal(t, "2025-12-31", entry.Instant)

	_, ok = table.Lookup("ctx_2019")
	assert.False(t, ok)
}

func TestNewContextTableValidation(t *testing.T) {
	base := model.EntityIdentifier{Scheme: "https://example.org", Value: "ORG"}

	tests := []struct {
		name  string
		entry model.ContextEntry
	}{
		{name: "empty id", entry: model.ContextEntry{Entity: base, Period: model.PeriodInstant, Instant: "2025-01-01"}},
		{name: "unknown period", entry: model.ContextEntry{ID: "c", Entity: base, Period: "forever"}},
		{name: "instant missing date", entry: model.ContextEntry{ID: "c", Entity: base, Period: model.PeriodInstant}},
		{name: "instant with duration dates", entry: model.ContextEntry{ID: "c", Entity: base, Period: model.PeriodInstant, Instant: "2025-01-01", EndDate: "2025-12-31"}},
		{name: "duration missing end", entry: model.ContextEntry{ID: "c", Entity: base, Period: model.PeriodDuration, StartDate: "2025-01-01"}},
		{name: "duration with instant", entry: model.ContextEntry{ID: "c", Entity: base, Period: model.PeriodDuration, StartDate: "2025-01-01", EndDate: "2025-12-31", Instant: "2025-06-30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContextTable([]model.ContextEntry{tt.entry})
			require.Error(t, err)
		})
	}
}

func TestNewContextTableDuplicate(t *testing.T) {
	entry := model.ContextEntry{
		ID:      "ctx_2025",
		Entity:  model.EntityIdentifier{Scheme: "https://example.org", Value: "ORG"},
		Period:  model.PeriodInstant,
		Instant: "2025-12-31",
	}
	_, err := NewContextTable([]model.ContextEntry{entry, entry})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate context id")
}
