package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/xbrlgen/internal/model"
)

func TestLoadUnits(t *testing.T) {
	path := writeTemp(t, "units.yml", `
units:
  unit_eur:
    measure: iso4217:EUR
  unit_pure:
    measure: xbrli:pure
`)

	table, err := LoadUnits(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	entry, ok := table.Lookup("unit_eur")
	require.True(t, ok)
	assert.Equal(t, "unit_eur", entry.ID)
	assert.Equal(t, "iso4217:EUR", entry.Measure)

	_, ok = table.Lookup("unit_gbp")
	assert.False(t, ok)
}

func TestNewUnitTableValidation(t *testing.T) {
	_, err := NewUnitTable([]model.UnitEntry{{ID: "", Measure: "xbrli:pure"}})
	require.Error(t, err)

	_, err = NewUnitTable([]model.UnitEntry{{ID: "unit_pure"}})
	require.Error(t, err)

	dup := model.UnitEntry{ID: "unit_pure", Measure: "xbrli:pure"}
	_, err = NewUnitTable([]model.UnitEntry{dup, dup})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate unit id")
}
