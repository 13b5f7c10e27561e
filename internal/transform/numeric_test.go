package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/xbrlgen/internal/model"
)

func TestNumDotDecimal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain integer", raw: "250", want: "250"},
		{name: "thousands comma", raw: "1,234.56", want: "1234.56"},
		{name: "thousands space", raw: "1 234 567", want: "1234567"},
		{name: "nbsp separator", raw: "1 234.5", want: "1234.5"},
		{name: "narrow nbsp separator", raw: "1 234", want: "1234"},
		{name: "negative", raw: "-42.5", want: "-42.5"},
		{name: "explicit plus", raw: "+7", want: "7"},
		{name: "surrounding whitespace", raw: "  99.9  ", want: "99.9"},
		{name: "empty", raw: "", wantErr: true},
		{name: "blank", raw: "   ", wantErr: true},
		{name: "multiple dots", raw: "1.2.3", wantErr: true},
		{name: "letters", raw: "abc", wantErr: true},
		{name: "slash date", raw: "31/12/2025", wantErr: true},
		{name: "trailing sign", raw: "12-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumDotDecimal(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.TypeNumber, got.Type)
			assert.Equal(t, tt.want, got.Number.String())
		})
	}
}

func TestNumCommaDecimal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain integer", raw: "250", want: "250"},
		{name: "decimal comma", raw: "250,00", want: "250"},
		{name: "thousands dot", raw: "1.234,56", want: "1234.56"},
		{name: "thousands space", raw: "1 234,56", want: "1234.56"},
		{name: "nbsp separator", raw: "1 234,5", want: "1234.5"},
		{name: "negative", raw: "-1.000,25", want: "-1000.25"},
		{name: "empty", raw: "", wantErr: true},
		{name: "dot after decimal comma", raw: "1,23.4", wantErr: true},
		{name: "multiple commas", raw: "1,2,3", wantErr: true},
		{name: "letters", raw: "x,y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumCommaDecimal(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Number.String())
		})
	}
}

func TestNumUnitDecimal(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "comma body", raw: "1 234,56 EUR", want: "1234.56"},
		{name: "dot body", raw: "1,234.56 USD", want: "1234.56"},
		{name: "integer body", raw: "500 SEK", want: "500"},
		{name: "no space before code", raw: "250EUR", want: "250"},
		{name: "no currency", raw: "1234.56", wantErr: true},
		{name: "lowercase code", raw: "100 eur", wantErr: true},
		{name: "two-letter code", raw: "100 EU", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumUnitDecimal(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Number.String())
		})
	}
}

// The same quantity written in dot and comma notation must normalize to
// the same canonical number.
func TestNumericConvergence(t *testing.T) {
	dot, err := NumDotDecimal("1,234.56")
	require.NoError(t, err)
	comma, err := NumCommaDecimal("1.234,56")
	require.NoError(t, err)
	unit, err := NumUnitDecimal("1 234,56 EUR")
	require.NoError(t, err)

	assert.True(t, dot.Number.Equal(comma.Number))
	assert.True(t, dot.Number.Equal(unit.Number))
}

// Normalization preserves the exact textual digits; rounding is an
// emission concern. "250,00" keeps its value and renders as "250" only
// under a decimals=0 rule.
func TestNumericExactness(t *testing.T) {
	got, err := NumCommaDecimal("250,00")
	require.NoError(t, err)

	assert.Equal(t, "250.00", got.Number.StringFixed(2))
	assert.Equal(t, "250", model.DecimalsOf(0).Apply(got.Number))
	assert.True(t, got.Number.Equal(decimal.NewFromInt(250)))
}
