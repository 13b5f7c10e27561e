package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/registry"
	"github.com/avolkova/xbrlgen/internal/transform"
)

func testNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	facts, err := registry.NewFactTable(map[string]model.FactRule{
		"total_revenue_2025": {
			Concept:    "gri:Revenue",
			Kind:       model.KindMonetary,
			ContextRef: "ctx_2025_duration",
			UnitRef:    "unit_eur",
			Decimals:   model.DecimalsOf(0),
			Transform:  "num-comma-decimal",
		},
		"employees_2025": {
			Concept:    "gri:NumberOfEmployees",
			Kind:       model.KindDecimal,
			ContextRef: "ctx_2025_duration",
			UnitRef:    "unit_pure",
			Decimals:   model.DecimalsOf(0),
			Transform:  "num-dot-decimal",
		},
		"report_date": {
			Concept:    "gri:ReportPublicationDate",
			Kind:       model.KindString,
			ContextRef: "ctx_2025_instant",
			Transform:  "date-day-month-year",
		},
		"organization_name": {
			Concept:    "gri:OrganizationName",
			Kind:       model.KindString,
			ContextRef: "ctx_2025_duration",
		},
		"externally_assured": {
			Concept:    "gri:ReportExternallyAssured",
			Kind:       model.KindBoolean,
			ContextRef: "ctx_2025_duration",
			Transform:  "boolean-true",
		},
		"misdeclared_count": {
			Concept:    "gri:SomeCount",
			Kind:       model.KindDecimal,
			ContextRef: "ctx_2025_duration",
			UnitRef:    "unit_pure",
			Transform:  "normalize-space",
		},
		"ghost_transform": {
			Concept:    "gri:Ghost",
			Kind:       model.KindString,
			ContextRef: "ctx_2025_duration",
			Transform:  "num-colon-decimal",
		},
	})
	require.NoError(t, err)
	return NewNormalizer(facts, transform.NewRegistry())
}

func TestNormalizeSuccess(t *testing.T) {
	n := testNormalizer(t)

	canonical, errs := n.Normalize([]model.RawFact{
		{FactID: "total_revenue_2025", RawValue: "1 234 567,89", Position: 1},
		{FactID: "employees_2025", RawValue: "250", Position: 2},
		{FactID: "report_date", RawValue: "31.12.2025", Position: 3},
		{FactID: "organization_name", RawValue: "  Acme   Corp ", Position: 4},
		{FactID: "externally_assured", RawValue: "True", Position: 5},
	})

	require.Empty(t, errs)
	require.Len(t, canonical, 5)

	assert.Equal(t, "total_revenue_2025", canonical[0].FactID)
	assert.Equal(t, "gri:Revenue", canonical[0].Concept)
	assert.Equal(t, "1234567.89", canonical[0].Canonical)
	assert.Equal(t, model.TypeNumber, canonical[0].ValueType)
	assert.Equal(t, "ctx_2025_duration", canonical[0].ContextRef)
	assert.Equal(t, "unit_eur", canonical[0].UnitRef)

	assert.Equal(t, "250", canonical[1].Canonical)
	assert.Equal(t, "2025-12-31", canonical[2].Canonical)
	assert.Equal(t, "Acme Corp", canonical[3].Canonical)
	assert.Equal(t, "true", canonical[4].Canonical)
	assert.Equal(t, model.TypeBoolean, canonical[4].ValueType)
}

// A failing fact never halts processing. Successes keep input order and
// every failure is recorded exactly once.
func TestNormalizePartialFailure(t *testing.T) {
	n := testNormalizer(t)

	canonical, errs := n.Normalize([]model.RawFact{
		{FactID: "employees_2025", RawValue: "250"},
		{FactID: "head_count", RawValue: "99"},
		{FactID: "total_revenue_2025", RawValue: "not a number"},
		{FactID: "report_date", RawValue: "31.12.2025"},
	})

	require.Len(t, canonical, 2)
	assert.Equal(t, "employees_2025", canonical[0].FactID)
	assert.Equal(t, "report_date", canonical[1].FactID)

	require.Len(t, errs, 2)
	assert.Equal(t, UnknownFact, errs[0].Kind)
	assert.Equal(t, "head_count", errs[0].FactID)
	assert.Equal(t, TransformFailed, errs[1].Kind)
	assert.Equal(t, "total_revenue_2025", errs[1].FactID)
	assert.Equal(t, "num-comma-decimal", errs[1].Transform)
}

func TestNormalizeKindMismatch(t *testing.T) {
	n := testNormalizer(t)

	canonical, errs := n.Normalize([]model.RawFact{
		{FactID: "misdeclared_count", RawValue: "250"},
	})

	assert.Empty(t, canonical)
	require.Len(t, errs, 1)
	assert.Equal(t, KindMismatch, errs[0].Kind)
	assert.Contains(t, errs[0].Reason, "text")
	assert.Contains(t, errs[0].Reason, "decimal")
}

func TestNormalizeUnknownTransform(t *testing.T) {
	n := testNormalizer(t)

	canonical, errs := n.Normalize([]model.RawFact{
		{FactID: "ghost_transform", RawValue: "anything"},
	})

	assert.Empty(t, canonical)
	require.Len(t, errs, 1)
	assert.Equal(t, TransformFailed, errs[0].Kind)
	assert.Equal(t, "num-colon-decimal", errs[0].Transform)
}

func TestNormalizeEmptyTransformDefaultsToSpace(t *testing.T) {
	n := testNormalizer(t)

	canonical, errs := n.Normalize([]model.RawFact{
		{FactID: "organization_name", RawValue: "A\t B\n C"},
	})

	require.Empty(t, errs)
	require.Len(t, canonical, 1)
	assert.Equal(t, "A B C", canonical[0].Canonical)
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := testNormalizer(t)

	canonical, errs := n.Normalize(nil)
	assert.Empty(t, canonical)
	assert.Empty(t, errs)
}

// Running the canonical output back through the same rules reproduces the
// same canonical values: canonical forms are fixed points of their
// transforms where the transform accepts them.
func TestNormalizeIdempotentForText(t *testing.T) {
	n := testNormalizer(t)

	first, errs := n.Normalize([]model.RawFact{
		{FactID: "organization_name", RawValue: "  Acme   Corp "},
	})
	require.Empty(t, errs)

	second, errs := n.Normalize([]model.RawFact{
		{FactID: "organization_name", RawValue: first[0].Canonical},
	})
	require.Empty(t, errs)
	assert.Equal(t, first[0].Canonical, second[0].Canonical)
}

func TestErrorString(t *testing.T) {
	e := Error{Kind: TransformFailed, FactID: "f1", Transform: "num-dot-decimal", Reason: "bad digits"}
	assert.Equal(t, "f1: bad digits [transform_error] (transform num-dot-decimal)", e.Error())

	e = Error{Kind: UnknownFact, FactID: "f2", Reason: "no fact rule registered"}
	assert.Equal(t, "f2: no fact rule registered [unknown_fact]", e.Error())
}
