// Package transform implements the transformation registry: a closed set of
// named, deterministic parsing rules that convert locale-formatted raw
// strings into canonical typed values. A transform is total over well-formed
// input and returns an explicit error for malformed input. It never
// silently coerces.
package transform

import (
	"errors"
	"fmt"
	"sort"

	"github.com/avolkova/xbrlgen/internal/model"
)

// Transform converts a raw string into a canonical value.
type Transform func(raw string) (model.CanonicalValue, error)

// ErrUnknownTransform is returned by Lookup for names with no registered rule.
var ErrUnknownTransform = errors.New("unknown transformation")

// Registry maps transform names to implementations. The set of supported
// formats is fixed and small; names are matched exactly. Built-ins are
// registered under their ixt-style names plus short aliases accepted in
// fact rule files.
type Registry struct {
	transforms map[string]Transform
}

// NewRegistry builds the registry with all built-in transforms.
func NewRegistry() *Registry {
	r := &Registry{transforms: make(map[string]Transform)}

	r.register(NumDotDecimal, "ixt:num-dot-decimal", "num-dot-decimal", "dot-decimal")
	r.register(NumCommaDecimal, "ixt:num-comma-decimal", "num-comma-decimal", "comma-decimal")
	r.register(NumUnitDecimal, "ixt:num-unit-decimal", "num-unit-decimal", "unit-decimal")

	r.register(DateDayMonthYear, "ixt:date-day-month-year", "date-day-month-year", "day-month-year")
	r.register(DateDayMonthYearSlash, "ixt:date-day-month-year-slash", "date-day-month-year-slash")
	r.register(DateMonthDayYear, "ixt:date-month-day-year", "date-month-day-year")

	r.register(BooleanTrue, "ixt:boolean-true", "boolean-true")
	r.register(BooleanFalse, "ixt:boolean-false", "boolean-false")

	r.register(NormalizeSpace, "ixt:normalize-space", "normalize-space")

	return r
}

func (r *Registry) register(t Transform, names ...string) {
	for _, name := range names {
		r.transforms[name] = t
	}
}

// Lookup returns the transform registered under name.
func (r *Registry) Lookup(name string) (Transform, error) {
	t, ok := r.transforms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransform, name)
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.transforms[name]
	return ok
}

// Names returns all registered names, sorted, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
