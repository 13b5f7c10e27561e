package transform

import (
	"fmt"
	"strings"

	"github.com/avolkova/xbrlgen/internal/model"
)

// NormalizeSpace collapses runs of whitespace to a single space and trims
// leading/trailing whitespace. Never fails.
func NormalizeSpace(raw string) (model.CanonicalValue, error) {
	return model.TextValue(strings.Join(strings.Fields(raw), " ")), nil
}

// BooleanTrue accepts the literal "true" (case-insensitive) and rejects
// everything else. The transform never coerces arbitrary input to a fixed
// constant.
func BooleanTrue(raw string) (model.CanonicalValue, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "true") {
		return model.BoolValue(true), nil
	}
	return model.CanonicalValue{}, fmt.Errorf("expected boolean literal \"true\", got %q", raw)
}

// BooleanFalse accepts the literal "false" (case-insensitive) and rejects
// everything else.
func BooleanFalse(raw string) (model.CanonicalValue, error) {
	if strings.EqualFold(strings.TrimSpace(raw), "false") {
		return model.BoolValue(false), nil
	}
	return model.CanonicalValue{}, fmt.Errorf("expected boolean literal \"false\", got %q", raw)
}
