package transform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/shopspring/decimal"
)

// canonicalNumber is the only shape accepted after separator stripping:
// optional sign, digits, at most one '.' fraction. Anything else is residue
// and rejects the input.
var canonicalNumber = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// unitSuffix matches a numeric body followed by a trailing ISO 4217
// currency code, e.g. "1 234,56 EUR".
var unitSuffix = regexp.MustCompile(`^([0-9\s\x{00a0}\x{2009}\x{202f},\.+-]+?)\s*([A-Z]{3})$`)

// isGroupingSpace reports whether r is a whitespace code point used as a
// thousands separator, including the non-breaking variants that word
// processors insert.
func isGroupingSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\u00a0', '\u2009', '\u202f':
		return true
	}
	return false
}

// NumDotDecimal parses dot-decimal numbers: whitespace and commas are
// thousands separators, '.' is the decimal point. "1,234.56" → 1234.56.
func NumDotDecimal(raw string) (model.CanonicalValue, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.CanonicalValue{}, errors.New("empty numeric value")
	}

	var b strings.Builder
	dots := 0
	for _, r := range s {
		switch {
		case isGroupingSpace(r) || r == ',':
			// thousands separator
		case r == '.':
			dots++
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	if dots > 1 {
		return model.CanonicalValue{}, fmt.Errorf("multiple decimal points: %q", raw)
	}

	return parseCanonical(b.String(), raw)
}

// NumCommaDecimal parses comma-decimal numbers: whitespace and dots are
// thousands separators, ',' is the decimal point. "1 234,56" → 1234.56.
// A '.' appearing after the decimal comma is ambiguous and rejected.
func NumCommaDecimal(raw string) (model.CanonicalValue, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.CanonicalValue{}, errors.New("empty numeric value")
	}

	intPart, fracPart := s, ""
	if i := strings.LastIndex(s, ","); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if strings.ContainsAny(fracPart, ".,") {
		return model.CanonicalValue{}, fmt.Errorf("ambiguous separators after decimal comma: %q", raw)
	}

	var b strings.Builder
	for _, r := range intPart {
		if isGroupingSpace(r) || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()
	if fracPart != "" {
		cleaned += "." + fracPart
	}

	return parseCanonical(cleaned, raw)
}

// NumUnitDecimal parses a number with a trailing currency code, delegating
// to the comma or dot variant depending on which decimal separator the
// body uses. "1 234,56 EUR" → 1234.56.
func NumUnitDecimal(raw string) (model.CanonicalValue, error) {
	m := unitSuffix.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return model.CanonicalValue{}, fmt.Errorf("invalid unit number format: %q", raw)
	}
	body := m[1]
	if strings.Contains(body, ",") {
		return NumCommaDecimal(body)
	}
	return NumDotDecimal(body)
}

// parseCanonical validates the stripped digits and produces an exact
// decimal. The textual digits round-trip losslessly; rounding happens only
// at emission time per the rule's declared precision.
func parseCanonical(cleaned, raw string) (model.CanonicalValue, error) {
	if !canonicalNumber.MatchString(cleaned) {
		return model.CanonicalValue{}, fmt.Errorf("invalid number format: %q", raw)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return model.CanonicalValue{}, fmt.Errorf("invalid number format: %q", raw)
	}
	return model.NumberValue(d), nil
}
