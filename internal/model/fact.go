package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RawFact is a single tagged value as extracted from the source document.
// Immutable once captured; the normalizer consumes it exactly once.
type RawFact struct {
	FactID   string `json:"factId"`
	RawValue string `json:"rawValue"`
	Position int    `json:"position,omitempty"` // 1-based position in the document, for diagnostics
}

// ValueKind declares what kind of canonical value a fact rule expects.
type ValueKind string

const (
	KindMonetary ValueKind = "monetary"
	KindDecimal  ValueKind = "decimal"
	KindString   ValueKind = "string"
	KindBoolean  ValueKind = "boolean"
)

// Valid reports whether k is one of the known value kinds.
func (k ValueKind) Valid() bool {
	switch k {
	case KindMonetary, KindDecimal, KindString, KindBoolean:
		return true
	}
	return false
}

// IsNumeric reports whether the kind carries a decimal number.
func (k ValueKind) IsNumeric() bool {
	return k == KindMonetary || k == KindDecimal
}

// ValueType tags the shape of a canonical value produced by a transform.
type ValueType string

const (
	TypeNumber  ValueType = "number"
	TypeText    ValueType = "text"
	TypeBoolean ValueType = "boolean"
)

// Accepts reports whether a value of type t satisfies the declared kind.
// Monetary and decimal kinds both require a number; there is no coercion
// between shapes.
func (k ValueKind) Accepts(t ValueType) bool {
	switch k {
	case KindMonetary, KindDecimal:
		return t == TypeNumber
	case KindString:
		return t == TypeText
	case KindBoolean:
		return t == TypeBoolean
	}
	return false
}

// CanonicalValue is the typed result of applying a transform to a raw
// string. It is a closed tagged union over number, text and boolean; the
// Type field selects which payload is meaningful.
type CanonicalValue struct {
	Type   ValueType
	Number decimal.Decimal
	Text   string
	Bool   bool
}

// NumberValue wraps an exact decimal as a canonical value.
func NumberValue(d decimal.Decimal) CanonicalValue {
	return CanonicalValue{Type: TypeNumber, Number: d}
}

// TextValue wraps a string as a canonical value.
func TextValue(s string) CanonicalValue {
	return CanonicalValue{Type: TypeText, Text: s}
}

// BoolValue wraps a boolean as a canonical value.
func BoolValue(b bool) CanonicalValue {
	return CanonicalValue{Type: TypeBoolean, Bool: b}
}

// Lexical returns the canonical textual form of the value with no rounding
// applied: exact digits with a '.' decimal point for numbers, "true"/"false"
// for booleans, the text itself for strings.
func (v CanonicalValue) Lexical() string {
	switch v.Type {
	case TypeNumber:
		return v.Number.String()
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return v.Text
	}
}

// CanonicalFact is a fully resolved fact ready for emission. Derived from a
// RawFact by the normalizer, never mutated afterwards.
type CanonicalFact struct {
	FactID     string         `json:"factId"`
	RawValue   string         `json:"rawValue"`
	Concept    string         `json:"concept"` // prefixed QName, e.g. "gri:EconomicPerformanceRevenue"
	Value      CanonicalValue `json:"-"`
	ValueType  ValueType      `json:"valueType"`
	Canonical  string         `json:"canonicalValue"` // lexical form, kept for the JSON artifact
	ContextRef string         `json:"contextRef"`
	UnitRef    string         `json:"unitRef,omitempty"`
	Decimals   Decimals       `json:"decimals,omitempty"`
}

// Rehydrate rebuilds the typed Value from the persisted lexical form after
// loading a canonical_facts.json artifact. The lexical form is already
// canonical, so parsing is strict.
func (f *CanonicalFact) Rehydrate() error {
	switch f.ValueType {
	case TypeNumber:
		d, err := decimal.NewFromString(f.Canonical)
		if err != nil {
			return fmt.Errorf("fact %s: canonical value %q is not a number: %w", f.FactID, f.Canonical, err)
		}
		f.Value = NumberValue(d)
	case TypeBoolean:
		switch f.Canonical {
		case "true":
			f.Value = BoolValue(true)
		case "false":
			f.Value = BoolValue(false)
		default:
			return fmt.Errorf("fact %s: canonical value %q is not a boolean", f.FactID, f.Canonical)
		}
	case TypeText:
		f.Value = TextValue(f.Canonical)
	default:
		return fmt.Errorf("fact %s: unknown value type %q", f.FactID, f.ValueType)
	}
	return nil
}

// Decimals is the declared fractional precision of a numeric fact: a
// non-negative digit count, a negative power-of-ten rounding, or INF for
// full precision.
type Decimals struct {
	Inf    bool
	Digits int
}

// DecimalsInf is the unlimited-precision marker.
var DecimalsInf = Decimals{Inf: true}

// DecimalsOf builds a fixed-digit precision.
func DecimalsOf(n int) Decimals { return Decimals{Digits: n} }

// String renders the attribute form: "INF" or the digit count.
func (d Decimals) String() string {
	if d.Inf {
		return "INF"
	}
	return fmt.Sprintf("%d", d.Digits)
}

// Apply formats a decimal to this precision. INF keeps the exact lexical
// form; otherwise the value is rounded half away from zero to the declared
// number of fractional digits (negative digit counts round into the integer
// part, per the XBRL decimals attribute).
func (d Decimals) Apply(n decimal.Decimal) string {
	if d.Inf {
		return n.String()
	}
	if d.Digits < 0 {
		return n.Round(int32(d.Digits)).String()
	}
	return n.StringFixed(int32(d.Digits))
}

// MarshalYAML renders INF as the literal string, digits as an int.
func (d Decimals) MarshalYAML() (interface{}, error) {
	if d.Inf {
		return "INF", nil
	}
	return d.Digits, nil
}

// UnmarshalYAML accepts either an integer or the literal "INF".
func (d *Decimals) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var n int
	if err := unmarshal(&n); err == nil {
		*d = Decimals{Digits: n}
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "INF" {
		*d = DecimalsInf
		return nil
	}
	return fmt.Errorf("decimals must be an integer or \"INF\", got %q", s)
}

// MarshalJSON mirrors the YAML form for the canonical_facts.json artifact.
func (d Decimals) MarshalJSON() ([]byte, error) {
	if d.Inf {
		return []byte(`"INF"`), nil
	}
	return []byte(fmt.Sprintf("%d", d.Digits)), nil
}

// UnmarshalJSON accepts either an integer or the literal "INF".
func (d *Decimals) UnmarshalJSON(data []byte) error {
	if string(data) == `"INF"` {
		*d = DecimalsInf
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(string(data), "%d", &n); err != nil {
		return fmt.Errorf("decimals must be an integer or \"INF\", got %s", data)
	}
	*d = Decimals{Digits: n}
	return nil
}
