package model

// FactRule is the declarative mapping from a raw fact identifier to its
// reporting concept, expected value kind, context/unit references, precision
// and transform. One rule per factId; lookup is exact-match, case-sensitive.
type FactRule struct {
	FactID     string    `yaml:"-"`
	Concept    string    `yaml:"concept"`
	Kind       ValueKind `yaml:"type"`
	ContextRef string    `yaml:"contextRef"`
	UnitRef    string    `yaml:"unitRef,omitempty"`
	Decimals   Decimals  `yaml:"decimals,omitempty"`
	Transform  string    `yaml:"transform,omitempty"` // empty means whitespace normalization only
}

// PeriodKind distinguishes instant from duration reporting periods.
type PeriodKind string

const (
	PeriodInstant  PeriodKind = "instant"
	PeriodDuration PeriodKind = "duration"
)

// EntityIdentifier names the reporting entity inside a context.
type EntityIdentifier struct {
	Scheme string `yaml:"scheme"`
	Value  string `yaml:"value"`
}

// ContextEntry is one reporting period definition. Exactly one of Instant
// or (StartDate, EndDate) is populated according to Period.
type ContextEntry struct {
	ID        string           `yaml:"id"`
	Entity    EntityIdentifier `yaml:"entity"`
	Period    PeriodKind       `yaml:"period"`
	Instant   string           `yaml:"instant,omitempty"`   // ISO date, instant periods only
	StartDate string           `yaml:"startDate,omitempty"` // ISO date, duration periods only
	EndDate   string           `yaml:"endDate,omitempty"`   // ISO date, duration periods only
}

// UnitEntry is one measurement unit definition. Measure is a prefixed QName:
// an iso4217 currency, xbrli:pure or xbrli:shares.
type UnitEntry struct {
	ID      string `yaml:"id"`
	Measure string `yaml:"measure"`
}

// SchemaRef points the emitted instance at its taxonomy entry point.
type SchemaRef struct {
	Href string `yaml:"href"`
}

// Taxonomy bundles the entry point and the namespace table (prefix → URI)
// the emitter writes onto the document root.
type Taxonomy struct {
	Entrypoint SchemaRef         `yaml:"entrypoint"`
	Namespaces map[string]string `yaml:"namespaces"`
}
