// Package normalize converts raw extracted facts into canonical facts by
// resolving each fact's declarative rule and applying its named transform.
// Per-fact failures are collected, never fatal: the pipeline returns both
// the facts that succeeded and the full error list, in input order, and the
// caller decides whether partial success is acceptable.
package normalize

import (
	"errors"
	"fmt"

	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/registry"
	"github.com/avolkova/xbrlgen/internal/transform"
)

// ErrorKind classifies a per-fact normalization failure.
type ErrorKind string

const (
	// UnknownFact means the identifier has no resolver rule.
	UnknownFact ErrorKind = "unknown_fact"
	// TransformFailed means the named transform rejected the raw value,
	// or the rule names a transform that is not registered.
	TransformFailed ErrorKind = "transform_error"
	// KindMismatch means the transform output shape disagrees with the
	// rule's declared value kind.
	KindMismatch ErrorKind = "kind_mismatch"
)

// Error is one recorded per-fact failure.
type Error struct {
	Kind      ErrorKind `json:"kind"`
	FactID    string    `json:"factId"`
	RawValue  string    `json:"rawValue,omitempty"`
	Transform string    `json:"transform,omitempty"`
	Reason    string    `json:"reason"`
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Transform != "" {
		return fmt.Sprintf("%s: %s [%s] (transform %s)", e.FactID, e.Reason, e.Kind, e.Transform)
	}
	return fmt.Sprintf("%s: %s [%s]", e.FactID, e.Reason, e.Kind)
}

// Normalizer applies the fact rule table and transformation registry to raw
// facts. Both tables are read-only; a Normalizer is safe to share across
// runs.
type Normalizer struct {
	facts      *registry.FactTable
	transforms *transform.Registry
}

// NewNormalizer creates a normalizer over the given tables.
func NewNormalizer(facts *registry.FactTable, transforms *transform.Registry) *Normalizer {
	return &Normalizer{facts: facts, transforms: transforms}
}

// Normalize processes raw facts in input order. Output ordering matches
// input ordering of the facts that succeeded. Errors never halt processing
// of subsequent facts.
func (n *Normalizer) Normalize(rawFacts []model.RawFact) ([]model.CanonicalFact, []Error) {
	canonical := make([]model.CanonicalFact, 0, len(rawFacts))
	var errs []Error

	for _, raw := range rawFacts {
		rule, err := n.facts.Resolve(raw.FactID)
		if err != nil {
			errs = append(errs, Error{
				Kind:     UnknownFact,
				FactID:   raw.FactID,
				RawValue: raw.RawValue,
				Reason:   "no fact rule registered",
			})
			continue
		}

		// A rule without a transform gets whitespace normalization,
		// matching the behavior for untyped free-text fields.
		name := rule.Transform
		apply := transform.Transform(transform.NormalizeSpace)
		if name != "" {
			apply, err = n.transforms.Lookup(name)
			if err != nil {
				errs = append(errs, Error{
					Kind:      TransformFailed,
					FactID:    raw.FactID,
					RawValue:  raw.RawValue,
					Transform: name,
					Reason:    err.Error(),
				})
				continue
			}
		}

		value, err := apply(raw.RawValue)
		if err != nil {
			errs = append(errs, Error{
				Kind:      TransformFailed,
				FactID:    raw.FactID,
				RawValue:  raw.RawValue,
				Transform: name,
				Reason:    err.Error(),
			})
			continue
		}

		if !rule.Kind.Accepts(value.Type) {
			errs = append(errs, Error{
				Kind:      KindMismatch,
				FactID:    raw.FactID,
				RawValue:  raw.RawValue,
				Transform: name,
				Reason:    fmt.Sprintf("transform produced %s, rule declares %s", value.Type, rule.Kind),
			})
			continue
		}

		canonical = append(canonical, model.CanonicalFact{
			FactID:     raw.FactID,
			RawValue:   raw.RawValue,
			Concept:    rule.Concept,
			Value:      value,
			ValueType:  value.Type,
			Canonical:  value.Lexical(),
			ContextRef: rule.ContextRef,
			UnitRef:    rule.UnitRef,
			Decimals:   rule.Decimals,
		})
	}

	return canonical, errs
}

// IsUnknownFact reports whether err wraps a missing fact rule.
func IsUnknownFact(err error) bool {
	return errors.Is(err, registry.ErrUnknownFact)
}
