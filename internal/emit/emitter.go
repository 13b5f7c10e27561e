// Package emit assembles canonical facts plus the context and unit
// definitions they reference into a serialized XBRL instance document.
// Unlike normalization, emission is fail-fast: a fact referencing an
// undefined context, unit or namespace prefix aborts the whole document,
// because a partially-resolvable instance is not a valid deliverable.
package emit

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/avolkova/xbrlgen/internal/model"
	"github.com/avolkova/xbrlgen/internal/registry"
)

// ErrorKind classifies a fatal emission failure.
type ErrorKind string

const (
	UnknownContext ErrorKind = "unknown_context"
	UnknownUnit    ErrorKind = "unknown_unit"
	UnknownPrefix  ErrorKind = "unknown_prefix"
	SchemaLocation ErrorKind = "schema_location"
)

// EmissionError aborts document generation entirely.
type EmissionError struct {
	Kind   ErrorKind
	Ref    string // the unresolved reference or prefix
	FactID string // first fact that used it, when applicable
	Reason string
}

// Error implements the error interface.
func (e *EmissionError) Error() string {
	if e.FactID != "" {
		return fmt.Sprintf("emission failed [%s]: %s (fact %s): %s", e.Kind, e.Ref, e.FactID, e.Reason)
	}
	if e.Ref != "" {
		return fmt.Sprintf("emission failed [%s]: %s: %s", e.Kind, e.Ref, e.Reason)
	}
	return fmt.Sprintf("emission failed [%s]: %s", e.Kind, e.Reason)
}

// Emitter serializes canonical facts into an instance document. All inputs
// are read-only; an Emitter is safe to share across runs.
type Emitter struct {
	contexts *registry.ContextTable
	units    *registry.UnitTable
	taxonomy *model.Taxonomy
	config   model.EmitterConfig
	baseDir  string // base for resolving relative entry point paths
}

// NewEmitter creates an emitter over the given registries. baseDir anchors
// relative schema entry point paths in absolute mode (the taxonomy cache
// directory).
func NewEmitter(contexts *registry.ContextTable, units *registry.UnitTable, taxonomy *model.Taxonomy, config model.EmitterConfig, baseDir string) *Emitter {
	return &Emitter{
		contexts: contexts,
		units:    units,
		taxonomy: taxonomy,
		config:   config,
		baseDir:  baseDir,
	}
}

// Emit produces the serialized instance for the given facts, or a fatal
// *EmissionError. Only contexts and units actually referenced by facts are
// written, in first-use order.
func (e *Emitter) Emit(facts []model.CanonicalFact) ([]byte, error) {
	usedContexts, usedUnits, err := e.resolveReferences(facts)
	if err != nil {
		return nil, err
	}

	namespaces, err := e.resolveNamespaces(facts, usedUnits)
	if err != nil {
		return nil, err
	}

	schemaHref, err := e.resolveSchemaLocation()
	if err != nil {
		return nil, err
	}

	doc := &instance{
		namespaces: namespaces,
		schemaHref: schemaHref,
		contexts:   usedContexts,
		units:      usedUnits,
		facts:      facts,
	}
	return doc.render(), nil
}

// resolveReferences collects the distinct context and unit references in
// first-use order and resolves each against the registries.
func (e *Emitter) resolveReferences(facts []model.CanonicalFact) ([]model.ContextEntry, []model.UnitEntry, error) {
	var contexts []model.ContextEntry
	var units []model.UnitEntry
	seenCtx := make(map[string]bool)
	seenUnit := make(map[string]bool)

	for _, fact := range facts {
		if !seenCtx[fact.ContextRef] {
			seenCtx[fact.ContextRef] = true
			entry, ok := e.contexts.Lookup(fact.ContextRef)
			if !ok {
				return nil, nil, &EmissionError{
					Kind:   UnknownContext,
					Ref:    fact.ContextRef,
					FactID: fact.FactID,
					Reason: "no context with this id in the registry",
				}
			}
			contexts = append(contexts, entry)
		}
		if fact.UnitRef != "" && !seenUnit[fact.UnitRef] {
			seenUnit[fact.UnitRef] = true
			entry, ok := e.units.Lookup(fact.UnitRef)
			if !ok {
				return nil, nil, &EmissionError{
					Kind:   UnknownUnit,
					Ref:    fact.UnitRef,
					FactID: fact.FactID,
					Reason: "no unit with this id in the registry",
				}
			}
			units = append(units, entry)
		}
	}
	return contexts, units, nil
}

// resolveNamespaces builds the prefix table for the document root: the
// structural namespaces plus every prefix used by concepts and unit
// measures. An unknown prefix is fatal.
func (e *Emitter) resolveNamespaces(facts []model.CanonicalFact, units []model.UnitEntry) ([]nsBinding, error) {
	required := []string{"xbrli", "link", "xlink"}
	seen := map[string]bool{"xbrli": true, "link": true, "xlink": true}

	need := func(qname, factID string) error {
		i := strings.Index(qname, ":")
		if i <= 0 {
			return &EmissionError{
				Kind:   UnknownPrefix,
				Ref:    qname,
				FactID: factID,
				Reason: "name is missing a namespace prefix",
			}
		}
		prefix := qname[:i]
		if !seen[prefix] {
			seen[prefix] = true
			required = append(required, prefix)
		}
		return nil
	}

	for _, fact := range facts {
		if err := need(fact.Concept, fact.FactID); err != nil {
			return nil, err
		}
	}
	for _, unit := range units {
		if err := need(unit.Measure, ""); err != nil {
			return nil, err
		}
	}

	bindings := make([]nsBinding, 0, len(required))
	for _, prefix := range required {
		uri, ok := e.taxonomy.Namespaces[prefix]
		if !ok {
			return nil, &EmissionError{
				Kind:   UnknownPrefix,
				Ref:    prefix,
				Reason: "prefix is not declared in the taxonomy namespace table",
			}
		}
		bindings = append(bindings, nsBinding{prefix: prefix, uri: uri})
	}
	return bindings, nil
}

// resolveSchemaLocation turns the configured entry point href into the
// href written on link:schemaRef, per the configured location mode.
func (e *Emitter) resolveSchemaLocation() (string, error) {
	href := e.taxonomy.Entrypoint.Href

	switch e.config.SchemaLocation {
	case model.SchemaRelative:
		return href, nil

	case model.SchemaCatalog:
		if e.config.CatalogURI == "" {
			return "", &EmissionError{
				Kind:   SchemaLocation,
				Reason: "catalog mode requires a catalog URI",
			}
		}
		return e.config.CatalogURI, nil

	default: // absolute
		if strings.Contains(href, "://") {
			return href, nil
		}
		path := href
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.baseDir, path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", &EmissionError{
				Kind:   SchemaLocation,
				Ref:    href,
				Reason: err.Error(),
			}
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
		return u.String(), nil
	}
}
