package emit

import (
	"bytes"
	"strings"

	"github.com/avolkova/xbrlgen/internal/model"
)

// nsBinding is one prefix → URI declaration on the document root.
type nsBinding struct {
	prefix string
	uri    string
}

// instance is a fully resolved document ready to serialize.
type instance struct {
	namespaces []nsBinding
	schemaHref string
	contexts   []model.ContextEntry
	units      []model.UnitEntry
	facts      []model.CanonicalFact
}

const indent = "  "

// render serializes the instance. The writer emits namespace-prefixed
// elements directly rather than going through encoding/xml, which cannot
// round-trip prefixed names; escaping is handled explicitly.
func (d *instance) render() []byte {
	var b bytes.Buffer

	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")

	b.WriteString("<xbrli:xbrl")
	for _, ns := range d.namespaces {
		b.WriteString("\n" + indent + "xmlns:" + ns.prefix + "=\"" + escapeAttr(ns.uri) + "\"")
	}
	b.WriteString(">\n")

	b.WriteString(indent + "<link:schemaRef xlink:type=\"simple\" xlink:href=\"" + escapeAttr(d.schemaHref) + "\"/>\n")

	for _, ctx := range d.contexts {
		writeContext(&b, ctx)
	}
	for _, unit := range d.units {
		writeUnit(&b, unit)
	}
	for _, fact := range d.facts {
		writeFact(&b, fact)
	}

	b.WriteString("</xbrli:xbrl>\n")
	return b.Bytes()
}

func writeContext(b *bytes.Buffer, ctx model.ContextEntry) {
	b.WriteString(indent + "<xbrli:context id=\"" + escapeAttr(ctx.ID) + "\">\n")

	b.WriteString(indent + indent + "<xbrli:entity>\n")
	b.WriteString(indent + indent + indent +
		"<xbrli:identifier scheme=\"" + escapeAttr(ctx.Entity.Scheme) + "\">" +
		escapeText(ctx.Entity.Value) + "</xbrli:identifier>\n")
	b.WriteString(indent + indent + "</xbrli:entity>\n")

	b.WriteString(indent + indent + "<xbrli:period>\n")
	if ctx.Period == model.PeriodInstant {
		b.WriteString(indent + indent + indent + "<xbrli:instant>" + escapeText(ctx.Instant) + "</xbrli:instant>\n")
	} else {
		b.WriteString(indent + indent + indent + "<xbrli:startDate>" + escapeText(ctx.StartDate) + "</xbrli:startDate>\n")
		b.WriteString(indent + indent + indent + "<xbrli:endDate>" + escapeText(ctx.EndDate) + "</xbrli:endDate>\n")
	}
	b.WriteString(indent + indent + "</xbrli:period>\n")

	b.WriteString(indent + "</xbrli:context>\n")
}

func writeUnit(b *bytes.Buffer, unit model.UnitEntry) {
	b.WriteString(indent + "<xbrli:unit id=\"" + escapeAttr(unit.ID) + "\">\n")
	b.WriteString(indent + indent + "<xbrli:measure>" + escapeText(unit.Measure) + "</xbrli:measure>\n")
	b.WriteString(indent + "</xbrli:unit>\n")
}

// writeFact renders one fact element. Numeric values are formatted to the
// declared precision here; the canonical form never reintroduces locale
// separators regardless of the raw input's locale.
func writeFact(b *bytes.Buffer, fact model.CanonicalFact) {
	b.WriteString(indent + "<" + fact.Concept)
	b.WriteString(" contextRef=\"" + escapeAttr(fact.ContextRef) + "\"")
	if fact.UnitRef != "" {
		b.WriteString(" unitRef=\"" + escapeAttr(fact.UnitRef) + "\"")
	}

	var text string
	if fact.Value.Type == model.TypeNumber {
		b.WriteString(" decimals=\"" + fact.Decimals.String() + "\"")
		text = fact.Decimals.Apply(fact.Value.Number)
	} else {
		text = fact.Value.Lexical()
	}
	b.WriteString(">" + escapeText(text) + "</" + fact.Concept + ">\n")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;", "\n", "&#10;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
