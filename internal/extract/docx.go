// Package extract reads tagged content controls out of word-processing
// documents. A DOCX file is a zip archive; the field values live in
// word/document.xml as w:sdt structured document tags, where the control's
// tag is the fact identifier and the concatenated text runs are the raw
// value.
package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/avolkova/xbrlgen/internal/model"
)

const documentPart = "word/document.xml"

// Precompiled queries over the WordprocessingML markup. Word always binds
// the main namespace to the w prefix, so prefix matching is sufficient.
var (
	sdtExpr  = xpath.MustCompile("//w:sdt")
	tagExpr  = xpath.MustCompile(".//w:sdtPr/w:tag")
	textExpr = xpath.MustCompile(".//w:sdtContent//w:t")
)

// ExtractFile opens a DOCX file and returns its tagged fields in document
// order.
func ExtractFile(path string) ([]model.RawFact, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: not a valid DOCX archive: %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	part, err := zr.Open(documentPart)
	if err != nil {
		return nil, fmt.Errorf("%s: missing %s: %w", path, documentPart, err)
	}
	defer func() { _ = part.Close() }()

	return ExtractDocument(part)
}

// ExtractDocument parses a word/document.xml stream and collects all
// content controls that carry a tag. Untagged controls are skipped with a
// warning; an ordered sequence is returned so downstream output ordering
// stays stable.
func ExtractDocument(r io.Reader) ([]model.RawFact, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document markup: %w", err)
	}

	var facts []model.RawFact
	for i, sdt := range xmlquery.QuerySelectorAll(doc, sdtExpr) {
		position := i + 1

		tag := xmlquery.QuerySelector(sdt, tagExpr)
		if tag == nil {
			slog.Warn("content control has no tag, skipping", "position", position)
			continue
		}
		factID := tag.SelectAttr("w:val")
		if factID == "" {
			slog.Warn("content control tag has no value, skipping", "position", position)
			continue
		}

		// Word splits text into many runs; join every w:t inside the
		// control's content.
		var b strings.Builder
		for _, t := range xmlquery.QuerySelectorAll(sdt, textExpr) {
			b.WriteString(t.InnerText())
		}

		facts = append(facts, model.RawFact{
			FactID:   factID,
			RawValue: strings.TrimSpace(b.String()),
			Position: position,
		})
	}

	return facts, nil
}
