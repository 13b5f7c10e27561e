package validate

import (
	"bytes"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/avolkova/xbrlgen/internal/model"
)

var (
	contextExpr = xpath.MustCompile("//xbrli:context")
	unitExpr    = xpath.MustCompile("//xbrli:unit")
)

// BasicCheck verifies that the instance is well-formed XML and reports the
// structural element counts. It is the fallback when no schema validator is
// installed; passing it says nothing about taxonomy conformance.
func BasicCheck(data []byte) *model.ValidationReport {
	report := &model.ValidationReport{Tool: "xml"}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		report.Errors = append(report.Errors, "XML syntax error: "+err.Error())
		return report
	}

	contexts := len(xmlquery.QuerySelectorAll(doc, contextExpr))
	units := len(xmlquery.QuerySelectorAll(doc, unitExpr))

	report.Passed = true
	report.Infos = append(report.Infos,
		"well-formed XML",
		formatCount("context", contexts),
		formatCount("unit", units),
	)
	report.Warnings = append(report.Warnings,
		"basic XML validation only; install Arelle for full XBRL validation")
	return report
}

func formatCount(name string, n int) string {
	if n == 1 {
		return "1 " + name
	}
	return strconv.Itoa(n) + " " + name + "s"
}
