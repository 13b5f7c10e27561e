package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>`

const documentFooter = `</w:body>
</w:document>`

func sdt(tag, runs string) string {
	var b strings.Builder
	b.WriteString("<w:sdt><w:sdtPr>")
	if tag != "" {
		b.WriteString(`<w:tag w:val="` + tag + `"/>`)
	}
	b.WriteString("</w:sdtPr><w:sdtContent><w:p>")
	for _, run := range strings.Split(runs, "|") {
		b.WriteString("<w:r><w:t>" + run + "</w:t></w:r>")
	}
	b.WriteString("</w:p></w:sdtContent></w:sdt>")
	return b.String()
}

func TestExtractDocument(t *testing.T) {
	doc := documentHeader +
		sdt("total_revenue_2025", "1 234 567,89") +
		sdt("organization_name", "Acme |Corp") +
		sdt("report_date", "31.12.2025") +
		documentFooter

	facts, err := ExtractDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, facts, 3)

	assert.Equal(t, "total_revenue_2025", facts[0].FactID)
	assert.Equal(t, "1 234 567,89", facts[0].RawValue)
	assert.Equal(t, 1, facts[0].Position)

	// Split runs are joined before trimming.
	assert.Equal(t, "Acme Corp", facts[1].RawValue)
	assert.Equal(t, 2, facts[1].Position)

	assert.Equal(t, "report_date", facts[2].FactID)
	assert.Equal(t, 3, facts[2].Position)
}

func TestExtractDocumentSkipsUntagged(t *testing.T) {
	doc := documentHeader +
		sdt("", "ignored") +
		sdt("employees_2025", "250") +
		documentFooter

	facts, err := ExtractDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "employees_2025", facts[0].FactID)
	// Position counts all controls in document order, tagged or not.
	assert.Equal(t, 2, facts[0].Position)
}

func TestExtractDocumentTrimsValue(t *testing.T) {
	doc := documentHeader + sdt("ceo_statement", "  lots of growth  ") + documentFooter

	facts, err := ExtractDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "lots of growth", facts[0].RawValue)
}

func TestExtractDocumentNoControls(t *testing.T) {
	doc := documentHeader + "<w:p><w:r><w:t>plain paragraph</w:t></w:r></w:p>" + documentFooter

	facts, err := ExtractDocument(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestExtractDocumentMalformedXML(t *testing.T) {
	_, err := ExtractDocument(strings.NewReader("<w:document><unclosed"))
	require.Error(t, err)
}

func writeDocx(t *testing.T, parts map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestExtractFile(t *testing.T) {
	doc := documentHeader + sdt("employees_2025", "250") + documentFooter
	path := writeDocx(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml":   doc,
	})

	facts, err := ExtractFile(path)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "employees_2025", facts[0].FactID)
	assert.Equal(t, "250", facts[0].RawValue)
}

func TestExtractFileMissingDocumentPart(t *testing.T) {
	path := writeDocx(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
	})

	_, err := ExtractFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestExtractFileNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0644))

	_, err := ExtractFile(path)
	require.Error(t, err)
}
