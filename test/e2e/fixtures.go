package e2e

import (
	"archive/zip"
	"bytes"
	"strings"
)

const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// FixtureBytes renders text as file content for ext. Plain text passes
// through; .docx gets a minimal OOXML package with one paragraph per line.
func FixtureBytes(ext, text string) []byte {
	if ext == ".docx" {
		return minimalDocx(text)
	}
	return []byte(text)
}

func minimalDocx(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, _ := w.Create("[Content_Types].xml")
	_, _ = ct.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Override PartName="/word/document.xml" ContentType="` + docxMainContentType + `"/></Types>`))

	doc, _ := w.Create("word/document.xml")
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, line := range strings.Split(text, "\n") {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)
	_, _ = doc.Write(body.Bytes())

	_ = w.Close()
	return buf.Bytes()
}
