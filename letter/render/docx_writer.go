package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/model"
)

const wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"/>`

// DOCX serializes rendered paragraphs into a minimal WordprocessingML
// package. The output is a well-formed OOXML document openable by common
// office tools; it carries no styles part, all formatting is inline per run.
func DOCX(paragraphs []model.Paragraph) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", documentXML(paragraphs)},
	}
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return buf.Bytes(), nil
}

func documentXML(paragraphs []model.Paragraph) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString("\n")
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)
	for _, p := range paragraphs {
		writeParagraphXML(&b, p)
	}
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeParagraphXML(b *strings.Builder, p model.Paragraph) {
	b.WriteString("<w:p>")
	writeParagraphProps(b, p)
	for _, run := range p.Runs {
		writeRunXML(b, run)
	}
	b.WriteString("</w:p>")
}

func writeParagraphProps(b *strings.Builder, p model.Paragraph) {
	jc := ""
	switch p.Alignment {
	case model.AlignCenter:
		jc = "center"
	case model.AlignRight:
		jc = "right"
	}
	if jc == "" && p.IndentLeftPt <= 0 {
		return
	}
	b.WriteString("<w:pPr>")
	if jc != "" {
		fmt.Fprintf(b, `<w:jc w:val=%q/>`, jc)
	}
	if p.IndentLeftPt > 0 {
		// w:ind is measured in twentieths of a point.
		fmt.Fprintf(b, `<w:ind w:left="%d"/>`, p.IndentLeftPt*20)
	}
	b.WriteString("</w:pPr>")
}

func writeRunXML(b *strings.Builder, run model.Run) {
	b.WriteString("<w:r>")
	writeRunProps(b, run)
	if run.Text == "" {
		b.WriteString("<w:t/>")
	} else {
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escapeXML(run.Text))
		b.WriteString("</w:t>")
	}
	b.WriteString("</w:r>")
}

func writeRunProps(b *strings.Builder, run model.Run) {
	var props strings.Builder
	if run.Font != "" {
		fmt.Fprintf(&props, `<w:rFonts w:ascii=%q w:hAnsi=%q/>`, run.Font, run.Font)
	}
	if run.Bold {
		props.WriteString("<w:b/>")
	}
	if run.Italic {
		props.WriteString("<w:i/>")
	}
	if run.Color != "" {
		fmt.Fprintf(&props, `<w:color w:val=%q/>`, run.Color)
	}
	if run.SizePt > 0 {
		// w:sz is measured in half-points.
		fmt.Fprintf(&props, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, run.SizePt*2, run.SizePt*2)
	}
	if props.Len() == 0 {
		return
	}
	b.WriteString("<w:rPr>")
	b.WriteString(props.String())
	b.WriteString("</w:rPr>")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
