package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func TestDOCXContainsRequiredParts(t *testing.T) {
	docxBytes, err := DOCX(Document(sampleNarrative()))
	if err != nil {
		t.Fatalf("DOCX failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}

	want := map[string]bool{
		"[Content_Types].xml":          false,
		"_rels/.rels":                  false,
		"word/_rels/document.xml.rels": false,
		"word/document.xml":            false,
	}
	for _, f := range zr.File {
		if _, ok := want[f.Name]; ok {
			want[f.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing package part %s", name)
		}
	}
}

func TestDOCXDocumentXMLWellFormed(t *testing.T) {
	docxBytes, err := DOCX(Document(sampleNarrative()))
	if err != nil {
		t.Fatalf("DOCX failed: %v", err)
	}

	documentXML := readDocumentXML(t, docxBytes)

	decoder := xml.NewDecoder(strings.NewReader(documentXML))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("document.xml does not parse: %v", err)
		}
	}

	assertContains(t, documentXML, "INTRALOG")
	assertContains(t, documentXML, "site_plan_v2.pdf")
	assertContains(t, documentXML, "specialinspection_v3.pdf")
	assertContains(t, documentXML, `<w:jc w:val="center"/>`)
	assertContains(t, documentXML, `<w:jc w:val="right"/>`)
}

func TestDOCXFileEntryFormatting(t *testing.T) {
	docxBytes, err := DOCX(Document(sampleNarrative()))
	if err != nil {
		t.Fatalf("DOCX failed: %v", err)
	}
	documentXML := readDocumentXML(t, docxBytes)

	// 9pt indent in twentieths of a point, 10pt size in half-points.
	assertContains(t, documentXML, `<w:ind w:left="180"/>`)
	assertContains(t, documentXML, `<w:sz w:val="20"/>`)
	assertContains(t, documentXML, `<w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman"/>`)
}

func TestDOCXEscapesText(t *testing.T) {
	docxBytes, err := DOCX(Document([]string{"Storage of racks & <pallets>"}))
	if err != nil {
		t.Fatalf("DOCX failed: %v", err)
	}
	documentXML := readDocumentXML(t, docxBytes)
	assertContains(t, documentXML, "racks &amp; &lt;pallets&gt;")
}

func readDocumentXML(t *testing.T, docxBytes []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		return string(raw)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q", needle)
	}
}
