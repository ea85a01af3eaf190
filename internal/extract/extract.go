// Package extract recovers plain narrative text from a previously rendered
// cover letter draft (DOCX, PDF, or plain text) so it can be reclassified.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// DraftText pulls the narrative text of a stored cover letter draft.
func DraftText(ctx context.Context, store object.ObjectStore, storageKey, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("draft text key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("draft text key=%s: read: %w", storageKey, err)
	}

	text, err := DraftTextFromBytes(raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("draft text key=%s: %w", storageKey, err)
	}
	return text, nil
}

// DraftTextFromBytes extracts narrative text from an in-memory draft.
func DraftTextFromBytes(data []byte, mimeType, fileName string) (string, error) {
	switch normalizeMimeType(mimeType, fileName, data) {
	case mimePDF:
		return pdfText(data)
	case mimeDOCX:
		return docxText(data)
	case mimeText:
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported draft type: %s", mimeType)
	}
}

func pdfText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func docxText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return flattenDocumentXML(string(raw)), nil
	}
	return "", errors.New("document.xml not found")
}

// flattenDocumentXML walks WordprocessingML and emits one text line per
// paragraph. Indented paragraphs keep a leading indent so file entries
// survive the round trip through the classifier.
func flattenDocumentXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		lines    []string
		current  strings.Builder
		indented bool
		inText   bool
	)
	flush := func() {
		line := current.String()
		if indented && strings.TrimSpace(line) != "" {
			line = "    " + line
		}
		lines = append(lines, line)
		current.Reset()
		indented = false
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "ind":
				for _, attr := range t.Attr {
					if attr.Name.Local == "left" && attr.Value != "" && attr.Value != "0" {
						indented = true
					}
				}
			}
		case xml.CharData:
			// Whitespace between elements is layout, not narrative.
			// Only run text inside <w:t> belongs to the paragraph.
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		}
	}
	if current.Len() > 0 {
		flush()
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func normalizeMimeType(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case mimePDF, mimeDOCX:
		return clean
	case mimeText, "":
	case "application/zip", "application/octet-stream":
	default:
		return clean
	}

	if len(data) > 0 {
		if zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
			for _, f := range zr.File {
				if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
					return mimeDOCX
				}
			}
		}
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".docx":
		return mimeDOCX
	case ".pdf":
		return mimePDF
	case ".txt":
		return mimeText
	}
	if clean == "" {
		return mimeText
	}
	return clean
}
