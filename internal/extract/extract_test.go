package extract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/llm"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/classify"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/model"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/render"
)

func TestDraftTextFromDOCXRoundTrip(t *testing.T) {
	lines := []string{
		classify.LetterheadLine,
		"",
		"March 3, 2025",
		"1. Site Plan",
		"Files Submitted:",
		"    site_plan_v2.pdf",
	}
	docxBytes, err := render.DOCX(render.Document(lines))
	if err != nil {
		t.Fatalf("render DOCX: %v", err)
	}

	text, err := DraftTextFromBytes(docxBytes, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "draft.docx")
	if err != nil {
		t.Fatalf("DraftTextFromBytes: %v", err)
	}

	original := classify.Lines(lines)
	reimported := classify.Lines(strings.Split(text, "\n"))
	if len(original) != len(reimported) {
		t.Fatalf("line count drifted: %d != %d", len(original), len(reimported))
	}
	for i := range original {
		if original[i].Role != reimported[i].Role {
			t.Fatalf("line %d role drifted: %s != %s", i, original[i].Role, reimported[i].Role)
		}
	}
	if reimported[len(reimported)-1].Role != model.RoleFileEntry {
		t.Fatal("file entry indent lost in docx round trip")
	}
}

func TestDraftTextFromPlainText(t *testing.T) {
	text, err := DraftTextFromBytes([]byte("  hello draft  "), "text/plain", "draft.txt")
	if err != nil {
		t.Fatalf("DraftTextFromBytes: %v", err)
	}
	if text != "hello draft" {
		t.Fatalf("text = %q", text)
	}
}

func TestDraftTextSniffsDOCXFromZipMime(t *testing.T) {
	docxBytes, err := render.DOCX(render.Document([]string{"Dear Fire Marshal,"}))
	if err != nil {
		t.Fatalf("render DOCX: %v", err)
	}
	text, err := DraftTextFromBytes(docxBytes, "application/zip", "draft.bin")
	if err != nil {
		t.Fatalf("DraftTextFromBytes: %v", err)
	}
	if !strings.Contains(text, "Dear Fire Marshal,") {
		t.Fatalf("text = %q", text)
	}
}

func TestDraftTextUnsupported(t *testing.T) {
	if _, err := DraftTextFromBytes([]byte{0x1}, "image/png", "scan.png"); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestDraftTextTemplateNarrativeKeepsHeader(t *testing.T) {
	narrative, err := llm.TemplateGenerator{}.Generate(context.Background(), llm.NarrativeInput{
		ProjectName:  "High Bay Warehouse",
		ContactName:  "Dana Reyes",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0142",
		Date:         time.Date(2025, time.August, 12, 0, 0, 0, 0, time.UTC),
		Sections: []llm.Section{
			{Heading: "Site Plan", Files: []string{"site_plan_v2.pdf"}},
			{Heading: "Fire Protection", Files: []string{"sprinklers.pdf"}},
		},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	docxBytes, err := render.DOCX(render.Document(strings.Split(narrative, "\n")))
	if err != nil {
		t.Fatalf("render DOCX: %v", err)
	}
	text, err := DraftTextFromBytes(docxBytes, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "Cover_Letter.docx")
	if err != nil {
		t.Fatalf("DraftTextFromBytes: %v", err)
	}

	if strings.HasPrefix(text, "\n") {
		t.Fatal("extracted text starts with a phantom blank line")
	}

	original := classify.Lines(strings.Split(narrative, "\n"))
	reimported := classify.Lines(strings.Split(text, "\n"))
	if len(original) != len(reimported) {
		t.Fatalf("line count drifted: %d != %d", len(original), len(reimported))
	}
	if reimported[0].Role != model.RoleHeader {
		t.Fatalf("letterhead role = %s, want %s", reimported[0].Role, model.RoleHeader)
	}
	for i := range original {
		if original[i].Role != reimported[i].Role {
			t.Fatalf("line %d (%q) role drifted: %s != %s", i, original[i].Text, original[i].Role, reimported[i].Role)
		}
	}
}
