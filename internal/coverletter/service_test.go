package coverletter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/llm"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/projects"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/classify"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/model"
)

type memStore struct {
	blobs map[string][]byte
}

func (s *memStore) Save(ctx context.Context, projectID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := projectID + "/" + fileName
	s.blobs[key] = data
	return key, int64(len(data)), "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
}

func (s *memStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.blobs[storageKey]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type stubGenerator struct {
	narrative string
	err       error
	calls     int
}

func (g *stubGenerator) Generate(ctx context.Context, input llm.NarrativeInput) (string, error) {
	g.calls++
	return g.narrative, g.err
}

func newService(t *testing.T, gen llm.Generator) (*Service, *documents.Service, string) {
	t.Helper()

	projectRepo := projects.NewMemoryRepo()
	project := projects.Project{
		ID:           "p1",
		Name:         "High Bay Warehouse",
		ContactName:  "Dana Reviewer",
		ContactEmail: "dana@example.com",
		ContactPhone: "555-0100",
	}
	if err := projectRepo.Create(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	docsSvc := &documents.Service{
		Store: &memStore{blobs: map[string][]byte{}},
		Repo:  documents.NewMemoryRepo(),
	}
	svc := &Service{
		Projects:  projectRepo,
		Docs:      docsSvc,
		Generator: gen,
		Now:       func() time.Time { return time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC) },
	}
	return svc, docsSvc, project.ID
}

func upload(t *testing.T, svc *documents.Service, projectID, category, fileName string) documents.Document {
	t.Helper()
	doc, err := svc.Upload(context.Background(), projectID, category, fileName, strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("upload %s: %v", fileName, err)
	}
	return doc
}

func TestGenerateUsesTemplateWhenNoGenerator(t *testing.T) {
	svc, docsSvc, projectID := newService(t, nil)
	upload(t, docsSvc, projectID, "site_plan", "site.pdf")
	upload(t, docsSvc, projectID, "fire_protection", "sprinklers.pdf")

	result, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Generated {
		t.Fatal("template output must not be reported as generated")
	}
	if result.Document.Category != documents.CategoryCoverLetter {
		t.Fatalf("category = %q", result.Document.Category)
	}
	if result.Document.Version != 1 {
		t.Fatalf("version = %d", result.Document.Version)
	}

	for _, want := range []string{
		classify.LetterheadLine,
		"August 12, 2025",
		"Subject: Permit Submission Package - High Bay Warehouse",
		"1. Site Plan",
		"2. Fire Protection",
		classify.FilesHeaderLine,
		"    site.pdf",
		"Email: dana@example.com",
		classify.ClosingSignature,
	} {
		if !strings.Contains(result.Narrative, want) {
			t.Errorf("narrative missing %q", want)
		}
	}
}

func TestGeneratePrefersGenerator(t *testing.T) {
	gen := &stubGenerator{narrative: "INTRALOG\n\nDear Fire Marshal,\n\nCustom narrative."}
	svc, docsSvc, projectID := newService(t, gen)
	upload(t, docsSvc, projectID, "site_plan", "site.pdf")

	result, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !result.Generated {
		t.Fatal("generator output should be reported as generated")
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d", gen.calls)
	}
	if !strings.Contains(result.Narrative, "Custom narrative.") {
		t.Fatalf("narrative = %q", result.Narrative)
	}
}

func TestGenerateFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model overloaded")}
	svc, docsSvc, projectID := newService(t, gen)
	upload(t, docsSvc, projectID, "site_plan", "site.pdf")

	result, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Generated {
		t.Fatal("fallback output must not be reported as generated")
	}
	if !strings.Contains(result.Narrative, classify.LetterheadLine) {
		t.Fatal("fallback narrative missing letterhead")
	}
}

func TestGenerateFallsBackWhenUnavailable(t *testing.T) {
	gen := &stubGenerator{err: llm.ErrUnavailable}
	svc, docsSvc, projectID := newService(t, gen)
	upload(t, docsSvc, projectID, "site_plan", "site.pdf")

	result, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Generated {
		t.Fatal("unavailable generator must fall back to the template")
	}
}

func TestGenerateVersionsSuccessiveLetters(t *testing.T) {
	svc, docsSvc, projectID := newService(t, nil)
	upload(t, docsSvc, projectID, "site_plan", "site.pdf")

	first, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first.Document.Version != 1 || second.Document.Version != 2 {
		t.Fatalf("versions = %d, %d", first.Document.Version, second.Document.Version)
	}
}

func TestGenerateRequiresDocuments(t *testing.T) {
	svc, _, projectID := newService(t, nil)

	_, err := svc.Generate(context.Background(), projectID)
	if !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("err = %v, want ErrNoDocuments", err)
	}
}

func TestGenerateUnknownProject(t *testing.T) {
	svc, _, _ := newService(t, nil)

	_, err := svc.Generate(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTemplateNarrativeSurvivesClassification(t *testing.T) {
	svc, docsSvc, projectID := newService(t, nil)
	upload(t, docsSvc, projectID, "site_plan", "site.pdf")
	upload(t, docsSvc, projectID, "egress_plan", "egress.pdf")

	result, err := svc.Generate(context.Background(), projectID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	classified := classify.Lines(strings.Split(result.Narrative, "\n"))
	roles := map[model.LineRole]bool{}
	for _, line := range classified {
		roles[line.Role] = true
	}
	for _, want := range []model.LineRole{
		model.RoleHeader,
		model.RoleDate,
		model.RoleSubject,
		model.RoleSalutation,
		model.RoleCategoryHeading,
		model.RoleFilesHeader,
		model.RoleFileEntry,
		model.RoleContactLabelValue,
		model.RoleClosing,
		model.RoleFooter,
	} {
		if !roles[want] {
			t.Errorf("template narrative produced no %s line", want)
		}
	}
}

func TestSectionsCanonicalOrderAndGrouping(t *testing.T) {
	docs := []documents.Document{
		{ID: "a", Category: documents.CategoryFireProtection, FileName: "alarm.pdf", Version: 1},
		{ID: "b", Category: documents.CategorySitePlan, FileName: "site.pdf", Version: 1},
		{ID: "c", Category: documents.CategoryCoverLetter, FileName: "Cover_Letter.docx", Version: 1},
	}

	sections := Sections(docs)
	if len(sections) != 2 {
		t.Fatalf("sections = %+v", sections)
	}
	if sections[0].Heading != "Site Plan" || sections[1].Heading != "Fire Protection" {
		t.Fatalf("section order = %q, %q", sections[0].Heading, sections[1].Heading)
	}
}
