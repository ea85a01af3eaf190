// Package coverletter generates the project cover letter: narrative text
// from a language model or the deterministic template, rendered to DOCX and
// filed as a versioned cover_letter document.
package coverletter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/llm"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/projects"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/telemetry"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/render"
)

// FileName is the stored name of every generated cover letter version.
const FileName = "Cover_Letter.docx"

var (
	// ErrNotFound indicates the project does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoDocuments indicates there is nothing to enclose yet.
	ErrNoDocuments = errors.New("no documents to enclose")
)

// Service produces and files cover letters.
type Service struct {
	Projects projects.Repo
	Docs     *documents.Service
	// Generator is the preferred narrative producer, usually an LLM
	// client. It may be nil.
	Generator llm.Generator
	// Now is injected for deterministic dates in tests.
	Now func() time.Time
}

// Result pairs the filed document with the narrative it was rendered from.
type Result struct {
	Document  documents.Document
	Narrative string
	// Generated reports whether the configured generator produced the
	// narrative, as opposed to the template fallback.
	Generated bool
}

// Generate builds the cover letter narrative for a project, renders it to
// DOCX, and files it as the next cover_letter version. The generator is
// best-effort: any failure falls back to the fixed template so letter
// generation never blocks a filing.
func (s *Service) Generate(ctx context.Context, projectID string) (Result, error) {
	project, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	docs, err := s.Docs.List(ctx, projectID)
	if err != nil {
		return Result{}, err
	}

	input := llm.NarrativeInput{
		ProjectName:  project.Name,
		ContactName:  project.ContactName,
		ContactEmail: project.ContactEmail,
		ContactPhone: project.ContactPhone,
		Date:         s.now(),
		Sections:     Sections(docs),
	}
	if len(input.Sections) == 0 {
		return Result{}, ErrNoDocuments
	}

	narrative, generated := s.narrative(ctx, input)

	payload, err := render.DOCX(render.Document(strings.Split(narrative, "\n")))
	if err != nil {
		return Result{}, fmt.Errorf("render cover letter: %w", err)
	}

	doc, err := s.Docs.Upload(ctx, projectID, string(documents.CategoryCoverLetter), FileName, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}

	telemetry.Info("coverletter.generated", map[string]any{
		"project_id": projectID,
		"version":    doc.Version,
		"generated":  generated,
		"sections":   len(input.Sections),
	})
	return Result{Document: doc, Narrative: narrative, Generated: generated}, nil
}

func (s *Service) narrative(ctx context.Context, input llm.NarrativeInput) (string, bool) {
	if s.Generator != nil {
		narrative, err := s.Generator.Generate(ctx, input)
		if err == nil && strings.TrimSpace(narrative) != "" {
			return narrative, true
		}
		if err != nil && !errors.Is(err, llm.ErrUnavailable) {
			telemetry.Error("coverletter.generator_failed", map[string]any{
				"err": err.Error(),
			})
		}
	}
	narrative, _ := llm.TemplateGenerator{}.Generate(ctx, input)
	return narrative, false
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sections groups the current documents into narrative sections in
// canonical package order. Cover letters themselves are never enclosed.
func Sections(docs []documents.Document) []llm.Section {
	var current []documents.Document
	for _, doc := range documents.Current(docs) {
		if doc.Category == documents.CategoryCoverLetter {
			continue
		}
		current = append(current, doc)
	}

	var sections []llm.Section
	for _, doc := range packaging.OrderDocuments(current) {
		heading := doc.Category.DisplayName()
		if n := len(sections); n > 0 && sections[n-1].Heading == heading {
			sections[n-1].Files = append(sections[n-1].Files, doc.FileName)
			continue
		}
		sections = append(sections, llm.Section{Heading: heading, Files: []string{doc.FileName}})
	}
	return sections
}
