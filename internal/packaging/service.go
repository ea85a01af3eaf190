package packaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/extract"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging/archive"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/projects"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/metrics"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/telemetry"
)

// Service coordinates the export pipeline: eligibility gate, manifest
// assembly, and persistence through the archive chain.
type Service struct {
	Projects  projects.Repo
	Docs      documents.Repo
	Assembler *Assembler
	Chain     *archive.Chain
}

// ExportResult reports a completed (or cancelled) export.
type ExportResult struct {
	Persist archive.Result
	Report  Report
	Skipped []string
}

// ProjectProgress computes the submission readiness report for a project.
func (s *Service) ProjectProgress(ctx context.Context, projectID string) (Report, error) {
	if _, err := s.Projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return Report{}, ErrNotFound
		}
		return Report{}, err
	}
	docs, err := s.Docs.ListByProject(ctx, projectID)
	if err != nil {
		return Report{}, err
	}
	return Progress(docs), nil
}

// Export assembles and persists the submission package for a project. The
// document list is snapshotted once at the start; status changes made while
// the export runs do not affect its manifest.
func (s *Service) Export(ctx context.Context, projectID string) (ExportResult, error) {
	metrics.IncExportStarted()
	started := metrics.NowMillis()

	result, err := s.export(ctx, projectID)
	switch {
	case errors.Is(err, archive.ErrCancelled):
		// Cancellation is not a failure.
	case err != nil:
		metrics.IncExportFailed()
	default:
		metrics.IncExportCompleted()
		metrics.ObserveExportDurationMs(metrics.NowMillis() - started)
	}
	return result, err
}

func (s *Service) export(ctx context.Context, projectID string) (ExportResult, error) {
	manifest, report, skipped, err := s.buildManifest(ctx, projectID)
	if err != nil {
		return ExportResult{}, err
	}

	persist, err := s.Chain.Persist(ctx, manifest)
	if err != nil {
		return ExportResult{Persist: persist, Report: report, Skipped: skipped}, err
	}

	telemetry.Info("packaging.export_complete", map[string]any{
		"project_id": projectID,
		"artifact":   persist.Location,
		"method":     persist.Method,
		"entries":    persist.Entries,
		"skipped":    len(skipped),
	})
	return ExportResult{Persist: persist, Report: report, Skipped: skipped}, nil
}

// BuildArchive assembles the package and returns it as a single zip payload
// for inline download, bypassing the persistence chain.
func (s *Service) BuildArchive(ctx context.Context, projectID string) (string, []byte, error) {
	manifest, _, _, err := s.buildManifest(ctx, projectID)
	if err != nil {
		return "", nil, err
	}
	data, err := archive.BuildZip(manifest)
	if err != nil {
		return "", nil, fmt.Errorf("build archive: %w", err)
	}
	return manifest.Name, data, nil
}

func (s *Service) buildManifest(ctx context.Context, projectID string) (archive.Manifest, Report, []string, error) {
	project, err := s.Projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			return archive.Manifest{}, Report{}, nil, ErrNotFound
		}
		return archive.Manifest{}, Report{}, nil, err
	}

	docs, err := s.Docs.ListByProject(ctx, projectID)
	if err != nil {
		return archive.Manifest{}, Report{}, nil, err
	}

	report := Progress(docs)
	if !report.Eligible {
		return archive.Manifest{}, report, nil, ErrNotEligible
	}

	current := documents.Current(docs)
	coverDoc := current[documents.CategoryCoverLetter]
	narrative, err := extract.DraftText(ctx, s.Assembler.Store, coverDoc.StorageKey, coverDoc.MimeType, coverDoc.FileName)
	if err != nil {
		return archive.Manifest{}, report, nil, fmt.Errorf("%w: %v", ErrNoCoverLetter, err)
	}

	include := make([]documents.Document, 0, len(current))
	for _, doc := range current {
		if doc.Category == documents.CategoryCoverLetter {
			continue
		}
		include = append(include, doc)
	}

	manifest, skipped, err := s.Assembler.Assemble(ctx, narrative, include, project.Name)
	if err != nil {
		return archive.Manifest{}, report, nil, err
	}
	return manifest, report, skipped, nil
}
