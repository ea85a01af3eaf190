package packaging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/packaging/archive"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/storage/object"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/telemetry"
	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/shared/util"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/render"
)

// CoverLetterEntryName is the fixed name of manifest entry 0. The numbered
// document entries begin at 01.
const CoverLetterEntryName = "00_Cover_Letter.docx"

// defaultFetchLimit bounds how many document byte fetches run at once.
const defaultFetchLimit = 6

// Assembler builds submission package manifests from stored documents.
type Assembler struct {
	Store      object.ObjectStore
	FetchLimit int
}

// Assemble produces the ordered package manifest: the cover letter
// narrative classified, rendered, and serialized to DOCX at entry 0, then
// every supplied document fetched from storage, sorted by category rank and
// filename, numbered from 01. Stored cover_letter documents are excluded;
// the rendered letter supersedes them.
//
// Documents whose bytes cannot be fetched are skipped, not fatal: their file
// names are returned so the caller can surface one aggregated warning.
func (a *Assembler) Assemble(ctx context.Context, coverLetterRaw string, docs []documents.Document, projectName string) (archive.Manifest, []string, error) {
	coverLetter, err := render.DOCX(render.Document(strings.Split(coverLetterRaw, "\n")))
	if err != nil {
		return archive.Manifest{}, nil, fmt.Errorf("render cover letter: %w", err)
	}

	ordered := make([]documents.Document, 0, len(docs))
	for _, doc := range OrderDocuments(docs) {
		if doc.Category == documents.CategoryCoverLetter {
			continue
		}
		ordered = append(ordered, doc)
	}

	var payloads [][]byte
	var skipped []string
	payloads, skipped, err = a.fetchAll(ctx, ordered)
	if err != nil {
		return archive.Manifest{}, nil, err
	}

	manifest := archive.Manifest{
		Name:    util.SanitizeProjectName(projectName) + "_Documents.zip",
		Entries: make([]archive.Entry, 0, len(ordered)+1),
	}
	manifest.Entries = append(manifest.Entries, archive.Entry{Name: CoverLetterEntryName, Bytes: coverLetter})

	seq := 0
	for i, doc := range ordered {
		if payloads[i] == nil {
			continue
		}
		seq++
		manifest.Entries = append(manifest.Entries, archive.Entry{
			Name:  fmt.Sprintf("%02d_%s", seq, util.SanitizeEntryName(doc.FileName)),
			Bytes: payloads[i],
		})
	}

	if len(skipped) > 0 {
		telemetry.Error("packaging.entries_skipped", map[string]any{
			"project_name": projectName,
			"skipped":      skipped,
		})
	}
	return manifest, skipped, nil
}

// fetchAll retrieves document bytes with bounded concurrency. Results are
// keyed by input position, so completion order can never reorder the
// package.
func (a *Assembler) fetchAll(ctx context.Context, docs []documents.Document) ([][]byte, []string, error) {
	limit := a.FetchLimit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	payloads := make([][]byte, len(docs))
	var (
		mu      sync.Mutex
		skipped []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			data, err := a.fetchOne(gctx, doc)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				mu.Lock()
				skipped = append(skipped, doc.FileName)
				mu.Unlock()
				telemetry.Debug("packaging.fetch_failed", map[string]any{
					"document_id": doc.ID,
					"file_name":   doc.FileName,
					"err":         err.Error(),
				})
				return nil
			}
			payloads[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return payloads, skipped, nil
}

func (a *Assembler) fetchOne(ctx context.Context, doc documents.Document) ([]byte, error) {
	if doc.StorageKey == "" {
		return nil, fmt.Errorf("document %s has no storage key", doc.ID)
	}
	rc, err := a.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", doc.StorageKey, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", doc.StorageKey, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("document %s is empty", doc.ID)
	}
	return data, nil
}
