// Package packaging contains the deterministic submission package pipeline:
// category ordering, eligibility progress, manifest assembly, and the
// bounded-concurrency document fetch that feeds it.
package packaging

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
)

// rankFallback is the trailing bucket. Unrecognized categories always sort
// last, stable amongst themselves by filename.
const rankFallback = 6

var categoryRank = map[documents.Category]int{
	documents.CategorySitePlan:          0,
	documents.CategoryFacilityPlan:      1,
	documents.CategoryEgressPlan:        2,
	documents.CategorySpecialInspection: 3,
	documents.CategoryStructuralPlans:   4,
	documents.CategoryFireProtection:    5,
}

// CategoryRank returns the total order position of a category within an
// assembled package. Pure and total: unknown input maps to the fallback
// bucket, never an error.
func CategoryRank(c documents.Category) int {
	if normalized, ok := documents.ParseCategory(string(c)); ok {
		c = normalized
	}
	if rank, ok := categoryRank[c]; ok {
		return rank
	}
	return rankFallback
}

// Collators carry internal iterator buffers, so a single instance cannot be
// shared across goroutines. Concurrent exports each borrow one from the pool.
var fileNameCollators = sync.Pool{
	New: func() any { return collate.New(language.English, collate.Loose) },
}

// CompareFileNames is the locale-aware tie-break used when two documents
// share a category.
func CompareFileNames(a, b string) int {
	c := fileNameCollators.Get().(*collate.Collator)
	defer fileNameCollators.Put(c)
	return c.CompareString(a, b)
}

// OrderDocuments returns a new slice sorted into canonical package order:
// category rank first, then filename. The result is independent of input
// order, so assembly is deterministic under permutation.
func OrderDocuments(docs []documents.Document) []documents.Document {
	out := make([]documents.Document, len(docs))
	copy(out, docs)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := CategoryRank(out[i].Category), CategoryRank(out[j].Category)
		if ri != rj {
			return ri < rj
		}
		if cmp := CompareFileNames(out[i].FileName, out[j].FileName); cmp != 0 {
			return cmp < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
