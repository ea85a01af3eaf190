package packaging

import (
	"math"

	"github.com/a-a-ronc/LePerfectPermit-sub001/internal/documents"
)

// requiredCount is a fixed denominator. Percent is computed against the
// seven-category gate even when a project has no documents at all, so the
// only reachable values are 0, 14, 29, 43, 57, 71, 86, and 100.
const requiredCount = 7

// Report is the submission readiness summary for a project.
type Report struct {
	Percent  int
	Eligible bool
	Approved int
	Missing  []documents.Category
}

// Progress derives completion percent and submission eligibility from a
// document collection. Only the current (highest version) document per
// category counts; a category is satisfied when its current document is
// approved. Eligibility additionally requires a current cover letter.
func Progress(docs []documents.Document) Report {
	current := documents.Current(docs)

	report := Report{}
	for _, category := range documents.RequiredCategories {
		doc, ok := current[category]
		if ok && doc.Status == documents.StatusApproved {
			report.Approved++
			continue
		}
		report.Missing = append(report.Missing, category)
	}

	// Round half up; integer division here was a recurring source of
	// off-by-one percentages.
	report.Percent = int(math.Floor(float64(report.Approved*100)/requiredCount + 0.5))

	_, hasCoverLetter := current[documents.CategoryCoverLetter]
	report.Eligible = report.Percent == 100 && hasCoverLetter
	return report
}
