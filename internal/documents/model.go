package documents

import "time"

// Category is the fixed permit document classification.
type Category string

const (
	CategorySitePlan          Category = "site_plan"
	CategoryFacilityPlan      Category = "facility_plan"
	CategoryEgressPlan        Category = "egress_plan"
	CategoryStructuralPlans   Category = "structural_plans"
	CategoryCommodities       Category = "commodities"
	CategoryFireProtection    Category = "fire_protection"
	CategorySpecialInspection Category = "special_inspection"
	CategoryCoverLetter       Category = "cover_letter"
)

// RequiredCategories are the seven categories that gate submission
// eligibility. The cover letter is generated, not uploaded, so it is not a
// gate. This set is fixed for the lifetime of a project.
var RequiredCategories = []Category{
	CategorySitePlan,
	CategoryFacilityPlan,
	CategoryEgressPlan,
	CategoryStructuralPlans,
	CategoryCommodities,
	CategoryFireProtection,
	CategorySpecialInspection,
}

// ParseCategory normalizes a raw category string. The legacy
// "structural_analysis" spelling maps to structural_plans. Unrecognized
// values are returned as-is with ok=false; callers decide whether to reject
// or carry them through to the fallback ordering bucket.
func ParseCategory(raw string) (Category, bool) {
	switch Category(raw) {
	case CategorySitePlan, CategoryFacilityPlan, CategoryEgressPlan,
		CategoryStructuralPlans, CategoryCommodities, CategoryFireProtection,
		CategorySpecialInspection, CategoryCoverLetter:
		return Category(raw), true
	}
	if raw == "structural_analysis" {
		return CategoryStructuralPlans, true
	}
	return Category(raw), false
}

// DisplayName returns the human-readable category name used in cover letter
// headings.
func (c Category) DisplayName() string {
	switch c {
	case CategorySitePlan:
		return "Site Plan"
	case CategoryFacilityPlan:
		return "Facility Plan"
	case CategoryEgressPlan:
		return "Egress Plan"
	case CategoryStructuralPlans:
		return "Structural Plans"
	case CategoryCommodities:
		return "Commodities"
	case CategoryFireProtection:
		return "Fire Protection"
	case CategorySpecialInspection:
		return "Special Inspection"
	case CategoryCoverLetter:
		return "Cover Letter"
	}
	return string(c)
}

// Required reports whether the category counts toward eligibility.
func (c Category) Required() bool {
	for _, rc := range RequiredCategories {
		if c == rc {
			return true
		}
	}
	return false
}

// Status is the review state of a document.
type Status string

const (
	StatusNotSubmitted  Status = "not_submitted"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusNotSubmitted, StatusPendingReview, StatusApproved, StatusRejected:
		return Status(raw), true
	}
	return "", false
}

// Document is one versioned upload within a project. Within a project the
// (category, version) pair is unique; the current document for a category is
// the one with the highest version.
type Document struct {
	ID         string
	ProjectID  string
	Category   Category
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	Status     Status
	Version    int
	UploadedAt time.Time
}

// Current collapses a document list to the highest-version document per
// category. The input is not mutated.
func Current(docs []Document) map[Category]Document {
	current := make(map[Category]Document, len(docs))
	for _, doc := range docs {
		if existing, ok := current[doc.Category]; ok && existing.Version >= doc.Version {
			continue
		}
		current[doc.Category] = doc
	}
	return current
}
