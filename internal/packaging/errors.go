package packaging

import "errors"

var (
	// ErrNotFound indicates the project does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotEligible indicates the project has not met the submission
	// gate: all seven required categories approved plus a current cover
	// letter.
	ErrNotEligible = errors.New("project not eligible for submission")

	// ErrNoCoverLetter indicates the cover letter narrative could not be
	// obtained for assembly.
	ErrNoCoverLetter = errors.New("cover letter unavailable")
)
