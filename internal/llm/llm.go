package llm

import (
	"context"
	"errors"
	"time"
)

// Generator produces a flat cover letter narrative. Implementations are
// opaque text producers: the classifier downstream treats their output as
// best-effort input, never as trusted structure.
type Generator interface {
	Generate(ctx context.Context, input NarrativeInput) (string, error)
}

// Section is one document category block of the narrative.
type Section struct {
	Heading string
	Files   []string
}

// NarrativeInput captures everything a narrative needs.
type NarrativeInput struct {
	ProjectName  string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Date         time.Time
	Sections     []Section
}

// ErrUnavailable is returned when a provider is not configured.
var ErrUnavailable = errors.New("llm provider unavailable")
