package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/classify"
)

// TemplateGenerator is the deterministic fallback narrative producer. Its
// output is the reference shape the line classifier anchors on, so any
// change here has to stay in step with the classify package constants.
type TemplateGenerator struct{}

// Generate renders the fixed cover letter template.
func (TemplateGenerator) Generate(ctx context.Context, input NarrativeInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	line(classify.LetterheadLine)
	line("")
	line(input.Date.Format("January 2, 2006"))
	line("")
	line("Subject: Permit Submission Package - " + input.ProjectName)
	line("")
	line("Dear Fire Marshal,")
	line("")
	line("Please find enclosed the complete submission package for the referenced project.")
	line("Each document category below has been reviewed and approved for filing.")
	line("")

	for i, section := range input.Sections {
		line(fmt.Sprintf("%d. %s", i+1, section.Heading))
		line(classify.FilesHeaderLine)
		for _, file := range section.Files {
			line("    " + file)
		}
		line("")
	}

	line("Should you require anything further, please contact us:")
	if input.ContactEmail != "" {
		line("Email: " + input.ContactEmail)
	}
	if input.ContactPhone != "" {
		line("Phone: " + input.ContactPhone)
	}
	line("")
	line("Sincerely,")
	if input.ContactName != "" {
		line(input.ContactName)
	}
	line(classify.ClosingSignature)
	line("")
	line(classify.FooterPrefix)

	return strings.TrimRight(b.String(), "\n"), nil
}
