// Package classify assigns semantic roles to the lines of a generated cover
// letter narrative. Narratives arrive as flat text (from an LLM or the
// deterministic template), so classification is a best-effort adapter at that
// boundary: it must be pure, total, and idempotent when re-run over the plain
// text projection of its own rendered output.
package classify

import (
	"regexp"
	"strings"

	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/model"
)

// Fixed strings the classifier anchors on. The generator emits exactly these;
// matching is intentionally literal, not fuzzy.
const (
	LetterheadLine   = "INTRALOG"
	FilesHeaderLine  = "Files Submitted:"
	ClosingSignature = "Intralog Permit Services"
	FooterPrefix     = "Generated by PainlessPermit"
)

var (
	yearPattern    = regexp.MustCompile(`20\d\d`)
	ordinalPattern = regexp.MustCompile(`^\d+\.\s`)
	copiesPattern  = regexp.MustCompile(`(?i)\s*\(\d+\s*cop(?:y|ies)\)`)
)

// fileExtensions are the attachment types recognized in file entry lines.
var fileExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".png", ".jpg", ".jpeg",
}

// Lines classifies every non-blank line of a narrative. Blank lines are
// omitted; callers that need spacing walk the raw slice and insert spacer
// paragraphs where Lines produced nothing for an index.
func Lines(lines []string) []model.ClassifiedLine {
	out := make([]model.ClassifiedLine, 0, len(lines))
	for i, raw := range lines {
		cl, ok := Line(raw, i)
		if !ok {
			continue
		}
		out = append(out, cl)
	}
	return out
}

// Line classifies a single raw line. The second return value is false when
// the line is blank after normalization. Classification is a pure function of
// (text, index): rules are evaluated top to bottom, first match wins.
func Line(raw string, index int) (model.ClassifiedLine, bool) {
	indented := hasLeadingIndent(raw)
	text := normalize(raw)
	if text == "" {
		return model.ClassifiedLine{}, false
	}

	cl := model.ClassifiedLine{Text: text, RawIndex: index}
	switch {
	case index == 0 && text == LetterheadLine:
		cl.Role = model.RoleHeader
	case yearPattern.MatchString(text):
		cl.Role = model.RoleDate
	case strings.HasPrefix(text, "Subject:") || strings.HasPrefix(text, "RE:"):
		cl.Role = model.RoleSubject
	case strings.HasPrefix(text, "Dear "):
		cl.Role = model.RoleSalutation
	case ordinalPattern.MatchString(text):
		cl.Role = model.RoleCategoryHeading
	case text == FilesHeaderLine:
		cl.Role = model.RoleFilesHeader
	case indented && containsFileExtension(text):
		cl.Role = model.RoleFileEntry
	case strings.HasPrefix(text, "Email:") || strings.HasPrefix(text, "Phone:"):
		cl.Role = model.RoleContactLabelValue
	case text == "Sincerely," || strings.Contains(text, ClosingSignature):
		cl.Role = model.RoleClosing
	case strings.HasPrefix(text, FooterPrefix):
		cl.Role = model.RoleFooter
	default:
		cl.Role = model.RoleBody
	}
	return cl, true
}

// normalize strips light markdown emphasis, stray HTML remnants, and copy
// count parentheticals before role matching.
func normalize(raw string) string {
	s := strings.ReplaceAll(raw, "**", "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "<b>", "")
	s = strings.ReplaceAll(s, "</b>", "")
	s = copiesPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func hasLeadingIndent(raw string) bool {
	if strings.HasPrefix(raw, "&nbsp;") {
		return true
	}
	return len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t')
}

func containsFileExtension(text string) bool {
	lower := strings.ToLower(text)
	for _, ext := range fileExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}
