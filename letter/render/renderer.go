// Package render turns classified cover letter lines into typed paragraphs
// and serializes them to DOCX. Styling is driven entirely by the fixed
// role to style table in styles.go.
package render

import (
	"strings"

	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/classify"
	"github.com/a-a-ronc/LePerfectPermit-sub001/letter/model"
)

// Document classifies and renders a flat narrative in one pass. Blank lines
// become spacer paragraphs so vertical rhythm survives the round trip.
func Document(lines []string) []model.Paragraph {
	out := make([]model.Paragraph, 0, len(lines))
	for i, raw := range lines {
		cl, ok := classify.Line(raw, i)
		if !ok {
			out = append(out, spacer())
			continue
		}
		out = append(out, Paragraph(cl))
	}
	return out
}

// Paragraphs renders already-classified lines one to one.
func Paragraphs(classified []model.ClassifiedLine) []model.Paragraph {
	out := make([]model.Paragraph, 0, len(classified))
	for _, cl := range classified {
		out = append(out, Paragraph(cl))
	}
	return out
}

// Paragraph renders a single classified line per the style table.
func Paragraph(cl model.ClassifiedLine) model.Paragraph {
	style := StyleFor(cl.Role)
	p := model.Paragraph{
		Alignment:    style.Alignment,
		IndentLeftPt: style.IndentPt,
	}

	switch cl.Role {
	case model.RoleContactLabelValue:
		p.Runs = contactRuns(cl.Text, style)
	case model.RoleClosing:
		run := styledRun(cl.Text, style)
		run.Bold = strings.Contains(cl.Text, classify.ClosingSignature)
		p.Runs = []model.Run{run}
	default:
		p.Runs = []model.Run{styledRun(cl.Text, style)}
	}
	return p
}

// PlainText projects rendered paragraphs back to flat narrative text.
// Indented paragraphs keep a leading indent so reclassifying the projection
// reproduces the original role sequence.
func PlainText(paragraphs []model.Paragraph) string {
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p.Spacer() {
			lines = append(lines, "")
			continue
		}
		text := p.Text()
		if p.IndentLeftPt > 0 {
			text = "    " + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

// contactRuns splits "Email: x@y.com" into a bold label run and a normal
// value run.
func contactRuns(text string, style ParagraphStyle) []model.Run {
	idx := strings.Index(text, ":")
	if idx < 0 {
		return []model.Run{styledRun(text, style)}
	}
	label := styledRun(text[:idx+1], style)
	label.Bold = true
	value := styledRun(text[idx+1:], style)
	return []model.Run{label, value}
}

func styledRun(text string, style ParagraphStyle) model.Run {
	return model.Run{
		Text:   text,
		Bold:   style.Bold,
		Italic: style.Italic,
		SizePt: style.SizePt,
		Font:   style.Font,
	}
}

func spacer() model.Paragraph {
	return model.Paragraph{
		Runs:      []model.Run{{Text: "", SizePt: DefaultSizePt}},
		Alignment: model.AlignLeft,
	}
}
