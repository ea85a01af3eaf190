package render

import "github.com/a-a-ronc/LePerfectPermit-sub001/letter/model"

// Serif is the font applied to body copy, headings, and every file entry.
const Serif = "Times New Roman"

const (
	// FileEntrySizePt, FileEntryFont, and FileEntryIndentPt are fixed.
	// Every filename line must render identically regardless of which
	// category it sits under; earlier revisions of this product let the
	// special inspection section drift to different values and each drift
	// shipped as a visible defect.
	FileEntrySizePt   = 10
	FileEntryFont     = Serif
	FileEntryIndentPt = 9

	HeaderSizePt  = 14
	DefaultSizePt = 11
	FooterSizePt  = 9
)

// ParagraphStyle is the per-role typographic contract.
type ParagraphStyle struct {
	SizePt    int
	Font      string
	Bold      bool
	Italic    bool
	Alignment model.Alignment
	IndentPt  int
}

// StyleFor returns the style for a role. Unknown roles fall back to body
// styling; the renderer never fails on a role it does not recognize.
func StyleFor(role model.LineRole) ParagraphStyle {
	if s, ok := styleTable[role]; ok {
		return s
	}
	return styleTable[model.RoleBody]
}

var styleTable = map[model.LineRole]ParagraphStyle{
	model.RoleHeader:            {SizePt: HeaderSizePt, Bold: true, Alignment: model.AlignCenter},
	model.RoleDate:              {SizePt: DefaultSizePt, Alignment: model.AlignRight},
	model.RoleSubject:           {SizePt: DefaultSizePt, Bold: true, Alignment: model.AlignLeft},
	model.RoleSalutation:        {SizePt: DefaultSizePt, Alignment: model.AlignLeft},
	model.RoleCategoryHeading:   {SizePt: DefaultSizePt, Font: Serif, Bold: true, Alignment: model.AlignLeft},
	model.RoleFilesHeader:       {SizePt: DefaultSizePt, Font: Serif, Alignment: model.AlignLeft},
	model.RoleFileEntry:         {SizePt: FileEntrySizePt, Font: FileEntryFont, Alignment: model.AlignLeft, IndentPt: FileEntryIndentPt},
	model.RoleContactLabelValue: {SizePt: DefaultSizePt, Alignment: model.AlignLeft},
	model.RoleClosing:           {SizePt: DefaultSizePt, Alignment: model.AlignLeft},
	model.RoleFooter:            {SizePt: FooterSizePt, Italic: true, Alignment: model.AlignCenter},
	model.RoleBody:              {SizePt: DefaultSizePt, Font: Serif, Alignment: model.AlignLeft},
}
