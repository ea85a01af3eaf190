package model

// LineRole is the semantic classification of a cover letter line. The role
// drives all typographic decisions downstream.
type LineRole string

const (
	RoleHeader            LineRole = "header"
	RoleDate              LineRole = "date"
	RoleSubject           LineRole = "subject"
	RoleSalutation        LineRole = "salutation"
	RoleCategoryHeading   LineRole = "category_heading"
	RoleFilesHeader       LineRole = "files_header"
	RoleFileEntry         LineRole = "file_entry"
	RoleContactLabelValue LineRole = "contact_label_value"
	RoleClosing           LineRole = "closing"
	RoleFooter            LineRole = "footer"
	RoleBody              LineRole = "body"
)

// ClassifiedLine pairs a cover letter line with its role. RawIndex is the
// line's position in the original narrative, counting blank lines.
type ClassifiedLine struct {
	Role     LineRole
	Text     string
	RawIndex int
}

// Alignment is the paragraph alignment for rendered output.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Run is a contiguous span of identically formatted text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	SizePt int
	Font   string
	Color  string
}

// Paragraph is a rendered cover letter paragraph. A paragraph with a single
// empty run is a spacer produced from a blank narrative line.
type Paragraph struct {
	Runs         []Run
	Alignment    Alignment
	IndentLeftPt int
}

// Spacer reports whether the paragraph carries no visible text.
func (p Paragraph) Spacer() bool {
	for _, r := range p.Runs {
		if r.Text != "" {
			return false
		}
	}
	return true
}

// Text returns the concatenated run text of the paragraph.
func (p Paragraph) Text() string {
	out := ""
	for _, r := range p.Runs {
		out += r.Text
	}
	return out
}
