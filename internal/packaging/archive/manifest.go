package archive

// Entry is one named blob inside an assembled package.
type Entry struct {
	Name  string
	Bytes []byte
}

// Manifest is the ordered, named list of blobs that constitute a submission
// package before it is physically written. Entry 0 is always the rendered
// cover letter.
type Manifest struct {
	Name    string
	Entries []Entry
}

// Len returns the number of entries.
func (m Manifest) Len() int {
	return len(m.Entries)
}

// TotalBytes returns the combined payload size.
func (m Manifest) TotalBytes() int64 {
	var total int64
	for _, e := range m.Entries {
		total += int64(len(e.Bytes))
	}
	return total
}
