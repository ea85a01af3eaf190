package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// BuildZip serializes a manifest into a single zip archive, entries in
// manifest order.
func BuildZip(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range m.Entries {
		f, err := w.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("create entry %s: %w", entry.Name, err)
		}
		if _, err := f.Write(entry.Bytes); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", entry.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
