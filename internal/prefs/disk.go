package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore persists preferences as a single JSON file.
type DiskStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
	loaded bool
}

// NewDiskStore creates a store backed by the given file path. The file is
// created on first Set.
func NewDiskStore(path string) *DiskStore {
	return &DiskStore{path: path}
}

// Get retrieves a preference value.
func (s *DiskStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	val, ok := s.values[key]
	return val, ok
}

// Set stores a preference value and writes the file.
func (s *DiskStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.values[key] = value

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *DiskStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.values = make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, &s.values)
}
