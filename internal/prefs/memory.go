package prefs

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore holds preferences in process memory. Entries never expire;
// go-cache is used for its concurrency-safe map semantics.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an empty in-memory preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a preference value.
func (s *MemoryStore) Get(key string) (string, bool) {
	if val, found := s.cache.Get(key); found {
		if str, ok := val.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Set stores a preference value.
func (s *MemoryStore) Set(key, value string) error {
	s.cache.Set(key, value, gocache.NoExpiration)
	return nil
}
