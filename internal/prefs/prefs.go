// Package prefs is a small injected key-value capability for user
// preferences such as the last-used export directory. It exists so that
// process-wide preference state has an explicit lifecycle and can be swapped
// for an in-memory stub in tests.
package prefs

// Store reads and writes string preferences.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
