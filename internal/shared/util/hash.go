package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashProjectKey returns a filesystem-safe identifier for a project ID.
func HashProjectKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
