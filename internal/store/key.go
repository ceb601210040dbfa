package store

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/mvp-joe/project-lexicon/internal/descriptor"
)

// Filename maps a symbol identifier to its snapshot filename: a SHA-256
// hash of the canonical identifier plus the snapshot extension. Hashing
// keeps names filesystem-safe regardless of namespace separators or
// casing, and every spelling of the same identifier maps to the same
// file.
func Filename(identifier string) string {
	return hashString(descriptor.CanonicalName(identifier)) + snapshotExt
}

// hashString creates a SHA-256 hash of a string, hex-encoded.
func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}
