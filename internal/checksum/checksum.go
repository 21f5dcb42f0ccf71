// Package checksum fingerprints note contents and paths.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data. The index compares it
// against the stored value to skip unchanged notes.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Short returns the first n hex digits of Sum(data). n is clamped to the
// full digest length.
func Short(data []byte, n int) string {
	s := Sum(data)
	if n < 0 {
		n = 0
	}
	return s[:min(n, len(s))]
}
