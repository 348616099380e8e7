// Package fingerprint computes deterministic content digests used as
// dedup keys. Digests are equality keys only; content is never recovered
// from them.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Text fingerprints normalized text content.
func Text(content string) string {
	return digest(strings.TrimSpace(content))
}

// ImageURL fingerprints the canonical URL of an image.
func ImageURL(url string) string {
	return digest(strings.TrimSpace(url))
}
