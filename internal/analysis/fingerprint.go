package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprintWindow is how many characters of the normalized head and tail
// feed the fingerprint. Differences confined to the middle of a document do
// not change the key, so same-template documents with different middles can
// share a cache entry.
const fingerprintWindow = 300

// Fingerprint returns the cache key for a document: a sha256 over the
// document type plus the normalized head and tail of the text.
func Fingerprint(documentType, text string) string {
	norm := normalizeForFingerprint(text)
	head := norm
	tail := norm
	if len(norm) > fingerprintWindow {
		head = norm[:fingerprintWindow]
		tail = norm[len(norm)-fingerprintWindow:]
	}
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(documentType)) + "|" + head + "|" + tail))
	return hex.EncodeToString(sum[:])
}

func normalizeForFingerprint(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
