// Package checksum computes the digests used for optimistic concurrency.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/avelar/inkpad/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Document returns the digest of a document's canonical JSON encoding.
// Clients echo this value in If-Match headers to detect concurrent edits.
func Document(doc models.Document) string {
	data, err := json.Marshal(doc)
	if err != nil {
		// Document contains only marshalable fields; this cannot happen.
		return ""
	}
	return Sum(data)
}
