package mir

import (
	"crypto/sha256"
	"encoding/hex"
)

// bodyHashDomain separates body fingerprints from any other SHA-256 use
// in the pipeline.
const bodyHashDomain = "mirpass:body:v1\x00"

// Fingerprint computes a stable content hash of a body's canonical dump.
// Two structurally identical bodies have equal fingerprints; the trace
// store uses this to deduplicate and verify dumps.
func Fingerprint(b *Body) string {
	h := sha256.New()
	h.Write([]byte(bodyHashDomain))
	h.Write([]byte(FormatBody(b)))
	return hex.EncodeToString(h.Sum(nil))
}
