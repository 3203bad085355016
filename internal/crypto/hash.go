package crypto

import (
	"github.com/minio/sha256-simd"
)

// DigestSize is the size of an event digest in bytes.
const DigestSize = 32

// Digest computes the SHA-256 digest of b. It is the hash used for event
// identifiers; deterministic, no failure mode.
func Digest(b []byte) [DigestSize]byte {
	return sha256.Sum256(b)
}
