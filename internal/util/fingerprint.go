package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentFingerprint creates a short stable fingerprint of submitted proof
// content, used to correlate ledger rows with what was actually sent.
func ContentFingerprint(content string) string {
	hasher := sha256.New()
	hasher.Write([]byte(content))
	return hex.EncodeToString(hasher.Sum(nil))[:16] // Use first 16 chars of the hash
}
