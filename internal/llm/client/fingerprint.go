package client

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies a credential without storing it: the first twelve
// hex characters of its sha256 digest.
func Fingerprint(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])[:12]
}
