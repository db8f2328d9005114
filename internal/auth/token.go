package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Session token format: vt_{secret}
// The plaintext token travels in the cookie or Authorization header; only
// its SHA-256 hash is stored server-side, so a leaked session store cannot
// be replayed.
const tokenSecretBytes = 32

// NewSessionToken generates a fresh random session token.
func NewSessionToken() (string, error) {
	secret := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return "vt_" + hex.EncodeToString(secret), nil
}

// HashToken returns the hex SHA-256 digest used as the storage key for a
// session token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
