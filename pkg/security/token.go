package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

const signingTokenBytes = 24

// NewToken returns a random hex string used for single-use signing, ballot and
// contractor upload links.
func NewToken() (string, error) {
	buf := make([]byte, signingTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// TokensEqual compares a stored token with a presented one in constant time.
// A nil stored token never matches.
func TokensEqual(stored *string, presented string) bool {
	if stored == nil || *stored == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(presented)) == 1
}
