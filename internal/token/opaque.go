package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// opaqueTokenBytes is the entropy of a refresh token value: 32 random
// bytes, 256 bits, hex-encoded to 64 characters.
const opaqueTokenBytes = 32

// NewOpaqueToken returns a cryptographically random token value used as
// a refresh credential. The value carries no structure; its validity is
// decided entirely by the server-side record it keys.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, opaqueTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
