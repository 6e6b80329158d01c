package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewResetToken returns 32 cryptographically random bytes, hex-encoded.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
