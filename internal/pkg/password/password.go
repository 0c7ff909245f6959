package password

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const DefaultLength = 10

// Generate returns a random temporary password of the given length,
// suitable for provisioning bidder accounts on invitation.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random password: %w", err)
	}

	// base64 expands the input, so the encoded form is always long enough
	return base64.RawURLEncoding.EncodeToString(buf)[:length], nil
}
