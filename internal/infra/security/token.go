package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// defaultTokenBytes gives 256 bits of entropy per session token.
const defaultTokenBytes = 32

// RandomTokenGenerator produces opaque URL-safe session tokens. The
// token carries no claims; the session store is the source of truth.
type RandomTokenGenerator struct {
	Size int
}

func (g RandomTokenGenerator) NewToken() (string, error) {
	size := g.Size
	if size <= 0 {
		size = defaultTokenBytes
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: entropy read failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
