package id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// inviteTokenBytes is the entropy of an invitation token. 32 bytes keeps the
// token well above the 128-bit floor required for bearer credentials.
const inviteTokenBytes = 32

// NewInviteToken generates an opaque, unguessable bearer token from a
// cryptographically secure random source.
func NewInviteToken() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TokenEqual compares two tokens in constant time. Use this instead of ==
// whenever a token is compared outside an indexed database lookup.
func TokenEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
