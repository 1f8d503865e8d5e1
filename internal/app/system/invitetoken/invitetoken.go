// Package invitetoken generates the opaque tokens embedded in group
// invitations.
package invitetoken

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	// TokenLength is the token size in bytes (32 bytes = 64 hex chars).
	TokenLength = 32
	// TTL is how long an invitation is valid after issuance.
	TTL = 24 * time.Hour
)

// New generates a random hex-encoded token.
// Panics if the system's cryptographic random number generator fails.
func New() string {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// ExpiryFrom returns the expiry timestamp for an invitation issued at t.
func ExpiryFrom(t time.Time) time.Time {
	return t.Add(TTL)
}
