// Package inputval holds small input validators shared by the feature
// handlers.
package inputval

import (
	"net/mail"
	"strings"
)

// IsValidEmail reports whether s is a bare RFC 5322 address.
// Display-name forms ("User <user@example.com>") are rejected.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}
