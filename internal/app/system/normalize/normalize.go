// Package normalize canonicalizes user-supplied scalar fields before
// they reach a store. Stores call these so every document carries the
// same representation regardless of which handler wrote it.
package normalize

import "strings"

// Email lowercases and trims an email address. Email comparisons and
// the unique index both operate on this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role uppercases a role string (USER | ADMIN).
func Role(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// GroupType lowercases a group type string (public | private).
func GroupType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
