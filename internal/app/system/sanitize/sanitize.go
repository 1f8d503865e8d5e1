// Package sanitize strips markup from user-supplied text. Group names
// and message content are rendered verbatim by chat clients, so they
// are stored with all HTML removed.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML elements and attributes from s and trims the
// result.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
