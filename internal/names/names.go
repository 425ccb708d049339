// Package names maps arbitrary directory names to valid remote repository
// identifiers.
package names

import (
	"strings"
	"unicode"
)

// Fallback is returned when sanitization leaves nothing usable.
const Fallback = "unnamed-project"

// Sanitize converts a raw directory name into a valid repository name.
// Alphanumerics, hyphens, underscores, and dots are kept; spaces and path
// separators become hyphens; everything else is dropped. Leading and
// trailing hyphens and dots are stripped and runs of hyphens collapse
// to one.
//
// Sanitize is total and idempotent: it never fails, and
// Sanitize(Sanitize(x)) == Sanitize(x) for all inputs.
func Sanitize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '/' || r == '\\':
			b.WriteByte('-')
		}
	}

	s := strings.Trim(b.String(), "-.")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	if s == "" {
		return Fallback
	}
	return s
}
