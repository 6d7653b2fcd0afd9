package textutil

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for comparison. Letters are lowercased,
// characters outside [a-z0-9] and whitespace are removed, whitespace runs
// collapse to a single space, and the result is trimmed.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case unicode.IsSpace(r):
			if b.Len() > 0 {
				pendingSpace = true
			}
			continue
		default:
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
