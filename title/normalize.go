// Package title provides title normalization, the alias mapper, and the
// manual exemption set used by the reconciliation engine.
package title

import (
	"strings"
	"unicode"
)

// Normalize reduces a title to its comparison key: lowercase, every
// character outside [a-z0-9] and whitespace removed, whitespace runs
// collapsed to a single space, then trimmed. Idempotent for all inputs.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// foldKey is the case-insensitive lookup key for alias and exemption
// tables. Unlike Normalize it keeps punctuation, so "F.E.A.R." and
// "FEAR" stay distinct table keys.
func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
