// Package textnorm reduces free-text transaction descriptions to a
// comparable form. Both the duplicate detector and the classifiers depend on
// the exact same normalization so their signals agree.
package textnorm

import "strings"

// Normalize lower-cases the input, replaces every character outside
// [a-z0-9 ] with a space, and collapses repeated whitespace.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TokenSet returns the set of non-empty whitespace-delimited tokens of the
// normalized text. Empty input yields an empty set.
func TokenSet(text string) map[string]struct{} {
	tokens := strings.Fields(Normalize(text))
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
