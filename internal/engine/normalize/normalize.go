// Package normalize canonicalizes free-text practice-area labels before
// matching. Only [a-z0-9 -] survives; everything else is folded, dropped or
// turned into a word break.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold decomposes compatibility forms (ligatures, full-width letters) and
// removes combining marks so "Défense" becomes "Defense" rather than "Dfense".
var fold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Label normalizes a single label:
//
//	"Business & Corporate Law" -> "business and corporate law"
//	"Mechanic's Liens"         -> "mechanics liens"
//	"LABOR/EMPLOYMENT!!"       -> "labor employment"
//
// A label with no usable characters normalizes to "".
func Label(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '&':
			b.WriteString(" and ")
		case r == '\'', r == '‘', r == '’', r == '`':
			// apostrophes join: "mechanic's" -> "mechanics"
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Labels normalizes every label and drops the ones that normalize to "".
// Order is preserved; duplicates are kept (see dedup for set semantics).
func Labels(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if n := Label(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Text normalizes and joins several fragments into one searchable string.
func Text(parts ...string) string {
	return Label(strings.Join(parts, " "))
}
