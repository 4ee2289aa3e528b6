// Package actorname pulls a candidate actor name out of free-text chat input.
//
// The heuristic is deliberately naive: the first whitespace-delimited token
// written in title case wins. "I love Brad Pitt movies" yields "Brad", and a
// capitalised sentence opener such as "Show me ..." yields "Show". Callers are
// expected to let the metadata service's own ranking sort out the rest.
//
// Leading and trailing punctuation is stripped before a token is tested and
// is not part of the result, so "Brad," yields "Brad". What remains must
// start with a letter: "3Brad" never matches, while "#Brad" does once the
// "#" is stripped.
package actorname

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Extract returns the first title-cased token in text. The boolean is false
// when no token qualifies.
func Extract(text string) (string, bool) {
	for _, field := range strings.Fields(norm.NFC.String(text)) {
		token := strings.TrimFunc(field, isEdgePunct)
		if IsTitle(token) {
			return token, true
		}
	}
	return "", false
}

// IsTitle reports whether token starts with an uppercase letter followed by at
// least one more letter, all of them lowercase. Non-letters inside the token
// (hyphens, apostrophes, digits) are ignored.
func IsTitle(token string) bool {
	first := true
	rest := 0
	for _, r := range token {
		if !unicode.IsLetter(r) {
			if first {
				return false
			}
			continue
		}
		if first {
			if !unicode.IsUpper(r) {
				return false
			}
			first = false
			continue
		}
		if !unicode.IsLower(r) {
			return false
		}
		rest++
	}
	return !first && rest > 0
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
