// Package arabic canonicalizes Arabic text so that answer comparison is
// robust to the spelling variation typical of casual chat input.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// tatweel is the Arabic elongation character, meaningless for comparison.
const tatweel = 'ـ'

// letterFolds maps orthographic variants that casual writers use
// interchangeably onto a single canonical letter.
var letterFolds = map[rune]rune{
	'أ': 'ا', // alef with hamza above
	'إ': 'ا', // alef with hamza below
	'آ': 'ا', // alef with madda
	'ٱ': 'ا', // alef wasla
	'ؤ': 'و', // waw with hamza
	'ئ': 'ي', // yeh with hamza
	'ى': 'ي', // alef maksura
	'ة': 'ه', // teh marbuta
}

// stripMarks removes combining marks, which covers the Arabic diacritical
// range used for short vowels (fatha, damma, kasra, shadda, sukun, tanween).
var stripMarks = runes.Remove(runes.In(unicode.Mn))

// Normalize returns the canonical form of s: trimmed, lower-cased, diacritics
// stripped, letter variants folded and internal whitespace collapsed to a
// single space. It is a pure function and idempotent; the empty string maps
// to itself.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s, _, _ = transform.String(stripMarks, s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == tatweel {
			continue
		}
		if folded, ok := letterFolds[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}

	// Internal whitespace collapses to one space so multi-word answers
	// compare the same however the sender spaced them.
	return strings.Join(strings.Fields(b.String()), " ")
}

// Equal reports whether two strings are the same answer once normalized.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
