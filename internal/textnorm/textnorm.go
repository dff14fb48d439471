// Package textnorm folds free-form labels and identifiers into comparable ASCII tokens.
//
// Tokens are used for equality and substring matching across CMS ids, titles, route
// slugs and album names. Folding follows Azerbaijani casing rules so that the dotted
// and dotless i pair survives lowercasing before it is reduced to plain Latin.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolder maps the alphabet-specific letters to their closest Latin base letter.
// It runs after lowercasing, so only lower-case forms are listed.
var letterFolder = strings.NewReplacer(
	"ə", "e",
	"ı", "i",
	"ş", "s",
	"ç", "c",
	"ğ", "g",
	"ö", "o",
	"ü", "u",
)

// Normalize returns the canonical token for s: Azerbaijani-aware lowercase, letter
// substitution, combining marks stripped and everything outside [a-z0-9] removed.
// The result is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// Casers and transform chains carry state; build them per call.
	lowered := cases.Lower(language.Azerbaijani).String(s)
	lowered = letterFolder.Replace(lowered)

	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equal reports whether a and b fold to the same non-empty token.
func Equal(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}

// Contains reports whether the folded needle occurs in the folded haystack.
// An empty needle never matches.
func Contains(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Normalize(haystack), n)
}
