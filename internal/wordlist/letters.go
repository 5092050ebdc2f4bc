package wordlist

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Vowels lists the vowels in canonical order.
const Vowels = "aeiou"

// baseLetter lowercases r and strips any combining accent.
func baseLetter(r rune) rune {
	r = unicode.ToLower(r)
	if r < 0x80 {
		return r
	}
	for _, b := range norm.NFD.String(string(r)) {
		return b
	}
	return r
}

// IsVowel reports whether r is a, e, i, o or u, accented or not.
func IsVowel(r rune) bool {
	return strings.ContainsRune(Vowels, baseLetter(r))
}

// IsConsonant reports whether r is a letter that is not a vowel.
func IsConsonant(r rune) bool {
	return unicode.IsLetter(r) && !IsVowel(r)
}

// Consonants returns the lowercase consonants of s in order.
func Consonants(s string) []rune {
	var out []rune
	for _, r := range strings.ToLower(s) {
		if IsConsonant(r) {
			out = append(out, r)
		}
	}
	return out
}
