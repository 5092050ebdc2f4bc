package question

import (
	"strings"

	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

// VowelOrder returns the distinct vowels of query in order of first
// occurrence. An empty result falls back to all vowels in canonical order.
func VowelOrder(query string) []rune {
	var out []rune
	for _, r := range strings.ToLower(query) {
		if !strings.ContainsRune(wordlist.Vowels, r) {
			continue
		}
		if strings.ContainsRune(string(out), r) {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []rune(wordlist.Vowels)
	}
	return out
}

// VowelCounts returns how many reference words contain each vowel.
func VowelCounts(reference []string, vowels []rune) map[rune]int {
	counts := make(map[rune]int, len(vowels))
	for _, v := range vowels {
		counts[v] = 0
	}
	for _, w := range reference {
		lw := strings.ToLower(w)
		for _, v := range vowels {
			if strings.ContainsRune(lw, v) {
				counts[v]++
			}
		}
	}
	return counts
}

// LeastCommonVowel returns the vowel of remaining contained in the fewest
// reference words. Ties go to the earliest vowel in remaining.
func LeastCommonVowel(reference []string, remaining []rune) (rune, bool) {
	if len(remaining) == 0 {
		return 0, false
	}
	counts := VowelCounts(reference, remaining)
	best := remaining[0]
	for _, v := range remaining[1:] {
		if counts[v] < counts[best] {
			best = v
		}
	}
	return best, true
}
