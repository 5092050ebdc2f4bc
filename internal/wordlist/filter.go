package wordlist

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/verte-zerg/wordsieve/internal/shape"
)

// ErrInvalidParams is returned for malformed filter parameters.
var ErrInvalidParams = errors.New("invalid filter parameters")

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Apply returns the words kept by keep, in their original order. The input
// slice is never modified.
func Apply(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// SearchMode selects how a search query matches words.
type SearchMode string

// Search modes.
const (
	SearchContains      SearchMode = "contains"
	SearchPrefixOverlap SearchMode = "prefix-overlap"
)

// Search returns the filter for a search query in the given mode.
func Search(mode SearchMode, query string) (FilterFunc, error) {
	switch mode {
	case SearchContains, "":
		return Contains(query), nil
	case SearchPrefixOverlap:
		return PrefixOverlap(query), nil
	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", ErrInvalidParams, mode)
	}
}

// Contains keeps words containing query as a substring, ignoring case.
func Contains(query string) FilterFunc {
	q := strings.ToLower(Normalize(query))
	return func(word string) bool {
		return strings.Contains(strings.ToLower(word), q)
	}
}

// PrefixOverlap keeps words whose first three characters share any
// character with query.
func PrefixOverlap(query string) FilterFunc {
	q := strings.ToLower(Normalize(query))
	return func(word string) bool {
		prefix := []rune(strings.ToLower(word))
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		for _, r := range prefix {
			if strings.ContainsRune(q, r) {
				return true
			}
		}
		return false
	}
}

// PositionLetter pins a 1-based position to a letter. A zero Letter leaves
// the position unconstrained but still requires the word to reach it.
type PositionLetter struct {
	Position int
	Letter   rune
}

// MaxPositions is the number of positions PositionalExact accepts.
const MaxPositions = 3

// PositionalExact keeps words matching every configured position.
func PositionalExact(constraints []PositionLetter) (FilterFunc, error) {
	if len(constraints) > MaxPositions {
		return nil, fmt.Errorf("%w: at most %d positions, got %d", ErrInvalidParams, MaxPositions, len(constraints))
	}
	maxPos := 0
	pinned := make([]PositionLetter, 0, len(constraints))
	for _, c := range constraints {
		if c.Position < 1 {
			return nil, fmt.Errorf("%w: position %d must be >= 1", ErrInvalidParams, c.Position)
		}
		if c.Position > maxPos {
			maxPos = c.Position
		}
		if c.Letter != 0 && !unicode.IsLetter(c.Letter) {
			return nil, fmt.Errorf("%w: %q at position %d is not a letter", ErrInvalidParams, c.Letter, c.Position)
		}
		if c.Letter != 0 {
			pinned = append(pinned, PositionLetter{Position: c.Position, Letter: unicode.ToLower(c.Letter)})
		}
	}
	return func(word string) bool {
		runes := []rune(strings.ToLower(word))
		if len(runes) < maxPos {
			return false
		}
		for _, c := range pinned {
			if runes[c.Position-1] != c.Letter {
				return false
			}
		}
		return true
	}, nil
}

// Window selects the part of a word ConsonantOverlap looks at.
type Window string

// Consonant windows.
const (
	WindowLeading Window = "leading"
	WindowInner   Window = "inner"
)

const leadingWindow = 6

func (w Window) slice(runes []rune) []rune {
	switch w {
	case WindowInner:
		if len(runes) <= 2 {
			return nil
		}
		return runes[1 : len(runes)-1]
	default:
		if len(runes) > leadingWindow {
			return runes[:leadingWindow]
		}
		return runes
	}
}

// ConsonantOverlap keeps words whose consonants inside window share at least
// minShared distinct consonants with query.
func ConsonantOverlap(query string, window Window, minShared int) (FilterFunc, error) {
	if minShared < 1 {
		return nil, fmt.Errorf("%w: shared consonants must be >= 1, got %d", ErrInvalidParams, minShared)
	}
	switch window {
	case WindowLeading, WindowInner:
	case "":
		window = WindowLeading
	default:
		return nil, fmt.Errorf("%w: unknown window %q", ErrInvalidParams, window)
	}
	wanted := map[rune]struct{}{}
	for _, r := range Consonants(Normalize(query)) {
		wanted[r] = struct{}{}
	}
	return func(word string) bool {
		shared := map[rune]struct{}{}
		for _, r := range window.slice([]rune(strings.ToLower(word))) {
			if _, ok := wanted[r]; ok {
				shared[r] = struct{}{}
			}
		}
		return len(shared) >= minShared
	}, nil
}

// AdjacentPair keeps words where a and b appear next to each other, in
// either order.
func AdjacentPair(a, b rune) FilterFunc {
	a, b = unicode.ToLower(a), unicode.ToLower(b)
	return func(word string) bool {
		runes := []rune(strings.ToLower(word))
		for i := 0; i+1 < len(runes); i++ {
			x, y := runes[i], runes[i+1]
			if (x == a && y == b) || (x == b && y == a) {
				return true
			}
		}
		return false
	}
}

// ConsonantSequence keeps words containing the consonants of query, in
// order, as one contiguous run.
func ConsonantSequence(query string) FilterFunc {
	seq := string(Consonants(Normalize(query)))
	return func(word string) bool {
		return strings.Contains(strings.ToLower(word), seq)
	}
}

// HasAdjacentConsonants reports whether two consecutive characters of word
// are both consonants.
func HasAdjacentConsonants(word string) bool {
	runes := []rune(strings.ToLower(word))
	for i := 0; i+1 < len(runes); i++ {
		if IsConsonant(runes[i]) && IsConsonant(runes[i+1]) {
			return true
		}
	}
	return false
}

// AdjacentConsonants keeps words with (want) or without an adjacent
// consonant pair.
func AdjacentConsonants(want bool) FilterFunc {
	return func(word string) bool {
		return HasAdjacentConsonants(word) == want
	}
}

// VowelInclusion keeps words containing vowel when include is set, and
// words without it otherwise.
func VowelInclusion(vowel rune, include bool) FilterFunc {
	v := unicode.ToLower(vowel)
	return func(word string) bool {
		return strings.ContainsRune(strings.ToLower(word), v) == include
	}
}

// Shape keeps words whose character at the 0-based position has category.
func Shape(m *shape.Map, position int, category shape.Category) FilterFunc {
	return func(word string) bool {
		runes := []rune(word)
		if position < 0 || position >= len(runes) {
			return false
		}
		return m.Classify(runes[position]) == category
	}
}

// ShapeWindow is the number of leading positions PositionalShape checks.
const ShapeWindow = 5

// PositionalShape keeps words whose first ShapeWindow characters are curved
// exactly at the given 1-based positions. Words shorter than the largest
// curved position are dropped; positions past the end of a word are skipped.
func PositionalShape(m *shape.Map, curved []int) (FilterFunc, error) {
	want := map[int]struct{}{}
	maxReq := 0
	for _, p := range curved {
		if p < 1 || p > ShapeWindow {
			return nil, fmt.Errorf("%w: shape position %d outside 1..%d", ErrInvalidParams, p, ShapeWindow)
		}
		want[p] = struct{}{}
		if p > maxReq {
			maxReq = p
		}
	}
	return func(word string) bool {
		runes := []rune(word)
		if len(runes) < maxReq {
			return false
		}
		for p := 1; p <= ShapeWindow && p <= len(runes); p++ {
			isCurved := m.Classify(runes[p-1]) == shape.Curved
			if _, ok := want[p]; ok != isCurved {
				return false
			}
		}
		return true
	}, nil
}
