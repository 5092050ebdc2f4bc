package wordlist

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/verte-zerg/wordsieve/internal/shape"
)

// Kind names a filter for Build.
type Kind string

// Filter kinds.
const (
	KindContains           Kind = "contains"
	KindPrefixOverlap      Kind = "prefix-overlap"
	KindPositional         Kind = "positional"
	KindConsonantOverlap   Kind = "consonant-overlap"
	KindAdjacentPair       Kind = "adjacent-pair"
	KindConsonantSequence  Kind = "consonant-sequence"
	KindAdjacentConsonants Kind = "adjacent-consonants"
	KindVowel              Kind = "vowel"
	KindShape              Kind = "shape"
	KindPositionalShape    Kind = "positional-shape"
)

// Kinds lists every filter kind Build accepts.
func Kinds() []Kind {
	return []Kind{
		KindContains,
		KindPrefixOverlap,
		KindPositional,
		KindConsonantOverlap,
		KindAdjacentPair,
		KindConsonantSequence,
		KindAdjacentConsonants,
		KindVowel,
		KindShape,
		KindPositionalShape,
	}
}

// Params carries the arguments of every filter kind. Each kind reads only
// the fields it needs.
type Params struct {
	Query     string
	Positions []PositionLetter
	Window    Window
	MinShared int
	Letters   []rune
	Include   bool
	Position  int
	Category  shape.Category
	Curved    []int
	Shapes    *shape.Map
}

// Build validates p and returns the filter for kind.
func Build(kind Kind, p Params) (FilterFunc, error) {
	switch kind {
	case KindContains:
		return Contains(p.Query), nil
	case KindPrefixOverlap:
		if strings.TrimSpace(p.Query) == "" {
			return nil, fmt.Errorf("%w: %s needs a query", ErrInvalidParams, kind)
		}
		return PrefixOverlap(p.Query), nil
	case KindPositional:
		return PositionalExact(p.Positions)
	case KindConsonantOverlap:
		minShared := p.MinShared
		if minShared == 0 {
			minShared = 1
		}
		return ConsonantOverlap(p.Query, p.Window, minShared)
	case KindAdjacentPair:
		if len(p.Letters) != 2 {
			return nil, fmt.Errorf("%w: %s needs two letters, got %d", ErrInvalidParams, kind, len(p.Letters))
		}
		for _, r := range p.Letters {
			if !IsConsonant(r) {
				return nil, fmt.Errorf("%w: %q is not a consonant", ErrInvalidParams, r)
			}
		}
		return AdjacentPair(p.Letters[0], p.Letters[1]), nil
	case KindConsonantSequence:
		if len(Consonants(p.Query)) == 0 {
			return nil, fmt.Errorf("%w: %s needs a query with consonants", ErrInvalidParams, kind)
		}
		return ConsonantSequence(p.Query), nil
	case KindAdjacentConsonants:
		return AdjacentConsonants(p.Include), nil
	case KindVowel:
		if len(p.Letters) != 1 || !strings.ContainsRune(Vowels, unicode.ToLower(p.Letters[0])) {
			return nil, fmt.Errorf("%w: %s needs one of %q", ErrInvalidParams, kind, Vowels)
		}
		return VowelInclusion(p.Letters[0], p.Include), nil
	case KindShape:
		m := shapesOrDefault(p.Shapes)
		if p.Position < 0 {
			return nil, fmt.Errorf("%w: position %d must be >= 0", ErrInvalidParams, p.Position)
		}
		if !m.Has(p.Category) {
			return nil, fmt.Errorf("%w: category %s not in %s map", ErrInvalidParams, p.Category, m.Name())
		}
		return Shape(m, p.Position, p.Category), nil
	case KindPositionalShape:
		return PositionalShape(shapesOrDefault(p.Shapes), p.Curved)
	default:
		return nil, fmt.Errorf("%w: unknown filter kind %q", ErrInvalidParams, kind)
	}
}

func shapesOrDefault(m *shape.Map) *shape.Map {
	if m == nil {
		return shape.TwoCategory
	}
	return m
}
