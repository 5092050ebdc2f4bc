// Package shape classifies letters by the outline of their glyph.
package shape

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Category is the outline class of a letter glyph.
type Category string

// Shape categories. Unknown is returned for runes missing from a map.
const (
	Unknown  Category = ""
	Straight Category = "straight"
	Curved   Category = "curved"
	Mixed    Category = "mixed"
)

// String implements fmt.Stringer.
func (c Category) String() string {
	if c == Unknown {
		return "unknown"
	}
	return string(c)
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Straight:
		return Straight, nil
	case Curved:
		return Curved, nil
	case Mixed:
		return Mixed, nil
	default:
		return Unknown, fmt.Errorf("unknown shape category %q", s)
	}
}

// Map is an immutable letter to category table.
type Map struct {
	name       string
	categories []Category
	letters    map[rune]Category
}

type group struct {
	category Category
	letters  string
}

func newMap(name string, groups ...group) *Map {
	m := &Map{name: name, letters: map[rune]Category{}}
	for _, g := range groups {
		m.categories = append(m.categories, g.category)
		for _, r := range g.letters {
			if prev, ok := m.letters[r]; ok {
				panic(fmt.Sprintf("shape: %q mapped to both %s and %s in %s", r, prev, g.category, name))
			}
			m.letters[r] = g.category
		}
	}
	return m
}

// Accented capitals grouped by the base letter they decorate.
const (
	accentedA = "ÀÁÂÃÄÅ"
	accentedE = "ÈÉÊË"
	accentedI = "ÌÍÎÏ"
	accentedO = "ÒÓÔÕÖ"
	accentedU = "ÙÚÛÜ"
	accentedN = "Ñ"
	accentedY = "ÝŸ"
	accentedC = "Ç"
)

var (
	// TwoCategory splits letters into straight and curved outlines.
	TwoCategory = newMap("two",
		group{Straight, "AEFHIKLMNTVWXYZ" + accentedA + accentedE + accentedI + accentedN + accentedY},
		group{Curved, "BCDGJOPQRSU" + accentedC + accentedO + accentedU},
	)

	// ThreeCategory keeps letters mixing stems and bowls apart.
	ThreeCategory = newMap("three",
		group{Straight, "AEFHIKLMNTVWXYZ" + accentedA + accentedE + accentedI + accentedN + accentedY},
		group{Curved, "COS" + accentedC + accentedO},
		group{Mixed, "BDGJPQRU" + accentedU},
	)
)

// ByName returns a shipped map by name ("two" or "three").
func ByName(name string) (*Map, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "two":
		return TwoCategory, nil
	case "three":
		return ThreeCategory, nil
	default:
		return nil, fmt.Errorf("unknown shape map %q (available: two, three)", name)
	}
}

// Classify returns the TwoCategory class of r.
func Classify(r rune) Category {
	return TwoCategory.Classify(r)
}

// Name returns the map name.
func (m *Map) Name() string {
	return m.name
}

// Categories returns the categories in table order.
func (m *Map) Categories() []Category {
	return append([]Category(nil), m.categories...)
}

// Has reports whether c is one of the map's categories.
func (m *Map) Has(c Category) bool {
	for _, cat := range m.categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Classify returns the category of r, case-insensitively.
func (m *Map) Classify(r rune) Category {
	return m.letters[unicode.ToUpper(r)]
}

// Letters returns the sorted letters mapped to c.
func (m *Map) Letters(c Category) []rune {
	var out []rune
	for r, cat := range m.letters {
		if cat == c {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of mapped letters.
func (m *Map) Len() int {
	return len(m.letters)
}
