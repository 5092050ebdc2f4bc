// Package question picks the next discriminating question for a set of
// candidate words.
//
// A question names a letter position and the shape categories observed
// there. Which position is asked about is decided by a Strategy; the
// shipped strategies disagree on purpose (some minimize, some maximize) and
// are selected by name.
package question

import (
	"sort"

	"github.com/verte-zerg/wordsieve/internal/shape"
)

// CategoryStats holds what was observed for one category at a position.
type CategoryStats struct {
	Category    shape.Category
	Letters     []rune
	Occurrences int
}

// Distinct returns the number of distinct letters observed.
func (c CategoryStats) Distinct() int {
	return len(c.Letters)
}

// Analysis describes one position of a candidate set.
type Analysis struct {
	Position    int
	Categories  []CategoryStats
	Total       int
	Occurrences int
}

// Analyze collects the letters seen at the 0-based position, grouped by
// category in map order. Words too short for the position and letters the
// map does not know are ignored.
func Analyze(words []string, m *shape.Map, position int) Analysis {
	cats := m.Categories()
	index := make(map[shape.Category]int, len(cats))
	seen := make([]map[rune]struct{}, len(cats))
	a := Analysis{Position: position, Categories: make([]CategoryStats, len(cats))}
	for i, c := range cats {
		index[c] = i
		seen[i] = map[rune]struct{}{}
		a.Categories[i].Category = c
	}
	for _, w := range words {
		runes := []rune(w)
		if position < 0 || position >= len(runes) {
			continue
		}
		i, ok := index[m.Classify(runes[position])]
		if !ok {
			continue
		}
		seen[i][upper(runes[position])] = struct{}{}
		a.Categories[i].Occurrences++
		a.Occurrences++
	}
	for i := range a.Categories {
		letters := make([]rune, 0, len(seen[i]))
		for r := range seen[i] {
			letters = append(letters, r)
		}
		sort.Slice(letters, func(x, y int) bool { return letters[x] < letters[y] })
		a.Categories[i].Letters = letters
		a.Total += len(letters)
	}
	return a
}

// Fractions returns each category's share of the distinct letters, in
// category order.
func (a Analysis) Fractions() []float64 {
	out := make([]float64, len(a.Categories))
	if a.Total == 0 {
		return out
	}
	for i, c := range a.Categories {
		out[i] = float64(c.Distinct()) / float64(a.Total)
	}
	return out
}

// Stats returns the stats for c.
func (a Analysis) Stats(c shape.Category) (CategoryStats, bool) {
	for _, cs := range a.Categories {
		if cs.Category == c {
			return cs, true
		}
	}
	return CategoryStats{}, false
}
