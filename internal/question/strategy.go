package question

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/wordsieve/internal/shape"
)

// DefaultMinLetters is the number of distinct letters a position needs
// before the spread-based strategies consider it.
const DefaultMinLetters = 10

// ErrUnsupportedMap is returned when a strategy cannot work with a shape map.
var ErrUnsupportedMap = errors.New("strategy does not support shape map")

// Strategy scores positions. Select keeps the position with the highest
// score, and the first one scanned on ties.
type Strategy interface {
	Name() string
	// Supports reports whether the strategy can score positions of m.
	Supports(m *shape.Map) error
	// Score returns false when the position must be skipped.
	Score(a Analysis) (float64, bool)
	// Label renders an answer option for display.
	Label(c CategoryStats, a Analysis) string
}

// Strategy names.
const (
	NameMinObserved        = "min-observed"
	NameMaxVariance        = "max-variance"
	NameFilteringPotential = "filtering-potential"
	NameCategoryCoverage   = "category-coverage"
)

// StrategyNames lists the names StrategyByName accepts.
func StrategyNames() []string {
	return []string{NameMinObserved, NameMaxVariance, NameFilteringPotential, NameCategoryCoverage}
}

// StrategyByName returns a strategy with default thresholds.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameMinObserved:
		return MinObserved{}, nil
	case NameMaxVariance, "":
		return MaxVariance{MinLetters: DefaultMinLetters}, nil
	case NameFilteringPotential:
		return FilteringPotential{MinLetters: DefaultMinLetters}, nil
	case NameCategoryCoverage:
		return CategoryCoverage{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (available: %s)", name, strings.Join(StrategyNames(), ", "))
	}
}

// MinObserved prefers the position with the fewest distinct letters.
type MinObserved struct{}

func (MinObserved) Name() string { return NameMinObserved }

func (MinObserved) Supports(*shape.Map) error { return nil }

func (MinObserved) Score(a Analysis) (float64, bool) {
	if a.Total == 0 {
		return 0, false
	}
	return -float64(a.Total), true
}

func (MinObserved) Label(c CategoryStats, _ Analysis) string {
	return fmt.Sprintf("%s (%d)", c.Category, c.Distinct())
}

// MaxVariance prefers the position whose distinct letters are spread most
// unevenly across categories.
type MaxVariance struct {
	MinLetters int
}

func (MaxVariance) Name() string { return NameMaxVariance }

func (MaxVariance) Supports(*shape.Map) error { return nil }

func (s MaxVariance) Score(a Analysis) (float64, bool) {
	if a.Total == 0 || a.Total < s.MinLetters {
		return 0, false
	}
	return variance(a.Fractions()), true
}

func (MaxVariance) Label(c CategoryStats, a Analysis) string {
	return percentLabel(c, a)
}

// FilteringPotential prefers positions where one category is both rare by
// occurrence and lopsided by distinct letters.
type FilteringPotential struct {
	MinLetters int
}

func (FilteringPotential) Name() string { return NameFilteringPotential }

func (FilteringPotential) Supports(*shape.Map) error { return nil }

func (s FilteringPotential) Score(a Analysis) (float64, bool) {
	if a.Total == 0 || a.Total < s.MinLetters {
		return 0, false
	}
	minCount, maxCount := math.MaxInt, 0
	for _, c := range a.Categories {
		minCount = min(minCount, c.Occurrences)
		maxCount = max(maxCount, c.Occurrences)
	}
	if maxCount == 0 {
		return 0, false
	}
	potential := float64(minCount) / float64(maxCount)
	fractions := a.Fractions()
	lo, hi := fractions[0], fractions[0]
	for _, f := range fractions[1:] {
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	return (hi - lo) * (1 - potential), true
}

func (FilteringPotential) Label(c CategoryStats, _ Analysis) string {
	return fmt.Sprintf("%s (%d)", c.Category, c.Occurrences)
}

// CategoryCoverage prefers the position with the largest gap between the
// two category fractions. It only works with two-category maps.
type CategoryCoverage struct{}

func (CategoryCoverage) Name() string { return NameCategoryCoverage }

func (CategoryCoverage) Supports(m *shape.Map) error {
	if n := len(m.Categories()); n != 2 {
		return fmt.Errorf("%w: %s needs 2 categories, %s map has %d", ErrUnsupportedMap, NameCategoryCoverage, m.Name(), n)
	}
	return nil
}

func (CategoryCoverage) Score(a Analysis) (float64, bool) {
	if len(a.Categories) != 2 {
		return 0, false
	}
	if a.Categories[0].Distinct() == 0 || a.Categories[1].Distinct() == 0 {
		return 0, false
	}
	f := a.Fractions()
	return math.Abs(f[0] - f[1]), true
}

func (CategoryCoverage) Label(c CategoryStats, a Analysis) string {
	return percentLabel(c, a)
}

func percentLabel(c CategoryStats, a Analysis) string {
	return fmt.Sprintf("%s (%.0f%%)", c.Category, percent(c, a))
}

func percent(c CategoryStats, a Analysis) float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(c.Distinct()) / float64(a.Total) * 100
}

// variance is the population variance of values.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return sum / float64(len(values))
}
