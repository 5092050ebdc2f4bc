package question

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/verte-zerg/wordsieve/internal/shape"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

var (
	// ErrInvalidRange is returned for a malformed position range.
	ErrInvalidRange = errors.New("invalid position range")
	// ErrUnknownOption is returned when an answer is not one of the options.
	ErrUnknownOption = errors.New("answer is not an option of the question")
)

// Range is a half-open range of 0-based letter positions.
type Range struct {
	Start int
	End   int
}

// PrimaryRange covers the first three positions.
var PrimaryRange = Range{Start: 0, End: 3}

const secondaryEnd = 6

// SecondaryRange covers positions 3 up to six or the shortest word length,
// whichever is smaller. It is empty when no word reaches position 3.
func SecondaryRange(words []string) Range {
	end := min(secondaryEnd, wordlist.Shortest(words))
	if end < PrimaryRange.End {
		end = PrimaryRange.End
	}
	return Range{Start: PrimaryRange.End, End: end}
}

// Validate checks the range bounds.
func (r Range) Validate() error {
	if r.Start < 0 || r.End < r.Start {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Option is one answer to a question.
type Option struct {
	Category    shape.Category
	Letters     []rune
	Distinct    int
	Occurrences int
	Percent     float64
	Label       string
}

// Question asks which shape category the letter at Position has.
type Question struct {
	Position int
	Strategy string
	Score    float64
	Options  []Option
	Analysis Analysis

	shapes *shape.Map
}

// Option returns the option for c.
func (q Question) Option(c shape.Category) (Option, bool) {
	for _, o := range q.Options {
		if o.Category == c {
			return o, true
		}
	}
	return Option{}, false
}

// Filter returns the filter applied when the answer is c.
func (q Question) Filter(c shape.Category) (wordlist.FilterFunc, error) {
	if _, ok := q.Option(c); !ok {
		return nil, fmt.Errorf("%w: %s at position %d", ErrUnknownOption, c, q.Position)
	}
	return wordlist.Shape(q.shapes, q.Position, c), nil
}

// Apply narrows words with the answer c.
func (q Question) Apply(words []string, c shape.Category) ([]string, error) {
	keep, err := q.Filter(c)
	if err != nil {
		return nil, err
	}
	return wordlist.Apply(words, keep), nil
}

// Select scans r and returns the question for the best scoring position.
// It returns false when no position in r qualifies.
func Select(words []string, m *shape.Map, s Strategy, r Range) (Question, bool, error) {
	if err := r.Validate(); err != nil {
		return Question{}, false, err
	}
	if err := s.Supports(m); err != nil {
		return Question{}, false, err
	}
	var (
		best      Analysis
		bestScore float64
		found     bool
	)
	for p := r.Start; p < r.End; p++ {
		a := Analyze(words, m, p)
		if a.Total == 0 {
			continue
		}
		score, ok := s.Score(a)
		if !ok {
			continue
		}
		if !found || score > bestScore {
			best, bestScore, found = a, score, true
		}
	}
	if !found {
		return Question{}, false, nil
	}
	return newQuestion(best, bestScore, m, s), true, nil
}

func newQuestion(a Analysis, score float64, m *shape.Map, s Strategy) Question {
	q := Question{
		Position: a.Position,
		Strategy: s.Name(),
		Score:    score,
		Analysis: a,
		shapes:   m,
	}
	for _, c := range a.Categories {
		if c.Distinct() == 0 {
			continue
		}
		q.Options = append(q.Options, Option{
			Category:    c.Category,
			Letters:     c.Letters,
			Distinct:    c.Distinct(),
			Occurrences: c.Occurrences,
			Percent:     percent(c, a),
			Label:       s.Label(c, a),
		})
	}
	return q
}

func upper(r rune) rune {
	return unicode.ToUpper(r)
}
