// Package oracle answers session prompts for a hidden word.
package oracle

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/wordsieve/internal/session"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

const searchLen = 3

// Oracle plays the user of a session: it knows the secret word and answers
// every prompt truthfully.
type Oracle struct {
	rnd      *rand.Rand
	secret   string
	blankPct float64
}

// New returns an Oracle seeded with the current time.
func New() *Oracle {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns an Oracle with a fixed seed.
func NewSeeded(seed int64) *Oracle {
	return &Oracle{rnd: rand.New(rand.NewSource(seed))}
}

// SetBlankPct sets the probability of leaving a positional letter blank.
func (o *Oracle) SetBlankPct(pct float64) {
	o.blankPct = pct
}

// Pick chooses the secret uniformly from words.
func (o *Oracle) Pick(words []string) string {
	o.secret = words[o.rnd.Intn(len(words))]
	return o.secret
}

// SetSecret sets the secret word.
func (o *Oracle) SetSecret(word string) {
	o.secret = word
}

// Secret returns the secret word.
func (o *Oracle) Secret() string {
	return o.secret
}

// Answer answers p for the secret. It returns false when the secret gives
// no truthful answer, for example a shape question past its last letter;
// the caller should skip the prompt.
func (o *Oracle) Answer(p session.Prompt) (session.Answer, bool) {
	secret := []rune(strings.ToLower(o.secret))
	switch p.Feature {
	case session.FeatureSearch:
		return session.Answer{Text: o.searchText(secret, p.SearchMode)}, true
	case session.FeatureAdjacent:
		return session.Answer{Yes: wordlist.HasAdjacentConsonants(o.secret)}, true
	case session.FeaturePositional:
		letters := make([]rune, len(p.Positions))
		for i, pos := range p.Positions {
			if pos > len(secret) {
				return session.Answer{}, false
			}
			if o.blankPct > 0 && o.rnd.Float64() < o.blankPct {
				continue
			}
			letters[i] = secret[pos-1]
		}
		return session.Answer{Letters: letters}, true
	case session.FeatureVowels:
		return session.Answer{Yes: strings.ContainsRune(string(secret), unicode.ToLower(p.Vowel))}, true
	case session.FeatureShape:
		pos := p.Question.Position
		runes := []rune(o.secret)
		if pos >= len(runes) {
			return session.Answer{}, false
		}
		for _, opt := range p.Question.Options {
			for _, r := range opt.Letters {
				if r == unicode.ToUpper(runes[pos]) {
					return session.Answer{Category: opt.Category}, true
				}
			}
		}
		return session.Answer{}, false
	default:
		return session.Answer{}, false
	}
}

// searchText returns a query the secret matches: a random run of up to
// searchLen letters, or the whole word for prefix overlap.
func (o *Oracle) searchText(secret []rune, mode wordlist.SearchMode) string {
	if mode == wordlist.SearchPrefixOverlap || len(secret) <= searchLen {
		return string(secret)
	}
	start := o.rnd.Intn(len(secret) - searchLen + 1)
	return string(secret[start : start+searchLen])
}

// Play starts s if needed and answers every prompt until the session is
// exhausted. Prompts without a truthful answer are skipped.
func (o *Oracle) Play(s session.Session) (session.Session, error) {
	s, err := s.Start()
	if err != nil {
		return s, err
	}
	for !s.Done() {
		p, ok := s.Prompt()
		if !ok {
			break
		}
		answer, ok := o.Answer(p)
		if !ok {
			if s, err = s.Skip(); err != nil {
				return s, err
			}
			continue
		}
		if s, err = s.Answer(answer); err != nil {
			return s, err
		}
	}
	return s, nil
}
