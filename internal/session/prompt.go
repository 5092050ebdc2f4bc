package session

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/verte-zerg/wordsieve/internal/question"
	"github.com/verte-zerg/wordsieve/internal/shape"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

// PromptKind tells a driver which kind of answer a prompt expects.
type PromptKind int

// Prompt kinds.
const (
	PromptText PromptKind = iota
	PromptYesNo
	PromptLetters
	PromptChoice
)

// Prompt is what a session asks next.
type Prompt struct {
	Feature Feature
	Kind    PromptKind
	Text    string

	// SearchMode is set for the search feature.
	SearchMode wordlist.SearchMode
	// Vowel is set for the vowels feature.
	Vowel rune
	// Positions are the 1-based positions for the positional feature.
	Positions []int
	// Question is set for the shape feature.
	Question question.Question
}

// Answer carries the user's reply. Only the fields matching the prompt kind
// are read.
type Answer struct {
	Text     string
	Yes      bool
	Letters  []rune
	Category shape.Category
}

// Prompt returns the current prompt. It returns false unless the session
// is awaiting an answer.
func (s Session) Prompt() (Prompt, bool) {
	feature, ok := s.Feature()
	if !ok {
		return Prompt{}, false
	}
	p := Prompt{Feature: feature}
	switch feature {
	case FeatureSearch:
		p.Kind = PromptText
		p.SearchMode = s.opts.SearchMode
		if s.opts.SearchMode == wordlist.SearchPrefixOverlap {
			p.Text = "Type a word sharing letters with the start of yours"
		} else {
			p.Text = "Type part of the word"
		}
	case FeatureAdjacent:
		p.Kind = PromptYesNo
		p.Text = "Does the word have two consonants next to each other?"
	case FeaturePositional:
		p.Kind = PromptLetters
		p.Positions = append([]int(nil), s.opts.Positions...)
		parts := make([]string, len(p.Positions))
		for i, pos := range p.Positions {
			parts[i] = fmt.Sprint(pos)
		}
		p.Text = fmt.Sprintf("Letters at positions %s (blank if unknown)", strings.Join(parts, ", "))
	case FeatureVowels:
		p.Kind = PromptYesNo
		p.Vowel = s.vowels.current
		p.Text = fmt.Sprintf("Does the word contain %c?", unicode.ToUpper(s.vowels.current))
	case FeatureShape:
		p.Kind = PromptChoice
		p.Question = s.shapeQ
		p.Text = fmt.Sprintf("What shape is letter %d?", s.shapeQ.Position+1)
	}
	return p, true
}
