// Package session runs one elimination session over a corpus.
//
// A session walks a fixed list of features in priority order. Each feature
// asks one kind of question, narrows the candidates with the answer and is
// then completed, even when no candidates are left. Session values are
// immutable: every transition returns a new Session, so callers can keep
// earlier values around for undo or replay.
package session

import (
	"fmt"
	"strings"
)

// Feature is one stage of a session.
type Feature string

// Features in priority order.
const (
	FeatureSearch     Feature = "search"
	FeatureAdjacent   Feature = "adjacent-consonants"
	FeaturePositional Feature = "positional"
	FeatureVowels     Feature = "vowels"
	FeatureShape      Feature = "shape"
)

var priority = [...]Feature{
	FeatureSearch,
	FeatureAdjacent,
	FeaturePositional,
	FeatureVowels,
	FeatureShape,
}

const numFeatures = len(priority)

// Features returns the features in the order a session asks them.
func Features() []Feature {
	return append([]Feature(nil), priority[:]...)
}

// ParseFeature parses a feature name.
func ParseFeature(s string) (Feature, error) {
	name := Feature(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range priority {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feature %q", s)
}

func featureIndex(f Feature) int {
	for i, p := range priority {
		if p == f {
			return i
		}
	}
	return -1
}

// State is the position of a session in its lifecycle.
type State int

// Session states.
const (
	StateIdle State = iota
	StateAwaiting
	StateEvaluating
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting-answer"
	case StateEvaluating:
		return "evaluating"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
