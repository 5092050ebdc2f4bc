package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordsieve/internal/question"
	"github.com/verte-zerg/wordsieve/internal/shape"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

var corpus = []string{"CRANE", "PLANT", "GHOST", "SNAKE", "CRATE", "TRAIN", "BRAND", "SCARE"}

func newStarted(t *testing.T, words []string, opts Options) Session {
	t.Helper()
	s, err := New(words, opts)
	require.NoError(t, err)
	require.Equal(t, StateIdle, s.State())
	s, err = s.Start()
	require.NoError(t, err)
	return s
}

func requirePrompt(t *testing.T, s Session, feature Feature) Prompt {
	t.Helper()
	p, ok := s.Prompt()
	require.True(t, ok, "expected a prompt for %s, state %s", feature, s.State())
	require.Equal(t, feature, p.Feature)
	return p
}

func TestNewRejectsEmptyCorpus(t *testing.T) {
	_, err := New(nil, Options{})
	require.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestNewRejectsUnsupportedStrategy(t *testing.T) {
	_, err := New(corpus, Options{Shapes: shape.ThreeCategory, Strategy: question.CategoryCoverage{}})
	require.ErrorIs(t, err, question.ErrUnsupportedMap)
}

func TestFullWalk(t *testing.T) {
	s := newStarted(t, corpus, Options{Positions: []int{1}, Strategy: question.MinObserved{}})

	requirePrompt(t, s, FeatureSearch)
	s, err := s.Answer(Answer{Text: "ra"})
	require.NoError(t, err)
	require.Equal(t, []string{"CRANE", "CRATE", "TRAIN", "BRAND"}, s.Candidates())
	require.True(t, s.Completed(FeatureSearch))

	requirePrompt(t, s, FeatureAdjacent)
	s, err = s.Answer(Answer{Yes: true})
	require.NoError(t, err)
	require.Len(t, s.Candidates(), 4)

	p := requirePrompt(t, s, FeaturePositional)
	require.Equal(t, PromptLetters, p.Kind)
	require.Equal(t, []int{1}, p.Positions)
	s, err = s.Answer(Answer{Letters: []rune{'C'}})
	require.NoError(t, err)
	require.Equal(t, []string{"CRANE", "CRATE"}, s.Candidates())

	p = requirePrompt(t, s, FeatureVowels)
	require.Equal(t, 'a', p.Vowel)
	s, err = s.Answer(Answer{Yes: true})
	require.NoError(t, err)
	require.True(t, s.Completed(FeatureVowels))

	p = requirePrompt(t, s, FeatureShape)
	require.Equal(t, 0, p.Question.Position)
	s, err = s.Answer(Answer{Category: shape.Curved})
	require.NoError(t, err)

	p = requirePrompt(t, s, FeatureShape)
	require.Equal(t, 4, p.Question.Position)
	s, err = s.Answer(Answer{Category: shape.Straight})
	require.NoError(t, err)

	require.True(t, s.Done())
	require.Equal(t, StateExhausted, s.State())
	require.Equal(t, []string{"CRANE", "CRATE"}, s.Candidates())
	require.Len(t, s.Steps(), 6)

	_, err = s.Answer(Answer{Yes: true})
	require.ErrorIs(t, err, ErrNotAwaiting)
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	before := newStarted(t, corpus, Options{})
	after, err := before.Answer(Answer{Text: "an"})
	require.NoError(t, err)

	require.Equal(t, corpus, before.Candidates())
	require.Equal(t, StateAwaiting, before.State())
	require.Empty(t, before.Steps())
	require.False(t, before.Completed(FeatureSearch))

	require.Equal(t, []string{"CRANE", "PLANT", "SNAKE", "BRAND"}, after.Candidates())
	require.Len(t, after.Steps(), 1)
	require.Equal(t, []string{"CRANE", "PLANT", "GHOST", "SNAKE", "CRATE", "TRAIN", "BRAND", "SCARE"}, corpus)
}

func TestDisabledFeaturesCompleteImmediately(t *testing.T) {
	s := newStarted(t, corpus, Options{Disabled: []Feature{FeatureSearch, FeatureAdjacent, FeaturePositional}})
	requirePrompt(t, s, FeatureVowels)
	require.True(t, s.Completed(FeatureSearch))
	require.True(t, s.Completed(FeatureAdjacent))
	require.True(t, s.Completed(FeaturePositional))
	require.Equal(t, corpus, s.Candidates())

	all := newStarted(t, corpus, Options{Disabled: Features()})
	require.True(t, all.Done())
	require.Equal(t, corpus, all.Candidates())
}

func TestVowelLoopUsesFixedReference(t *testing.T) {
	words := []string{"PIANO", "RADIO", "AUDIO", "ALOE", "BREAD"}
	s := newStarted(t, words, Options{Disabled: []Feature{FeatureSearch, FeatureAdjacent, FeaturePositional, FeatureShape}})

	answers := []struct {
		vowel rune
		yes   bool
		left  []string
	}{
		{'u', false, []string{"PIANO", "RADIO", "ALOE", "BREAD"}},
		{'e', true, []string{"ALOE", "BREAD"}},
		{'i', false, []string{"ALOE", "BREAD"}},
		{'o', true, []string{"ALOE"}},
		{'a', true, []string{"ALOE"}},
	}
	for _, a := range answers {
		p := requirePrompt(t, s, FeatureVowels)
		require.Equal(t, a.vowel, p.Vowel)
		var err error
		s, err = s.Answer(Answer{Yes: a.yes})
		require.NoError(t, err)
		require.Equal(t, a.left, s.Candidates())
	}
	require.True(t, s.Done())
}

func TestZeroCandidatesIsValid(t *testing.T) {
	s := newStarted(t, corpus, Options{})
	s, err := s.Answer(Answer{Text: "zzz"})
	require.NoError(t, err)
	require.Empty(t, s.Candidates())
	require.True(t, s.Completed(FeatureSearch))

	for !s.Done() {
		p, ok := s.Prompt()
		require.True(t, ok)
		require.NotEqual(t, FeatureShape, p.Feature, "no shape question for an empty set")
		s, err = s.Answer(Answer{Yes: true})
		require.NoError(t, err)
	}
	require.Empty(t, s.Candidates())
}

func TestAnswerValidation(t *testing.T) {
	s := newStarted(t, corpus, Options{Disabled: []Feature{FeatureAdjacent, FeatureVowels}, Strategy: question.MinObserved{}})
	_, err := s.Answer(Answer{Text: "   "})
	require.ErrorIs(t, err, ErrUnexpectedAnswer)

	s, err = s.Answer(Answer{Text: "a"})
	require.NoError(t, err)
	_, err = s.Answer(Answer{Letters: []rune{'a', 'b', 'c', 'd'}})
	require.ErrorIs(t, err, ErrUnexpectedAnswer)
	_, err = s.Answer(Answer{Letters: []rune{'c', '1'}})
	require.ErrorIs(t, err, ErrUnexpectedAnswer)
	require.ErrorIs(t, err, wordlist.ErrInvalidParams)

	s, err = s.Answer(Answer{Letters: []rune{0, 'r', 'a'}})
	require.NoError(t, err)
	require.Equal(t, []string{"CRANE", "CRATE", "TRAIN", "BRAND"}, s.Candidates())

	requirePrompt(t, s, FeatureShape)
	_, err = s.Answer(Answer{Category: shape.Mixed})
	require.ErrorIs(t, err, ErrUnexpectedAnswer)
}

func TestDecomposedAnswersMatchComposedWords(t *testing.T) {
	words := []string{"CAF\u00c9", "CAFES", "CAFE"}
	opts := Options{
		Positions: []int{4},
		Disabled:  []Feature{FeatureAdjacent, FeatureVowels},
		Strategy:  question.MinObserved{},
	}

	s := newStarted(t, words, opts)
	s, err := s.Answer(Answer{Text: "fe\u0301"})
	require.NoError(t, err)
	require.Equal(t, []string{"CAF\u00c9"}, s.Candidates())
	require.Equal(t, "f\u00e9", s.Steps()[0].Answer)

	s = newStarted(t, words, opts)
	s, err = s.Answer(Answer{Text: "caf"})
	require.NoError(t, err)
	requirePrompt(t, s, FeaturePositional)
	s, err = s.Answer(Answer{Letters: []rune{'e', '\u0301'}})
	require.NoError(t, err)
	require.Equal(t, []string{"CAF\u00c9"}, s.Candidates())
}

func TestSkipAndReset(t *testing.T) {
	s := newStarted(t, corpus, Options{})
	s, err := s.Skip()
	require.NoError(t, err)
	require.True(t, s.Completed(FeatureSearch))
	require.Equal(t, "skipped", s.Steps()[0].Answer)
	require.True(t, s.Steps()[0].Skipped)
	requirePrompt(t, s, FeatureAdjacent)

	s, err = s.Answer(Answer{Yes: false})
	require.NoError(t, err)
	require.Less(t, len(s.Candidates()), len(corpus))

	id := s.ID()
	r := s.Reset()
	require.Equal(t, StateIdle, r.State())
	require.Equal(t, corpus, r.Candidates())
	require.Empty(t, r.Steps())
	require.False(t, r.Completed(FeatureSearch))
	require.NotEqual(t, id, r.ID())
}
