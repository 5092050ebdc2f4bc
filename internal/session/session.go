package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/wordsieve/internal/question"
	"github.com/verte-zerg/wordsieve/internal/shape"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

var (
	// ErrEmptyCorpus is returned when a session is created without words.
	ErrEmptyCorpus = errors.New("corpus is empty")
	// ErrNotAwaiting is returned when answering a session that asks nothing.
	ErrNotAwaiting = errors.New("session is not awaiting an answer")
	// ErrUnexpectedAnswer is returned for an answer that does not fit the prompt.
	ErrUnexpectedAnswer = errors.New("answer does not fit the prompt")
)

// Options configures a session.
type Options struct {
	// Disabled features are completed without asking.
	Disabled   []Feature
	SearchMode wordlist.SearchMode
	// Positions are the 1-based positions asked by the positional feature.
	Positions []int
	Shapes    *shape.Map
	Strategy  question.Strategy
	Logger    *slog.Logger
	Now       func() time.Time
}

var defaultPositions = []int{1, 2, 3}

func (o Options) withDefaults() Options {
	if o.SearchMode == "" {
		o.SearchMode = wordlist.SearchContains
	}
	if len(o.Positions) == 0 {
		o.Positions = defaultPositions
	}
	if o.Shapes == nil {
		o.Shapes = shape.TwoCategory
	}
	if o.Strategy == nil {
		o.Strategy = question.MaxVariance{MinLetters: question.DefaultMinLetters}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func (o Options) validate() error {
	if len(o.Positions) > wordlist.MaxPositions {
		return fmt.Errorf("at most %d positions, got %d", wordlist.MaxPositions, len(o.Positions))
	}
	for _, p := range o.Positions {
		if p < 1 {
			return fmt.Errorf("position %d must be >= 1", p)
		}
	}
	if _, err := wordlist.Search(o.SearchMode, ""); err != nil {
		return err
	}
	return o.Strategy.Supports(o.Shapes)
}

// Step records one answered or skipped prompt.
type Step struct {
	Feature   Feature
	Answer    string
	Skipped   bool
	Remaining int
}

type vowelLoop struct {
	reference []string
	remaining []rune
	current   rune
}

// Session is one elimination session. The zero value is not usable; create
// sessions with New.
type Session struct {
	opts       Options
	id         uuid.UUID
	startedAt  time.Time
	corpus     []string
	candidates []string
	state      State
	current    int
	completed  [numFeatures]bool
	disabled   [numFeatures]bool
	query      string
	vowels     vowelLoop
	shapePass  int
	shapeQ     question.Question
	steps      []Step
}

// New returns an idle session over corpus.
func New(corpus []string, opts Options) (Session, error) {
	if len(corpus) == 0 {
		return Session{}, ErrEmptyCorpus
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return Session{}, fmt.Errorf("invalid session options: %w", err)
	}
	s := Session{opts: opts, corpus: corpus}
	for _, f := range opts.Disabled {
		if i := featureIndex(f); i >= 0 {
			s.disabled[i] = true
		}
	}
	return s.Reset(), nil
}

// Reset returns an idle session with the full corpus and no completed
// features.
func (s Session) Reset() Session {
	return Session{
		opts:       s.opts,
		id:         uuid.New(),
		startedAt:  s.opts.Now(),
		corpus:     s.corpus,
		candidates: s.corpus,
		state:      StateIdle,
		current:    -1,
		disabled:   s.disabled,
	}
}

// Start leaves the idle state and moves to the first enabled feature.
func (s Session) Start() (Session, error) {
	if s.state != StateIdle {
		return s, nil
	}
	s.state = StateEvaluating
	return s.advance()
}

// ID identifies the session run; Reset starts a new run.
func (s Session) ID() uuid.UUID { return s.id }

// StartedAt returns when the run began.
func (s Session) StartedAt() time.Time { return s.startedAt }

// State returns the lifecycle state.
func (s Session) State() State { return s.state }

// Done reports whether every feature is completed.
func (s Session) Done() bool { return s.state == StateExhausted }

// Corpus returns the full word list. Callers must not modify it.
func (s Session) Corpus() []string { return s.corpus }

// Candidates returns the words still consistent with every answer. Callers
// must not modify it.
func (s Session) Candidates() []string { return s.candidates }

// Query returns the search text, if the search feature was answered.
func (s Session) Query() string { return s.query }

// Feature returns the feature being asked, if any.
func (s Session) Feature() (Feature, bool) {
	if s.state != StateAwaiting {
		return "", false
	}
	return priority[s.current], true
}

// Completed reports whether f is completed.
func (s Session) Completed(f Feature) bool {
	i := featureIndex(f)
	return i >= 0 && s.completed[i]
}

// Steps returns the answered and skipped prompts in order.
func (s Session) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Options returns the effective options.
func (s Session) Options() Options { return s.opts }

// Answer applies a to the current prompt and moves on.
func (s Session) Answer(a Answer) (Session, error) {
	if s.state != StateAwaiting {
		return s, ErrNotAwaiting
	}
	feature := priority[s.current]
	next := s
	next.state = StateEvaluating
	var (
		keep  wordlist.FilterFunc
		label string
		err   error
	)
	switch feature {
	case FeatureSearch:
		text := wordlist.Normalize(strings.TrimSpace(a.Text))
		if text == "" {
			return s, fmt.Errorf("%w: search needs text", ErrUnexpectedAnswer)
		}
		if keep, err = wordlist.Search(s.opts.SearchMode, text); err != nil {
			return s, err
		}
		next.query = text
		label = text
		next.completed[s.current] = true
	case FeatureAdjacent:
		keep = wordlist.AdjacentConsonants(a.Yes)
		label = yesNo(a.Yes)
		next.completed[s.current] = true
	case FeaturePositional:
		if keep, label, err = s.positionalFilter(a.Letters); err != nil {
			return s, err
		}
		next.completed[s.current] = true
	case FeatureVowels:
		keep = wordlist.VowelInclusion(s.vowels.current, a.Yes)
		label = fmt.Sprintf("%c=%s", s.vowels.current, yesNo(a.Yes))
		next.vowels = s.vowels.without(s.vowels.current)
		if len(next.vowels.remaining) == 0 {
			next.completed[s.current] = true
		}
	case FeatureShape:
		if keep, err = s.shapeQ.Filter(a.Category); err != nil {
			return s, fmt.Errorf("%w: %w", ErrUnexpectedAnswer, err)
		}
		label = fmt.Sprintf("%d=%s", s.shapeQ.Position+1, a.Category)
		next.shapePass++
	}
	next.candidates = wordlist.Apply(s.candidates, keep)
	next.steps = appendStep(s.steps, Step{Feature: feature, Answer: label, Remaining: len(next.candidates)})
	s.opts.Logger.Debug("answer applied",
		"session", s.id, "feature", feature, "answer", label,
		"before", len(s.candidates), "after", len(next.candidates))
	return next.advance()
}

// Skip completes the current feature without narrowing the candidates.
func (s Session) Skip() (Session, error) {
	if s.state != StateAwaiting {
		return s, ErrNotAwaiting
	}
	next := s
	next.state = StateEvaluating
	next.completed[s.current] = true
	next.steps = appendStep(s.steps, Step{Feature: priority[s.current], Answer: "skipped", Skipped: true, Remaining: len(s.candidates)})
	return next.advance()
}

func (s Session) positionalFilter(letters []rune) (wordlist.FilterFunc, string, error) {
	letters = []rune(wordlist.Normalize(string(letters)))
	if len(letters) > len(s.opts.Positions) {
		return nil, "", fmt.Errorf("%w: %d letters for %d positions", ErrUnexpectedAnswer, len(letters), len(s.opts.Positions))
	}
	constraints := make([]wordlist.PositionLetter, len(s.opts.Positions))
	parts := make([]string, len(s.opts.Positions))
	for i, p := range s.opts.Positions {
		constraints[i].Position = p
		parts[i] = fmt.Sprintf("%d=_", p)
		if i < len(letters) && letters[i] != 0 && letters[i] != ' ' {
			constraints[i].Letter = letters[i]
			parts[i] = fmt.Sprintf("%d=%c", p, letters[i])
		}
	}
	keep, err := wordlist.PositionalExact(constraints)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUnexpectedAnswer, err)
	}
	return keep, strings.Join(parts, " "), nil
}

// advance moves to the next feature that has something to ask. Completed
// and disabled features are passed over; when none is left the session is
// exhausted.
func (s Session) advance() (Session, error) {
	if s.current < 0 {
		s.current = 0
	}
	for ; s.current < numFeatures; s.current++ {
		if s.completed[s.current] {
			continue
		}
		feature := priority[s.current]
		if s.disabled[s.current] {
			s.completed[s.current] = true
			s.opts.Logger.Debug("feature disabled", "session", s.id, "feature", feature)
			continue
		}
		ready, err := s.prepare(feature)
		if err != nil {
			return s, err
		}
		if ready {
			s.state = StateAwaiting
			return s, nil
		}
		s.completed[s.current] = true
		s.opts.Logger.Debug("feature has nothing to ask", "session", s.id, "feature", feature)
	}
	s.state = StateExhausted
	s.opts.Logger.Debug("session exhausted", "session", s.id, "candidates", len(s.candidates))
	return s, nil
}

// prepare readies the prompt of feature, returning false when there is
// nothing left to ask.
func (s *Session) prepare(feature Feature) (bool, error) {
	switch feature {
	case FeatureVowels:
		if s.vowels.reference == nil {
			s.vowels = vowelLoop{
				reference: s.candidates,
				remaining: question.VowelOrder(s.query),
			}
		}
		v, ok := question.LeastCommonVowel(s.vowels.reference, s.vowels.remaining)
		s.vowels.current = v
		return ok, nil
	case FeatureShape:
		for s.shapePass < 2 {
			r := question.PrimaryRange
			if s.shapePass == 1 {
				r = question.SecondaryRange(s.candidates)
			}
			q, ok, err := question.Select(s.candidates, s.opts.Shapes, s.opts.Strategy, r)
			if err != nil {
				return false, err
			}
			if ok {
				s.shapeQ = q
				return true, nil
			}
			s.shapePass++
		}
		return false, nil
	default:
		return true, nil
	}
}

func (v vowelLoop) without(r rune) vowelLoop {
	remaining := make([]rune, 0, len(v.remaining))
	for _, x := range v.remaining {
		if x != r {
			remaining = append(remaining, x)
		}
	}
	v.remaining = remaining
	v.current = 0
	return v
}

func appendStep(steps []Step, step Step) []Step {
	out := make([]Step, len(steps), len(steps)+1)
	copy(out, steps)
	return append(out, step)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
