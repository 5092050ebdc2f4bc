package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/session"
	"github.com/verte-zerg/wordsieve/internal/store"
)

var corpus = []string{"crane", "plant", "ghost", "snake", "crate", "train", "brand", "scare"}

func newTestModel(t *testing.T, st *store.Store, opts session.Options) *Model {
	t.Helper()
	sess, err := session.New(corpus, opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	m, err := NewModel(model.Config{List: "en"}, st, sess, "/lists/en.txt", nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSearchAndYesNoFlow(t *testing.T) {
	m := newTestModel(t, nil, session.Options{})
	if f, _ := m.Session().Feature(); f != session.FeatureSearch {
		t.Fatalf("expected search prompt, got %q", f)
	}
	send(m, runes("ra"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.Session().Candidates()); got != 4 {
		t.Fatalf("expected 4 candidates after search, got %d", got)
	}
	if f, _ := m.Session().Feature(); f != session.FeatureAdjacent {
		t.Fatalf("expected adjacent prompt, got %q", f)
	}
	footer := m.renderFooter()
	if !containsAll(footer, []string{"4 candidates", "adjacent-consonants", "en"}) {
		t.Fatalf("footer missing segments: %s", footer)
	}

	send(m, runes("y"))
	if f, _ := m.Session().Feature(); f != session.FeaturePositional {
		t.Fatalf("expected positional prompt, got %q", f)
	}
	send(m, runes("c"), tea.KeyMsg{Type: tea.KeyEnter})
	got := m.Session().Candidates()
	if len(got) != 2 || got[0] != "crane" || got[1] != "crate" {
		t.Fatalf("unexpected candidates after positional: %v", got)
	}
}

func TestEmptyEnterSkips(t *testing.T) {
	m := newTestModel(t, nil, session.Options{})
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Session().Completed(session.FeatureSearch) {
		t.Fatalf("expected search to be skipped")
	}
	if got := len(m.Session().Candidates()); got != len(corpus) {
		t.Fatalf("skip should keep all candidates, got %d", got)
	}
}

func TestTooManyLettersShowsStatus(t *testing.T) {
	m := newTestModel(t, nil, session.Options{
		Disabled: []session.Feature{session.FeatureSearch, session.FeatureAdjacent},
	})
	send(m, runes("abcd"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.status == "" {
		t.Fatalf("expected status for too many letters")
	}
	if f, _ := m.Session().Feature(); f != session.FeaturePositional {
		t.Fatalf("expected positional prompt to remain, got %q", f)
	}
}

func TestNonLetterShowsStatus(t *testing.T) {
	m := newTestModel(t, nil, session.Options{
		Disabled: []session.Feature{session.FeatureSearch, session.FeatureAdjacent},
	})
	send(m, runes("c1"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.status == "" {
		t.Fatalf("expected status for a non-letter")
	}
	if f, _ := m.Session().Feature(); f != session.FeaturePositional {
		t.Fatalf("expected positional prompt to remain, got %q", f)
	}
}

func TestDoneSavesAndRestarts(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "wordsieve.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	m := newTestModel(t, st, session.Options{
		Disabled: []session.Feature{
			session.FeatureAdjacent, session.FeaturePositional,
			session.FeatureVowels, session.FeatureShape,
		},
	})
	send(m, runes("ost"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Session().Done() {
		t.Fatalf("expected session to be done")
	}
	if !strings.Contains(m.View(), "Found it.") {
		t.Fatalf("expected found message in view")
	}

	ctx := context.Background()
	sessions, err := st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Remaining != 1 || !sessions[0].Exhausted {
		t.Fatalf("unexpected saved sessions: %+v", sessions)
	}
	if len(sessions[0].Result) != 1 || sessions[0].Result[0] != "ghost" {
		t.Fatalf("unexpected result: %v", sessions[0].Result)
	}

	// Quitting after a save must not store the run twice.
	send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	sessions, err = st.ListSessions(ctx, model.HistoryConfig{})
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one saved session, got %d (%v)", len(sessions), err)
	}

	send(m, runes("r"))
	if m.Session().Done() || len(m.Session().Candidates()) != len(corpus) {
		t.Fatalf("expected a fresh session after restart")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
