package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledWordsHighlightsQuery(t *testing.T) {
	words := buildStyledWords([]string{"crane", "ghost"}, "RA")
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	want := candidateStyle.Render("C") + matchStyle.Render("RA") + candidateStyle.Render("NE")
	if words[0].s != want {
		t.Fatalf("unexpected highlight: %q", words[0].s)
	}
	if words[1].s != candidateStyle.Render("GHOST") {
		t.Fatalf("expected plain word, got %q", words[1].s)
	}
	if words[0].width != 5 {
		t.Fatalf("expected width 5, got %d", words[0].width)
	}
}

func TestBuildStyledWordsAccented(t *testing.T) {
	words := buildStyledWords([]string{"élan"}, "la")
	want := candidateStyle.Render("É") + matchStyle.Render("LA") + candidateStyle.Render("N")
	if words[0].s != want {
		t.Fatalf("unexpected highlight: %q", words[0].s)
	}
	if words[0].width != 4 {
		t.Fatalf("expected width 4, got %d", words[0].width)
	}
}

func TestWrapStyledWordsColumns(t *testing.T) {
	words := []styledWord{{s: "CRANE", width: 5}, {s: "OWL", width: 3}, {s: "GHOST", width: 5}}
	got := wrapStyledWords(words, 12, 0)
	if got != "CRANE  OWL\nGHOST" {
		t.Fatalf("unexpected grid:\n%q", got)
	}
}

func TestWrapStyledWordsTruncates(t *testing.T) {
	words := make([]styledWord, 10)
	for i := range words {
		words[i] = styledWord{s: "AB", width: 2}
	}
	got := wrapStyledWords(words, 2, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if !strings.Contains(lines[2], "8 more") {
		t.Fatalf("expected overflow note, got %q", lines[2])
	}
}

func TestParseLetters(t *testing.T) {
	got := parseLetters("c_a")
	if len(got) != 3 || got[0] != 'c' || got[1] != 0 || got[2] != 'a' {
		t.Fatalf("unexpected letters: %v", got)
	}
	got = parseLetters(" r ")
	if len(got) != 2 || got[0] != 0 || got[1] != 'r' {
		t.Fatalf("unexpected letters: %v", got)
	}
	got = parseLetters("e\u0301a")
	if len(got) != 2 || got[0] != '\u00e9' || got[1] != 'a' {
		t.Fatalf("unexpected letters: %v", got)
	}
}
