package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadWordsTrimsAndSkipsBlank(t *testing.T) {
	words, err := ReadWords(strings.NewReader("  crane \n\n\tplant\r\n   \nGhost\n"))
	if err != nil {
		t.Fatalf("read words: %v", err)
	}
	if diff := cmp.Diff([]string{"crane", "plant", "Ghost"}, words); diff != "" {
		t.Fatalf("unexpected words (-want +got):\n%s", diff)
	}
}

func TestReadWordsNormalizesAccents(t *testing.T) {
	words, err := ReadWords(strings.NewReader("cafe\u0301\n"))
	if err != nil {
		t.Fatalf("read words: %v", err)
	}
	if words[0] != "caf\u00e9" || len([]rune(words[0])) != 4 {
		t.Fatalf("expected composed café, got %q", words[0])
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n  \n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := LoadWords(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, ErrEmptyList) {
		t.Fatalf("expected ErrEmptyList, got %v", err)
	}
}

func TestLoadFirstFallsBack(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "nouns.txt")
	if err := os.WriteFile(good, []byte("crane\nplant\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	words, used, err := LoadFirst(filepath.Join(dir, "missing.txt"), good)
	if err != nil {
		t.Fatalf("load first: %v", err)
	}
	if used != good || len(words) != 2 {
		t.Fatalf("expected %s with 2 words, got %s with %d", good, used, len(words))
	}

	_, _, err = LoadFirst(filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || len(loadErr.Sources) != 2 {
		t.Fatalf("expected LoadError listing both sources, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLists(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"nouns.txt", "animals.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	names, err := Lists(dir)
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if diff := cmp.Diff([]string{"animals", "nouns"}, names); diff != "" {
		t.Fatalf("unexpected lists (-want +got):\n%s", diff)
	}
}

func TestShortest(t *testing.T) {
	if got := Shortest([]string{"crane", "ox", "élan"}); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := Shortest(nil); got != 0 {
		t.Fatalf("expected 0 for empty, got %d", got)
	}
}
