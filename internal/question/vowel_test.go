package question

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLeastCommonVowelTieKeepsOrder(t *testing.T) {
	ref := []string{"APPLE", "GRAPE"}
	v, ok := LeastCommonVowel(ref, []rune{'a', 'e'})
	if !ok || v != 'a' {
		t.Fatalf("expected a, got %q ok=%v", v, ok)
	}
	v, _ = LeastCommonVowel(ref, []rune{'e', 'a'})
	if v != 'e' {
		t.Fatalf("expected e with reversed order, got %q", v)
	}
}

func TestLeastCommonVowel(t *testing.T) {
	ref := []string{"PIANO", "RADIO", "AUDIO", "ALOE"}
	v, ok := LeastCommonVowel(ref, []rune{'a', 'e', 'u'})
	if !ok || v != 'e' {
		t.Fatalf("expected e, got %q", v)
	}
	if _, ok := LeastCommonVowel(ref, nil); ok {
		t.Fatalf("expected no vowel for empty remaining set")
	}
}

func TestVowelOrder(t *testing.T) {
	if diff := cmp.Diff([]rune{'o', 'a', 'e'}, VowelOrder("Potatoes")); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]rune("aeiou"), VowelOrder("")); diff != "" {
		t.Fatalf("unexpected fallback (-want +got):\n%s", diff)
	}
}
