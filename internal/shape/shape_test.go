package shape

import "testing"

func TestClassifyTwoCategory(t *testing.T) {
	if got := Classify('A'); got != Straight {
		t.Fatalf("expected A to be straight, got %s", got)
	}
	if got := Classify('O'); got != Curved {
		t.Fatalf("expected O to be curved, got %s", got)
	}
	if got := Classify('o'); got != Curved {
		t.Fatalf("expected lowercase o to be curved, got %s", got)
	}
	if got := Classify('é'); got != Straight {
		t.Fatalf("expected é to be straight, got %s", got)
	}
	for _, r := range []rune{'7', '-', 'ß', ' '} {
		if got := Classify(r); got != Unknown {
			t.Fatalf("expected %q to be unknown, got %s", r, got)
		}
	}
}

func TestMapsAreTotalAndDisjoint(t *testing.T) {
	for _, m := range []*Map{TwoCategory, ThreeCategory} {
		seen := map[rune]Category{}
		for _, c := range m.Categories() {
			for _, r := range m.Letters(c) {
				if prev, ok := seen[r]; ok {
					t.Fatalf("%s: %q in both %s and %s", m.Name(), r, prev, c)
				}
				seen[r] = c
				if got := m.Classify(r); got != c {
					t.Fatalf("%s: expected %q to classify as %s, got %s", m.Name(), r, c, got)
				}
			}
		}
		if len(seen) != m.Len() {
			t.Fatalf("%s: expected %d letters, saw %d", m.Name(), m.Len(), len(seen))
		}
		for r := 'A'; r <= 'Z'; r++ {
			if m.Classify(r) == Unknown {
				t.Fatalf("%s: %q is unmapped", m.Name(), r)
			}
		}
	}
}

func TestThreeCategoryMixed(t *testing.T) {
	if got := ThreeCategory.Classify('B'); got != Mixed {
		t.Fatalf("expected B to be mixed, got %s", got)
	}
	if TwoCategory.Has(Mixed) {
		t.Fatalf("two-category map must not have mixed")
	}
}

func TestByNameAndParse(t *testing.T) {
	m, err := ByName("three")
	if err != nil || m != ThreeCategory {
		t.Fatalf("expected three-category map, got %v %v", m, err)
	}
	if _, err := ByName("four"); err == nil {
		t.Fatalf("expected error for unknown map")
	}
	c, err := ParseCategory(" Curved ")
	if err != nil || c != Curved {
		t.Fatalf("expected curved, got %q %v", c, err)
	}
	if _, err := ParseCategory("round"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
