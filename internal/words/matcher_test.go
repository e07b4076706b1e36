package words

import (
	"testing"
)

func mustMatcher(t *testing.T, forms ...string) *Matcher {
	t.Helper()
	m, err := CompileMatcher(forms)
	if err != nil {
		t.Fatalf("CompileMatcher(%v): %v", forms, err)
	}
	return m
}

func TestFindAllWholeTokensOnly(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "kat")

	cases := []struct {
		text string
		want int
	}{
		{"kat", 1},
		{"Kat je bio tu.", 1},
		{"kat.", 1},
		{"(kat)", 1},
		{"katastrofa", 0},
		{"lokator", 0},
		{"kat_a", 0},
		{"kat1", 0},
		{"Kat je bio tu. Mačka i kat su razlika.", 2},
	}
	for _, tc := range cases {
		if got := len(m.FindAll(tc.text)); got != tc.want {
			t.Errorf("FindAll(%q) = %d matches, want %d", tc.text, got, tc.want)
		}
	}
}

func TestFindAllCaseInsensitive(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "dragan")
	if got := len(m.FindAll("DRAGAN, Dragan i dragan")); got != 3 {
		t.Fatalf("expected 3 matches, got %d", got)
	}
}

func TestFindAllUnicodeBoundary(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "kat")
	// A letter outside ASCII on either side still glues the token.
	if got := len(m.FindAll("ćkat katć")); got != 0 {
		t.Fatalf("non-ASCII letters must block the boundary, got %d matches", got)
	}
}

func TestFindAllPrefersLongerForm(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "kat", "katastrofa")
	matches := m.FindAll("katastrofa")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %v", matches)
	}
	if matches[0].Start != 0 || matches[0].End != len("katastrofa") {
		t.Fatalf("expected the whole token, got %+v", matches[0])
	}
}

func TestFindAllAdvancesPastRejectedCandidate(t *testing.T) {
	t.Parallel()

	// The first candidate "ana" inside "banana" fails the boundary
	// check; the standalone one after it must still be found.
	m := mustMatcher(t, "ana")
	matches := m.FindAll("banana ana")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %v", matches)
	}
	if matches[0].Start != len("banana ") {
		t.Fatalf("match at %d, want %d", matches[0].Start, len("banana "))
	}
}

func TestCompileMatcherEscapesMetacharacters(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "a.b|c")
	if got := len(m.FindAll("a.b|c")); got != 1 {
		t.Fatalf("literal form not matched, got %d", got)
	}
	if got := len(m.FindAll("axb c")); got != 0 {
		t.Fatalf("metacharacters leaked into the pattern")
	}
}

func TestCompileMatcherRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := CompileMatcher(nil); err == nil {
		t.Fatal("expected an error for no forms")
	}
	if _, err := CompileMatcher([]string{"", ""}); err == nil {
		t.Fatal("expected an error for blank forms")
	}
}
