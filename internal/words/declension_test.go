package words

import (
	"context"
	"errors"
	"slices"
	"testing"

	"WordTracker/internal/domain"
)

type fakeLookup struct {
	result domain.LookupResult
	err    error
	calls  int
}

func (f *fakeLookup) Lookup(ctx context.Context, word string) (domain.LookupResult, error) {
	f.calls++
	return f.result, f.err
}

func autoOptions() domain.FormOptions {
	return domain.FormOptions{UseDeclensions: true, StemmingEnabled: true}
}

func TestExpandMasculineName(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, nil)
	forms := engine.Expand(context.Background(), "Dragan")

	for _, want := range []string{"Dragan", "Dragana", "Draganu", "Draganom", "Draganev"} {
		if !slices.Contains(forms, want) {
			t.Errorf("missing form %q in %v", want, forms)
		}
	}
}

func TestExpandFeminineName(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, nil)
	forms := engine.Expand(context.Background(), "Rusija")

	for _, want := range []string{"Rusija", "Rusije", "Rusiji", "Rusiju", "Rusijom", "Rusijin"} {
		if !slices.Contains(forms, want) {
			t.Errorf("missing form %q in %v", want, forms)
		}
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, nil)
	first := engine.Expand(context.Background(), "Marković")
	for i := 0; i < 5; i++ {
		if again := engine.Expand(context.Background(), "Marković"); !slices.Equal(first, again) {
			t.Fatalf("expansion order changed: %v vs %v", first, again)
		}
	}
	if !slices.IsSorted(first) {
		t.Fatalf("expansion not sorted: %v", first)
	}
}

func TestFormsWithoutDeclensions(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, nil)
	forms := engine.Forms(context.Background(), "Dragan", domain.FormOptions{})
	if len(forms) != 1 || forms[0] != "Dragan" {
		t.Fatalf("expected the word alone, got %v", forms)
	}
}

func TestFormsManualPatternsWinOverStemming(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{result: domain.LookupResult{Found: true, Vocative: "Dragane"}}
	engine := NewEngine(lookup, nil)

	forms := engine.Forms(context.Background(), "Dragan", domain.FormOptions{
		UseDeclensions:     true,
		StemmingEnabled:    true,
		DeclensionPatterns: []string{"Draganče", ""},
	})

	want := []string{"Dragan", "Draganče"}
	if !slices.Equal(forms, want) {
		t.Fatalf("forms = %v, want %v", forms, want)
	}
	if lookup.calls != 0 {
		t.Fatalf("manual patterns must not trigger the lookup")
	}
}

func TestExpandAddsVocativeFromLookup(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{result: domain.LookupResult{Found: true, Vocative: "Dragane", VocativeAlt: "Драгане"}}
	engine := NewEngine(lookup, nil)

	forms := engine.Expand(context.Background(), "Dragan")
	if !slices.Contains(forms, "Dragane") || !slices.Contains(forms, "Драгане") {
		t.Fatalf("vocatives missing from %v", forms)
	}
}

func TestExpandToleratesLookupFailure(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{err: errors.New("connection refused")}
	engine := NewEngine(lookup, nil)

	forms := engine.Expand(context.Background(), "Dragan")
	if !slices.Contains(forms, "Dragana") {
		t.Fatalf("lookup failure must not suppress table forms, got %v", forms)
	}
}

func TestExpandNotFoundAddsNothing(t *testing.T) {
	t.Parallel()

	lookup := &fakeLookup{result: domain.LookupResult{Found: false, Vocative: "ignored"}}
	engine := NewEngine(lookup, nil)

	forms := engine.Expand(context.Background(), "Dragan")
	if slices.Contains(forms, "ignored") {
		t.Fatalf("unrecognized word must not contribute vocatives: %v", forms)
	}
}

func TestDestemRecoversNominative(t *testing.T) {
	t.Parallel()

	if got := destem("Draganom"); got != "Dragan" {
		t.Fatalf("destem(Draganom) = %q", got)
	}
	if got := destem("xyz"); got != "xyz" {
		t.Fatalf("unmatched word must stay itself, got %q", got)
	}
}

func TestFormsAutoIncludesOriginalCase(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, nil)
	forms := engine.Forms(context.Background(), "Dragan", autoOptions())
	if !slices.Contains(forms, "Dragan") {
		t.Fatalf("original word missing from %v", forms)
	}
}
