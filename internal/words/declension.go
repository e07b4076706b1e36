package words

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"WordTracker/internal/domain"
	"WordTracker/internal/ports"
)

// caseRule maps a nominative suffix to its oblique endings in the
// order genitive, dative, accusative, instrumental, locative. The
// first matching rule wins, so suffixes that shadow a shorter one
// must come before it.
type caseRule struct {
	base    string
	oblique []string
}

var caseRules = []caseRule{
	{"an", []string{"ana", "anu", "ana", "anom", "anu"}},
	{"in", []string{"ina", "inu", "ina", "inom", "inu"}},
	{"ski", []string{"skog", "skom", "skog", "skim", "skom"}},
	{"ev", []string{"eva", "evu", "eva", "evim", "evu"}},
	{"ov", []string{"ova", "ovu", "ova", "ovim", "ovu"}},
	{"ić", []string{"ića", "iću", "ića", "ićem", "iću"}},
	{"ak", []string{"ka", "ku", "ka", "kom", "ku"}},
	{"a", []string{"e", "i", "u", "om", "i"}},
	{"ica", []string{"ice", "ici", "icu", "icom", "ici"}},
	{"ka", []string{"ke", "ki", "ku", "kom", "ki"}},
	{"ija", []string{"ije", "iji", "iju", "ijom", "iji"}},
	{"nja", []string{"nje", "nji", "nju", "njom", "nji"}},
}

// Engine expands a tracked word into the set of surface forms a
// matcher should recognise. The rule table is heuristic; an optional
// external lookup supplies vocative forms the table cannot derive.
type Engine struct {
	lookup ports.DeclensionLookup
	logger *slog.Logger
}

func NewEngine(lookup ports.DeclensionLookup, logger *slog.Logger) *Engine {
	return &Engine{lookup: lookup, logger: logger}
}

// Forms returns every form the word should match under the given
// options. The word itself is always included; the result is sorted
// and free of duplicates.
func (e *Engine) Forms(ctx context.Context, word string, opts domain.FormOptions) []string {
	if !opts.UseDeclensions {
		return []string{word}
	}
	if len(opts.DeclensionPatterns) > 0 {
		set := map[string]struct{}{word: {}}
		for _, p := range opts.DeclensionPatterns {
			if p != "" {
				set[p] = struct{}{}
			}
		}
		return sortedForms(set)
	}
	if !opts.StemmingEnabled {
		return []string{word}
	}
	return e.Expand(ctx, word)
}

// Expand generates the declension set for a word: it first tries to
// recognise the word as an already declined form and recover its
// nominative, then declines that base through the rule table, adds
// possessive forms, and finally consults the vocative lookup.
func (e *Engine) Expand(ctx context.Context, word string) []string {
	set := map[string]struct{}{word: {}}

	base := destem(word)
	set[base] = struct{}{}

	decline(base, set)
	addPossessives(word, set)
	e.addVocative(ctx, word, set)

	return sortedForms(set)
}

// destem maps a declined form back to a candidate nominative. The
// first ending that matches wins; a word matching no ending is its
// own base.
func destem(word string) string {
	lower := strings.ToLower(word)
	for _, rule := range caseRules {
		for _, end := range rule.oblique {
			if strings.HasSuffix(lower, end) {
				return word[:len(word)-len(end)] + rule.base
			}
		}
	}
	return word
}

// decline adds the base form and all oblique cases of the first rule
// whose nominative suffix matches.
func decline(base string, set map[string]struct{}) {
	lower := strings.ToLower(base)
	for _, rule := range caseRules {
		if !strings.HasSuffix(lower, rule.base) {
			continue
		}
		stem := base[:len(base)-len(rule.base)]
		set[stem+rule.base] = struct{}{}
		for _, end := range rule.oblique {
			set[stem+end] = struct{}{}
		}
		return
	}
}

// addPossessives derives possessive adjectives from the original
// word. Consonant-final words take -ev forms; words in -a take -in
// forms on the stem.
func addPossessives(word string, set map[string]struct{}) {
	lower := strings.ToLower(word)
	if lower == "" {
		return
	}
	switch {
	case !strings.ContainsAny(lower[len(lower)-1:], "aeiou"):
		for _, end := range []string{"ev", "evom", "eva", "evoj"} {
			set[word+end] = struct{}{}
		}
	case strings.HasSuffix(lower, "a"):
		stem := word[:len(word)-1]
		for _, end := range []string{"in", "ina", "inoj"} {
			set[stem+end] = struct{}{}
		}
	}
}

func (e *Engine) addVocative(ctx context.Context, word string, set map[string]struct{}) {
	if e.lookup == nil {
		return
	}
	res, err := e.lookup.Lookup(ctx, word)
	if err != nil {
		if e.logger != nil {
			e.logger.Debug("vocative lookup failed", "word", word, "error", err)
		}
		return
	}
	if !res.Found {
		return
	}
	if res.Vocative != "" {
		set[res.Vocative] = struct{}{}
	}
	if res.VocativeAlt != "" {
		set[res.VocativeAlt] = struct{}{}
	}
}

func sortedForms(set map[string]struct{}) []string {
	forms := make([]string, 0, len(set))
	for f := range set {
		forms = append(forms, f)
	}
	sort.Strings(forms)
	return forms
}
