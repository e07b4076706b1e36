package words

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Match is a byte-offset span of a matched form within the scanned
// text.
type Match struct {
	Start int
	End   int
}

// Matcher recognises any of a fixed set of word forms, case
// insensitively, on whole-token boundaries only. The regexp engine
// has no lookaround, so boundaries are checked against the runes
// adjacent to each candidate match.
type Matcher struct {
	re *regexp.Regexp
}

// CompileMatcher builds a Matcher over the given forms. Forms are
// matched literally. Longer forms are tried before their prefixes;
// alternation is leftmost-first, and a short form matching where a
// longer one also starts would fail the boundary check and hide it.
func CompileMatcher(forms []string) (*Matcher, error) {
	cleaned := make([]string, 0, len(forms))
	for _, f := range forms {
		if f != "" {
			cleaned = append(cleaned, f)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no forms to match")
	}

	sort.Slice(cleaned, func(i, j int) bool {
		if len(cleaned[i]) != len(cleaned[j]) {
			return len(cleaned[i]) > len(cleaned[j])
		}
		return cleaned[i] < cleaned[j]
	})

	quoted := make([]string, len(cleaned))
	for i, f := range cleaned {
		quoted[i] = regexp.QuoteMeta(f)
	}

	re, err := regexp.Compile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile matcher: %w", err)
	}
	return &Matcher{re: re}, nil
}

// FindAll returns every whole-token occurrence of any form in text,
// in order of appearance. A candidate rejected by the boundary check
// is skipped by a single rune so that an overlapping later form is
// still found.
func (m *Matcher) FindAll(text string) []Match {
	var matches []Match
	offset := 0
	for offset <= len(text) {
		loc := m.re.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if boundarySafe(text, start, end) {
			matches = append(matches, Match{Start: start, End: end})
			offset = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			size = 1
		}
		offset = start + size
	}
	return matches
}

// boundarySafe reports whether text[start:end] is not flanked by a
// letter, digit or underscore on either side.
func boundarySafe(text string, start, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(before) {
			return false
		}
	}
	if end < len(text) {
		after, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(after) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
