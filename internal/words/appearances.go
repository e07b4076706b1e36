package words

import (
	"sort"
	"unicode/utf8"

	"WordTracker/internal/domain"
)

const (
	// contextRadius is how many runes of surrounding text to keep on
	// each side of a match.
	contextRadius = 100
	// maxContexts caps the context windows per article; the count
	// still reflects every match.
	maxContexts = 5
)

// FindAppearances scans each article body with the matcher and
// reports the articles that contain at least one hit, most hits
// first. Articles with equal counts keep their input order.
func FindAppearances(matcher *Matcher, articles []domain.Article) []domain.Appearance {
	var out []domain.Appearance
	for _, article := range articles {
		matches := matcher.FindAll(article.Content)
		if len(matches) == 0 {
			continue
		}

		contexts := make([]domain.Context, 0, min(len(matches), maxContexts))
		for _, m := range matches[:min(len(matches), maxContexts)] {
			contexts = append(contexts, contextWindow(article.Content, m))
		}

		out = append(out, domain.Appearance{
			Article: domain.ArticleRef{
				ID:        article.ID,
				Title:     article.Title,
				URL:       article.URL,
				CreatedAt: article.CreatedAt,
			},
			Count:    len(matches),
			Contexts: contexts,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// contextWindow cuts a window of up to contextRadius runes on each
// side of the match, clamped to the body, and records the match
// position as a rune offset.
func contextWindow(content string, m Match) domain.Context {
	from := m.Start
	for r := 0; r < contextRadius && from > 0; r++ {
		_, size := utf8.DecodeLastRuneInString(content[:from])
		from -= size
	}

	to := m.End
	for r := 0; r < contextRadius && to < len(content); r++ {
		_, size := utf8.DecodeRuneInString(content[to:])
		to += size
	}

	return domain.Context{
		Text:     content[from:to],
		Position: utf8.RuneCountInString(content[:m.Start]),
	}
}
