package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"WordTracker/internal/domain"
	"WordTracker/internal/ports"
)

// ErrInvalidPattern rejects manually supplied declension patterns
// that cannot be matched.
var ErrInvalidPattern = errors.New("invalid declension pattern")

// Service answers the analytical questions about tracked words:
// corpus-wide counts and per-article appearances.
type Service struct {
	words    ports.WordRepository
	articles ports.ArticleRepository
	engine   *Engine
	logger   *slog.Logger
}

func NewService(words ports.WordRepository, articles ports.ArticleRepository, engine *Engine, logger *slog.Logger) *Service {
	return &Service{words: words, articles: articles, engine: engine, logger: logger}
}

// AppearanceReport is the full answer for one tracked word.
type AppearanceReport struct {
	Word          domain.TrackedWord
	Appearances   []domain.Appearance
	TotalArticles int
}

// Stats counts occurrences of every tracked word across the most
// recent article bodies, highest count first. The limit bounds how
// many article bodies are scanned.
func (s *Service) Stats(ctx context.Context, limit int) ([]domain.WordStat, error) {
	contents, err := s.articles.ListArticleContents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list article contents: %w", err)
	}

	tracked, err := s.words.ListAllWords(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	stats := make([]domain.WordStat, 0, len(tracked))
	for _, w := range tracked {
		matcher, err := s.matcherFor(ctx, w)
		if err != nil {
			s.logger.Warn("skipping unmatchable word", "word", w.Text, "error", err)
			continue
		}

		count := 0
		for _, body := range contents {
			count += len(matcher.FindAll(body))
		}
		stats = append(stats, domain.WordStat{WordID: w.ID, Word: w.Text, Count: count})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats, nil
}

// Appearances locates a tracked word in the stored articles. The
// repository's domain.ErrNotFound passes through untouched when the
// word does not exist.
func (s *Service) Appearances(ctx context.Context, wordID int64) (AppearanceReport, error) {
	word, err := s.words.GetWordByID(ctx, wordID)
	if err != nil {
		return AppearanceReport{}, err
	}

	articles, err := s.articles.ListArticles(ctx, 0)
	if err != nil {
		return AppearanceReport{}, fmt.Errorf("list articles: %w", err)
	}

	matcher, err := s.matcherFor(ctx, word)
	if err != nil {
		return AppearanceReport{}, err
	}

	return AppearanceReport{
		Word:          word,
		Appearances:   FindAppearances(matcher, articles),
		TotalArticles: len(articles),
	}, nil
}

// ValidatePatterns rejects pattern lists a matcher could not use.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: blank entry", ErrInvalidPattern)
		}
	}
	return nil
}

func (s *Service) matcherFor(ctx context.Context, w domain.TrackedWord) (*Matcher, error) {
	forms := s.engine.Forms(ctx, w.Text, w.Options())
	matcher, err := CompileMatcher(forms)
	if err != nil {
		return nil, fmt.Errorf("word %q: %w", w.Text, err)
	}
	return matcher, nil
}
