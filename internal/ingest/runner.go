package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"WordTracker/internal/domain"
	"WordTracker/internal/ports"
)

// Report summarizes one ingestion run. Requested counts the stubs
// taken from the listing, Scraped the detail fetches attempted, and
// Saved the rows the upsert touched.
type Report struct {
	Requested int
	Scraped   int
	Saved     int
}

// Runner pulls the article listing, enriches the stubs concurrently
// and persists the usable results.
type Runner struct {
	source      ports.NewsSource
	articles    ports.ArticleRepository
	limit       int
	concurrency int
	logger      *slog.Logger
}

func NewRunner(source ports.NewsSource, articles ports.ArticleRepository, limit, concurrency int, logger *slog.Logger) *Runner {
	if limit <= 0 {
		limit = 20
	}
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Runner{
		source:      source,
		articles:    articles,
		limit:       limit,
		concurrency: concurrency,
		logger:      logger,
	}
}

// RunOnce ingests with the configured limit. The scheduler calls
// this on every tick.
func (r *Runner) RunOnce(ctx context.Context) (Report, error) {
	return r.Run(ctx, r.limit)
}

// Run ingests up to limit articles. Items that fail to fetch or come
// back without a title, URL or body are logged and dropped; the run
// fails only when the listing or the upsert does.
func (r *Runner) Run(ctx context.Context, limit int) (Report, error) {
	if limit <= 0 {
		limit = r.limit
	}

	stubs, err := r.source.ListArticles(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list articles: %w", err)
	}
	if len(stubs) > limit {
		stubs = stubs[:limit]
	}

	results := r.source.FetchMany(ctx, stubs, r.concurrency)

	articles := make([]domain.Article, 0, len(results))
	for i, res := range results {
		if res.Err != nil {
			r.logger.Warn("skipping article", "url", stubs[i].URL, "error", res.Err)
			continue
		}
		item := res.Value
		if item.Title == "" || item.URL == "" || item.Content == "" {
			r.logger.Debug("dropping incomplete article", "url", item.URL)
			continue
		}
		articles = append(articles, domain.Article{
			Title:   item.Title,
			URL:     item.URL,
			Content: item.Content,
		})
	}

	saved, err := r.articles.UpsertArticles(ctx, articles)
	if err != nil {
		return Report{}, fmt.Errorf("upsert articles: %w", err)
	}

	report := Report{Requested: len(stubs), Scraped: len(results), Saved: saved}
	r.logger.Info("ingest run finished",
		"requested", report.Requested,
		"scraped", report.Scraped,
		"saved", report.Saved,
	)
	return report, nil
}
