package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"WordTracker/internal/domain"
	"WordTracker/internal/ports"
)

const (
	// minPrimaryStubs is the threshold below which the listing markup
	// is assumed to have drifted and the heading fallback kicks in.
	minPrimaryStubs = 10

	// maxListStubs caps one listing scan.
	maxListStubs = 50
)

// Source scrapes one configured news site: its listing page plus the
// article pages the listing links to.
type Source struct {
	fetcher  *Fetcher
	listURL  string
	name     string
	category string
	logger   *slog.Logger
}

var _ ports.NewsSource = (*Source)(nil)

// NewSource wires a fetcher to a site's listing endpoint.
func NewSource(fetcher *Fetcher, listURL, name, category string, logger *slog.Logger) *Source {
	return &Source{
		fetcher:  fetcher,
		listURL:  listURL,
		name:     name,
		category: category,
		logger:   logger,
	}
}

// ListArticles fetches the listing page and extracts article stubs.
// The primary strategy reads structural article containers; when it
// yields too few stubs the heading-link fallback is appended. The
// result is deduplicated by canonical URL, first seen wins.
func (s *Source) ListArticles(ctx context.Context) ([]domain.ArticleStub, error) {
	body, err := s.fetcher.Fetch(ctx, s.listURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	stubs := s.extractContainers(doc)
	if len(stubs) < minPrimaryStubs {
		s.debug("primary listing strategy came up short", "stubs", len(stubs))
		stubs = append(stubs, s.extractHeadingLinks(doc)...)
	}

	return dedupeByURL(stubs, maxListStubs), nil
}

// extractContainers reads article containers: the first heading link
// inside each becomes title and href, the first time element a
// publication hint.
func (s *Source) extractContainers(doc *goquery.Document) []domain.ArticleStub {
	var stubs []domain.ArticleStub
	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		link := sel.Find("h2 a, h3 a").First()
		href, _ := link.Attr("href")
		u := normalizeURL(href, s.listURL)
		title := cleanText(link.Text())
		if u == "" || title == "" {
			return
		}

		timeEl := sel.Find("time").First()
		published, _ := timeEl.Attr("datetime")
		if cleanText(published) == "" {
			published = timeEl.Text()
		}

		stubs = append(stubs, domain.ArticleStub{
			Title:     title,
			URL:       u,
			Source:    s.name,
			Category:  s.category,
			Published: cleanText(published),
		})
	})
	return stubs
}

// extractHeadingLinks is the drift fallback: every heading-level link
// on the page, with no publication hint.
func (s *Source) extractHeadingLinks(doc *goquery.Document) []domain.ArticleStub {
	var stubs []domain.ArticleStub
	doc.Find("h2 a, h3 a").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		u := normalizeURL(href, s.listURL)
		title := cleanText(link.Text())
		if u == "" || title == "" {
			return
		}
		stubs = append(stubs, domain.ArticleStub{
			Title:    title,
			URL:      u,
			Source:   s.name,
			Category: s.category,
		})
	})
	return stubs
}

// FetchDetails fetches one article page and extracts its metadata and
// cleaned body text.
func (s *Source) FetchDetails(ctx context.Context, pageURL string) (domain.ArticleDetail, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return domain.ArticleDetail{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return domain.ArticleDetail{}, fmt.Errorf("parse article: %w", err)
	}

	return s.extractDetail(doc), nil
}

// FetchMany enriches stubs through FetchDetails with at most
// concurrency fetches in flight, preserving stub order. Per-item
// failures come back as that index's error.
func (s *Source) FetchMany(ctx context.Context, stubs []domain.ArticleStub, concurrency int) []domain.Result[domain.EnrichedItem] {
	return MapBounded(ctx, stubs, concurrency, func(ctx context.Context, stub domain.ArticleStub) (domain.EnrichedItem, error) {
		detail, err := s.FetchDetails(ctx, stub.URL)
		if err != nil {
			return domain.EnrichedItem{}, err
		}
		return domain.Enrich(stub, detail), nil
	})
}

func dedupeByURL(stubs []domain.ArticleStub, limit int) []domain.ArticleStub {
	seen := make(map[string]struct{}, len(stubs))
	out := make([]domain.ArticleStub, 0, len(stubs))
	for _, stub := range stubs {
		if _, ok := seen[stub.URL]; ok {
			continue
		}
		seen[stub.URL] = struct{}{}
		out = append(out, stub)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
