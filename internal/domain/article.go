package domain

import "time"

// ArticleStub is a minimal article reference extracted from a listing
// page, before detail enrichment.
type ArticleStub struct {
	Title     string
	URL       string
	Source    string
	Category  string
	Published string
}

// ArticleDetail carries the metadata and cleaned body text extracted
// from one article page. Fields the page does not expose stay empty;
// an empty Content means the page had no recognizable body, which is
// not an error.
type ArticleDetail struct {
	Title       string
	Published   string
	Author      string
	Description string
	Category    string
	MainImage   string
	Tags        []string
	Content     string
}

// EnrichedItem is a listing stub merged with its fetched detail.
type EnrichedItem struct {
	Title       string
	URL         string
	Source      string
	Category    string
	Published   string
	Author      string
	Description string
	MainImage   string
	Tags        []string
	Content     string
}

// Enrich merges detail fields over the stub; detail values win when
// non-empty, so a page missing a field keeps what the listing knew.
func Enrich(stub ArticleStub, detail ArticleDetail) EnrichedItem {
	item := EnrichedItem{
		Title:       stub.Title,
		URL:         stub.URL,
		Source:      stub.Source,
		Category:    stub.Category,
		Published:   stub.Published,
		Author:      detail.Author,
		Description: detail.Description,
		MainImage:   detail.MainImage,
		Tags:        detail.Tags,
		Content:     detail.Content,
	}
	if detail.Title != "" {
		item.Title = detail.Title
	}
	if detail.Published != "" {
		item.Published = detail.Published
	}
	if detail.Category != "" {
		item.Category = detail.Category
	}
	return item
}

// Article is the persisted form of a scraped article. URL is the
// unique key: re-ingesting an existing URL overwrites title and
// content in place and leaves CreatedAt untouched.
type Article struct {
	ID        int64
	Title     string
	URL       string
	Content   string
	CreatedAt time.Time
}

// Result carries one per-item outcome from a bounded map operation.
// Exactly one of Value and Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}
