package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"WordTracker/internal/domain"
)

// contentContainers lists candidate body containers, most specific
// first; the first present one wins.
const contentContainers = "article, .article, .single, .content, .post"

// extractDetail applies the per-field fallback chains to an article
// page. Each field falls through its candidates independently; a page
// exposing nothing usable yields empty fields, not an error.
func (s *Source) extractDetail(doc *goquery.Document) domain.ArticleDetail {
	return domain.ArticleDetail{
		Title:       cleanText(doc.Find("h1").First().Text()),
		Published:   extractPublished(doc),
		Author:      cleanText(doc.Find(`[rel~="author"], .author, .article-author`).First().Text()),
		Description: extractDescription(doc),
		Category:    s.extractCategory(doc),
		MainImage:   metaContent(doc, "og:image"),
		Tags:        extractTags(doc),
		Content:     extractContent(doc),
	}
}

func extractPublished(doc *goquery.Document) string {
	timeEl := doc.Find("time").First()
	if v, ok := timeEl.Attr("datetime"); ok {
		if v = cleanText(v); v != "" {
			return v
		}
	}
	if v := cleanText(timeEl.Text()); v != "" {
		return v
	}
	return metaContent(doc, "article:published_time")
}

func extractDescription(doc *goquery.Document) string {
	if v := metaContent(doc, "og:description"); v != "" {
		return v
	}
	return cleanText(doc.Find("p").First().Text())
}

func (s *Source) extractCategory(doc *goquery.Document) string {
	if v := metaContent(doc, "article:section"); v != "" {
		return v
	}
	if v := cleanText(doc.Find(".breadcrumbs a").Eq(1).Text()); v != "" {
		return v
	}
	return s.category
}

func extractTags(doc *goquery.Document) []string {
	var tags []string
	seen := map[string]struct{}{}
	doc.Find(`a[rel~="tag"], .tags a`).Each(func(_ int, a *goquery.Selection) {
		tag := cleanText(a.Text())
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	})
	return tags
}

// extractContent joins the text of every paragraph inside the primary
// content container. A missing container or a container without
// paragraphs yields "".
func extractContent(doc *goquery.Document) string {
	root := doc.Find(contentContainers).First()
	if root.Length() == 0 {
		return ""
	}

	var paragraphs []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if txt := cleanText(p.Text()); txt != "" {
			paragraphs = append(paragraphs, txt)
		}
	})

	return strings.Join(paragraphs, "\n")
}
