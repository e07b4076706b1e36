package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cleanText collapses whitespace runs to single spaces and trims.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeURL resolves href against base into an absolute URL.
// Malformed hrefs yield "" so callers can drop them without failing.
func normalizeURL(href, base string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}

// metaContent reads a structured metadata tag, preferring the
// property attribute over name.
func metaContent(doc *goquery.Document, key string) string {
	if v, ok := doc.Find(`meta[property="` + key + `"]`).First().Attr("content"); ok {
		if v = cleanText(v); v != "" {
			return v
		}
	}
	if v, ok := doc.Find(`meta[name="` + key + `"]`).First().Attr("content"); ok {
		if v = cleanText(v); v != "" {
			return v
		}
	}
	return ""
}
