package extractors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AuthorChain lists the author sources in order of confidence.
var AuthorChain = Chain{
	{Name: "meta-author", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return CleanByline(MetaName(doc, "author"))
	}},
	{Name: "article-author", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return CleanByline(MetaProperty(doc, "article:author"))
	}},
	{Name: "rel-author", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return CleanByline(FirstText(doc, `[rel="author"]`))
	}},
	{Name: "byline-class", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return CleanByline(FirstText(doc, ".author, .byline, .author-name"))
	}},
}

var bylinePrefixes = []string{"written by ", "posted by ", "published by ", "reported by ", "author: ", "by "}

var bylineSuffixes = []string{" | Author", " | Writer", " | Reporter", " | Staff"}

// CleanByline strips leading "By "-style prefixes and trailing role suffixes.
func CleanByline(byline string) string {
	byline = strings.TrimSpace(byline)

	lower := strings.ToLower(byline)
	for _, prefix := range bylinePrefixes {
		if strings.HasPrefix(lower, prefix) {
			byline = strings.TrimSpace(byline[len(prefix):])
			break
		}
	}

	for _, suffix := range bylineSuffixes {
		if strings.HasSuffix(byline, suffix) {
			byline = strings.TrimSpace(strings.TrimSuffix(byline, suffix))
		}
	}

	return byline
}

// ExtractAuthor returns the page author, or nil.
func ExtractAuthor(doc *goquery.Document) *string {
	return AuthorChain.Run(doc, nil)
}
