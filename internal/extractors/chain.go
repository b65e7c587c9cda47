package extractors

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
)

// Step is one source in a fallback chain.
type Step struct {
	Name    string
	Extract func(doc *goquery.Document, pageURL *url.URL) string
}

// Chain is an ordered list of sources. The first step that yields a
// non-empty value wins; later steps are not evaluated.
type Chain []Step

// Run evaluates the chain and returns the first non-empty normalized value,
// or nil when every step comes up empty.
func (c Chain) Run(doc *goquery.Document, pageURL *url.URL) *string {
	v, _ := c.Explain(doc, pageURL)
	return v
}

// Explain is Run that also reports which step produced the value.
func (c Chain) Explain(doc *goquery.Document, pageURL *url.URL) (*string, string) {
	if doc == nil {
		return nil, ""
	}
	for _, step := range c {
		if v := simplifiers.NormalizeText(step.Extract(doc, pageURL)); v != "" {
			return &v, step.Name
		}
	}
	return nil, ""
}
