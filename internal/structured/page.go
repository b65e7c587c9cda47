// Package structured detects products and books from schema.org JSON-LD,
// Open Graph tags and URL heuristics.
package structured

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/jsonld"
	"github.com/sirupsen/logrus"
)

// Page is a document prepared for classification. JSON-LD is parsed once
// and shared by the product and book classifiers.
type Page struct {
	Doc    *goquery.Document
	URL    *url.URL
	JSONLD []jsonld.Value
}

// NewPage collects the JSON-LD payloads of doc. Malformed scripts are logged
// at debug level on log, which may be nil.
func NewPage(doc *goquery.Document, pageURL *url.URL, log logrus.FieldLogger) *Page {
	p := &Page{Doc: doc, URL: extractors.PageURL(doc, pageURL)}
	if doc != nil && len(doc.Nodes) > 0 {
		p.JSONLD = jsonld.Collect(doc.Nodes[0], log)
	}
	return p
}

// Host returns the page hostname without "www.".
func (p *Page) Host() string {
	return extractors.Hostname(p.Doc, p.URL)
}

func (p *Page) urlString() string {
	if p.URL == nil {
		return ""
	}
	return p.URL.String()
}
