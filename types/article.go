// Package types provides the core data structures for the SaveKit library.
package types

import "time"

// DefaultCurrency is used when a product page names a price but no currency.
const DefaultCurrency = "USD"

// ProductData holds the product signals detected on a page.
// Price is a numeric string with the currency symbol removed.
type ProductData struct {
	IsProduct    bool    `json:"isProduct" yaml:"isProduct"`
	Price        *string `json:"price" yaml:"price"`
	Currency     string  `json:"currency" yaml:"currency"`
	Availability *string `json:"availability" yaml:"availability"`
	Description  *string `json:"description" yaml:"description"`
}

// BookData holds the book signals detected on a page.
type BookData struct {
	IsBook          bool    `json:"isBook" yaml:"isBook"`
	ISBN            *string `json:"isbn" yaml:"isbn"`
	Author          *string `json:"author" yaml:"author"`
	Publisher       *string `json:"publisher" yaml:"publisher"`
	PublicationDate *string `json:"publicationDate" yaml:"publicationDate"`
	PageCount       *int    `json:"pageCount" yaml:"pageCount"`
}

// ExtractedArticle is the result of a single extraction call.
// It has no identity beyond the call that produced it: Content is normalized
// structured text (not HTML) and Excerpt never exceeds 300 characters.
type ExtractedArticle struct {
	Title         string      `json:"title" yaml:"title"`
	Content       string      `json:"content" yaml:"content"`
	Excerpt       string      `json:"excerpt" yaml:"excerpt"`
	SiteName      *string     `json:"siteName" yaml:"siteName"`
	Author        *string     `json:"author" yaml:"author"`
	PublishedTime *string     `json:"publishedTime" yaml:"publishedTime"`
	ImageURL      *string     `json:"imageUrl" yaml:"imageUrl"`
	Product       ProductData `json:"product" yaml:"product"`
	Book          BookData    `json:"book" yaml:"book"`

	// Tier names the fallback level that produced Content.
	Tier string `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// ExtractionOptions configures the extraction pipeline.
type ExtractionOptions struct {
	Engine            string        // Readability engine: "native" or "shiori"
	CharThreshold     int           // Minimum characters the readability engine aims for
	ClassesToPreserve []string      // CSS classes kept during readability cleanup
	MinReadableChars  int           // Readability output must exceed this to be accepted
	MinSelectorChars  int           // Selector fallback output must exceed this to be accepted
	MinParagraphChars int           // Paragraph aggregation keeps paragraphs longer than this
	MaxBodyChars      int           // Body text truncation limit for the last resort tier
	Timeout           time.Duration // Timeout for a single extraction
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		Engine:            "native",
		CharThreshold:     100,
		ClassesToPreserve: []string{"article", "content", "post"},
		MinReadableChars:  200,
		MinSelectorChars:  500,
		MinParagraphChars: 50,
		MaxBodyChars:      50000,
		Timeout:           time.Second * 30,
	}
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value of p, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
