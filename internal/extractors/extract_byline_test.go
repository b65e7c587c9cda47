package extractors

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtractAuthor(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
		step     string
	}{
		{
			name:     "Meta tag with author",
			html:     `<html><head><meta name="author" content="Bob Johnson"></head><body></body></html>`,
			expected: "Bob Johnson",
			step:     "meta-author",
		},
		{
			name:     "Meta tag with article:author",
			html:     `<html><head><meta property="article:author" content="John Doe"></head><body></body></html>`,
			expected: "John Doe",
			step:     "article-author",
		},
		{
			name:     "Meta author wins over article:author",
			html:     `<html><head><meta property="article:author" content="John Doe"><meta name="author" content="Jane Smith"></head></html>`,
			expected: "Jane Smith",
			step:     "meta-author",
		},
		{
			name:     "A tag with rel=author",
			html:     `<html><body><a rel="author" href="/u/emily">Emily Davis</a></body></html>`,
			expected: "Emily Davis",
			step:     "rel-author",
		},
		{
			name:     "Span with author class",
			html:     `<html><body><span class="author">Frank Wilson</span></body></html>`,
			expected: "Frank Wilson",
			step:     "byline-class",
		},
		{
			name:     "Byline with By prefix",
			html:     `<html><body><div class="byline">By   Henry Martin</div></body></html>`,
			expected: "Henry Martin",
			step:     "byline-class",
		},
		{
			name:     "Author name class",
			html:     `<html><body><p class="author-name">Written by Ivy Chen</p></body></html>`,
			expected: "Ivy Chen",
			step:     "byline-class",
		},
		{
			name:     "Empty meta falls through",
			html:     `<html><head><meta name="author" content="  "></head><body><span class="byline">Kim Lee</span></body></html>`,
			expected: "Kim Lee",
			step:     "byline-class",
		},
		{
			name:     "No byline",
			html:     `<html><body><p>This is a paragraph.</p></body></html>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, step := AuthorChain.Explain(newDoc(t, tt.html), nil)
			if tt.expected == "" {
				if got != nil {
					t.Errorf("expected no author, got %q", *got)
				}
				return
			}
			if got == nil || *got != tt.expected {
				t.Errorf("ExtractAuthor() = %v, want %q", got, tt.expected)
			}
			if step != tt.step {
				t.Errorf("step = %q, want %q", step, tt.step)
			}
		})
	}
}

func TestCleanByline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"By John Doe", "John Doe"},
		{"by jane smith", "jane smith"},
		{"BY ALL CAPS", "ALL CAPS"},
		{"Author: Sam Roe", "Sam Roe"},
		{"Posted by Admin", "Admin"},
		{"Pat Kim | Staff", "Pat Kim"},
		{"  Lee Park  ", "Lee Park"},
		{"Bystander Weekly", "Bystander Weekly"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanByline(tt.input); got != tt.expected {
				t.Errorf("CleanByline(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
