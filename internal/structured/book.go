package structured

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/jsonld"
	"github.com/mrjoshuak/savekit/types"
)

// BookURLPattern recognizes a bookseller or catalog page by its URL.
type BookURLPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// BookURLPatterns are checked in order against the full page URL.
var BookURLPatterns = []BookURLPattern{
	{Name: "amazon", Pattern: regexp.MustCompile(`(?i)amazon\.[a-z.]+/.*dp/[A-Za-z0-9]{10}`)},
	{Name: "goodreads", Pattern: regexp.MustCompile(`(?i)goodreads\.com/book/show/`)},
	{Name: "google-books", Pattern: regexp.MustCompile(`(?i)books\.google\.[a-z.]+/`)},
	{Name: "barnes-noble", Pattern: regexp.MustCompile(`(?i)barnesandnoble\.com/w/`)},
	{Name: "bookshop", Pattern: regexp.MustCompile(`(?i)bookshop\.org/(p/)?(books|a/\d+)/`)},
}

// BookAuthorSelectors locate an author on bookseller pages, in order.
var BookAuthorSelectors = []string{
	"[data-author]",
	".author",
	".ContributorLink__name",
	".authorName",
	"#bylineInfo .author a",
	`[itemprop="author"]`,
	".contributors a",
}

var (
	amazonASINRegex = regexp.MustCompile(`/dp/([A-Z0-9]{10})(?:[/?#]|$)`)
	sameAsISBNRegex = regexp.MustCompile(`(?i)isbn[/:](\d{13}|\d{10})`)
)

// ExtractBookData detects whether the page describes a book and reads its
// ISBN, author, publisher, publication date and page count.
func ExtractBookData(doc *goquery.Document, pageURL *url.URL) types.BookData {
	return NewPage(doc, pageURL, nil).Book()
}

// Book runs the book strategies in order. The URL and Open Graph strategies
// only run while no earlier strategy has identified a book.
func (p *Page) Book() types.BookData {
	var data types.BookData

	p.jsonLDBook(&data)
	if !data.IsBook {
		p.urlBook(&data)
	}
	if !data.IsBook {
		p.openGraphBook(&data)
	}
	return data
}

func (p *Page) jsonLDBook(data *types.BookData) {
	node, ok := jsonld.FindFirst(p.JSONLD, "Book")
	if !ok {
		return
	}
	data.IsBook = true

	data.ISBN = jsonld.NormalizeToStringOrNull(node.Get("isbn").First(), ", ")
	if data.ISBN == nil {
		data.ISBN = jsonld.NormalizeToStringOrNull(node.Get("workExample").First().Get("isbn"), ", ")
	}
	if data.ISBN == nil {
		data.ISBN = isbnFromSameAs(node.Get("sameAs"))
	}

	data.Author = jsonld.NormalizeToStringOrNull(node.Get("author"), ", ")
	data.Publisher = jsonld.NormalizeToStringOrNull(node.Get("publisher"), ", ")
	if date, ok := node.Get("datePublished").Text(); ok {
		data.PublicationDate = &date
	}
	if pages, ok := node.Get("numberOfPages").Int(); ok {
		data.PageCount = &pages
	}
}

func isbnFromSameAs(v jsonld.Value) *string {
	links := []jsonld.Value{v}
	if v.Kind == jsonld.KindArray {
		links = v.Array
	}
	for _, link := range links {
		s, ok := link.Text()
		if !ok {
			continue
		}
		if m := sameAsISBNRegex.FindStringSubmatch(s); m != nil {
			return &m[1]
		}
	}
	return nil
}

func (p *Page) urlBook(data *types.BookData) {
	raw := p.urlString()
	if raw == "" {
		return
	}

	var matched string
	for _, pattern := range BookURLPatterns {
		if pattern.Pattern.MatchString(raw) {
			matched = pattern.Name
			break
		}
	}
	if matched == "" {
		return
	}
	data.IsBook = true

	// The ASIN is kept as-is even though it is often not an ISBN.
	if matched == "amazon" && data.ISBN == nil {
		if m := amazonASINRegex.FindStringSubmatch(p.URL.Path); m != nil {
			data.ISBN = &m[1]
		}
	}

	if data.Author == nil {
		data.Author = p.bookAuthorFromDOM()
	}
}

func (p *Page) bookAuthorFromDOM() *string {
	for _, selector := range BookAuthorSelectors {
		if selector == "[data-author]" {
			if v := extractors.FirstAttr(p.Doc, selector, "data-author"); v != "" {
				return &v
			}
		}
		if v := extractors.CleanByline(extractors.FirstText(p.Doc, selector)); v != "" {
			return &v
		}
	}
	return nil
}

func (p *Page) openGraphBook(data *types.BookData) {
	switch strings.ToLower(extractors.MetaProperty(p.Doc, "og:type")) {
	case "book", "books.book":
		data.IsBook = true
	default:
		return
	}

	if isbn := firstNonEmpty(extractors.MetaProperty(p.Doc, "books:isbn"), extractors.MetaName(p.Doc, "isbn")); isbn != "" {
		data.ISBN = &isbn
	}
	if author := firstNonEmpty(extractors.MetaProperty(p.Doc, "books:author"), extractors.MetaName(p.Doc, "author")); author != "" {
		data.Author = &author
	}
}
