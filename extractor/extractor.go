// Package extractor turns a parsed page into an ExtractedArticle. Content is
// produced by the first of four tiers that yields something usable; product
// and book data are always computed over the whole document.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/readability"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
	"github.com/mrjoshuak/savekit/internal/structured"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
)

// MaxExcerptChars bounds ExtractedArticle.Excerpt.
const MaxExcerptChars = 300

// Extractor defines the interface for article extraction.
// The error return is reserved for cancellation, timeouts and unreadable
// input; a page with no usable content still yields an article.
type Extractor interface {
	// Extract extracts an article from a parsed document. doc is not modified.
	Extract(ctx context.Context, doc *goquery.Document, pageURL *url.URL) (*types.ExtractedArticle, error)

	// ExtractFromHTML parses html and extracts an article from it
	ExtractFromHTML(ctx context.Context, html string, pageURL string) (*types.ExtractedArticle, error)

	// ExtractFromReader reads and parses r and extracts an article from it
	ExtractFromReader(ctx context.Context, r io.Reader, pageURL string) (*types.ExtractedArticle, error)
}

// Option represents a function that modifies the extractor settings.
type Option func(*settings)

type settings struct {
	options types.ExtractionOptions
	log     logrus.FieldLogger
}

// WithEngine selects the readability engine used by the first tier.
func WithEngine(name string) Option {
	return func(s *settings) {
		s.options.Engine = name
	}
}

// WithCharThreshold sets the minimum article length the readability engine
// aims for before relaxing its cleanup.
func WithCharThreshold(n int) Option {
	return func(s *settings) {
		s.options.CharThreshold = n
	}
}

// WithClassesToPreserve sets the CSS classes kept during readability cleanup.
func WithClassesToPreserve(classes ...string) Option {
	return func(s *settings) {
		s.options.ClassesToPreserve = classes
	}
}

// WithMaxBodyChars sets the truncation limit of the last resort tier.
func WithMaxBodyChars(n int) Option {
	return func(s *settings) {
		s.options.MaxBodyChars = n
	}
}

// WithTimeout sets the timeout duration for extraction.
// A zero or negative duration disables the timeout; ctx still applies.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.options.Timeout = timeout
	}
}

// WithOptions replaces all extraction options at once.
func WithOptions(opts types.ExtractionOptions) Option {
	return func(s *settings) {
		s.options = opts
	}
}

// WithLogger sets the logger. Tier fall-through is logged at debug level and
// recovered engine failures at warn level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// articleExtractor is the concrete implementation of the Extractor interface.
type articleExtractor struct {
	options types.ExtractionOptions
	log     logrus.FieldLogger
}

// New creates a new Extractor with the provided options.
func New(opts ...Option) Extractor {
	s := settings{
		options: types.DefaultOptions(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &articleExtractor{
		options: s.options,
		log:     s.log.WithField("component", "extractor"),
	}
}

// ExtractFromHTML parses html and extracts an article from it.
func (e *articleExtractor) ExtractFromHTML(ctx context.Context, html string, pageURL string) (*types.ExtractedArticle, error) {
	return e.ExtractFromReader(ctx, strings.NewReader(html), pageURL)
}

// ExtractFromReader reads r, parses it as HTML and extracts an article from it.
func (e *articleExtractor) ExtractFromReader(ctx context.Context, r io.Reader, pageURL string) (*types.ExtractedArticle, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, readability.WrapParseError(err, "ExtractFromReader", "failed to parse HTML")
	}

	var base *url.URL
	if pageURL != "" {
		base, err = url.Parse(pageURL)
		if err != nil {
			e.log.WithError(err).WithField("url", pageURL).Debug("ignoring malformed page URL")
			base = nil
		}
	}
	return e.Extract(ctx, doc, base)
}

// Extract runs the tiered pipeline over doc. The readability tier works on a
// clone, so doc is left untouched.
func (e *articleExtractor) Extract(ctx context.Context, doc *goquery.Document, pageURL *url.URL) (*types.ExtractedArticle, error) {
	if doc == nil {
		return nil, readability.ErrNoDocument
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.options.Timeout)
		defer cancel()
	}

	// Buffered so the worker can finish after a timeout without leaking.
	resultCh := make(chan *types.ExtractedArticle, 1)

	go func() {
		resultCh <- e.extract(doc, pageURL)
	}()

	select {
	case article := <-resultCh:
		return article, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, readability.WrapTimeoutError(
				fmt.Errorf("%w: %v", readability.ErrTimeout, e.options.Timeout),
				"Extract", "extraction timed out")
		}
		return nil, ctx.Err()
	}
}

func (e *articleExtractor) extract(doc *goquery.Document, pageURL *url.URL) *types.ExtractedArticle {
	pageURL = extractors.PageURL(doc, pageURL)

	page := structured.NewPage(doc, pageURL, e.log)
	product := page.Product()
	book := page.Book()

	var article *types.ExtractedArticle
	for _, t := range e.tiers() {
		article = t.run(doc, pageURL, book)
		if article != nil {
			article.Tier = t.name
			break
		}
		e.log.WithField("tier", t.name).Debug("tier produced no usable content, falling through")
	}

	// The body tier always returns an article.
	e.fillMetadata(article, doc, pageURL, book)
	article.Product = product
	article.Book = book

	e.log.WithFields(logrus.Fields{
		"tier":       article.Tier,
		"chars":      simplifiers.RuneLen(article.Content),
		"is_product": product.IsProduct,
		"is_book":    book.IsBook,
	}).Debug("extraction complete")
	return article
}

// fillMetadata sets the fields a tier left empty from the metadata chains.
func (e *articleExtractor) fillMetadata(article *types.ExtractedArticle, doc *goquery.Document, pageURL *url.URL, book types.BookData) {
	if article.Title == "" {
		article.Title = types.Deref(extractors.ExtractTitle(doc))
	}
	if article.Excerpt == "" {
		article.Excerpt = excerpt(types.Deref(extractors.ExtractDescription(doc)), article.Content)
	}
	if article.SiteName == nil {
		article.SiteName = extractors.ExtractSiteName(doc, pageURL)
	}
	if article.Author == nil {
		article.Author = extractors.ExtractAuthor(doc)
	}
	if article.Author == nil {
		article.Author = book.Author
	}
	if article.PublishedTime == nil {
		article.PublishedTime = extractors.ExtractPublishedTime(doc)
	}
	if article.ImageURL == nil {
		article.ImageURL = extractors.ExtractImage(doc, pageURL)
	}
}

// excerpt returns the first non-empty candidate, normalized and shortened to
// MaxExcerptChars on a word boundary.
func excerpt(candidates ...string) string {
	for _, c := range candidates {
		if c = simplifiers.NormalizeText(c); c != "" {
			return simplifiers.TruncateWords(c, MaxExcerptChars)
		}
	}
	return ""
}
