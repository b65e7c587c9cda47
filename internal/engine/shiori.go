package engine

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	shiori "github.com/go-shiori/go-readability"
	"github.com/mrjoshuak/savekit/internal/readability"
)

// ShioriEngine delegates to github.com/go-shiori/go-readability.
type ShioriEngine struct {
	parser shiori.Parser
}

// NewShiori returns an engine backed by go-readability.
func NewShiori(opts Options) *ShioriEngine {
	parser := shiori.NewParser()
	if opts.CharThreshold > 0 {
		parser.CharThresholds = opts.CharThreshold
	}
	if len(opts.ClassesToPreserve) > 0 {
		parser.ClassesToPreserve = append(parser.ClassesToPreserve, opts.ClassesToPreserve...)
	}
	return &ShioriEngine{parser: parser}
}

// Name implements Engine.
func (e *ShioriEngine) Name() string { return Shiori }

// Parse implements Engine.
func (e *ShioriEngine) Parse(doc *goquery.Document, pageURL *url.URL) (*Result, error) {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil, readability.WrapValidationError(readability.ErrNoDocument, "ShioriEngine.Parse", "")
	}
	if pageURL == nil {
		// go-readability resolves links against the page URL unconditionally.
		pageURL = &url.URL{}
	}
	article, err := e.parser.ParseDocument(doc.Nodes[0], pageURL)
	if err != nil {
		return nil, readability.WrapExtractionError(err, "ShioriEngine.Parse", "go-readability failed")
	}
	if article.Node == nil {
		return nil, readability.WrapExtractionError(readability.ErrNoContent, "ShioriEngine.Parse", "")
	}
	return &Result{
		Title:         article.Title,
		Byline:        article.Byline,
		Excerpt:       article.Excerpt,
		SiteName:      article.SiteName,
		TextContent:   article.TextContent,
		Image:         article.Image,
		PublishedTime: article.PublishedTime,
		Content:       article.Node,
	}, nil
}
