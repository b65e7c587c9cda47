package engine

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/readability"
)

// NativeEngine is the built-in scorer.
type NativeEngine struct {
	opts readability.Options
}

// NewNative returns the built-in engine.
func NewNative(opts Options) *NativeEngine {
	ro := readability.DefaultOptions()
	if opts.CharThreshold > 0 {
		ro.CharThreshold = opts.CharThreshold
	}
	ro.ClassesToPreserve = opts.ClassesToPreserve
	return &NativeEngine{opts: ro}
}

// Name implements Engine.
func (e *NativeEngine) Name() string { return Native }

// Parse implements Engine.
func (e *NativeEngine) Parse(doc *goquery.Document, _ *url.URL) (*Result, error) {
	article, err := readability.New(doc, e.opts).Parse()
	if err != nil {
		return nil, err
	}
	return &Result{
		Title:       article.Title,
		Byline:      article.Byline,
		Excerpt:     article.Excerpt,
		SiteName:    article.SiteName,
		TextContent: article.TextContent,
		Content:     article.Node.Get(0),
	}, nil
}
