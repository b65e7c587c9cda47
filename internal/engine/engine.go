// Package engine wraps the readability implementations behind one interface
// so the extractor can choose between them at runtime.
package engine

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Engine names.
const (
	Native = "native"
	Shiori = "shiori"
)

// Options configures a readability pass.
type Options struct {
	CharThreshold     int
	ClassesToPreserve []string
}

// Result is what a readability pass found. Content is the root of the
// extracted subtree and is never shared with the caller's document.
type Result struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	TextContent   string
	Image         string
	PublishedTime *time.Time
	Content       *html.Node
}

// Engine runs a readability-style extraction over a document. Implementations
// may mutate doc; callers pass a clone.
type Engine interface {
	Name() string
	Parse(doc *goquery.Document, pageURL *url.URL) (*Result, error)
}

// Factory builds an engine for the given options.
type Factory func(opts Options) Engine

var factories = map[string]Factory{
	Native: func(opts Options) Engine { return NewNative(opts) },
	Shiori: func(opts Options) Engine { return NewShiori(opts) },
}

// New returns the named engine.
func New(name string, opts Options) (Engine, error) {
	factory, ok := factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(opts), nil
}

// Names lists the registered engines.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
