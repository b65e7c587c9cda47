// Package fetch retrieves page HTML for capture, either over plain HTTP or
// by rendering the page in a headless browser.
package fetch

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrUnsupportedScheme is returned for URLs that are not http or https.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// Page is a fetched document.
type Page struct {
	// URL is the final URL after redirects.
	URL  string
	HTML string
}

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Page, error)
}

func checkURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, nil
	default:
		return nil, ErrUnsupportedScheme
	}
}
