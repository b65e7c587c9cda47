package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBytes caps the size of a fetched body.
const DefaultMaxBytes = 10 << 20

// HTTP fetches pages with net/http and decodes them to UTF-8.
type HTTP struct {
	Client    *http.Client
	UserAgent string
	// MaxBytes limits the body size. Zero means DefaultMaxBytes.
	MaxBytes int64
	// RedirectMaxHops caps redirect following. Zero means 5.
	RedirectMaxHops int
	Log             logrus.FieldLogger
}

// NewHTTP returns an HTTP fetcher with a per-request timeout.
func NewHTTP(userAgent string, timeout time.Duration, log logrus.FieldLogger) *HTTP {
	return &HTTP{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Log:       log,
	}
}

// Fetch implements Fetcher.
func (h *HTTP) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if _, err := checkURL(rawURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := h.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status: %d", rawURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return nil, fmt.Errorf("fetch %s: unsupported content type: %s", rawURL, contentType)
	}

	limit := h.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := charset.NewReader(io.LimitReader(resp.Body, limit), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	final := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	h.logger().WithFields(logrus.Fields{
		"url":   final,
		"bytes": len(b),
	}).Debug("Fetched page")

	return &Page{URL: final, HTML: string(b)}, nil
}

func (h *HTTP) client() *http.Client {
	base := http.Client{}
	if h.Client != nil {
		base = *h.Client
	}
	max := h.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	base.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		if _, err := checkURL(req.URL.String()); err != nil {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
	return &base
}

func (h *HTTP) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

// isHTMLContentType accepts HTML and XHTML, and a missing header.
func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
