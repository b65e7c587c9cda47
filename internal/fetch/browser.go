package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// ErrNoBrowser is returned when no Chromium binary can be found.
var ErrNoBrowser = errors.New("rod browser dependency not found")

// Browser renders pages in headless Chromium and returns the live DOM, so
// content added by scripts is visible to extraction.
type Browser struct {
	// Bin is the browser executable. Empty means launcher.LookPath.
	Bin string
	// Timeout bounds navigation and load. Zero means 30 seconds.
	Timeout time.Duration
	Log     logrus.FieldLogger
}

// NewBrowser returns a browser fetcher.
func NewBrowser(timeout time.Duration, log logrus.FieldLogger) *Browser {
	return &Browser{Timeout: timeout, Log: log}
}

// Available reports whether a browser executable can be found.
func (b *Browser) Available() bool {
	if b.Bin != "" {
		return true
	}
	_, ok := launcher.LookPath()
	return ok
}

// Fetch implements Fetcher. A browser is launched per call and closed
// before returning.
func (b *Browser) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	if _, err := checkURL(rawURL); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	log := b.logger().WithField("url", rawURL)

	bin := b.Bin
	if bin == "" {
		path, ok := launcher.LookPath()
		if !ok {
			return nil, ErrNoBrowser
		}
		bin = path
	}

	l := launcher.New().Bin(bin).Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	// Runs after browser.Close, so the process is gone even when Connect fails.
	defer func() {
		l.Kill()
		l.Cleanup()
	}()
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing rod browser instance")
		}
	}()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	p, err := browser.Context(pageCtx).Page(proto.TargetCreateTarget{URL: rawURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			log.WithError(closeErr).Debug("Error closing rod page")
		}
	}()

	if err := p.WaitLoad(); err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("rendering timed out for %s: %w", rawURL, pageCtx.Err())
		}
		return nil, fmt.Errorf("failed waiting for page load: %w", err)
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	final := rawURL
	if info, err := p.Info(); err == nil && info.URL != "" {
		final = info.URL
	}
	log.WithField("bytes", len(html)).Debug("Rendered page")

	return &Page{URL: final, HTML: html}, nil
}

func (b *Browser) logger() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}
