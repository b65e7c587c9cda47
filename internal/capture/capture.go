// Package capture turns a save request into a persisted, classified record:
// fetch, extract, classify, insert, tag.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/classify"
	"github.com/mrjoshuak/savekit/extractor"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/fetch"
	"github.com/mrjoshuak/savekit/internal/store"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
)

// ErrExtractionFailed is returned when every attempt produced neither a title
// nor any content.
var ErrExtractionFailed = errors.New("failed to extract article content")

// Request describes one save.
type Request struct {
	UserID string
	Source string

	// URL of the page. Empty for notes and uploads.
	URL string
	// HTML of the page. When empty and URL is set, the page is fetched.
	HTML string
	// Title overrides the extracted title.
	Title string
	// Article is a result the caller already extracted. When set, the page
	// is neither fetched nor extracted again.
	Article *types.ExtractedArticle

	Highlight string
	FolderID  string
	Notes     string
	ImageURL  string
	AudioURL  string
	SiteName  string

	Tags []string
}

// Result is the outcome of a successful capture.
type Result struct {
	ID     string
	Record types.SaveRecord
}

// Service runs captures. Fetcher may be nil when callers always supply HTML.
type Service struct {
	Fetcher   fetch.Fetcher
	Extractor extractor.Extractor
	Store     store.Store
	Log       logrus.FieldLogger

	// Timeout bounds a single extraction attempt. Zero means no bound
	// beyond the extractor's own.
	Timeout time.Duration
	// Retries is the number of extra attempts after a failed extraction.
	Retries int
}

// Capture builds the record for req, classifies it and stores it.
func (s *Service) Capture(ctx context.Context, req Request) (*Result, error) {
	if req.UserID == "" {
		return nil, errors.New("capture: user ID is required")
	}
	log := s.logger().WithFields(logrus.Fields{
		"user_id": req.UserID,
		"url":     req.URL,
	})

	rec := types.SaveRecord{
		UserID:    req.UserID,
		URL:       req.URL,
		Title:     req.Title,
		Source:    req.Source,
		Highlight: req.Highlight,
		FolderID:  req.FolderID,
		Notes:     req.Notes,
		ImageURL:  req.ImageURL,
		AudioURL:  req.AudioURL,
		SiteName:  req.SiteName,
	}

	switch {
	case req.Highlight != "":
		// Highlights keep the quoted text; only the page title is read.
		if rec.Title == "" && req.HTML != "" {
			rec.Title = pageTitle(req.HTML)
		}
	case req.Article != nil:
		types.MergeArticle(&rec, req.Article)
	case req.URL == "" && req.HTML == "":
		// Notes, voice memos and uploads carry no page.
	default:
		article, err := s.extract(ctx, log, req)
		if err != nil {
			return nil, err
		}
		types.MergeArticle(&rec, article)
	}

	if rec.Title == "" {
		rec.Title = req.URL
	}
	rec.SaveType = classify.Classify(&rec)

	id, err := s.Store.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("capture: insert: %w", err)
	}
	rec.ID = id

	if len(req.Tags) > 0 {
		if err := s.Store.AddTags(ctx, id, req.Tags); err != nil {
			return nil, fmt.Errorf("capture: tag %s: %w", id, err)
		}
	}

	log.WithFields(logrus.Fields{
		"id":        id,
		"save_type": rec.SaveType,
	}).Info("Capture saved")
	return &Result{ID: id, Record: rec}, nil
}

// extract fetches the page when needed and runs the extractor, retrying
// failed attempts up to s.Retries times.
func (s *Service) extract(ctx context.Context, log logrus.FieldLogger, req Request) (*types.ExtractedArticle, error) {
	html, pageURL := req.HTML, req.URL
	if html == "" {
		if s.Fetcher == nil {
			return nil, errors.New("capture: no HTML supplied and no fetcher configured")
		}
		page, err := s.Fetcher.Fetch(ctx, req.URL)
		if err != nil {
			return nil, fmt.Errorf("capture: %w", err)
		}
		html, pageURL = page.HTML, page.URL
	}

	var lastErr error
	for attempt := 0; attempt <= s.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article, err := s.attempt(ctx, html, pageURL)
		switch {
		case err != nil:
			lastErr = err
		case article.Title == "" && article.Content == "":
			lastErr = errors.New("no title or content")
		default:
			return article, nil
		}
		log.WithError(lastErr).WithField("attempt", attempt+1).Warn("Extraction attempt failed")
	}
	return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, lastErr)
}

func (s *Service) attempt(ctx context.Context, html, pageURL string) (*types.ExtractedArticle, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	return s.Extractor.ExtractFromHTML(ctx, html, pageURL)
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger().WithField("component", "capture")
	}
	return s.Log.WithField("component", "capture")
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return types.Deref(extractors.ExtractTitle(doc))
}
