package savekit_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mrjoshuak/savekit"
)

func TestExtractor(t *testing.T) {
	ext := savekit.New()

	article, err := ext.ExtractFromHTML(context.Background(), exampleHTML, "https://example.com/post")
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}

	if article.Title != "Article Title" {
		t.Errorf("Expected title 'Article Title', got '%s'", article.Title)
	}
	if !strings.Contains(article.Content, "Adding another paragraph") {
		t.Errorf("Expected content to contain the second paragraph, got %q", article.Content)
	}
	if len([]rune(article.Excerpt)) > 300 {
		t.Errorf("Excerpt longer than 300 characters: %d", len([]rune(article.Excerpt)))
	}
	if article.SiteName == nil || *article.SiteName != "example.com" {
		t.Errorf("Expected site name 'example.com', got %v", article.SiteName)
	}
}

func TestExtractFromReader(t *testing.T) {
	ext := savekit.New(savekit.WithTimeout(time.Second * 5))

	article, err := ext.ExtractFromReader(context.Background(), strings.NewReader(exampleHTML), "")
	if err != nil {
		t.Fatalf("Failed to extract article: %v", err)
	}
	if article.Title != "Article Title" {
		t.Errorf("Expected title 'Article Title', got '%s'", article.Title)
	}
}

func TestBuildRecordKeepsCallerFields(t *testing.T) {
	article := &savekit.ExtractedArticle{
		Title:   "Extracted",
		Content: "Body",
		Excerpt: "Body",
	}

	rec := savekit.BuildRecord(savekit.SaveRecord{Title: "Mine", URL: "https://vimeo.com/1"}, article)
	if rec.Title != "Mine" {
		t.Errorf("Expected caller title to win, got %q", rec.Title)
	}
	if rec.Content != "Body" {
		t.Errorf("Expected extracted content, got %q", rec.Content)
	}
	if rec.SaveType != "video" {
		t.Errorf("Expected save type video, got %q", rec.SaveType)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := savekit.DefaultOptions()
	if opts.Engine != "native" {
		t.Errorf("Expected native engine, got %q", opts.Engine)
	}
	if opts.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", opts.Timeout)
	}
}

func TestBuildInfo(t *testing.T) {
	info := savekit.GetBuildInfo()
	if info.Name != "SaveKit" || info.Version != savekit.Version {
		t.Errorf("Unexpected build info: %+v", info)
	}
	if !strings.HasPrefix(info.GoVersion, "go") && info.GoVersion != "devel" {
		t.Errorf("Unexpected Go version %q", info.GoVersion)
	}
}
