package capture

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/extractor"
	"github.com/mrjoshuak/savekit/internal/fetch"
	"github.com/mrjoshuak/savekit/internal/store"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeFetcher struct {
	page  *fetch.Page
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*fetch.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

// fakeExtractor returns results[i] on call i, repeating the last one.
type fakeExtractor struct {
	results []fakeResult
	calls   int
	urls    []string
}

type fakeResult struct {
	article *types.ExtractedArticle
	err     error
}

func (f *fakeExtractor) Extract(ctx context.Context, _ *goquery.Document, _ *url.URL) (*types.ExtractedArticle, error) {
	return f.next()
}

func (f *fakeExtractor) ExtractFromHTML(_ context.Context, _ string, pageURL string) (*types.ExtractedArticle, error) {
	f.urls = append(f.urls, pageURL)
	return f.next()
}

func (f *fakeExtractor) ExtractFromReader(ctx context.Context, _ io.Reader, pageURL string) (*types.ExtractedArticle, error) {
	return f.ExtractFromHTML(ctx, "", pageURL)
}

func (f *fakeExtractor) next() (*types.ExtractedArticle, error) {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	r := f.results[i]
	return r.article, r.err
}

type memStore struct {
	mu      sync.Mutex
	records map[string]types.SaveRecord
	tags    map[string][]string
	err     error
}

func newMemStore() *memStore {
	return &memStore{records: map[string]types.SaveRecord{}, tags: map[string][]string{}}
}

func (m *memStore) Insert(_ context.Context, rec types.SaveRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	rec.ID = "id-1"
	m.records[rec.ID] = rec
	return rec.ID, nil
}

func (m *memStore) Get(_ context.Context, id string) (types.SaveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return rec, store.ErrNotFound
	}
	return rec, nil
}

func (m *memStore) ListByUser(context.Context, string) ([]types.SaveRecord, error) {
	return nil, nil
}

func (m *memStore) AddTags(_ context.Context, id string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[id] = append(m.tags[id], tags...)
	return nil
}

func (m *memStore) TagsFor(_ context.Context, id string) ([]string, error) {
	return m.tags[id], nil
}

func (m *memStore) Close() error { return nil }

func article(title, content string) *types.ExtractedArticle {
	return &types.ExtractedArticle{Title: title, Content: content, Excerpt: content}
}

func TestCaptureFetchesExtractsAndStores(t *testing.T) {
	fetcher := &fakeFetcher{page: &fetch.Page{URL: "https://example.com/final", HTML: "<html></html>"}}
	ext := &fakeExtractor{results: []fakeResult{{article: article("Bridge", "Body text")}}}
	st := newMemStore()

	svc := &Service{Fetcher: fetcher, Extractor: ext, Store: st, Log: quietLogger()}
	res, err := svc.Capture(context.Background(), Request{
		UserID: "u1",
		Source: types.SourceExtension,
		URL:    "https://example.com/start",
		Tags:   []string{"later"},
	})
	require.NoError(t, err)

	assert.Equal(t, "id-1", res.ID)
	assert.Equal(t, "Bridge", res.Record.Title)
	assert.Equal(t, types.SaveTypeArticle, res.Record.SaveType)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, []string{"https://example.com/final"}, ext.urls)
	assert.Equal(t, []string{"later"}, st.tags["id-1"])
	assert.Equal(t, "Bridge", st.records["id-1"].Title)
}

func TestCaptureRetriesOnce(t *testing.T) {
	ext := &fakeExtractor{results: []fakeResult{
		{err: errors.New("extraction timed out")},
		{article: article("Second try", "Body")},
	}}
	svc := &Service{Extractor: ext, Store: newMemStore(), Log: quietLogger(), Retries: 1}

	res, err := svc.Capture(context.Background(), Request{UserID: "u1", URL: "https://example.com", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, 2, ext.calls)
	assert.Equal(t, "Second try", res.Record.Title)
}

func TestCaptureExtractionFailed(t *testing.T) {
	tests := []struct {
		name    string
		results []fakeResult
	}{
		{name: "errors", results: []fakeResult{{err: errors.New("boom")}}},
		{name: "empty", results: []fakeResult{{article: article("", "")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &fakeExtractor{results: tt.results}
			st := newMemStore()
			svc := &Service{Extractor: ext, Store: st, Log: quietLogger(), Retries: 1}

			_, err := svc.Capture(context.Background(), Request{UserID: "u1", URL: "https://example.com", HTML: "<p></p>"})
			assert.ErrorIs(t, err, ErrExtractionFailed)
			assert.Equal(t, 2, ext.calls)
			assert.Empty(t, st.records)
		})
	}
}

func TestCaptureHighlightSkipsExtraction(t *testing.T) {
	ext := &fakeExtractor{results: []fakeResult{{err: errors.New("must not be called")}}}
	svc := &Service{Extractor: ext, Store: newMemStore(), Log: quietLogger()}

	res, err := svc.Capture(context.Background(), Request{
		UserID:    "u1",
		URL:       "https://www.youtube.com/watch?v=abc",
		HTML:      `<html><head><title>A talk</title></head></html>`,
		Highlight: "the quoted part",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, ext.calls)
	assert.Equal(t, "A talk", res.Record.Title)
	assert.Equal(t, types.SaveTypeHighlight, res.Record.SaveType)
}

func TestCaptureNote(t *testing.T) {
	ext := &fakeExtractor{results: []fakeResult{{err: errors.New("must not be called")}}}
	svc := &Service{Extractor: ext, Store: newMemStore(), Log: quietLogger()}

	res, err := svc.Capture(context.Background(), Request{UserID: "u1", Title: "Groceries", Notes: "milk, eggs"})
	require.NoError(t, err)
	assert.Equal(t, 0, ext.calls)
	assert.Equal(t, types.SaveTypeNote, res.Record.SaveType)
}

func TestCaptureErrors(t *testing.T) {
	svc := &Service{Extractor: &fakeExtractor{}, Store: newMemStore(), Log: quietLogger()}

	_, err := svc.Capture(context.Background(), Request{URL: "https://example.com"})
	assert.Error(t, err, "missing user")

	_, err = svc.Capture(context.Background(), Request{UserID: "u1", URL: "https://example.com"})
	assert.ErrorContains(t, err, "no fetcher")

	svc.Fetcher = &fakeFetcher{err: fetch.ErrUnsupportedScheme}
	_, err = svc.Capture(context.Background(), Request{UserID: "u1", URL: "ftp://example.com"})
	assert.ErrorIs(t, err, fetch.ErrUnsupportedScheme)

	st := newMemStore()
	st.err = errors.New("disk full")
	svc = &Service{Store: st, Log: quietLogger()}
	_, err = svc.Capture(context.Background(), Request{UserID: "u1", Notes: "n"})
	assert.ErrorContains(t, err, "disk full")
}

func TestCaptureWithRealExtractorAndBadger(t *testing.T) {
	st, err := store.OpenBadgerInMemory(quietLogger())
	require.NoError(t, err)
	defer st.Close()

	svc := &Service{
		Extractor: extractor.New(extractor.WithLogger(quietLogger())),
		Store:     st,
		Log:       quietLogger(),
		Retries:   1,
	}

	html := `<html><head><title>Blue Widget</title>
<script type="application/ld+json">{"@type":"Product","offers":{"price":"19.99","priceCurrency":"EUR"}}</script>
</head><body><p>The blue widget.</p></body></html>`

	res, err := svc.Capture(context.Background(), Request{
		UserID: "u1",
		Source: types.SourceWeb,
		URL:    "https://shop.example/widget",
		HTML:   html,
		Tags:   []string{"gifts"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.SaveTypeProduct, res.Record.SaveType)

	stored, err := st.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Widget", stored.Title)
	assert.True(t, stored.IsProduct)
	require.NotNil(t, stored.ProductPrice)
	assert.Equal(t, "19.99", *stored.ProductPrice)

	tags, err := st.TagsFor(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"gifts"}, tags)
}

func TestCapturePreExtractedArticle(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("must not be called")}
	ext := &fakeExtractor{results: []fakeResult{{err: errors.New("must not be called")}}}
	svc := &Service{Fetcher: fetcher, Extractor: ext, Store: newMemStore(), Log: quietLogger()}

	pre := article("Already extracted", "Body")
	pre.Book = types.BookData{IsBook: true}

	res, err := svc.Capture(context.Background(), Request{UserID: "u1", URL: "https://example.com/b", Article: pre})
	require.NoError(t, err)
	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, 0, ext.calls)
	assert.Equal(t, "Already extracted", res.Record.Title)
	assert.Equal(t, types.SaveTypeBook, res.Record.SaveType)
}
