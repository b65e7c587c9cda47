package engine

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const para = "Engineers spent the summer rebuilding the old bridge, replacing each rusted girder by hand. The work ran late into the evenings, and the town gathered to watch the final span lowered into place."

func page() string {
	return `<html><head><title>Rebuilding the bridge</title></head><body>
<div class="menu"><a href="/">Home</a></div>
<article><h1>Rebuilding the bridge</h1><p>` + para + `</p><p>` + para + `</p><p>` + para + `</p></article>
</body></html>`
}

func newDoc(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page()))
	require.NoError(t, err)
	return doc
}

func TestNew(t *testing.T) {
	for _, name := range []string{"native", "shiori", " Native "} {
		e, err := New(name, Options{CharThreshold: 100})
		require.NoError(t, err, name)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(name)), e.Name())
	}

	_, err := New("javascript", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "native, shiori")
}

func TestEnginesExtractArticle(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e, err := New(name, Options{CharThreshold: 100, ClassesToPreserve: []string{"article", "content", "post"}})
			require.NoError(t, err)

			result, err := e.Parse(newDoc(t), nil)
			require.NoError(t, err)
			require.NotNil(t, result.Content)
			assert.Contains(t, result.TextContent, "Engineers spent the summer")
			assert.NotContains(t, result.TextContent, "Home")
			assert.Equal(t, "Rebuilding the bridge", result.Title)
		})
	}
}

func TestNativeEngineEmptyDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
	require.NoError(t, err)

	_, err = NewNative(Options{}).Parse(doc, nil)
	assert.Error(t, err)
}
