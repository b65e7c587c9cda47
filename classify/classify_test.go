package classify

import (
	"testing"

	"github.com/mrjoshuak/savekit/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		rec      types.SaveRecord
		expected types.SaveType
		rule     string
	}{
		{
			name:     "book wins over video host",
			rec:      types.SaveRecord{IsBook: true, URL: "https://www.youtube.com/watch?v=abc"},
			expected: types.SaveTypeBook,
			rule:     "is-book",
		},
		{
			name:     "book wins over product",
			rec:      types.SaveRecord{IsBook: true, IsProduct: true, URL: "https://amazon.com/dp/0143127748"},
			expected: types.SaveTypeBook,
			rule:     "is-book",
		},
		{
			name:     "product",
			rec:      types.SaveRecord{IsProduct: true, URL: "https://shop.example/widget", Content: "A widget"},
			expected: types.SaveTypeProduct,
			rule:     "is-product",
		},
		{
			name:     "highlight",
			rec:      types.SaveRecord{Highlight: "a quoted passage", URL: "https://vimeo.com/1"},
			expected: types.SaveTypeHighlight,
			rule:     "highlight",
		},
		{
			name:     "uploaded image",
			rec:      types.SaveRecord{Source: types.SourceUpload, ImageURL: "https://cdn.example/p.jpg"},
			expected: types.SaveTypeImage,
			rule:     "uploaded-image",
		},
		{
			name:     "upload without image is a note",
			rec:      types.SaveRecord{Source: types.SourceUpload, Notes: "scribble"},
			expected: types.SaveTypeNote,
			rule:     "note",
		},
		{
			name:     "voice memo",
			rec:      types.SaveRecord{SiteName: types.SiteNameVoiceMemo, AudioURL: "https://cdn.example/memo.m4a"},
			expected: types.SaveTypeVoice,
			rule:     "voice-memo",
		},
		{
			name:     "voice memo without audio",
			rec:      types.SaveRecord{SiteName: types.SiteNameVoiceMemo},
			expected: types.SaveTypeArticle,
			rule:     "article",
		},
		{
			name:     "note by site name",
			rec:      types.SaveRecord{SiteName: types.SiteNameNote, URL: "https://example.com"},
			expected: types.SaveTypeNote,
			rule:     "note",
		},
		{
			name:     "note without url",
			rec:      types.SaveRecord{Content: "remember the milk"},
			expected: types.SaveTypeNote,
			rule:     "note",
		},
		{
			name:     "music",
			rec:      types.SaveRecord{URL: "https://open.spotify.com/track/1", Content: "Song"},
			expected: types.SaveTypeMusic,
			rule:     "music-host",
		},
		{
			name:     "apple music",
			rec:      types.SaveRecord{URL: "https://music.apple.com/us/album/1"},
			expected: types.SaveTypeMusic,
			rule:     "music-host",
		},
		{
			name:     "video",
			rec:      types.SaveRecord{URL: "https://youtu.be/abc", Excerpt: "A talk"},
			expected: types.SaveTypeVideo,
			rule:     "video-host",
		},
		{
			name:     "bare link",
			rec:      types.SaveRecord{URL: "https://example.com/page"},
			expected: types.SaveTypeLink,
			rule:     "bare-link",
		},
		{
			name:     "article",
			rec:      types.SaveRecord{URL: "https://example.com/post", Content: "Body text"},
			expected: types.SaveTypeArticle,
			rule:     "article",
		},
		{
			name:     "empty record",
			rec:      types.SaveRecord{},
			expected: types.SaveTypeArticle,
			rule:     "article",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			got, rule := Explain(&rec)
			if got != tt.expected {
				t.Errorf("Explain() type = %q, want %q", got, tt.expected)
			}
			if rule != tt.rule {
				t.Errorf("Explain() rule = %q, want %q", rule, tt.rule)
			}
			if again := Classify(&rec); again != got {
				t.Errorf("Classify() not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if got := Classify(nil); got != types.SaveTypeArticle {
		t.Errorf("Classify(nil) = %q, want %q", got, types.SaveTypeArticle)
	}
}

func TestRulesEndWithCatchAll(t *testing.T) {
	last := Rules[len(Rules)-1]
	if !last.Match(&types.SaveRecord{IsBook: true}) {
		t.Errorf("last rule %q does not match every record", last.Name)
	}

	seen := map[types.SaveType]bool{}
	for _, r := range Rules {
		if seen[r.Type] {
			t.Errorf("save type %q has more than one rule", r.Type)
		}
		seen[r.Type] = true
	}
	if len(seen) != 10 {
		t.Errorf("rules cover %d save types, want 10", len(seen))
	}
}
