// Package classify assigns a SaveType to a save record.
//
// Classification is a first-match walk over Rules; the order is the
// contract. A book saved from a video host is still a book.
package classify

import (
	"strings"

	"github.com/mrjoshuak/savekit/types"
)

// MusicDomains are URL substrings that mark music saves.
var MusicDomains = []string{"spotify.com", "music.apple.com", "soundcloud.com", "bandcamp.com"}

// VideoDomains are URL substrings that mark video saves.
var VideoDomains = []string{"youtube.com", "youtu.be", "vimeo.com", "tiktok.com"}

// Rule maps records matching Match to Type.
type Rule struct {
	Name  string
	Type  types.SaveType
	Match func(rec *types.SaveRecord) bool
}

// Rules in precedence order. The last rule matches everything.
var Rules = []Rule{
	{Name: "is-book", Type: types.SaveTypeBook, Match: func(rec *types.SaveRecord) bool {
		return rec.IsBook
	}},
	{Name: "is-product", Type: types.SaveTypeProduct, Match: func(rec *types.SaveRecord) bool {
		return rec.IsProduct
	}},
	{Name: "highlight", Type: types.SaveTypeHighlight, Match: func(rec *types.SaveRecord) bool {
		return rec.Highlight != ""
	}},
	{Name: "uploaded-image", Type: types.SaveTypeImage, Match: func(rec *types.SaveRecord) bool {
		return rec.Source == types.SourceUpload && rec.ImageURL != ""
	}},
	{Name: "voice-memo", Type: types.SaveTypeVoice, Match: func(rec *types.SaveRecord) bool {
		return rec.SiteName == types.SiteNameVoiceMemo && rec.AudioURL != ""
	}},
	{Name: "note", Type: types.SaveTypeNote, Match: func(rec *types.SaveRecord) bool {
		return rec.SiteName == types.SiteNameNote ||
			(rec.URL == "" && (rec.Notes != "" || rec.Content != ""))
	}},
	{Name: "music-host", Type: types.SaveTypeMusic, Match: func(rec *types.SaveRecord) bool {
		return urlContainsAny(rec.URL, MusicDomains)
	}},
	{Name: "video-host", Type: types.SaveTypeVideo, Match: func(rec *types.SaveRecord) bool {
		return urlContainsAny(rec.URL, VideoDomains)
	}},
	{Name: "bare-link", Type: types.SaveTypeLink, Match: func(rec *types.SaveRecord) bool {
		return rec.URL != "" && rec.Content == "" && rec.Excerpt == ""
	}},
	{Name: "article", Type: types.SaveTypeArticle, Match: func(*types.SaveRecord) bool {
		return true
	}},
}

// Classify returns the save type of rec. A nil record is an article.
func Classify(rec *types.SaveRecord) types.SaveType {
	t, _ := Explain(rec)
	return t
}

// Explain returns the save type of rec and the name of the rule that chose it.
func Explain(rec *types.SaveRecord) (types.SaveType, string) {
	if rec == nil {
		rec = &types.SaveRecord{}
	}
	for _, rule := range Rules {
		if rule.Match(rec) {
			return rule.Type, rule.Name
		}
	}
	return types.SaveTypeArticle, "article"
}

func urlContainsAny(rawURL string, domains []string) bool {
	if rawURL == "" {
		return false
	}
	for _, d := range domains {
		if strings.Contains(rawURL, d) {
			return true
		}
	}
	return false
}
