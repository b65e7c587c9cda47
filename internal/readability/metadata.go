package readability

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

type articleMetadata struct {
	title    string
	byline   string
	excerpt  string
	siteName string
}

// getArticleMetadata reads title, byline, excerpt and site name from meta tags.
func (r *Readability) getArticleMetadata() articleMetadata {
	values := map[string]string{}
	r.doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}
		for _, key := range []string{s.AttrOr("property", ""), s.AttrOr("name", "")} {
			key = strings.ToLower(strings.TrimSpace(key))
			if key != "" {
				if _, seen := values[key]; !seen {
					values[key] = content
				}
			}
		}
	})

	pick := func(keys ...string) string {
		for _, k := range keys {
			if v := values[k]; v != "" {
				return v
			}
		}
		return ""
	}

	title := pick("og:title", "twitter:title", "dc:title", "dcterm:title")
	if title == "" {
		title = r.getArticleTitle()
	}

	return articleMetadata{
		title:    title,
		byline:   pick("author", "dc:creator", "dcterm:creator", "article:author"),
		excerpt:  pick("og:description", "twitter:description", "description", "dc:description"),
		siteName: pick("og:site_name"),
	}
}

// getArticleTitle cleans the document <title>, dropping a site name joined
// by a separator when at least three words remain.
func (r *Readability) getArticleTitle() string {
	orig := strings.TrimSpace(RegexpNormalize.ReplaceAllString(r.doc.Find("title").First().Text(), " "))
	title := orig

	if locs := RegexpTitleSeparator.FindAllStringIndex(orig, -1); len(locs) > 0 {
		title = orig[:locs[len(locs)-1][0]]
	} else if i := strings.LastIndex(orig, ": "); i > 0 {
		title = orig[i+2:]
	}

	title = strings.TrimSpace(title)
	if wordCount(title) < 3 || utf8.RuneCountInString(title) < 2 {
		return orig
	}
	return title
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
