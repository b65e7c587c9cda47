package extractors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
)

// MetaContent returns the content attribute of the first meta tag whose
// attr (name or property) equals key.
func MetaContent(doc *goquery.Document, attr, key string) string {
	if doc == nil {
		return ""
	}
	content, _ := doc.Find(`meta[` + attr + `="` + key + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// MetaProperty reads meta[property=key].
func MetaProperty(doc *goquery.Document, key string) string {
	return MetaContent(doc, "property", key)
}

// MetaName reads meta[name=key].
func MetaName(doc *goquery.Document, key string) string {
	return MetaContent(doc, "name", key)
}

// FirstText returns the normalized text of the first element matching
// selector that has any text.
func FirstText(doc *goquery.Document, selector string) string {
	if doc == nil {
		return ""
	}
	var text string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = simplifiers.NormalizeText(s.Text())
		return text == ""
	})
	return text
}

// FirstAttr returns the first non-empty value of attr among elements matching selector.
func FirstAttr(doc *goquery.Document, selector, attr string) string {
	if doc == nil {
		return ""
	}
	var value string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		value = strings.TrimSpace(s.AttrOr(attr, ""))
		return value == ""
	})
	return value
}

// PageURL returns pageURL, or the URL the document was loaded from.
func PageURL(doc *goquery.Document, pageURL *url.URL) *url.URL {
	if pageURL != nil {
		return pageURL
	}
	if doc != nil {
		return doc.Url
	}
	return nil
}

// Hostname returns the lowercase host of the page without a leading "www.".
func Hostname(doc *goquery.Document, pageURL *url.URL) string {
	u := PageURL(doc, pageURL)
	if u == nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// ResolveURL makes ref absolute against the page URL. Unparseable references
// are returned unchanged.
func ResolveURL(doc *goquery.Document, pageURL *url.URL, ref string) string {
	base := PageURL(doc, pageURL)
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
