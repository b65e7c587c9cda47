package extractors

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// SiteNameChain resolves the publication name, falling back to the hostname.
var SiteNameChain = Chain{
	{Name: "og-site-name", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return MetaProperty(doc, "og:site_name")
	}},
	{Name: "application-name", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return MetaName(doc, "application-name")
	}},
	{Name: "hostname", Extract: Hostname},
}

// PublishedTimeChain resolves the publication timestamp.
var PublishedTimeChain = Chain{
	{Name: "time-datetime", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return NormalizeDate(FirstAttr(doc, "time[datetime]", "datetime"))
	}},
	{Name: "article-published-time", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return NormalizeDate(MetaProperty(doc, "article:published_time"))
	}},
}

// ImageChain resolves the hero image as an absolute URL.
var ImageChain = Chain{
	{Name: "og-image", Extract: func(doc *goquery.Document, pageURL *url.URL) string {
		return ResolveURL(doc, pageURL, MetaProperty(doc, "og:image"))
	}},
	{Name: "twitter-image", Extract: func(doc *goquery.Document, pageURL *url.URL) string {
		return ResolveURL(doc, pageURL, MetaName(doc, "twitter:image"))
	}},
}

// TitleChain resolves the document title.
var TitleChain = Chain{
	{Name: "og-title", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return MetaProperty(doc, "og:title")
	}},
	{Name: "title", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return FirstText(doc, "head title, title")
	}},
	{Name: "h1", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return FirstText(doc, "h1")
	}},
}

// DescriptionChain resolves the page summary used for excerpts.
var DescriptionChain = Chain{
	{Name: "og-description", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return MetaProperty(doc, "og:description")
	}},
	{Name: "meta-description", Extract: func(doc *goquery.Document, _ *url.URL) string {
		return MetaName(doc, "description")
	}},
}

// ExtractSiteName returns the site name, or nil when neither meta tags nor a
// page URL are available.
func ExtractSiteName(doc *goquery.Document, pageURL *url.URL) *string {
	return SiteNameChain.Run(doc, pageURL)
}

// ExtractPublishedTime returns the publication time as an ISO 8601 string when
// it can be parsed, the raw attribute value otherwise, or nil.
func ExtractPublishedTime(doc *goquery.Document) *string {
	return PublishedTimeChain.Run(doc, nil)
}

// ExtractImage returns the absolute hero image URL, or nil.
func ExtractImage(doc *goquery.Document, pageURL *url.URL) *string {
	return ImageChain.Run(doc, pageURL)
}

// ExtractTitle returns the best title, or nil.
func ExtractTitle(doc *goquery.Document) *string {
	return TitleChain.Run(doc, nil)
}

// ExtractDescription returns the page description, or nil.
func ExtractDescription(doc *goquery.Document) *string {
	return DescriptionChain.Run(doc, nil)
}
