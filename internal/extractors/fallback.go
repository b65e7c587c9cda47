package extractors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
)

// ContentSelectors are likely article containers, tried in order.
var ContentSelectors = []string{
	"article",
	`[role="article"]`,
	`[itemprop="articleBody"]`,
	".article-body",
	".article-content",
	".post-content",
	".entry-content",
	".story-body__inner",        // BBC
	".StoryBodyCompanionColumn", // NYT
	"main",
}

// ParagraphContainers are searched in order for loose paragraphs.
var ParagraphContainers = []string{"main", "article", "body"}

const blockSelector = "p, h1, h2, h3, h4, h5, h6"

// SelectorContent returns the paragraph and heading text of the first element
// matching ContentSelectors whose collected text is longer than minChars,
// along with the selector that matched.
func SelectorContent(doc *goquery.Document, minChars int) (string, string) {
	if doc == nil {
		return "", ""
	}
	for _, selector := range ContentSelectors {
		var content string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := collectBlocks(s.Find(blockSelector), 0)
			if simplifiers.RuneLen(text) > minChars {
				content = text
				return false
			}
			return true
		})
		if content != "" {
			return content, selector
		}
	}
	return "", ""
}

// ParagraphContent joins the paragraphs longer than minChars found under the
// first of ParagraphContainers that has any.
func ParagraphContent(doc *goquery.Document, minChars int) string {
	if doc == nil {
		return ""
	}
	for _, container := range ParagraphContainers {
		if text := collectBlocks(doc.Find(container).First().Find("p"), minChars); text != "" {
			return text
		}
	}
	return ""
}

// BodyContent renders the document body as structured text and keeps the
// first maxChars characters.
func BodyContent(doc *goquery.Document, pageURL *url.URL, maxChars int) string {
	if doc == nil {
		return ""
	}
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return simplifiers.Head(simplifiers.NormalizeText(doc.Text()), maxChars)
	}
	text := simplifiers.NodeToStructuredText(body.Get(0), PageURL(doc, pageURL))
	return simplifiers.Head(text, maxChars)
}

// collectBlocks normalizes each element's text and joins the non-boilerplate
// ones longer than minChars with blank lines.
func collectBlocks(sel *goquery.Selection, minChars int) string {
	var blocks []string
	sel.Each(func(_ int, s *goquery.Selection) {
		text := simplifiers.NormalizeText(s.Text())
		if text == "" || simplifiers.RuneLen(text) <= minChars || simplifiers.IsBoilerplate(text) {
			return
		}
		blocks = append(blocks, text)
	})
	return strings.Join(blocks, "\n\n")
}
