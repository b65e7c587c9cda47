package structured

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/jsonld"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
)

// MaxDescriptionChars bounds a cleaned product description, ellipsis included.
const MaxDescriptionChars = 500

// minDescriptionChars is the length a meta or DOM description must exceed.
const minDescriptionChars = 50

const maxDescriptionParagraphs = 2

// DescriptionNoisePatterns remove store chrome from product descriptions.
var DescriptionNoisePatterns = []*regexp.Regexp{
	// size charts
	regexp.MustCompile(`(?i)size\s+(chart|guide)[^\n]*`),
	// catalog identifiers
	regexp.MustCompile(`(?i)\b(sku|upc|asin|ean|mpn|isbn-?1[03])\b\s*[:#]?\s*[a-z0-9-]+`),
	regexp.MustCompile(`(?i)\b(item\s+)?model\s+(number|no\.?|#)\s*[:#]?\s*[a-z0-9-]+`),
	// shipping and returns
	regexp.MustCompile(`(?i)(free\s+)?shipping\s+(on|for|over|available|and\s+returns)[^.\n]*\.?`),
	regexp.MustCompile(`(?i)ships?\s+(in|within|from)\s[^.\n]*\.?`),
	regexp.MustCompile(`(?i)(free\s+)?returns?\s+(policy|within|accepted)[^.\n]*\.?`),
	// stock status
	regexp.MustCompile(`(?i)(only\s+\d+\s+left(\s+in\s+stock)?|out\s+of\s+stock|in\s+stock|currently\s+unavailable|usually\s+ships[^.\n]*)\.?`),
	// calls to action
	regexp.MustCompile(`(?i)add\s+to\s+(cart|bag|basket|wish\s*list)`),
	regexp.MustCompile(`(?i)(buy\s+(it\s+)?now|shop\s+now|order\s+now|checkout\s+now)`),
}

// DescriptionSelectors locate product copy in the page body, in order.
var DescriptionSelectors = []string{
	`[itemprop="description"]`,
	".product-description",
	"#productDescription",
	"#feature-bullets",
	".product-details__description",
	`[data-testid="product-description"]`,
}

var (
	descriptionSpaceRegex     = regexp.MustCompile(`[ \t\f\r\v]+`)
	descriptionParagraphRegex = regexp.MustCompile(`\n\s*\n`)
	descriptionLineRegex      = regexp.MustCompile(` *\n *`)
)

// CleanProductDescription strips noise patterns, collapses whitespace, keeps
// the first two paragraphs and truncates to MaxDescriptionChars at a word
// boundary.
func CleanProductDescription(raw string) string {
	text := simplifiers.StripControlChars(raw)

	// Removing one match can join the text around it into a new match.
	for changed := true; changed; {
		changed = false
		for _, pattern := range DescriptionNoisePatterns {
			next := pattern.ReplaceAllString(text, " ")
			if next != text {
				text, changed = next, true
			}
		}
	}

	text = descriptionSpaceRegex.ReplaceAllString(text, " ")
	text = descriptionLineRegex.ReplaceAllString(text, "\n")

	var paragraphs []string
	for _, para := range descriptionParagraphRegex.Split(text, -1) {
		if para = strings.TrimSpace(para); para != "" {
			paragraphs = append(paragraphs, para)
		}
		if len(paragraphs) == maxDescriptionParagraphs {
			break
		}
	}

	return simplifiers.TruncateWords(strings.Join(paragraphs, "\n\n"), MaxDescriptionChars)
}

// ExtractProductDescription returns the first description source that yields
// text: JSON-LD, then Open Graph or meta description, then the page body.
func ExtractProductDescription(doc *goquery.Document) *string {
	return NewPage(doc, nil, nil).ProductDescription()
}

// ProductDescription is ExtractProductDescription over an already prepared page.
func (p *Page) ProductDescription() *string {
	for _, raw := range []string{p.jsonLDDescription(), p.metaDescription(), p.domDescription()} {
		if raw == "" {
			continue
		}
		if cleaned := CleanProductDescription(raw); cleaned != "" {
			return &cleaned
		}
	}
	return nil
}

func (p *Page) jsonLDDescription() string {
	node, ok := jsonld.FindFirst(p.JSONLD, "Product")
	if !ok {
		return ""
	}
	desc, _ := node.Get("description").Text()
	return desc
}

func (p *Page) metaDescription() string {
	desc := firstNonEmpty(
		extractors.MetaProperty(p.Doc, "og:description"),
		extractors.MetaName(p.Doc, "description"),
	)
	if simplifiers.RuneLen(desc) > minDescriptionChars {
		return desc
	}
	return ""
}

func (p *Page) domDescription() string {
	if p.Doc == nil {
		return ""
	}
	for _, selector := range DescriptionSelectors {
		s := p.Doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(s.Text())
		if simplifiers.RuneLen(text) > minDescriptionChars {
			return text
		}
	}
	return ""
}
