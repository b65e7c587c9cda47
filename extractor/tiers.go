package extractor

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/engine"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/simplifiers"
	"github.com/mrjoshuak/savekit/types"
	"github.com/sirupsen/logrus"
)

// Tier names, in fallback order. They are reported in ExtractedArticle.Tier.
const (
	TierReadability = "readability"
	TierSelector    = "selector"
	TierParagraphs  = "paragraphs"
	TierBody        = "body"
)

// tier returns nil when it has nothing usable, which moves the pipeline on
// to the next tier.
type tier struct {
	name string
	run  func(doc *goquery.Document, pageURL *url.URL, book types.BookData) *types.ExtractedArticle
}

func (e *articleExtractor) tiers() []tier {
	return []tier{
		{name: TierReadability, run: e.readabilityTier},
		{name: TierSelector, run: e.selectorTier},
		{name: TierParagraphs, run: e.paragraphTier},
		{name: TierBody, run: e.bodyTier},
	}
}

// readabilityTier runs the configured engine over a clone of doc. Engine
// errors and panics are logged and treated as "no content".
func (e *articleExtractor) readabilityTier(doc *goquery.Document, pageURL *url.URL, book types.BookData) (article *types.ExtractedArticle) {
	log := e.log.WithFields(logrus.Fields{"tier": TierReadability, "engine": e.options.Engine})

	defer func() {
		if r := recover(); r != nil {
			log.WithError(fmt.Errorf("panic: %v", r)).Warn("readability engine panicked")
			article = nil
		}
	}()

	eng, err := engine.New(e.options.Engine, engine.Options{
		CharThreshold:     e.options.CharThreshold,
		ClassesToPreserve: e.options.ClassesToPreserve,
	})
	if err != nil {
		log.WithError(err).Warn("readability engine unavailable")
		return nil
	}

	result, err := eng.Parse(cloneDocument(doc), pageURL)
	if err != nil {
		log.WithError(err).Warn("readability engine failed")
		return nil
	}

	text := simplifiers.NormalizeText(result.TextContent)
	if simplifiers.RuneLen(text) <= e.options.MinReadableChars {
		log.WithField("chars", simplifiers.RuneLen(text)).Debug("readability result too short")
		return nil
	}

	content := simplifiers.NodeToStructuredText(result.Content, pageURL)
	if content == "" {
		content = text
	}

	article = &types.ExtractedArticle{
		Title:    simplifiers.NormalizeText(result.Title),
		Content:  content,
		Excerpt:  excerpt(result.Excerpt, text),
		SiteName: types.String(simplifiers.NormalizeText(result.SiteName)),
		Author:   types.String(extractors.CleanByline(result.Byline)),
	}
	if article.Author == nil {
		article.Author = book.Author
	}
	if article.Title == "" {
		article.Title = simplifiers.NormalizeText(doc.Find("title").First().Text())
	}
	if result.Image != "" && extractors.ExtractImage(doc, pageURL) == nil {
		article.ImageURL = types.String(extractors.ResolveURL(doc, pageURL, result.Image))
	}
	if result.PublishedTime != nil && extractors.ExtractPublishedTime(doc) == nil {
		article.PublishedTime = types.String(result.PublishedTime.UTC().Format(time.RFC3339))
	}
	return article
}

// selectorTier collects the blocks of the first likely article container.
func (e *articleExtractor) selectorTier(doc *goquery.Document, _ *url.URL, _ types.BookData) *types.ExtractedArticle {
	content, selector := extractors.SelectorContent(doc, e.options.MinSelectorChars)
	if content == "" {
		return nil
	}
	e.log.WithFields(logrus.Fields{"tier": TierSelector, "selector": selector}).Debug("selector matched")
	return &types.ExtractedArticle{Content: content}
}

// paragraphTier joins the substantial paragraphs of the page.
func (e *articleExtractor) paragraphTier(doc *goquery.Document, _ *url.URL, _ types.BookData) *types.ExtractedArticle {
	content := extractors.ParagraphContent(doc, e.options.MinParagraphChars)
	if content == "" {
		return nil
	}
	return &types.ExtractedArticle{Content: content}
}

// bodyTier never fails; its content may be empty.
func (e *articleExtractor) bodyTier(doc *goquery.Document, pageURL *url.URL, _ types.BookData) *types.ExtractedArticle {
	return &types.ExtractedArticle{
		Content: strings.TrimSpace(extractors.BodyContent(doc, pageURL, e.options.MaxBodyChars)),
	}
}

// cloneDocument deep-copies doc so engines that prune the tree never touch
// the caller's document. The copy is dropped when the tier returns.
func cloneDocument(doc *goquery.Document) *goquery.Document {
	clone := goquery.NewDocumentFromNode(doc.Selection.Clone().Get(0))
	clone.Url = doc.Url
	return clone
}
