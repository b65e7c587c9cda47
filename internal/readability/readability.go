package readability

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Options defines configuration options for the Readability parser
type Options struct {
	MaxElemsToParse   int      // Maximum elements to parse (0 = no limit)
	NbTopCandidates   int      // Number of top candidates to consider
	CharThreshold     int      // Minimum character threshold
	ClassesToPreserve []string // Classes kept when class attributes are stripped
	KeepClasses       bool     // Whether to keep all classes
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		NbTopCandidates: DefaultNTopCandidates,
		CharThreshold:   DefaultCharThreshold,
	}
}

// Article represents the extracted article
type Article struct {
	Title       string             // Article title
	Byline      string             // Article byline (author)
	Content     string             // Article content (HTML)
	TextContent string             // Article text content (plain text)
	Length      int                // Length of the text content in characters
	Excerpt     string             // Short excerpt
	SiteName    string             // Site name
	Node        *goquery.Selection // Root of the extracted content
}

// Readability implements the Readability algorithm
type Readability struct {
	doc           *goquery.Document
	options       Options
	flags         int
	articleByline string
}

type attempt struct {
	content *goquery.Selection
	length  int
}

// New creates a parser over doc. Parse mutates doc, so callers that need the
// original afterwards should pass a clone.
func New(doc *goquery.Document, opts Options) *Readability {
	if opts.NbTopCandidates <= 0 {
		opts.NbTopCandidates = DefaultNTopCandidates
	}
	return &Readability{
		doc:     doc,
		options: opts,
		flags:   FlagStripUnlikelys | FlagWeightClasses | FlagCleanConditionally,
	}
}

// Parse runs the Readability algorithm
func (r *Readability) Parse() (*Article, error) {
	if r.doc == nil || r.doc.Selection.Length() == 0 {
		return nil, WrapValidationError(ErrNoDocument, "Parse", "")
	}

	if r.options.MaxElemsToParse > 0 {
		numNodes := r.doc.Find("*").Length()
		if numNodes > r.options.MaxElemsToParse {
			err := WrapValidationError(ErrDocumentLarge, "Parse", "")
			return nil, fmt.Errorf("%w: %d elements (exceeds limit of %d)",
				err, numNodes, r.options.MaxElemsToParse)
		}
	}

	metadata := r.getArticleMetadata()

	r.removeScripts()

	content := r.grabArticle()
	if content == nil {
		return nil, WrapExtractionError(ErrNoContent, "Parse", "")
	}

	textContent := getInnerText(content, true)
	if textContent == "" {
		return nil, WrapExtractionError(ErrNoContent, "Parse", "empty article")
	}

	excerpt := metadata.excerpt
	if excerpt == "" {
		content.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			excerpt = getInnerText(s, true)
			return excerpt == ""
		})
	}

	byline := metadata.byline
	if byline == "" {
		byline = r.articleByline
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, WrapParseError(err, "Parse", "failed to render article")
	}

	return &Article{
		Title:       metadata.title,
		Byline:      byline,
		Content:     contentHTML,
		TextContent: textContent,
		Length:      utf8.RuneCountInString(textContent),
		Excerpt:     excerpt,
		SiteName:    metadata.siteName,
		Node:        content,
	}, nil
}

// grabArticle extracts the article, relaxing one flag at a time while the
// result is shorter than CharThreshold. The longest attempt wins when no
// attempt reaches the threshold.
func (r *Readability) grabArticle() *goquery.Selection {
	body := r.doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	pageHTML, err := body.Html()
	if err != nil {
		return nil
	}

	var attempts []attempt
	for {
		content := r.grabArticleNode()
		if content != nil {
			r.prepArticle(content)
			length := utf8.RuneCountInString(getInnerText(content, true))
			if length >= r.options.CharThreshold {
				return content
			}
			attempts = append(attempts, attempt{content: content, length: length})
		}

		switch {
		case r.flags&FlagStripUnlikelys != 0:
			r.flags &^= FlagStripUnlikelys
		case r.flags&FlagWeightClasses != 0:
			r.flags &^= FlagWeightClasses
		case r.flags&FlagCleanConditionally != 0:
			r.flags &^= FlagCleanConditionally
		default:
			return bestAttempt(attempts)
		}
		r.doc.Find("body").First().SetHtml(pageHTML)
	}
}

func bestAttempt(attempts []attempt) *goquery.Selection {
	var best *attempt
	for i := range attempts {
		if best == nil || attempts[i].length > best.length {
			best = &attempts[i]
		}
	}
	if best == nil || best.length == 0 {
		return nil
	}
	return best.content
}

// removeScripts removes all script, noscript and style tags from the document
func (r *Readability) removeScripts() {
	r.doc.Find("script, noscript, style, template").Remove()
}

// isUnlikely reports whether class, id or role mark a node as page chrome.
func (r *Readability) isUnlikely(s *goquery.Selection, tag string) bool {
	if tag == "body" || tag == "a" {
		return false
	}
	if role, ok := s.Attr("role"); ok && contains(UnlikelyRoles, strings.ToLower(role)) {
		return true
	}
	match := s.AttrOr("class", "") + " " + s.AttrOr("id", "")
	if !RegexpUnlikelyCandidates.MatchString(match) || RegexpMaybeCandidate.MatchString(match) {
		return false
	}
	node := s.Get(0)
	return !hasAncestorTag(node, "table", 3) && !hasAncestorTag(node, "code", 3)
}
