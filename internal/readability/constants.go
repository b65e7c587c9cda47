// Package readability finds the main content of an HTML document by scoring
// paragraphs and crediting their ancestors, following Mozilla's Readability.
package readability

import "regexp"

// Flags for controlling the content extraction process
const (
	FlagStripUnlikelys     = 0x1
	FlagWeightClasses      = 0x2
	FlagCleanConditionally = 0x4
)

// Default settings
const (
	// DefaultCharThreshold is the minimum number of characters an extraction
	// must reach before the parser stops relaxing its flags.
	DefaultCharThreshold = 500

	// DefaultNTopCandidates is the number of top candidates to consider
	DefaultNTopCandidates = 5
)

// Scoring weights
const (
	minScoredTextLength    = 25
	classWeight            = 25
	textLengthDivisor      = 100.0
	maxLengthBonus         = 3.0
	ancestorDepth          = 5
	siblingScoreMultiplier = 0.2
	minSiblingScore        = 10.0
	hashLinkWeight         = 0.3
	shortParagraphLength   = 80
	paragraphLinkDensity   = 0.25
)

// DefaultTagsToScore defines the element tags that should be scored
var DefaultTagsToScore = []string{"section", "h2", "h3", "h4", "h5", "h6", "p", "td", "pre"}

// UnlikelyRoles defines ARIA roles that suggest a node is not content
var UnlikelyRoles = []string{"menu", "menubar", "complementary", "navigation", "alert", "alertdialog", "dialog"}

// DivToPElems are children that keep a <div> from being scored as a paragraph
var DivToPElems = []string{"blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul"}

// PresentationalAttributes defines presentational attributes to remove
var PresentationalAttributes = []string{"align", "background", "bgcolor", "border", "cellpadding", "cellspacing", "frame", "hspace", "rules", "style", "valign", "vspace"}

// Regular expressions used in the Readability algorithm
var (
	// Unlikely candidates for content
	RegexpUnlikelyCandidates = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)

	// Candidates that might be content despite matching the unlikelyCandidates pattern
	RegexpMaybeCandidate = regexp.MustCompile(`(?i)and|article|body|column|content|main|shadow`)

	// Positive indicators of content
	RegexpPositive = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)

	// Negative indicators of content
	RegexpNegative = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|foot|footer|footnote|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)

	// Byline indicators
	RegexpByline = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

	// Normalize whitespace
	RegexpNormalize = regexp.MustCompile(`\s{2,}`)

	// Title separators
	RegexpTitleSeparator = regexp.MustCompile(` [\|\-\\/>»–—] `)
)
