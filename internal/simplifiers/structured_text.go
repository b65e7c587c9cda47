package simplifiers

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// BulletMarker prefixes every list item. Ordered lists use it too, so item
// numbering does not survive conversion.
const BulletMarker = "• "

var (
	horizontalSpaceRegex = regexp.MustCompile(`[ \t\f\r\v\x{00a0}]+`)
	extraNewlinesRegex   = regexp.MustCompile(`\n{3,}`)
)

// skippedElements are dropped together with their subtree.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
}

// blockElements render surrounded by blank lines.
var blockElements = map[string]bool{
	"p":       true,
	"div":     true,
	"article": true,
	"section": true,
	"header":  true,
	"footer":  true,
	"main":    true,
	"h1":      true,
	"h2":      true,
	"h3":      true,
	"h4":      true,
	"h5":      true,
	"h6":      true,
}

// ToStructuredText converts an HTML fragment to normalized structured text.
// Relative link targets are resolved against base when it is not nil.
func ToStructuredText(fragment string, base *url.URL) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type: html.ElementNode,
		Data: "body",
	})
	if err != nil {
		return ""
	}

	c := converter{base: base}
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(c.render(n))
	}
	return finishStructuredText(b.String())
}

// NodeToStructuredText converts a parsed subtree to normalized structured text.
func NodeToStructuredText(n *html.Node, base *url.URL) string {
	if n == nil {
		return ""
	}
	c := converter{base: base}
	return finishStructuredText(c.render(n))
}

// converter renders nodes recursively; each call returns the text of one subtree.
type converter struct {
	base  *url.URL
	inPre int
}

func (c *converter) render(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		if c.inPre > 0 {
			return n.Data
		}
		return whitespaceRegex.ReplaceAllString(n.Data, " ")
	case html.DocumentNode:
		return c.children(n)
	case html.ElementNode:
	default:
		return ""
	}

	tag := strings.ToLower(n.Data)
	if skippedElements[tag] {
		return ""
	}

	switch {
	case tag == "br":
		return "\n"
	case blockElements[tag]:
		return "\n\n" + c.children(n) + "\n\n"
	}

	switch tag {
	case "li":
		return "\n" + BulletMarker + strings.TrimSpace(c.children(n)) + "\n"
	case "ul", "ol":
		return "\n" + c.children(n) + "\n"
	case "blockquote":
		return "\n\n" + quoteLines(finishStructuredText(c.children(n))) + "\n\n"
	case "a":
		return c.anchor(n)
	case "strong", "b":
		return wrapInline(c.children(n), "**")
	case "em", "i":
		return wrapInline(c.children(n), "*")
	case "code":
		if c.inPre > 0 {
			return c.children(n)
		}
		return wrapInline(c.children(n), "`")
	case "pre":
		c.inPre++
		inner := c.children(n)
		c.inPre--
		return "\n\n```\n" + strings.Trim(inner, "\n") + "\n```\n\n"
	}

	return c.children(n)
}

func (c *converter) children(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(c.render(child))
	}
	return b.String()
}

// anchor renders a link as [text](absoluteURL). Links without text, in-page
// "#" links, javascript: links and unparseable targets degrade to their text.
func (c *converter) anchor(n *html.Node) string {
	inner := c.children(n)
	text := strings.TrimSpace(inner)
	href := strings.TrimSpace(attr(n, "href"))

	if text == "" || href == "" || href == "#" ||
		strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return inner
	}

	target, err := url.Parse(href)
	if err != nil {
		return inner
	}
	if c.base != nil {
		target = c.base.ResolveReference(target)
	}

	lead, trail := edgeSpace(inner)
	return lead + "[" + text + "](" + target.String() + ")" + trail
}

// wrapInline wraps the trimmed text in marker, keeping surrounding spaces outside.
func wrapInline(inner, marker string) string {
	text := strings.TrimSpace(inner)
	if text == "" {
		return inner
	}
	lead, trail := edgeSpace(inner)
	return lead + marker + text + marker + trail
}

func edgeSpace(s string) (string, string) {
	var lead, trail string
	if strings.TrimLeft(s, " \t\n") != s {
		lead = " "
	}
	if strings.TrimRight(s, " \t\n") != s {
		trail = " "
	}
	return lead, trail
}

func quoteLines(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// finishStructuredText collapses horizontal whitespace, trims each line,
// keeps at most one blank line between blocks and trims the result.
func finishStructuredText(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpaceRegex.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = extraNewlinesRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
