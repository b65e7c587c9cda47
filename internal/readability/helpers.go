package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// getNodeName returns the lowercase tag name of the first node in s.
func getNodeName(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return strings.ToLower(s.Get(0).Data)
}

// getInnerText returns the trimmed text of s, optionally collapsing runs of whitespace.
func getInnerText(s *goquery.Selection, normalizeSpaces bool) string {
	text := strings.TrimSpace(s.Text())
	if normalizeSpaces {
		text = RegexpNormalize.ReplaceAllString(text, " ")
	}
	return text
}

// getCharCount counts occurrences of delimiter in the text of s.
func getCharCount(s *goquery.Selection, delimiter string) int {
	return strings.Count(getInnerText(s, true), delimiter)
}

// getLinkDensity is the share of text in s that sits inside links. In-page
// links count for less.
func getLinkDensity(s *goquery.Selection) float64 {
	textLength := len(getInnerText(s, true))
	if textLength == 0 {
		return 0
	}

	var linkLength float64
	s.Find("a").Each(func(_ int, a *goquery.Selection) {
		coefficient := 1.0
		if href, _ := a.Attr("href"); strings.HasPrefix(href, "#") && len(href) > 1 {
			coefficient = hashLinkWeight
		}
		linkLength += float64(len(getInnerText(a, true))) * coefficient
	})
	return linkLength / float64(textLength)
}

// getClassWeight scores the class and id of s against the positive and negative patterns.
func getClassWeight(s *goquery.Selection) int {
	weight := 0
	for _, attr := range []string{"class", "id"} {
		value, ok := s.Attr(attr)
		if !ok || value == "" {
			continue
		}
		if RegexpNegative.MatchString(value) {
			weight -= classWeight
		}
		if RegexpPositive.MatchString(value) {
			weight += classWeight
		}
	}
	return weight
}

// isNodeVisible reports whether the node is rendered.
func isNodeVisible(node *html.Node) bool {
	for _, attr := range node.Attr {
		switch strings.ToLower(attr.Key) {
		case "style":
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return false
			}
		case "hidden":
			return false
		case "aria-hidden":
			if attr.Val == "true" && !strings.Contains(attrValue(node, "class"), "fallback-image") {
				return false
			}
		}
	}
	return true
}

// hasAncestorTag reports whether a parent within maxDepth levels has the
// given tag. A maxDepth of zero or less means unlimited.
func hasAncestorTag(node *html.Node, tag string, maxDepth int) bool {
	depth := 0
	for p := node.Parent; p != nil; p = p.Parent {
		if maxDepth > 0 && depth >= maxDepth {
			return false
		}
		if p.Type == html.ElementNode && strings.EqualFold(p.Data, tag) {
			return true
		}
		depth++
	}
	return false
}

// hasChildElement reports whether node has a direct element child in tags.
func hasChildElement(node *html.Node, tags []string) bool {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && contains(tags, strings.ToLower(c.Data)) {
			return true
		}
	}
	return false
}

// isAttached reports whether node is still connected to root.
func isAttached(node, root *html.Node) bool {
	for n := node; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

// ancestors returns up to maxDepth element parents of node, nearest first.
func ancestors(node *html.Node, maxDepth int) []*html.Node {
	var result []*html.Node
	for p := node.Parent; p != nil && p.Type == html.ElementNode; p = p.Parent {
		result = append(result, p)
		if len(result) == maxDepth {
			break
		}
	}
	return result
}

func attrValue(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

func contains(slice []string, s string) bool {
	for _, item := range slice {
		if item == s {
			return true
		}
	}
	return false
}
