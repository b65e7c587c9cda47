package readability

import (
	"math"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// candidate is a scored ancestor of some content.
type candidate struct {
	node  *goquery.Selection
	score float64
}

// grabArticleNode scores the current body and builds an article container
// from the top candidate and its qualifying siblings.
func (r *Readability) grabArticleNode() *goquery.Selection {
	body := r.doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	root := body.Get(0)

	elementsToScore := r.prepareNodesForScoring(body, root)
	candidates := r.scoreNodes(elementsToScore)

	var top *candidate
	for _, c := range r.topCandidates(candidates) {
		top = c
		break
	}
	if top == nil || getNodeName(top.node) == "body" {
		top = &candidate{node: body}
	}

	article := newContainer()
	article.AppendSelection(top.node.Clone())
	if top.node.Get(0) != root {
		r.addSiblings(article, top, candidates)
	}
	return article
}

// prepareNodesForScoring removes hidden and unlikely nodes and returns the
// elements whose text feeds the scores.
func (r *Readability) prepareNodesForScoring(body *goquery.Selection, root *html.Node) []*goquery.Selection {
	var nodes []*goquery.Selection
	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, s)
	})

	var elementsToScore []*goquery.Selection
	for _, s := range nodes {
		node := s.Get(0)
		if !isAttached(node, root) {
			continue
		}
		tag := getNodeName(s)

		if !isNodeVisible(node) {
			s.Remove()
			continue
		}

		if r.articleByline == "" && r.checkByline(s) {
			s.Remove()
			continue
		}

		if r.flags&FlagStripUnlikelys != 0 && r.isUnlikely(s, tag) {
			s.Remove()
			continue
		}

		switch {
		case contains(DefaultTagsToScore, tag):
			elementsToScore = append(elementsToScore, s)
		case tag == "div" && !hasChildElement(node, DivToPElems):
			elementsToScore = append(elementsToScore, s)
		}
	}
	return elementsToScore
}

// checkByline records the first short byline-looking node.
func (r *Readability) checkByline(s *goquery.Selection) bool {
	match := s.AttrOr("rel", "") + " " + s.AttrOr("itemprop", "") + " " + s.AttrOr("class", "") + " " + s.AttrOr("id", "")
	if !RegexpByline.MatchString(match) {
		return false
	}
	text := getInnerText(s, true)
	if text == "" || len(text) >= 100 {
		return false
	}
	r.articleByline = text
	return true
}

// scoreNodes credits each scored element's ancestors with a content score.
func (r *Readability) scoreNodes(elementsToScore []*goquery.Selection) []*candidate {
	byNode := map[*html.Node]*candidate{}
	var ordered []*candidate

	for _, elem := range elementsToScore {
		node := elem.Get(0)
		if node.Parent == nil {
			continue
		}
		innerText := getInnerText(elem, true)
		if len(innerText) < minScoredTextLength {
			continue
		}

		parents := ancestors(node, ancestorDepth)
		if len(parents) == 0 {
			continue
		}

		contentScore := 1.0
		contentScore += float64(strings.Count(innerText, ","))
		contentScore += math.Min(math.Floor(float64(len(innerText))/textLengthDivisor), maxLengthBonus)

		for level, parent := range parents {
			if parent.Parent == nil {
				continue
			}
			c, ok := byNode[parent]
			if !ok {
				c = r.initializeCandidate(goquery.NewDocumentFromNode(parent).Selection)
				byNode[parent] = c
				ordered = append(ordered, c)
			}

			divider := 1.0
			switch {
			case level == 1:
				divider = 2
			case level > 1:
				divider = float64(level) * 3
			}
			c.score += contentScore / divider
		}
	}
	return ordered
}

// initializeCandidate seeds a score from the tag and, when enabled, class weight.
func (r *Readability) initializeCandidate(s *goquery.Selection) *candidate {
	c := &candidate{node: s}
	switch getNodeName(s) {
	case "div":
		c.score = 5
	case "pre", "td", "blockquote":
		c.score = 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form":
		c.score = -3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th":
		c.score = -5
	}
	if r.flags&FlagWeightClasses != 0 {
		c.score += float64(getClassWeight(s))
	}
	return c
}

// topCandidates scales scores by link density and returns the best
// NbTopCandidates, highest first.
func (r *Readability) topCandidates(candidates []*candidate) []*candidate {
	for _, c := range candidates {
		c.score *= 1 - getLinkDensity(c.node)
	}
	sorted := append([]*candidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score > sorted[j].score
	})
	if len(sorted) > r.options.NbTopCandidates {
		sorted = sorted[:r.options.NbTopCandidates]
	}
	return sorted
}

// addSiblings appends siblings of the top candidate that score well or read
// like prose.
func (r *Readability) addSiblings(article *goquery.Selection, top *candidate, candidates []*candidate) {
	threshold := math.Max(minSiblingScore, top.score*siblingScoreMultiplier)
	topClass := top.node.AttrOr("class", "")

	top.node.Siblings().Each(func(_ int, sibling *goquery.Selection) {
		score := 0.0
		for _, c := range candidates {
			if c.node.Get(0) == sibling.Get(0) {
				score = c.score
				break
			}
		}
		if topClass != "" && sibling.AttrOr("class", "") == topClass {
			score += top.score * siblingScoreMultiplier
		}

		switch {
		case score >= threshold:
			article.AppendSelection(sibling.Clone())
		case getNodeName(sibling) == "p":
			if isProseParagraph(sibling) {
				article.AppendSelection(sibling.Clone())
			}
		}
	})
}

// isProseParagraph accepts long low-link paragraphs and short link-free
// paragraphs that end a sentence.
func isProseParagraph(p *goquery.Selection) bool {
	linkDensity := getLinkDensity(p)
	text := getInnerText(p, true)
	switch {
	case len(text) > shortParagraphLength:
		return linkDensity < paragraphLinkDensity
	case len(text) > 0 && linkDensity == 0:
		return strings.Contains(text, ". ") || strings.HasSuffix(text, ".")
	}
	return false
}

// newContainer returns a detached <div> to collect article nodes in.
func newContainer() *goquery.Selection {
	div := &html.Node{Type: html.ElementNode, Data: "div"}
	div.Attr = []html.Attribute{{Key: "id", Val: "readability-page-1"}}
	return goquery.NewDocumentFromNode(div).Selection
}
