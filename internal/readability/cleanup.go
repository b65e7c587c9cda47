package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// prepArticle removes leftover chrome from the assembled article.
func (r *Readability) prepArticle(article *goquery.Selection) {
	r.cleanStyles(article)

	article.Find("iframe, object, embed, footer, aside, button, input, textarea, select, nav").Remove()

	if r.flags&FlagCleanConditionally != 0 {
		r.cleanConditionally(article, "form, fieldset, table, ul, ol, div, section")
	}

	article.Find("p").Each(func(_ int, p *goquery.Selection) {
		if getInnerText(p, false) == "" && p.Find("img, embed, object, iframe").Length() == 0 {
			p.Remove()
		}
	})
	article.Find("br").Each(func(_ int, br *goquery.Selection) {
		if next := br.Next(); next.Length() > 0 && getNodeName(next) == "p" {
			br.Remove()
		}
	})

	if !r.options.KeepClasses {
		r.cleanClasses(article)
	}
}

// cleanStyles drops presentational attributes from every element.
func (r *Readability) cleanStyles(article *goquery.Selection) {
	article.Find("*").AddBack().Each(func(_ int, s *goquery.Selection) {
		for _, attr := range PresentationalAttributes {
			s.RemoveAttr(attr)
		}
	})
}

// cleanClasses strips class attributes down to ClassesToPreserve.
func (r *Readability) cleanClasses(article *goquery.Selection) {
	article.Find("[class]").AddBack().Each(func(_ int, s *goquery.Selection) {
		value, ok := s.Attr("class")
		if !ok {
			return
		}
		var kept []string
		for _, class := range strings.Fields(value) {
			if contains(r.options.ClassesToPreserve, class) {
				kept = append(kept, class)
			}
		}
		if len(kept) == 0 {
			s.RemoveAttr("class")
			return
		}
		s.SetAttr("class", strings.Join(kept, " "))
	})
}

// isPreserved reports whether s carries one of ClassesToPreserve.
func (r *Readability) isPreserved(s *goquery.Selection) bool {
	for _, class := range strings.Fields(s.AttrOr("class", "")) {
		if contains(r.options.ClassesToPreserve, class) {
			return true
		}
	}
	return false
}

// cleanConditionally removes elements matching selector that look like
// link lists, image galleries or forms rather than prose. Elements carrying a
// preserved class are kept.
func (r *Readability) cleanConditionally(article *goquery.Selection, selector string) {
	nodes := article.Find(selector)
	for i := nodes.Length() - 1; i >= 0; i-- {
		s := nodes.Eq(i)
		if r.isPreserved(s) || hasAncestorTag(s.Get(0), "code", 0) || hasAncestorTag(s.Get(0), "pre", 0) {
			continue
		}

		weight := 0
		if r.flags&FlagWeightClasses != 0 {
			weight = getClassWeight(s)
		}
		if weight < 0 {
			s.Remove()
			continue
		}
		if getCharCount(s, ",") >= 10 {
			continue
		}

		tag := getNodeName(s)
		paragraphs := s.Find("p").Length()
		images := s.Find("img").Length()
		listItems := s.Find("li").Length() - 100
		inputs := s.Find("input").Length()
		linkDensity := getLinkDensity(s)
		contentLength := len(getInnerText(s, true))
		isList := tag == "ul" || tag == "ol"

		remove := (images > 1 && float64(paragraphs)/float64(images) < 0.5) ||
			(!isList && listItems > paragraphs) ||
			(inputs > paragraphs/3) ||
			(!isList && contentLength < minScoredTextLength && (images == 0 || images > 2) && s.Find("h1, h2, h3, h4, h5, h6").Length() == 0) ||
			(weight < 25 && linkDensity > 0.2) ||
			(weight >= 25 && linkDensity > 0.5)

		if remove {
			s.Remove()
		}
	}
}
