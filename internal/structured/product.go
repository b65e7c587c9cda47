package structured

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mrjoshuak/savekit/internal/extractors"
	"github.com/mrjoshuak/savekit/internal/jsonld"
	"github.com/mrjoshuak/savekit/types"
)

// CommerceDomains are hostname fragments of stores whose pages are scanned
// for a price even without structured data.
var CommerceDomains = []string{
	"amazon.",
	"ebay.",
	"etsy.",
	"shopify.",
	"walmart.",
	"target.",
	"bestbuy.",
}

// PriceSelectors locate a visible price on store pages, in order.
var PriceSelectors = []string{
	"[data-price]",
	`[itemprop="price"]`,
	".a-price .a-offscreen",
	"#priceblock_ourprice",
	"#priceblock_dealprice",
	"#corePrice_feature_div .a-offscreen",
	".price",
	".product-price",
	".price-current",
}

var (
	priceNumberRegex = regexp.MustCompile(`[\d,.]+`)
	plainPriceRegex  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	hasDigitRegex    = regexp.MustCompile(`\d`)
)

// ExtractProductData detects whether the page sells something and reads its
// price, currency, availability and description.
func ExtractProductData(doc *goquery.Document, pageURL *url.URL) types.ProductData {
	return NewPage(doc, pageURL, nil).Product()
}

// Product runs the product strategies in priority order: JSON-LD, Open Graph,
// then the store-domain price scan.
func (p *Page) Product() types.ProductData {
	data := types.ProductData{Currency: types.DefaultCurrency}

	node, found := jsonld.FindFirst(p.JSONLD, "Product")
	if found {
		data.IsProduct = true
		offers := node.Get("offers").First()
		for _, key := range []string{"price", "lowPrice", "highPrice"} {
			if price, ok := offers.Get(key).Text(); ok {
				data.Price = normalizePrice(price)
				break
			}
		}
		if currency, ok := offers.Get("priceCurrency").Text(); ok {
			data.Currency = strings.ToUpper(currency)
		}
		if availability, ok := offers.Get("availability").Text(); ok {
			stripped := jsonld.StripSchemaPrefix(availability)
			data.Availability = &stripped
		}
	} else {
		p.openGraphProduct(&data)
	}

	if data.Price == nil && p.isCommerceDomain() {
		if price := p.scanPrice(); price != nil {
			data.Price = price
			data.IsProduct = true
		}
	}

	if data.IsProduct {
		data.Description = p.ProductDescription()
	}
	return data
}

func (p *Page) openGraphProduct(data *types.ProductData) {
	switch strings.ToLower(extractors.MetaProperty(p.Doc, "og:type")) {
	case "product", "og:product":
		data.IsProduct = true
	}

	amount := firstNonEmpty(
		extractors.MetaProperty(p.Doc, "product:price:amount"),
		extractors.MetaProperty(p.Doc, "og:price:amount"),
	)
	if amount == "" {
		return
	}
	data.Price = normalizePrice(amount)
	data.IsProduct = data.IsProduct || data.Price != nil

	currency := firstNonEmpty(
		extractors.MetaProperty(p.Doc, "product:price:currency"),
		extractors.MetaProperty(p.Doc, "og:price:currency"),
	)
	if currency != "" {
		data.Currency = strings.ToUpper(currency)
	}
}

func (p *Page) isCommerceDomain() bool {
	host := p.Host()
	if host == "" {
		return false
	}
	for _, domain := range CommerceDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}

// scanPrice returns the first number found under PriceSelectors, with
// thousands separators removed.
func (p *Page) scanPrice() *string {
	if p.Doc == nil {
		return nil
	}
	for _, selector := range PriceSelectors {
		s := p.Doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		raw := s.AttrOr("data-price", "")
		if raw == "" {
			raw = s.AttrOr("content", "")
		}
		if raw == "" {
			raw = s.Text()
		}
		if price := extractNumber(raw); price != nil {
			return price
		}
	}
	return nil
}

// normalizePrice keeps plain numeric strings as they are and otherwise pulls
// the first number out of a formatted price like "$1,299.00".
func normalizePrice(raw string) *string {
	raw = strings.TrimSpace(raw)
	if plainPriceRegex.MatchString(raw) {
		return &raw
	}
	return extractNumber(raw)
}

func extractNumber(raw string) *string {
	for _, m := range priceNumberRegex.FindAllString(raw, -1) {
		if !hasDigitRegex.MatchString(m) {
			continue
		}
		price := strings.Trim(strings.ReplaceAll(m, ",", ""), ".")
		return &price
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
