package jsonld

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const scriptXPath = `//script[translate(@type, "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "abcdefghijklmnopqrstuvwxyz")="application/ld+json"]`

// Scripts returns the raw bodies of every JSON-LD script under root, in
// document order. Empty scripts are skipped.
func Scripts(root *html.Node) []string {
	if root == nil {
		return nil
	}
	nodes, err := htmlquery.QueryAll(root, scriptXPath)
	if err != nil {
		return nil
	}

	bodies := make([]string, 0, len(nodes))
	for _, n := range nodes {
		body := cleanScript(htmlquery.InnerText(n))
		if body != "" {
			bodies = append(bodies, body)
		}
	}
	return bodies
}

// Collect parses every JSON-LD script under root. A script that fails to
// parse is logged and skipped; it never prevents the others from loading.
func Collect(root *html.Node, log logrus.FieldLogger) []Value {
	scripts := Scripts(root)
	payloads := make([]Value, 0, len(scripts))
	for i, body := range scripts {
		v, err := Parse([]byte(body))
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("script", i).Debug("skipping malformed JSON-LD")
			}
			continue
		}
		payloads = append(payloads, v)
	}
	return payloads
}

// cleanScript strips comment and CDATA wrappers some CMSes put around JSON-LD.
func cleanScript(body string) string {
	body = strings.TrimSpace(body)
	for _, wrap := range [][2]string{{"<!--", "-->"}, {"//<![CDATA[", "//]]>"}, {"<![CDATA[", "]]>"}} {
		if strings.HasPrefix(body, wrap[0]) && strings.HasSuffix(body, wrap[1]) {
			body = strings.TrimSpace(body[len(wrap[0]) : len(body)-len(wrap[1])])
		}
	}
	return body
}
