package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	g "maragu.dev/gomponents"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// RenderNode renders a node and parses the result.
func RenderNode(t testing.TB, node g.Node) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		t.Fatalf("render node: %v", err)
	}
	return ParseHTML(t, buf.Bytes())
}

// MetaContents returns the content attribute of every <meta> whose attr equals key, in document order.
func MetaContents(doc *goquery.Document, attr, key string) []string {
	var out []string
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok && v == key {
			content, _ := s.Attr("content")
			out = append(out, content)
		}
	})
	return out
}

// JSONLD returns the bodies of all application/ld+json scripts in document order.
func JSONLD(doc *goquery.Document) []string {
	var out []string
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}
