package cms

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	bodyPolicy = newBodyHTMLPolicy()
)

func newBodyHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// renderBody converts the source body to HTML when needed and sanitizes it.
// Raw HTML inside markdown is passed through goldmark and cleaned afterwards.
func renderBody(body, format string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if format != "html" {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(body), &buf); err == nil {
			body = buf.String()
		}
	}
	return strings.TrimSpace(bodyPolicy.Sanitize(body))
}
