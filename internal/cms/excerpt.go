package cms

import (
	"strings"

	"golang.org/x/net/html"
)

// Excerpt returns up to limit runes of visible text from an HTML fragment,
// with whitespace collapsed. Truncated text ends with an ellipsis.
func Excerpt(fragment string, limit int) string {
	if strings.TrimSpace(fragment) == "" || limit <= 0 {
		return ""
	}
	var b strings.Builder
	skip := 0
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return truncateRunes(strings.Join(strings.Fields(b.String()), " "), limit)
		case html.StartTagToken:
			if isHiddenTag(z) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 && isHiddenTag(z) {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}

func isHiddenTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style", "template", "noscript":
		return true
	}
	return false
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	cut := strings.TrimRight(string(r[:limit]), " ")
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return cut + "…"
}
