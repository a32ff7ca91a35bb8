package seo

import "regexp"

// An unterminated "<..." also matches and runs to end of input.
var tagPattern = regexp.MustCompile(`<[^>]*>?`)

// StripTags removes markup in a single pass. Entities are left as-is.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return tagPattern.ReplaceAllString(s, "")
}
