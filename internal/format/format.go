package format

import (
	"strings"
	"time"
	"unicode"
)

const wordsPerMinute = 200

// FmtDate formats t in a reader-friendly short form for the given language.
// The zero time formats as an empty string.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "iso":
		return t.Format("2006-01-02")
	case "en-us":
		return t.Format("Jan 2, 2006")
	default:
		return t.Format("2 Jan 2006")
	}
}

// ISO8601 formats t as RFC 3339, the form structured data expects.
// The zero time formats as an empty string.
func ISO8601(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ReadingMinutes estimates reading time for plain text, never less than one minute.
func ReadingMinutes(text string) int {
	words := len(strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '\'' && r != '-')
	}))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
