package format

import (
	"strings"
	"testing"
	"time"
)

func TestFmtDate(t *testing.T) {
	ts := time.Date(2025, 9, 8, 10, 30, 0, 0, time.UTC)
	cases := map[string]string{
		"":      "8 Sep 2025",
		"en":    "8 Sep 2025",
		"EN-US": "Sep 8, 2025",
		"iso":   "2025-09-08",
	}
	for lang, want := range cases {
		if got := FmtDate(ts, lang); got != want {
			t.Fatalf("FmtDate(%q) = %q, want %q", lang, got, want)
		}
	}
	if got := FmtDate(time.Time{}, "en"); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
}

func TestISO8601(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2025, 9, 8, 10, 30, 0, 0, ist)
	if got := ISO8601(ts); got != "2025-09-08T10:30:00+05:30" {
		t.Fatalf("unexpected ISO8601: %q", got)
	}
	if got := ISO8601(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	if got := ReadingMinutes(""); got != 1 {
		t.Fatalf("empty text should read in 1 minute, got %d", got)
	}
	long := strings.Repeat("word, ", 401)
	if got := ReadingMinutes(long); got != 3 {
		t.Fatalf("expected 3 minutes for 401 words, got %d", got)
	}
}
