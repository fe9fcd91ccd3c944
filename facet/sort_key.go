package facet

import (
	"regexp"
	"strings"

	"crowd-status/models/venue"
)

// UntimedSentinel sorts titles without a time token after every timed
// title on the same date.
const UntimedSentinel = "99:99"

// A trailing "(19:30)" or "（19：30）", optionally followed by whitespace.
var timeTokenPattern = regexp.MustCompile(`[(（]\s*([0-9]{1,2}[:：][0-9]{2})\s*[)）]\s*$`)

// ExtractTime returns the trailing time token of a title as "HH:MM".
func ExtractTime(title string) (string, bool) {
	parts := timeTokenPattern.FindStringSubmatch(title)
	if parts == nil {
		return "", false
	}
	t := strings.Replace(parts[1], "：", ":", 1)
	for len(t) < 5 {
		t = "0" + t
	}
	return t, true
}

// SortKey builds "<date> <HH:MM>" for lexicographic ordering.
func SortKey(date, titleWithTime string) string {
	t, ok := ExtractTime(titleWithTime)
	if !ok {
		t = UntimedSentinel
	}
	return date + " " + t
}

// MatchSortKey is the key used everywhere matches are ordered or grouped.
// The primary title is authoritative; the secondary title is consulted only
// when the primary one carries no time.
func MatchSortKey(m *venue.Match) string {
	if _, ok := ExtractTime(m.Match); !ok {
		if _, ok := ExtractTime(m.MatchEn); ok {
			return SortKey(m.Date, m.MatchEn)
		}
	}
	return SortKey(m.Date, m.Match)
}
