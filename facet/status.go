package facet

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ReservationStatus is the normalized availability of one seat category.
type ReservationStatus string

const (
	StatusAvailable ReservationStatus = "available"
	StatusFew       ReservationStatus = "few"
	StatusFull      ReservationStatus = "full"
	StatusNone      ReservationStatus = "none"
)

// Statuses lists every ReservationStatus in display order.
var Statuses = []ReservationStatus{StatusAvailable, StatusFew, StatusFull, StatusNone}

var ErrInvalidStatus = errors.New("invalid reservation status")

// ParseStatus validates user input against the status enum.
func ParseStatus(s string) (ReservationStatus, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Glyphs are matched as substrings and English words on word boundaries, so
// "Available (3 seats)" reads as available and "unavailable" does not.
type markerSet struct {
	substrings []string
	words      *regexp.Regexp
}

func newMarkerSet(substrings []string, word string) markerSet {
	return markerSet{
		substrings: substrings,
		words:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`),
	}
}

func (ms markerSet) matches(raw string) bool {
	for _, s := range ms.substrings {
		if strings.Contains(raw, s) {
			return true
		}
	}
	return ms.words.MatchString(raw)
}

// Matching order is fixed: available, few, full. Anything else, including
// the not-held glyphs (未実施, －), is none.
var (
	availableMarkers = newMarkerSet([]string{"〇", "○", "◯", "空きあり"}, "available")
	fewMarkers       = newMarkerSet([]string{"△", "▲", "残りわずか", "残り僅か"}, "few")
	fullMarkers      = newMarkerSet([]string{"×", "✕", "✖", "満席"}, "full")
	unusedMarkers    = newMarkerSet([]string{"未使用"}, "unused")
)

// Classification is the result of classifying one raw availability string.
// Unused is reported separately from the status: a standing area marked
// unused is hidden in presentation rather than shown as "none".
type Classification struct {
	Status ReservationStatus `json:"status"`
	Unused bool              `json:"unused"`
}

// Classify normalizes a raw availability string. It never fails; strings
// that carry no known marker resolve to StatusNone.
func Classify(raw string) Classification {
	c := Classification{Status: StatusNone, Unused: unusedMarkers.matches(raw)}

	switch {
	case availableMarkers.matches(raw):
		c.Status = StatusAvailable
	case fewMarkers.matches(raw):
		c.Status = StatusFew
	case fullMarkers.matches(raw):
		c.Status = StatusFull
	}
	return c
}

// ClassifyStatus is Classify without the unused flag.
func ClassifyStatus(raw string) ReservationStatus {
	return Classify(raw).Status
}

// StatusLabel is the presentation entry for one status.
type StatusLabel struct {
	Status  ReservationStatus `json:"status"`
	LabelJa string            `json:"label_ja"`
	LabelEn string            `json:"label_en"`
	Icon    string            `json:"icon"`
}

// StatusLabels is the label/glyph table used by dashboards.
var StatusLabels = []StatusLabel{
	{Status: StatusAvailable, LabelJa: "空きあり", LabelEn: "Available", Icon: "〇"},
	{Status: StatusFew, LabelJa: "残りわずか", LabelEn: "Few", Icon: "△"},
	{Status: StatusFull, LabelJa: "満席", LabelEn: "Full", Icon: "×"},
	{Status: StatusNone, LabelJa: "未実施", LabelEn: "None", Icon: "－"},
}
