package facet

import (
	"testing"

	"crowd-status/models/venue"
	"github.com/stretchr/testify/assert"
)

func TestSortKey_Ordering(t *testing.T) {
	early := SortKey("2026-02-14", "A vs B (19:30)")
	late := SortKey("2026-02-14", "A vs B (20:00)")
	untimed := SortKey("2026-02-14", "A vs B (no time)")

	assert.Equal(t, "2026-02-14 19:30", early)
	assert.Equal(t, "2026-02-14 99:99", untimed)
	assert.Less(t, early, late)
	assert.Less(t, late, untimed)
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		title string
		want  string
		ok    bool
	}{
		{"A vs B (19:30)", "19:30", true},
		{"A vs B (9:30)", "09:30", true},
		{"A vs B（19：00）", "19:00", true},
		{"A vs B (19:30)  ", "19:30", true},
		{"A vs B (19:30) final", "", false},
		{"A vs B", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := ExtractTime(tt.title)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortKey_PaddedHourSortsBeforeLaterHour(t *testing.T) {
	assert.Less(t, SortKey("2026-02-14", "X (9:30)"), SortKey("2026-02-14", "Y (10:00)"))
}

func TestMatchSortKey_FallsBackToSecondaryTitle(t *testing.T) {
	m := venue.Match{Date: "2026-02-14", Match: "日本 vs 韓国", MatchEn: "Japan vs Korea (18:00)"}
	assert.Equal(t, "2026-02-14 18:00", MatchSortKey(&m))

	m = venue.Match{Date: "2026-02-14", Match: "日本 vs 韓国 (20:00)", MatchEn: "Japan vs Korea (18:00)"}
	assert.Equal(t, "2026-02-14 20:00", MatchSortKey(&m))
}
