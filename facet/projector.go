package facet

import (
	"sort"

	"crowd-status/models/venue"
)

// SeatView is one seat category of a projected match. A hidden seat carries
// no status.
type SeatView struct {
	Raw    string            `json:"raw"`
	Status ReservationStatus `json:"status,omitempty"`
	Hidden bool              `json:"hidden"`
}

// MatchView is a match that passed the match-level predicate.
type MatchView struct {
	venue.Match
	SortKey  string   `json:"sort_key"`
	Table    SeatView `json:"table"`
	Standing SeatView `json:"standing"`
}

// VenueResult pairs a venue with its visible matches.
type VenueResult struct {
	Venue   venue.Venue `json:"venue"`
	Matches []MatchView `json:"matches"`
}

// Project narrows every venue to the matches that pass the match-level
// predicate, sorted by MatchSortKey. Venues left without a visible match are
// dropped. The same predicate as Filter is used, so a venue never appears
// with zero rows.
func Project(venues []venue.Venue, state FilterState) []VenueResult {
	p := newPredicate(state, "")
	out := make([]VenueResult, 0, len(venues))
	for i := range venues {
		v := &venues[i]
		if !p.venuePasses(v) {
			continue
		}
		var matches []MatchView
		for j := range v.Matches {
			m := &v.Matches[j]
			if p.matchPasses(m) {
				matches = append(matches, newMatchView(m))
			}
		}
		if len(matches) == 0 {
			continue
		}
		sort.SliceStable(matches, func(a, b int) bool {
			return matches[a].SortKey < matches[b].SortKey
		})

		header := *v
		header.Matches = nil
		out = append(out, VenueResult{Venue: header, Matches: matches})
	}
	return out
}

func newMatchView(m *venue.Match) MatchView {
	table := Classify(m.Status.Table)
	standing := Classify(m.Status.Standing)

	mv := MatchView{
		Match:   *m,
		SortKey: MatchSortKey(m),
		Table:   SeatView{Raw: m.Status.Table, Status: table.Status},
		Standing: SeatView{
			Raw:    m.Status.Standing,
			Status: standing.Status,
			Hidden: standing.Unused,
		},
	}
	if mv.Standing.Hidden {
		mv.Standing.Status = ""
	}
	return mv
}
