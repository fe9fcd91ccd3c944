// Package facet evaluates the dashboard's faceted filters: which venues and
// matches survive the active selections, which options every dimension can
// still offer, and in which order matches are listed.
//
// Every function here is pure. Callers own the dataset and the FilterState
// and pass them in on each recomputation.
package facet

import (
	"sort"
	"strings"

	"crowd-status/models/venue"
)

// predicate is the filter pipeline for one FilterState. The excluded
// dimension is treated as unconstrained, which is how cascading options are
// computed without a separate filter per dimension.
type predicate struct {
	lang    venue.Language
	exclude Dimension

	query      string
	region     set
	prefecture set
	city       set
	storeName  set
	date       set
	sport      set
	match      set
	table      StatusSelection
	standing   StatusSelection
}

type set map[string]struct{}

func newSet(values []string) set {
	if len(values) == 0 {
		return nil
	}
	s := make(set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// admits is true for an unconstrained set. An empty value never matches a
// constrained set, so absent fields fail closed.
func (s set) admits(v string) bool {
	if s == nil {
		return true
	}
	if v == "" {
		return false
	}
	_, ok := s[v]
	return ok
}

func newPredicate(state FilterState, exclude Dimension) *predicate {
	p := &predicate{
		lang:     state.language(),
		exclude:  exclude,
		table:    StatusAll,
		standing: StatusAll,
	}
	keep := func(d Dimension) bool { return d != exclude }

	if keep(DimensionSearch) {
		p.query = strings.ToLower(strings.TrimSpace(state.Search))
	}
	if keep(DimensionRegion) {
		p.region = newSet(state.Region)
	}
	if keep(DimensionPrefecture) {
		p.prefecture = newSet(state.Prefecture)
	}
	if keep(DimensionCity) {
		p.city = newSet(state.City)
	}
	if keep(DimensionStoreName) {
		p.storeName = newSet(state.StoreName)
	}
	if keep(DimensionDate) {
		p.date = newSet(state.Date)
	}
	if keep(DimensionSport) {
		p.sport = newSet(state.Sport)
	}
	if keep(DimensionMatch) {
		p.match = newSet(state.Match)
	}
	if keep(DimensionTableStatus) && state.TableStatus != "" {
		p.table = state.TableStatus
	}
	if keep(DimensionStandingStatus) && state.StandingStatus != "" {
		p.standing = state.StandingStatus
	}
	return p
}

func containsFold(field, lowerQuery string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerQuery)
}

// venuePasses applies the venue-level predicates.
func (p *predicate) venuePasses(v *venue.Venue) bool {
	if p.query != "" &&
		!containsFold(v.Name, p.query) &&
		!containsFold(v.NameEn, p.query) &&
		!containsFold(v.Address, p.query) {
		return false
	}
	return p.region.admits(v.Region) &&
		p.prefecture.admits(v.Prefecture) &&
		p.city.admits(v.City) &&
		p.storeName.admits(v.DisplayName(p.lang))
}

// matchPasses applies the match-level predicate.
func (p *predicate) matchPasses(m *venue.Match) bool {
	if !p.date.admits(m.Date) || !p.sport.admits(m.Sport) || !p.match.admits(m.Title(p.lang)) {
		return false
	}
	if p.table != StatusAll && StatusSelection(ClassifyStatus(m.Status.Table)) != p.table {
		return false
	}
	if p.standing != StatusAll && StatusSelection(ClassifyStatus(m.Status.Standing)) != p.standing {
		return false
	}
	return true
}

// survives is true when the venue passes every venue-level predicate and at
// least one of its matches passes the match-level predicate.
func (p *predicate) survives(v *venue.Venue) bool {
	if !p.venuePasses(v) {
		return false
	}
	for i := range v.Matches {
		if p.matchPasses(&v.Matches[i]) {
			return true
		}
	}
	return false
}

// Result is the output of ComputeFacets.
type Result struct {
	// Visible holds the surviving venues with their full match lists.
	Visible []venue.Venue `json:"-"`
	// Options maps every dimension that has options to its selectable values.
	Options map[Dimension][]string `json:"options"`
}

// ComputeFacets filters the dataset and derives the option set of every
// dimension.
func ComputeFacets(venues []venue.Venue, state FilterState) Result {
	return Result{
		Visible: Filter(venues, state),
		Options: AllOptions(venues, state, false),
	}
}

// Filter returns the venues that survive every active filter, in dataset order.
func Filter(venues []venue.Venue, state FilterState) []venue.Venue {
	p := newPredicate(state, "")
	out := make([]venue.Venue, 0, len(venues))
	for i := range venues {
		if p.survives(&venues[i]) {
			out = append(out, venues[i])
		}
	}
	return out
}

// AllOptions computes Options for every dimension that offers them.
func AllOptions(venues []venue.Venue, state FilterState, legacy bool) map[Dimension][]string {
	out := make(map[Dimension][]string, len(Dimensions))
	for _, d := range Dimensions {
		if d.HasOptions() {
			out[d] = Options(venues, state, d, legacy)
		}
	}
	return out
}

// Options returns the values still selectable for d when d's own selection
// is ignored and every other selection stays active. Geography and store
// names keep first-seen order; dates and sports sort lexicographically;
// match titles order by their earliest sort key; statuses follow enum order.
// In legacy single-select mode the geography and store-name lists start with
// AllSentinel.
func Options(venues []venue.Venue, state FilterState, d Dimension, legacy bool) []string {
	if !d.HasOptions() {
		return nil
	}
	p := newPredicate(state, d)
	lang := p.lang

	var out []string
	switch d {
	case DimensionRegion, DimensionPrefecture, DimensionCity, DimensionStoreName:
		seen := make(set)
		if legacy {
			out = append(out, AllSentinel)
		}
		for i := range venues {
			v := &venues[i]
			if !p.survives(v) {
				continue
			}
			val := venueField(v, d, lang)
			if val == "" {
				continue
			}
			if _, dup := seen[val]; !dup {
				seen[val] = struct{}{}
				out = append(out, val)
			}
		}
		if out == nil {
			out = []string{}
		}

	case DimensionDate, DimensionSport:
		seen := make(set)
		eachPassingMatch(venues, p, func(m *venue.Match) {
			val := m.Date
			if d == DimensionSport {
				val = m.Sport
			}
			if val != "" {
				seen[val] = struct{}{}
			}
		})
		out = make([]string, 0, len(seen))
		for val := range seen {
			out = append(out, val)
		}
		sort.Strings(out)

	case DimensionMatch:
		minKey := make(map[string]string)
		eachPassingMatch(venues, p, func(m *venue.Match) {
			title := m.Title(lang)
			if title == "" {
				return
			}
			key := MatchSortKey(m)
			if cur, ok := minKey[title]; !ok || key < cur {
				minKey[title] = key
			}
		})
		out = make([]string, 0, len(minKey))
		for title := range minKey {
			out = append(out, title)
		}
		sort.Slice(out, func(i, j int) bool {
			ki, kj := minKey[out[i]], minKey[out[j]]
			if ki != kj {
				return ki < kj
			}
			return out[i] < out[j]
		})

	case DimensionTableStatus, DimensionStandingStatus:
		present := make(map[ReservationStatus]bool, len(Statuses))
		eachPassingMatch(venues, p, func(m *venue.Match) {
			raw := m.Status.Table
			if d == DimensionStandingStatus {
				raw = m.Status.Standing
			}
			present[ClassifyStatus(raw)] = true
		})
		out = make([]string, 0, len(Statuses))
		for _, st := range Statuses {
			if present[st] {
				out = append(out, string(st))
			}
		}
	}
	return out
}

// eachPassingMatch visits the matches that pass the match-level predicate
// inside venues that pass the venue-level predicates.
func eachPassingMatch(venues []venue.Venue, p *predicate, fn func(m *venue.Match)) {
	for i := range venues {
		v := &venues[i]
		if !p.venuePasses(v) {
			continue
		}
		for j := range v.Matches {
			if p.matchPasses(&v.Matches[j]) {
				fn(&v.Matches[j])
			}
		}
	}
}

func venueField(v *venue.Venue, d Dimension, lang venue.Language) string {
	switch d {
	case DimensionRegion:
		return v.Region
	case DimensionPrefecture:
		return v.Prefecture
	case DimensionCity:
		return v.City
	case DimensionStoreName:
		return v.DisplayName(lang)
	}
	return ""
}
