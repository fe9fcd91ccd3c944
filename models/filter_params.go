package models

import (
	"fmt"
	"net/url"

	"crowd-status/facet"
	"crowd-status/models/venue"

	"github.com/gorilla/schema"
)

// FilterParams is the query-string form of a facet.FilterState. Use zero-values to omit.
type FilterParams struct {
	Lang           string   `schema:"lang"`   // "ja" (default) | "en"
	Search         string   `schema:"q"`      // free text
	Region         []string `schema:"region"` // repeated key per value
	Prefecture     []string `schema:"prefecture"`
	City           []string `schema:"city"`
	StoreName      []string `schema:"store"`
	Date           []string `schema:"date"` // YYYY-MM-DD
	Sport          []string `schema:"sport"`
	Match          []string `schema:"match"`
	TableStatus    string   `schema:"table_status"`    // "ALL" | available | few | full | none
	StandingStatus string   `schema:"standing_status"` // same as TableStatus
	Legacy         bool     `schema:"legacy"`          // prepend "ALL" to single-select option lists
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// DecodeFilterParams reads FilterParams from a request query.
func DecodeFilterParams(q url.Values) (FilterParams, error) {
	var p FilterParams
	if err := decoder.Decode(&p, q); err != nil {
		return FilterParams{}, fmt.Errorf("invalid filter params: %w", err)
	}
	return p, nil
}

// ToFilterState validates the params and applies them through a controller,
// parents before children, so the result obeys the same cascade rules as
// interactive edits.
func (p FilterParams) ToFilterState() (facet.FilterState, error) {
	c := facet.NewController()

	lang, ok := venue.ParseLanguage(p.Lang)
	if !ok {
		return facet.FilterState{}, fmt.Errorf("invalid language %q", p.Lang)
	}
	c.SetLanguage(lang)

	steps := []struct {
		dim    facet.Dimension
		values []string
	}{
		{facet.DimensionSearch, single(p.Search)},
		{facet.DimensionRegion, p.Region},
		{facet.DimensionPrefecture, p.Prefecture},
		{facet.DimensionCity, p.City},
		{facet.DimensionStoreName, p.StoreName},
		{facet.DimensionDate, p.Date},
		{facet.DimensionSport, p.Sport},
		{facet.DimensionMatch, p.Match},
		{facet.DimensionTableStatus, single(p.TableStatus)},
		{facet.DimensionStandingStatus, single(p.StandingStatus)},
	}
	for _, s := range steps {
		if err := c.Set(s.dim, s.values); err != nil {
			return facet.FilterState{}, err
		}
	}
	return c.State(), nil
}

// FilterParamsFromState is the inverse of ToFilterState.
func FilterParamsFromState(s facet.FilterState) FilterParams {
	return FilterParams{
		Lang:           string(s.Language),
		Search:         s.Search,
		Region:         s.Region,
		Prefecture:     s.Prefecture,
		City:           s.City,
		StoreName:      s.StoreName,
		Date:           s.Date,
		Sport:          s.Sport,
		Match:          s.Match,
		TableStatus:    string(s.TableStatus),
		StandingStatus: string(s.StandingStatus),
	}
}

func (p FilterParams) ToValues() url.Values {
	q := url.Values{}

	if p.Lang != "" && p.Lang != string(venue.LanguageJa) {
		q.Set("lang", p.Lang)
	}
	if p.Search != "" {
		q.Set("q", p.Search)
	}
	addAll(q, "region", p.Region)
	addAll(q, "prefecture", p.Prefecture)
	addAll(q, "city", p.City)
	addAll(q, "store", p.StoreName)
	addAll(q, "date", p.Date)
	addAll(q, "sport", p.Sport)
	addAll(q, "match", p.Match)
	if p.TableStatus != "" && p.TableStatus != facet.AllSentinel {
		q.Set("table_status", p.TableStatus)
	}
	if p.StandingStatus != "" && p.StandingStatus != facet.AllSentinel {
		q.Set("standing_status", p.StandingStatus)
	}
	if p.Legacy {
		q.Set("legacy", "true")
	}

	return q
}

func addAll(q url.Values, key string, values []string) {
	for _, v := range values {
		q.Add(key, v)
	}
}

func single(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
