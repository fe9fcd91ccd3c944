package facet

import (
	"errors"
	"fmt"
	"slices"

	"crowd-status/models/venue"
)

// Dimension names one filterable facet.
type Dimension string

const (
	DimensionSearch         Dimension = "search"
	DimensionRegion         Dimension = "region"
	DimensionPrefecture     Dimension = "prefecture"
	DimensionCity           Dimension = "city"
	DimensionStoreName      Dimension = "storeName"
	DimensionDate           Dimension = "date"
	DimensionSport          Dimension = "sport"
	DimensionMatch          Dimension = "match"
	DimensionTableStatus    Dimension = "tableStatus"
	DimensionStandingStatus Dimension = "standingStatus"
)

// Dimensions lists every dimension in panel order.
var Dimensions = []Dimension{
	DimensionSearch,
	DimensionRegion,
	DimensionPrefecture,
	DimensionCity,
	DimensionStoreName,
	DimensionDate,
	DimensionSport,
	DimensionMatch,
	DimensionTableStatus,
	DimensionStandingStatus,
}

var ErrUnknownDimension = errors.New("unknown filter dimension")

func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// IsStatus reports whether d is a single-select status dimension.
func (d Dimension) IsStatus() bool {
	return d == DimensionTableStatus || d == DimensionStandingStatus
}

// HasOptions reports whether d offers a computed option list. Search is free text.
func (d Dimension) HasOptions() bool {
	return d != DimensionSearch && d != ""
}

// AllSentinel is the universal "no constraint" selection.
const AllSentinel = "ALL"

// StatusSelection is either AllSentinel or one ReservationStatus.
type StatusSelection string

const StatusAll StatusSelection = AllSentinel

// ParseStatusSelection accepts "ALL", an empty string, or a status value.
func ParseStatusSelection(s string) (StatusSelection, error) {
	if s == "" || s == AllSentinel {
		return StatusAll, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", err
	}
	return StatusSelection(st), nil
}

// FilterState holds the current selection of every dimension plus the
// display language. The zero value is not ready for use; see NewFilterState.
type FilterState struct {
	Language       venue.Language  `json:"language"`
	Search         string          `json:"search"`
	Region         []string        `json:"region"`
	Prefecture     []string        `json:"prefecture"`
	City           []string        `json:"city"`
	StoreName      []string        `json:"storeName"`
	Date           []string        `json:"date"`
	Sport          []string        `json:"sport"`
	Match          []string        `json:"match"`
	TableStatus    StatusSelection `json:"tableStatus"`
	StandingStatus StatusSelection `json:"standingStatus"`
}

// NewFilterState returns the unconstrained state in Japanese.
func NewFilterState() FilterState {
	return FilterState{
		Language:       venue.LanguageJa,
		TableStatus:    StatusAll,
		StandingStatus: StatusAll,
	}
}

// Clone returns a deep copy.
func (s FilterState) Clone() FilterState {
	s.Region = slices.Clone(s.Region)
	s.Prefecture = slices.Clone(s.Prefecture)
	s.City = slices.Clone(s.City)
	s.StoreName = slices.Clone(s.StoreName)
	s.Date = slices.Clone(s.Date)
	s.Sport = slices.Clone(s.Sport)
	s.Match = slices.Clone(s.Match)
	return s
}

// Values returns the selection of d as a list. Unconstrained dimensions
// yield nil.
func (s FilterState) Values(d Dimension) []string {
	switch d {
	case DimensionSearch:
		if s.Search == "" {
			return nil
		}
		return []string{s.Search}
	case DimensionRegion:
		return s.Region
	case DimensionPrefecture:
		return s.Prefecture
	case DimensionCity:
		return s.City
	case DimensionStoreName:
		return s.StoreName
	case DimensionDate:
		return s.Date
	case DimensionSport:
		return s.Sport
	case DimensionMatch:
		return s.Match
	case DimensionTableStatus:
		return statusValues(s.TableStatus)
	case DimensionStandingStatus:
		return statusValues(s.StandingStatus)
	}
	return nil
}

// IsConstrained reports whether d currently narrows the dataset.
func (s FilterState) IsConstrained(d Dimension) bool {
	return len(s.Values(d)) > 0
}

func statusValues(sel StatusSelection) []string {
	if sel == "" || sel == StatusAll {
		return nil
	}
	return []string{string(sel)}
}

func (s FilterState) language() venue.Language {
	if s.Language == "" {
		return venue.LanguageJa
	}
	return s.Language
}
