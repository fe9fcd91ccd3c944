package services

import (
	"errors"
	"fmt"
	"sync"

	"crowd-status/facet"
	"crowd-status/models"
	"crowd-status/models/venue"
)

// ErrDatasetLoading is returned by reads while the first dataset is loading.
var ErrDatasetLoading = errors.New("dataset is loading")

// LoadState describes the dataset as the dashboard sees it.
type LoadState struct {
	Loading    bool   `json:"loading"`
	HasData    bool   `json:"has_data"`
	Error      string `json:"error,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
	VenueCount int    `json:"venue_count"`
	MatchCount int    `json:"match_count"`
}

// DashboardService owns the current dataset. The slice is replaced
// wholesale and never mutated, so readers compute on whatever snapshot they
// took under the read lock.
type DashboardService struct {
	mu        sync.RWMutex
	venues    []venue.Venue
	updatedAt string
	hasData   bool
	loading   bool
	lastErr   error
}

// NewDashboardService starts in the loading state with no dataset.
func NewDashboardService() *DashboardService {
	return &DashboardService{loading: true}
}

// Replace swaps in a new dataset and clears any error. Malformed records are
// dropped; the count is returned.
func (s *DashboardService) Replace(feed *models.StatusFeedResponse) int {
	clean, dropped := venue.Sanitize(feed.Data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues = clean
	s.updatedAt = feed.UpdatedAt
	s.hasData = true
	s.loading = false
	s.lastErr = nil
	return dropped
}

func (s *DashboardService) MarkLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
}

// MarkFailed records a failed load. A prior dataset stays visible; without
// one the dataset becomes explicitly empty.
func (s *DashboardService) MarkFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = err
	if !s.hasData {
		s.venues = []venue.Venue{}
		s.hasData = true
	}
}

func (s *DashboardService) State() LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := LoadState{
		Loading:    s.loading,
		HasData:    s.hasData,
		UpdatedAt:  s.updatedAt,
		VenueCount: len(s.venues),
	}
	for i := range s.venues {
		st.MatchCount += len(s.venues[i].Matches)
	}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

// HasData reports whether a dataset, possibly empty, has been installed.
func (s *DashboardService) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasData
}

func (s *DashboardService) snapshot() ([]venue.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loading && !s.hasData {
		return nil, ErrDatasetLoading
	}
	return s.venues, nil
}

// VisibleResults projects the dataset through state.
func (s *DashboardService) VisibleResults(state facet.FilterState) ([]facet.VenueResult, error) {
	venues, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return facet.Project(venues, state), nil
}

// OptionsFor returns the cascading options of one dimension.
func (s *DashboardService) OptionsFor(state facet.FilterState, d facet.Dimension, legacy bool) ([]string, error) {
	if !d.HasOptions() {
		return nil, fmt.Errorf("%w: %s has no option list", facet.ErrUnknownDimension, d)
	}
	venues, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return facet.Options(venues, state, d, legacy), nil
}

// Facets returns the visible venues and every option list in one pass.
func (s *DashboardService) Facets(state facet.FilterState, legacy bool) (map[facet.Dimension][]string, []facet.VenueResult, error) {
	venues, err := s.snapshot()
	if err != nil {
		return nil, nil, err
	}
	return facet.AllOptions(venues, state, legacy), facet.Project(venues, state), nil
}
