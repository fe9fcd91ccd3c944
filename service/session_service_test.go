package services

import (
	"testing"
	"time"

	"crowd-status/facet"
	"crowd-status/models/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Lifecycle(t *testing.T) {
	s := NewSessionService(nil)

	id, state := s.Create()
	require.NotEmpty(t, id)
	assert.Equal(t, facet.NewFilterState(), state)
	assert.Equal(t, 1, s.Count())

	state, err := s.SetFilter(id, facet.DimensionPrefecture, []string{"東京都"})
	require.NoError(t, err)
	assert.Equal(t, []string{"東京都"}, state.Prefecture)

	state, err = s.SetFilter(id, facet.DimensionRegion, []string{"関東"})
	require.NoError(t, err)
	assert.Nil(t, state.Prefecture)

	state, err = s.Toggle(id, facet.DimensionTableStatus, "few")
	require.NoError(t, err)
	assert.Equal(t, facet.StatusSelection(facet.StatusFew), state.TableStatus)

	state, err = s.SetLanguage(id, venue.LanguageEn)
	require.NoError(t, err)
	assert.Equal(t, venue.LanguageEn, state.Language)
	assert.Equal(t, []string{"関東"}, state.Region)

	state, err = s.Reset(id)
	require.NoError(t, err)
	assert.Nil(t, state.Region)
	assert.Equal(t, facet.StatusAll, state.TableStatus)
	assert.Equal(t, venue.LanguageEn, state.Language)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, state, got)

	require.NoError(t, s.Delete(id))
	assert.Zero(t, s.Count())
}

func TestSessionService_UnknownSession(t *testing.T) {
	s := NewSessionService(nil)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.SetFilter("missing", facet.DimensionCity, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrSessionNotFound)
}

func TestSessionService_InvalidInputLeavesStateUnchanged(t *testing.T) {
	s := NewSessionService(nil)
	id, before := s.Create()

	_, err := s.SetFilter(id, facet.DimensionTableStatus, []string{"busy"})
	assert.ErrorIs(t, err, facet.ErrInvalidStatus)

	after, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSessionService_SessionsAreIndependent(t *testing.T) {
	s := NewSessionService(nil)
	a, _ := s.Create()
	b, _ := s.Create()
	assert.NotEqual(t, a, b)

	_, err := s.SetFilter(a, facet.DimensionSport, []string{"野球"})
	require.NoError(t, err)

	stateB, err := s.Get(b)
	require.NoError(t, err)
	assert.Nil(t, stateB.Sport)
}

func TestSessionService_PruneIdle(t *testing.T) {
	s := NewSessionService(nil)
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	stale, _ := s.Create()
	now = now.Add(time.Hour)
	fresh, _ := s.Create()

	assert.Equal(t, 1, s.PruneIdle(30*time.Minute))

	_, err := s.Get(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(fresh)
	assert.NoError(t, err)
}
