package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"crowd-status/facet"
	"crowd-status/metrics"
	"crowd-status/models/venue"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu       sync.Mutex
	ctrl     *facet.Controller
	lastSeen time.Time
}

// SessionService keeps one filter controller per dashboard session.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*session
	metrics  metrics.MetricsCollector
	now      func() time.Time
}

func NewSessionService(m metrics.MetricsCollector) *SessionService {
	if m == nil {
		m = metrics.Noop{}
	}
	return &SessionService{
		sessions: make(map[string]*session),
		metrics:  m,
		now:      time.Now,
	}
}

// Create opens a session with the unconstrained state.
func (s *SessionService) Create() (string, facet.FilterState) {
	id := uuid.NewString()
	sess := &session{ctrl: facet.NewController(), lastSeen: s.now()}

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(n)
	return id, sess.ctrl.State()
}

func (s *SessionService) Get(id string) (facet.FilterState, error) {
	return s.apply(id, func(*facet.Controller) error { return nil })
}

// SetFilter writes a dimension by name; cascade rules apply.
func (s *SessionService) SetFilter(id string, d facet.Dimension, values []string) (facet.FilterState, error) {
	return s.apply(id, func(c *facet.Controller) error { return c.Set(d, values) })
}

// Toggle flips a status dimension between value and ALL.
func (s *SessionService) Toggle(id string, d facet.Dimension, value string) (facet.FilterState, error) {
	return s.apply(id, func(c *facet.Controller) error { return c.Toggle(d, value) })
}

func (s *SessionService) Reset(id string) (facet.FilterState, error) {
	return s.apply(id, func(c *facet.Controller) error {
		c.Reset()
		return nil
	})
}

func (s *SessionService) SetLanguage(id string, lang venue.Language) (facet.FilterState, error) {
	return s.apply(id, func(c *facet.Controller) error {
		c.SetLanguage(lang)
		return nil
	})
}

func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.metrics.SetActiveSessions(n)
	return nil
}

func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneIdle drops sessions not touched within maxIdle and returns how many
// were removed.
func (s *SessionService) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.metrics.SetActiveSessions(n)
	}
	return removed
}

// StartJanitor prunes idle sessions every interval until ctx is done.
func (s *SessionService) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.PruneIdle(maxIdle); n > 0 {
					slog.Info("pruned idle sessions",
						slog.String("component", "SessionService"),
						slog.Int("removed", n),
					)
				}
			}
		}
	}()
}

func (s *SessionService) apply(id string, fn func(*facet.Controller) error) (facet.FilterState, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return facet.FilterState{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = s.now()
	if err := fn(sess.ctrl); err != nil {
		return facet.FilterState{}, err
	}
	return sess.ctrl.State(), nil
}
