package viewstate

import (
	"context"
	"sync"
	"time"

	"hmade-storefront/internal/logger"
	"hmade-storefront/internal/metrics"

	"go.uber.org/zap"
)

// Closer is a mounted view. Close must be safe to call more than once.
type Closer interface {
	Close()
}

// entry holds a view and the last time a request touched it.
type entry[V Closer] struct {
	view     V
	lastSeen time.Time
}

// Store keeps one view per user. Views untouched for longer than the idle
// TTL are closed by Sweep.
type Store[V Closer] struct {
	kind    string
	idleTTL time.Duration
	metrics *metrics.Metrics
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*entry[V]
}

func New[V Closer](kind string, idleTTL time.Duration, m *metrics.Metrics) *Store[V] {
	return &Store[V]{
		kind:    kind,
		idleTTL: idleTTL,
		metrics: m,
		now:     time.Now,
		entries: make(map[string]*entry[V]),
	}
}

// Get returns the user's view and marks it as seen.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	e.lastSeen = s.now()
	return e.view, true
}

// GetOrCreate returns the user's view, mounting one with create when absent.
// The bool reports whether the view was created by this call.
func (s *Store[V]) GetOrCreate(key string, create func() V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.lastSeen = s.now()
		return e.view, false
	}

	v := create()
	s.entries[key] = &entry[V]{view: v, lastSeen: s.now()}
	return v, true
}

// Replace mounts v for key, closing whatever view it displaces.
func (s *Store[V]) Replace(key string, v V) {
	s.mu.Lock()
	prev, ok := s.entries[key]
	s.entries[key] = &entry[V]{view: v, lastSeen: s.now()}
	s.mu.Unlock()

	if ok {
		prev.view.Close()
	}
}

// Remove unmounts the user's view. It reports whether one was mounted.
func (s *Store[V]) Remove(key string) bool {
	s.mu.Lock()
	e, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()

	if ok {
		e.view.Close()
	}
	return ok
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep closes every view idle for longer than the TTL and returns how many
// it evicted.
func (s *Store[V]) Sweep() int {
	now := s.now()

	var idle []V
	s.mu.Lock()
	for key, e := range s.entries {
		if now.Sub(e.lastSeen) > s.idleTTL {
			idle = append(idle, e.view)
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()

	for _, v := range idle {
		v.Close()
		s.metrics.IncViewEviction(s.kind)
	}

	if len(idle) > 0 {
		logger.L().Debug("evicted idle views",
			zap.String("component", "viewstate"),
			zap.String("kind", s.kind),
			zap.Int("count", len(idle)),
		)
	}
	return len(idle)
}

// Run sweeps on every interval until ctx is done, then closes all views.
func (s *Store[V]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-ctx.Done():
			s.CloseAll()
			return
		}
	}
}

// CloseAll unmounts every view.
func (s *Store[V]) CloseAll() {
	s.mu.Lock()
	all := s.entries
	s.entries = make(map[string]*entry[V])
	s.mu.Unlock()

	for _, e := range all {
		e.view.Close()
	}
}
