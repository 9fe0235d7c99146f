// Package store holds the append-only, process-lifetime collection of
// Explanation records. Appends are serialized; reads run concurrently
// since stored records are immutable. Records are kept sorted by
// timestamp so time-range queries cost a binary search plus the size of
// the matching range.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/mfeld/lucid/internal/logging"
	"github.com/mfeld/lucid/internal/model"
)

// Store is the append-only explanation collection. There is no deletion:
// retention across process restarts is a persistence collaborator's
// concern (see the export package for the record contract).
type Store struct {
	mu      sync.RWMutex
	byID    map[string]*model.Explanation
	ordered []*model.Explanation
	metrics *Metrics
	logger  *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics attaches Prometheus metrics to the store.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		byID:   make(map[string]*model.Explanation),
		logger: logging.GetLogger("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds an explanation to the store. Returns DuplicateIDError if
// the decision id is already present; the store is left unchanged in
// that case. Ids from a single builder never collide, but records can
// also arrive from imports.
func (s *Store) Append(e *model.Explanation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[e.DecisionID]; exists {
		if s.metrics != nil {
			s.metrics.AppendErrors.Inc()
		}
		return &model.DuplicateIDError{ID: e.DecisionID}
	}

	s.byID[e.DecisionID] = e

	// Builder timestamps are non-decreasing, so the insertion point is
	// almost always the end. Records from other sources (e.g. a JSONL
	// import) may arrive out of order; insert-sort keeps Query cheap.
	pos := sort.Search(len(s.ordered), func(i int) bool {
		return s.ordered[i].Timestamp.After(e.Timestamp)
	})
	s.ordered = append(s.ordered, nil)
	copy(s.ordered[pos+1:], s.ordered[pos:])
	s.ordered[pos] = e

	if s.metrics != nil {
		s.metrics.AppendsTotal.Inc()
		s.metrics.Size.Set(float64(len(s.ordered)))
	}
	s.logger.DebugWithFields("explanation appended",
		logging.Field("decision_id", e.DecisionID),
		logging.Field("size", len(s.ordered)),
	)
	return nil
}

// Get returns the explanation with the given decision id, or
// NotFoundError if absent.
func (s *Store) Get(decisionID string) (*model.Explanation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[decisionID]
	if !ok {
		return nil, &model.NotFoundError{ID: decisionID}
	}
	return e, nil
}

// Query returns the explanations whose timestamps fall within
// [start, end], sorted by timestamp ascending. A zero bound leaves that
// side unrestricted. The returned slice is a snapshot: concurrent
// appends do not affect it.
func (s *Store) Query(start, end time.Time) []*model.Explanation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo := 0
	if !start.IsZero() {
		lo = sort.Search(len(s.ordered), func(i int) bool {
			return !s.ordered[i].Timestamp.Before(start)
		})
	}
	hi := len(s.ordered)
	if !end.IsZero() {
		hi = sort.Search(len(s.ordered), func(i int) bool {
			return s.ordered[i].Timestamp.After(end)
		})
	}
	if lo >= hi {
		return []*model.Explanation{}
	}

	out := make([]*model.Explanation, hi-lo)
	copy(out, s.ordered[lo:hi])
	return out
}

// All returns a snapshot of every stored explanation, timestamp ascending.
func (s *Store) All() []*model.Explanation {
	return s.Query(time.Time{}, time.Time{})
}

// Len returns the number of stored explanations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ordered)
}
