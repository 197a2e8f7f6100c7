package service

import (
	"sync"

	"geoas_backend/internal/geofence/domain"
)

// StateStore holds the most recent location decision. It is the single piece
// of shared mutable state in the application: the point-submission flow
// writes it and later assistant queries read it, with no ordering promised
// between the two. Last write wins; stale reads are expected.
type StateStore struct {
	mu       sync.RWMutex
	decision domain.LocationDecision
}

// NewStateStore creates a store initialized to the all-absent decision, so
// Get before any Set reports "outside" rather than failing.
func NewStateStore() *StateStore {
	return &StateStore{decision: domain.OutsideDecision()}
}

// Set atomically replaces the stored decision.
func (s *StateStore) Set(decision domain.LocationDecision) {
	s.mu.Lock()
	s.decision = decision
	s.mu.Unlock()
}

// Get returns the most recently stored decision. Never blocks indefinitely.
func (s *StateStore) Get() domain.LocationDecision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decision
}
