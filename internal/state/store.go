package state

import (
	"fmt"
	"sync"
	"time"
)

// Counts is what the UI loop publishes after each update.
type Counts struct {
	Dirty       int
	Total       int
	InFlight    int
	DirtyLabels []string
}

// Snapshot represents the latest status published by the UI loop.
type Snapshot struct {
	Counts
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed requests
}

// IsOffline returns true when several requests in a row have failed.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store shares the snippet status with goroutines outside the UI loop.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Publish replaces the counts. Request history is kept.
func (s *Store) Publish(c Counts) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Counts = Counts{
		Dirty:       c.Dirty,
		Total:       c.Total,
		InFlight:    c.InFlight,
		DirtyLabels: cloneLabels(c.DirtyLabels),
	}
	s.snapshot.LastUpdated = time.Now()
}

// RecordResult notes the outcome of a server request. When err is non-nil
// the failure streak grows; a success resets it.
func (s *Store) RecordResult(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// CountDirty returns the last published dirty count.
func (s *Store) CountDirty() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Dirty
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.DirtyLabels = cloneLabels(s.snapshot.DirtyLabels)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneLabels(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	dup := make([]string, len(labels))
	copy(dup, labels)
	return dup
}
