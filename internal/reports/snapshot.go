package reports

import (
	"sync"
	"time"
)

// Snapshot bundles the four report datasets fetched in one reload cycle. A
// published snapshot is immutable; readers always see all four arrays from
// the same fetch cycle.
type Snapshot struct {
	Cur       []StockRow
	Low       []StockRow
	Monthly   []MovementRow
	Top       []TopMovingRow
	FetchedAt time.Time
}

// Store owns the current snapshot and swaps it atomically. Concurrent reload
// triggers race through generations: Begin issues a ticket before the fan-out
// starts, and Publish applies the result only when that ticket is still the
// newest one issued. A slow fetch that lost the race is dropped instead of
// overwriting fresher data.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
	latest  uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Begin issues a new reload generation.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Publish installs the snapshot when gen is still the latest issued
// generation. It reports whether the swap happened.
func (s *Store) Publish(gen uint64, snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.latest {
		return false
	}
	s.current = snap
	return true
}

// Load returns the current snapshot. The second result is false while the
// store is still empty.
func (s *Store) Load() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	return s.current, true
}
