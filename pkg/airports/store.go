package airports

import (
	"fmt"
	"sync"
)

// MemStore keeps airport records in memory, preserving insertion order.
type MemStore struct {
	mu    sync.RWMutex
	order []string
	items map[string]Airport
}

// NewMemStore returns an empty registry.
func NewMemStore() *MemStore {
	return &MemStore{items: make(map[string]Airport)}
}

// List returns records in insertion order. A negative limit returns every
// record; otherwise at most limit records are returned.
func (s *MemStore) List(limit int) []Airport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit >= 0 && limit < n {
		n = limit
	}
	result := make([]Airport, 0, n)
	for _, key := range s.order[:n] {
		result = append(result, s.items[key])
	}
	return result
}

// Get returns the record stored under id.
func (s *MemStore) Get(id string) (Airport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	airport, ok := s.items[id]
	return airport, ok
}

// Create inserts airport and fails with ErrConflict when its id is taken.
func (s *MemStore) Create(airport Airport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[airport.AirportID]; ok {
		return fmt.Errorf("%w: %s", ErrConflict, airport.AirportID)
	}
	s.set(airport.AirportID, airport)
	return nil
}

// Put stores airport unconditionally and reports whether it was newly created.
func (s *MemStore) Put(airport Airport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.items[airport.AirportID]
	s.set(airport.AirportID, airport)
	return !exists
}

// Patch merges the supplied fields into an existing record.
func (s *MemStore) Patch(patch Patch) (Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[patch.AirportID]
	if !ok {
		return Airport{}, fmt.Errorf("%w: %s", ErrNotFound, patch.AirportID)
	}
	updated := patch.Apply(existing)
	s.items[patch.AirportID] = updated
	return updated, nil
}

// Delete removes the record keyed by id and returns it.
func (s *MemStore) Delete(id string) (Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	airport, ok := s.items[id]
	if !ok {
		return Airport{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.items, id)
	for idx, key := range s.order {
		if key == id {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
	return airport, nil
}

// Len reports how many records are registered.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Seed stores airport under key without validation. Keys that do not match
// the record's own id are only produced by legacy seeding.
func (s *MemStore) Seed(key string, airport Airport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, airport)
}

func (s *MemStore) set(key string, airport Airport) {
	if _, ok := s.items[key]; !ok {
		s.order = append(s.order, key)
	}
	s.items[key] = airport
}
