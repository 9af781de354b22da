package listing

import (
	"context"
	"sync"

	id "listingguard/pkg/domain"
)

// InMemory keeps listings in process memory for tests and standalone runs.
type InMemory struct {
	mu         sync.RWMutex
	byProperty map[id.PropertyID][]Listing
}

func NewInMemory() *InMemory {
	return &InMemory{byProperty: make(map[id.PropertyID][]Listing)}
}

func (s *InMemory) Put(_ context.Context, l Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byProperty[l.PropertyID] = append(s.byProperty[l.PropertyID], l)
	return nil
}

func (s *InMemory) ListByProperty(_ context.Context, propertyID id.PropertyID) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Listing{}, s.byProperty[propertyID]...), nil
}
