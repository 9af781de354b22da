package property

import (
	"context"
	"sync"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
)

// InMemory keeps properties in process memory. It favors clarity over
// performance and backs unit tests and standalone runs.
type InMemory struct {
	mu    sync.RWMutex
	byID  map[id.PropertyID]Property
	byKey map[string]id.PropertyID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:  make(map[id.PropertyID]Property),
		byKey: make(map[string]id.PropertyID),
	}
}

// CreateIfAbsent inserts the property unless its identity key is taken.
// The single lock makes check-and-insert atomic; the loser of a race gets
// sentinel.ErrConflict.
func (s *InMemory) CreateIfAbsent(_ context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := p.Key().String()
	if _, ok := s.byKey[key]; ok {
		return sentinel.ErrConflict
	}
	s.byKey[key] = p.ID
	s.byID[p.ID] = *p
	return nil
}

func (s *InMemory) FindByID(_ context.Context, propertyID id.PropertyID) (*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byID[propertyID]; ok {
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByKey(_ context.Context, key IdentityKey) (*Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if propertyID, ok := s.byKey[key.String()]; ok {
		p := s.byID[propertyID]
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Update(_ context.Context, p *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.byID[p.ID] = *p
	return nil
}

// Execute runs validate-then-mutate while holding the write lock, so
// concurrent flag increments cannot lose updates.
func (s *InMemory) Execute(_ context.Context, propertyID id.PropertyID, validate func(*Property) error, mutate func(*Property)) (*Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[propertyID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if validate != nil {
		if err := validate(&p); err != nil {
			return nil, err
		}
	}
	mutate(&p)
	s.byID[propertyID] = p
	return &p, nil
}
