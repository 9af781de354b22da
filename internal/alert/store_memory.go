package alert

import (
	"context"
	"sync"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
)

// InMemory keeps alerts in process memory for tests and standalone runs.
type InMemory struct {
	mu         sync.RWMutex
	byID       map[id.AlertID]CommunityAlert
	byProperty map[id.PropertyID][]id.AlertID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:       make(map[id.AlertID]CommunityAlert),
		byProperty: make(map[id.PropertyID][]id.AlertID),
	}
}

func (s *InMemory) Save(_ context.Context, a CommunityAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[a.ID]; !exists {
		s.byProperty[a.PropertyID] = append(s.byProperty[a.PropertyID], a.ID)
	}
	s.byID[a.ID] = a
	return nil
}

func (s *InMemory) ListByProperty(_ context.Context, propertyID id.PropertyID) ([]CommunityAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byProperty[propertyID]
	alerts := make([]CommunityAlert, 0, len(ids))
	for _, alertID := range ids {
		alerts = append(alerts, s.byID[alertID])
	}
	return alerts, nil
}

func (s *InMemory) IncrementScanCount(_ context.Context, alertID id.AlertID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[alertID]
	if !ok {
		return sentinel.ErrNotFound
	}
	a.ScanCount++
	s.byID[alertID] = a
	return nil
}
