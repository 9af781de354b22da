package report

import (
	"context"
	"sync"

	id "listingguard/pkg/domain"
	"listingguard/pkg/platform/sentinel"
)

// InMemory keeps reports in process memory for tests and standalone runs.
type InMemory struct {
	mu         sync.RWMutex
	byID       map[id.ReportID]ScamReport
	byProperty map[id.PropertyID][]id.ReportID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:       make(map[id.ReportID]ScamReport),
		byProperty: make(map[id.PropertyID][]id.ReportID),
	}
}

func (s *InMemory) Save(_ context.Context, r ScamReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[r.ID]; !exists {
		s.byProperty[r.PropertyID] = append(s.byProperty[r.PropertyID], r.ID)
	}
	s.byID[r.ID] = r
	return nil
}

func (s *InMemory) ListByProperty(_ context.Context, propertyID id.PropertyID) ([]ScamReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byProperty[propertyID]
	reports := make([]ScamReport, 0, len(ids))
	for _, reportID := range ids {
		reports = append(reports, s.byID[reportID])
	}
	return reports, nil
}

func (s *InMemory) SetVerified(_ context.Context, reportID id.ReportID, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[reportID]
	if !ok {
		return sentinel.ErrNotFound
	}
	r.Verified = verified
	s.byID[reportID] = r
	return nil
}
