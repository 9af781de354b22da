package watchlist

import (
	"context"
	"sync"

	id "listingguard/pkg/domain"
)

type watchKey struct {
	userID     id.UserID
	propertyID id.PropertyID
}

// InMemory keeps watches in process memory for tests and standalone runs.
type InMemory struct {
	mu     sync.RWMutex
	byKey  map[watchKey]PropertyWatch
	byUser map[id.UserID][]watchKey
}

func NewInMemory() *InMemory {
	return &InMemory{
		byKey:  make(map[watchKey]PropertyWatch),
		byUser: make(map[id.UserID][]watchKey),
	}
}

func (s *InMemory) Upsert(_ context.Context, w PropertyWatch) (*PropertyWatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := watchKey{userID: w.UserID, propertyID: w.PropertyID}
	if existing, ok := s.byKey[key]; ok {
		existing.NotificationsEnabled = w.NotificationsEnabled
		existing.LastChecked = w.LastChecked
		s.byKey[key] = existing
		return &existing, nil
	}

	s.byKey[key] = w
	s.byUser[w.UserID] = append(s.byUser[w.UserID], key)
	return &w, nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]PropertyWatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := s.byUser[userID]
	watches := make([]PropertyWatch, 0, len(keys))
	for _, key := range keys {
		watches = append(watches, s.byKey[key])
	}
	return watches, nil
}
