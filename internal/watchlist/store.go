package watchlist

import (
	"context"

	id "listingguard/pkg/domain"
)

// Store persists property watches keyed by (user, property). Upsert must be
// atomic for the pair: a second write updates notificationsEnabled and
// lastChecked on the existing record and never creates a duplicate.
type Store interface {
	Upsert(ctx context.Context, w PropertyWatch) (*PropertyWatch, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]PropertyWatch, error)
}
