package listing

import (
	"context"

	id "listingguard/pkg/domain"
)

// Store reads the listings written by the ingestion collaborator. Put exists
// for that collaborator and for tests; nothing in the engine's request paths
// writes listings.
type Store interface {
	Put(ctx context.Context, l Listing) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]Listing, error)
}
