package property

import (
	"context"

	id "listingguard/pkg/domain"
)

// Store persists canonical property records.
//
// CreateIfAbsent must be atomic on the identity key: exactly one of N
// concurrent creators wins, the rest get sentinel.ErrConflict and re-read.
// Execute holds the store's per-record lock (mutex or SELECT FOR UPDATE)
// across validate and mutate so counter updates cannot be lost.
type Store interface {
	CreateIfAbsent(ctx context.Context, p *Property) error
	FindByID(ctx context.Context, propertyID id.PropertyID) (*Property, error)
	FindByKey(ctx context.Context, key IdentityKey) (*Property, error)
	Update(ctx context.Context, p *Property) error
	Execute(ctx context.Context, propertyID id.PropertyID, validate func(*Property) error, mutate func(*Property)) (*Property, error)
}
