package alert

import (
	"context"

	id "listingguard/pkg/domain"
)

// Store persists community alerts. IncrementScanCount must be atomic per
// alert; concurrent bumps may not lose updates.
type Store interface {
	Save(ctx context.Context, a CommunityAlert) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]CommunityAlert, error)
	IncrementScanCount(ctx context.Context, alertID id.AlertID) error
}
