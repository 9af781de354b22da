package report

import (
	"context"

	id "listingguard/pkg/domain"
)

// Store persists scam reports. Reports are append-only; Verified flips
// through SetVerified and nothing else changes after creation.
type Store interface {
	Save(ctx context.Context, r ScamReport) error
	ListByProperty(ctx context.Context, propertyID id.PropertyID) ([]ScamReport, error)
	SetVerified(ctx context.Context, reportID id.ReportID, verified bool) error
}
