package check

import (
	"context"

	"listingguard/internal/alert"
	"listingguard/internal/listing"
	"listingguard/internal/property"
	"listingguard/internal/report"
	id "listingguard/pkg/domain"
)

// Properties is the identity-resolution surface the orchestrator needs.
type Properties interface {
	Resolve(ctx context.Context, address, city, state, country string) (*property.Property, error)
	Touch(ctx context.Context, p *property.Property) error
	Get(ctx context.Context, propertyID id.PropertyID) (*property.Property, error)
}

// Listings reads a property's observed listing history.
type Listings interface {
	ListingsFor(ctx context.Context, propertyID id.PropertyID) ([]listing.Listing, error)
}

// Alerts reads community alerts and records check views against them.
type Alerts interface {
	AlertsFor(ctx context.Context, propertyID id.PropertyID) ([]alert.CommunityAlert, error)
	BumpScanCount(ctx context.Context, alertID id.AlertID) error
}

// Reports reads the scam reports filed against a property.
type Reports interface {
	ReportsFor(ctx context.Context, propertyID id.PropertyID) ([]report.ScamReport, error)
}
