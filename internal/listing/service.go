package listing

import (
	"context"
	"fmt"
	"log/slog"

	id "listingguard/pkg/domain"
)

// Ledger serves listing history reads and the derived aggregate.
type Ledger struct {
	store  Store
	logger *slog.Logger
}

func NewLedger(store Store, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, logger: logger}
}

// ListingsFor returns every observed listing for the property. A property
// with no listings yields an empty slice, not an error.
func (l *Ledger) ListingsFor(ctx context.Context, propertyID id.PropertyID) ([]Listing, error) {
	listings, err := l.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// Summarize fetches the property's listings and reduces them to a
// HistorySummary.
func (l *Ledger) Summarize(ctx context.Context, propertyID id.PropertyID) (HistorySummary, error) {
	listings, err := l.ListingsFor(ctx, propertyID)
	if err != nil {
		return HistorySummary{}, err
	}
	return Summarize(propertyID, listings), nil
}

// Record stores one observed listing. Used by the ingestion collaborator.
func (l *Ledger) Record(ctx context.Context, listing Listing) (Listing, error) {
	if listing.ID.IsNil() {
		listing.ID = id.NewListingID()
	}
	if err := l.store.Put(ctx, listing); err != nil {
		return Listing{}, fmt.Errorf("record listing: %w", err)
	}
	l.logger.Debug("listing recorded",
		"listing_id", listing.ID,
		"property_id", listing.PropertyID,
		"platform", listing.Platform,
	)
	return listing, nil
}
