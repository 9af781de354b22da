package watchlist

import (
	"context"
	"log/slog"

	"listingguard/internal/events"
	"listingguard/internal/platform/metrics"
	"listingguard/internal/property"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/requestcontext"
)

// PropertyReader loads the property a watch points at.
type PropertyReader interface {
	Get(ctx context.Context, propertyID id.PropertyID) (*property.Property, error)
}

// Manager owns per-user property watches.
type Manager struct {
	store      Store
	properties PropertyReader
	publisher  events.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewManager(store Store, properties PropertyReader, publisher events.Publisher, logger *slog.Logger, m *metrics.Metrics) *Manager {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Manager{
		store:      store,
		properties: properties,
		publisher:  publisher,
		logger:     logger,
		metrics:    m,
	}
}

// Watch upserts the (user, property) watch. A repeat call refreshes
// notificationsEnabled and lastChecked on the existing record; addedAt and
// the alert type set survive from the first write.
func (m *Manager) Watch(ctx context.Context, userID id.UserID, propertyID id.PropertyID, notificationsEnabled bool) (*PropertyWatch, error) {
	if _, err := m.properties.Get(ctx, propertyID); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	stored, err := m.store.Upsert(ctx, PropertyWatch{
		UserID:               userID,
		PropertyID:           propertyID,
		AddedAt:              now,
		LastChecked:          now,
		NotificationsEnabled: notificationsEnabled,
		AlertTypes:           DefaultAlertTypes(),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to upsert watch")
	}

	m.metrics.IncrementWatchesUpserted()
	m.logger.InfoContext(ctx, "property watch upserted",
		"user_id", userID.String(),
		"property_id", propertyID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	if err := m.publisher.Emit(ctx, events.Event{
		Type:       events.TypeWatchUpserted,
		PropertyID: propertyID,
		UserID:     userID,
	}); err != nil {
		m.logger.WarnContext(ctx, "watch event emit failed", "error", err)
	}
	return stored, nil
}

// WatchesFor returns the user's watches.
func (m *Manager) WatchesFor(ctx context.Context, userID id.UserID) ([]PropertyWatch, error) {
	watches, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list watches")
	}
	return watches, nil
}

// PropertiesFor resolves each watch to its property. A watch whose property
// record is gone is skipped rather than failing the whole listing.
func (m *Manager) PropertiesFor(ctx context.Context, watches []PropertyWatch) ([]property.Property, error) {
	properties := make([]property.Property, 0, len(watches))
	for _, w := range watches {
		p, err := m.properties.Get(ctx, w.PropertyID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				m.logger.WarnContext(ctx, "watched property missing",
					"property_id", w.PropertyID.String(),
				)
				continue
			}
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, nil
}
