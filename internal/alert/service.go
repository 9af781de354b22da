package alert

import (
	"context"
	"errors"
	"log/slog"

	"listingguard/internal/events"
	"listingguard/internal/platform/metrics"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/sentinel"
	"listingguard/pkg/requestcontext"
)

// Board owns the community alerts attached to properties. Alerts come into
// existence only through report escalation; the board never accepts direct
// submissions.
type Board struct {
	store     Store
	publisher events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewBoard(store Store, publisher events.Publisher, logger *slog.Logger, m *metrics.Metrics) *Board {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Board{store: store, publisher: publisher, logger: logger, metrics: m}
}

// Raise creates an alert for the property. Critical severity produces a
// danger alert, everything else a warning. The message is bounded here so no
// caller can push an oversized description onto the board.
func (b *Board) Raise(ctx context.Context, propertyID id.PropertyID, title, message, severity string, createdBy id.UserID) (*CommunityAlert, error) {
	alertType := TypeWarning
	if severity == "critical" {
		alertType = TypeDanger
	}

	a := CommunityAlert{
		ID:         id.NewAlertID(),
		PropertyID: propertyID,
		Title:      title,
		Message:    truncateMessage(message),
		AlertType:  alertType,
		Severity:   severity,
		CreatedBy:  createdBy,
		CreatedAt:  requestcontext.Now(ctx),
		ScanCount:  1,
		IsActive:   true,
	}
	if err := b.store.Save(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save alert")
	}

	b.metrics.IncrementAlertsRaised()
	b.logger.InfoContext(ctx, "community alert raised",
		"alert_id", a.ID.String(),
		"property_id", propertyID.String(),
		"alert_type", string(alertType),
		"request_id", requestcontext.RequestID(ctx),
	)
	if err := b.publisher.Emit(ctx, events.Event{
		Type:       events.TypeAlertRaised,
		PropertyID: propertyID,
		UserID:     createdBy,
		Severity:   severity,
		Detail:     title,
	}); err != nil {
		b.logger.WarnContext(ctx, "alert event emit failed", "error", err)
	}
	return &a, nil
}

// AlertsFor returns every alert for the property, active and inactive.
func (b *Board) AlertsFor(ctx context.Context, propertyID id.PropertyID) ([]CommunityAlert, error) {
	alerts, err := b.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list alerts")
	}
	return alerts, nil
}

// BumpScanCount records that a property check surfaced this alert. The store
// increments atomically; concurrent checks never lose a bump.
func (b *Board) BumpScanCount(ctx context.Context, alertID id.AlertID) error {
	if err := b.store.IncrementScanCount(ctx, alertID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "alert not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bump scan count")
	}
	return nil
}
