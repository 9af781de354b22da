package report

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"listingguard/internal/alert"
	"listingguard/internal/events"
	"listingguard/internal/platform/metrics"
	"listingguard/internal/property"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/sentinel"
	"listingguard/pkg/requestcontext"
)

// PropertyFlagger applies report bookkeeping on the owning property.
type PropertyFlagger interface {
	RecordFlag(ctx context.Context, propertyID id.PropertyID) (*property.Property, error)
}

// AlertRaiser escalates a report into a community alert.
type AlertRaiser interface {
	Raise(ctx context.Context, propertyID id.PropertyID, title, message, severity string, createdBy id.UserID) (*alert.CommunityAlert, error)
}

// Registry records scam reports, classifies their severity, and decides
// whether an alert must be raised. Its bookkeeping on the property record is
// authoritative; callers that create properties on the report path must not
// pre-apply flag counts.
type Registry struct {
	store      Store
	properties PropertyFlagger
	alerts     AlertRaiser
	publisher  events.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewRegistry(store Store, properties PropertyFlagger, alerts AlertRaiser, publisher events.Publisher, logger *slog.Logger, m *metrics.Metrics) *Registry {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Registry{
		store:      store,
		properties: properties,
		alerts:     alerts,
		publisher:  publisher,
		logger:     logger,
		metrics:    m,
	}
}

// validateReportInput trims and checks the free-text report fields. It runs
// again inside File so direct callers get the same guarantee the orchestrator
// already enforced.
func validateReportInput(scamType, description string) (string, string, error) {
	scamType = strings.TrimSpace(scamType)
	description = strings.TrimSpace(description)
	if scamType == "" || description == "" {
		return "", "", dErrors.New(dErrors.CodeInvalidInput, "scam type and description are required")
	}
	return scamType, description, nil
}

// File validates and persists a report, increments the property's flag count,
// and raises a community alert when the severity calls for one.
func (g *Registry) File(ctx context.Context, propertyID id.PropertyID, reportedBy id.UserID, reporterType ReporterType, scamType, description string, evidence []string) (*ScamReport, error) {
	scamType, description, err := validateReportInput(scamType, description)
	if err != nil {
		return nil, err
	}
	if reporterType == "" {
		reporterType = ReporterUser
	}

	// Flag bookkeeping first; it also proves the property exists before the
	// report row is written.
	if _, err := g.properties.RecordFlag(ctx, propertyID); err != nil {
		return nil, err
	}

	r := ScamReport{
		ID:           id.NewReportID(),
		PropertyID:   propertyID,
		ReportedBy:   reportedBy,
		ReporterType: reporterType,
		ScamType:     scamType,
		Severity:     SeverityOf(scamType),
		Description:  description,
		Evidence:     evidence,
		Timestamp:    requestcontext.Now(ctx),
	}
	if err := g.store.Save(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save report")
	}

	g.metrics.IncrementReportsFiled(string(r.Severity))
	g.logger.InfoContext(ctx, "scam report filed",
		"report_id", r.ID.String(),
		"property_id", propertyID.String(),
		"scam_type", scamType,
		"severity", string(r.Severity),
		"request_id", requestcontext.RequestID(ctx),
	)

	if r.Severity.Escalates() {
		if _, err := g.alerts.Raise(ctx, propertyID, AlertTitle(scamType), description, string(r.Severity), reportedBy); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to raise alert for report")
		}
	}

	if err := g.publisher.Emit(ctx, events.Event{
		Type:       events.TypeReportFiled,
		PropertyID: propertyID,
		UserID:     reportedBy,
		Severity:   string(r.Severity),
		Detail:     scamType,
	}); err != nil {
		g.logger.WarnContext(ctx, "report event emit failed", "error", err)
	}
	return &r, nil
}

// ReportsFor returns every report filed against the property.
func (g *Registry) ReportsFor(ctx context.Context, propertyID id.PropertyID) ([]ScamReport, error) {
	reports, err := g.store.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reports")
	}
	return reports, nil
}

// Verify flips a report's moderation flag. This is the only mutation a report
// accepts after creation.
func (g *Registry) Verify(ctx context.Context, reportID id.ReportID, verified bool) error {
	if err := g.store.SetVerified(ctx, reportID, verified); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "report not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify report")
	}
	return nil
}
