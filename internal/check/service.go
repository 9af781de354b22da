package check

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"listingguard/internal/alert"
	"listingguard/internal/events"
	"listingguard/internal/listing"
	"listingguard/internal/platform/metrics"
	"listingguard/internal/property"
	"listingguard/internal/report"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/requestcontext"
)

// Request is the check-a-property input. ListingURL is accepted but unused
// downstream.
type Request struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country,omitempty"`
	ListingURL string `json:"listingUrl,omitempty"`
}

// Result is the consolidated view one check returns. NearbyScams stays 0
// until a geospatial collaborator exists.
type Result struct {
	Property    *property.Property     `json:"property"`
	Listings    []listing.Listing      `json:"listings"`
	Alerts      []alert.CommunityAlert `json:"alerts"`
	History     listing.HistorySummary `json:"history"`
	NearbyScams int                    `json:"nearbyScams"`
}

// Orchestrator composes identity resolution, history aggregation and alert
// bookkeeping for the check-a-property use case.
type Orchestrator struct {
	properties Properties
	listings   Listings
	alerts     Alerts
	reports    Reports
	publisher  events.Publisher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewOrchestrator(properties Properties, listings Listings, alerts Alerts, reports Reports, publisher events.Publisher, logger *slog.Logger, m *metrics.Metrics) *Orchestrator {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Orchestrator{
		properties: properties,
		listings:   listings,
		alerts:     alerts,
		reports:    reports,
		publisher:  publisher,
		logger:     logger,
		metrics:    m,
	}
}

// Check resolves the property (creating it on first sight), refreshes its
// lastChecked stamp, and returns the consolidated signal view. Every alert in
// the view gets its scan count bumped once; the counters feed alert ranking
// elsewhere.
func (o *Orchestrator) Check(ctx context.Context, req Request) (*Result, error) {
	if isBlank(req.Address) || isBlank(req.City) || isBlank(req.State) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "address, city, and state are required")
	}

	p, err := o.properties.Resolve(ctx, req.Address, req.City, req.State, req.Country)
	if err != nil {
		return nil, err
	}
	if err := o.properties.Touch(ctx, p); err != nil {
		return nil, err
	}

	var (
		listings []listing.Listing
		alerts   []alert.CommunityAlert
		reports  []report.ScamReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = o.listings.ListingsFor(gctx, p.ID)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = o.alerts.AlertsFor(gctx, p.ID)
		return err
	})
	g.Go(func() error {
		var err error
		reports, err = o.reports.ReportsFor(gctx, p.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Each check counts as one view of every alert currently on the
	// property. Bump in the store first, then mirror into the copy we
	// return.
	for i := range alerts {
		if err := o.alerts.BumpScanCount(ctx, alerts[i].ID); err != nil {
			return nil, err
		}
		alerts[i].ScanCount++
	}

	o.metrics.IncrementChecksPerformed()
	o.logger.InfoContext(ctx, "property checked",
		"property_id", p.ID.String(),
		"listings", len(listings),
		"alerts", len(alerts),
		"reports", len(reports),
		"request_id", requestcontext.RequestID(ctx),
	)
	if err := o.publisher.Emit(ctx, events.Event{
		Type:       events.TypePropertyChecked,
		PropertyID: p.ID,
		UserID:     requestcontext.UserID(ctx),
	}); err != nil {
		o.logger.WarnContext(ctx, "check event emit failed", "error", err)
	}

	return &Result{
		Property: p,
		Listings: listings,
		Alerts:   alerts,
		History:  listing.Summarize(p.ID, listings),
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
