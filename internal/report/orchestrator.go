package report

import (
	"context"
	"log/slog"
	"strings"

	"listingguard/internal/property"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/requestcontext"
)

// confirmationMessage is the fixed acknowledgement every successful report
// receives; callers must not infer anything from its wording.
const confirmationMessage = "Report submitted. Thank you for helping keep the community safe."

// PropertyResolver resolves or creates the canonical property for an address.
type PropertyResolver interface {
	Resolve(ctx context.Context, address, city, state, country string) (*property.Property, error)
}

// Filer records a validated report with all of its side effects.
type Filer interface {
	File(ctx context.Context, propertyID id.PropertyID, reportedBy id.UserID, reporterType ReporterType, scamType, description string, evidence []string) (*ScamReport, error)
}

// SubmitRequest is the report-a-scam input. Either PropertyID or Address must
// identify the property; ListingURL is accepted but unused downstream.
type SubmitRequest struct {
	PropertyID  string   `json:"propertyId,omitempty"`
	Address     string   `json:"address,omitempty"`
	ScamType    string   `json:"scamType"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence,omitempty"`
	ListingURL  string   `json:"listingUrl,omitempty"`
}

// SubmitResult acknowledges a filed report.
type SubmitResult struct {
	ReportID id.ReportID `json:"reportId"`
	Message  string      `json:"message"`
}

// Orchestrator composes identity resolution and report filing for the
// report-a-scam use case.
type Orchestrator struct {
	resolver PropertyResolver
	registry Filer
	logger   *slog.Logger
}

func NewOrchestrator(resolver PropertyResolver, registry Filer, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{resolver: resolver, registry: registry, logger: logger}
}

// Submit files a report for the property named by id or by free-text address.
// A property first seen on this path is created by the resolver in its
// default state; the registry's own bookkeeping then flips it to flagged, so
// flag counts are applied exactly once.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	// Report fields first. An invalid report must not leave a freshly
	// created property behind.
	if _, _, err := validateReportInput(req.ScamType, req.Description); err != nil {
		return nil, err
	}

	propertyID, err := o.resolvePropertyID(ctx, req)
	if err != nil {
		return nil, err
	}

	reportedBy := requestcontext.UserID(ctx)
	r, err := o.registry.File(ctx, propertyID, reportedBy, ReporterUser, req.ScamType, req.Description, req.Evidence)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{ReportID: r.ID, Message: confirmationMessage}, nil
}

func (o *Orchestrator) resolvePropertyID(ctx context.Context, req SubmitRequest) (id.PropertyID, error) {
	if strings.TrimSpace(req.PropertyID) != "" {
		return id.ParsePropertyID(req.PropertyID)
	}

	address, city, state, country, err := parseAddress(req.Address)
	if err != nil {
		return id.PropertyID{}, err
	}
	p, err := o.resolver.Resolve(ctx, address, city, state, country)
	if err != nil {
		return id.PropertyID{}, err
	}
	return p.ID, nil
}

// parseAddress splits a free-text address on commas into street, city and
// state, with an optional fourth part read as the country.
func parseAddress(raw string) (address, city, state, country string, err error) {
	parts := strings.Split(raw, ",")
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			trimmed = append(trimmed, part)
		}
	}
	if len(trimmed) < 3 {
		return "", "", "", "", dErrors.New(dErrors.CodeInvalidInput, "a property id or a full address (street, city, state) is required")
	}
	address, city, state = trimmed[0], trimmed[1], trimmed[2]
	if len(trimmed) > 3 {
		country = trimmed[3]
	}
	return address, city, state, country, nil
}
