package property

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"listingguard/internal/platform/metrics"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/sentinel"
	"listingguard/pkg/requestcontext"
)

// Resolver maps differently-worded submissions onto one canonical Property
// and owns every mutation of the Property record.
type Resolver struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewResolver(store Store, logger *slog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{store: store, logger: logger, metrics: m}
}

// Resolve finds the canonical property for the normalized identity key,
// creating it on first sight. Blank key components are the caller's problem;
// they must be rejected before calling.
//
// Creation is a conditional insert: when two first-time resolutions race,
// exactly one insert wins and the loser re-reads the winner's record, so one
// identity key can never yield two properties.
func (r *Resolver) Resolve(ctx context.Context, address, city, state, country string) (*Property, error) {
	key := NewIdentityKey(address, city, state, country)

	existing, err := r.store.FindByKey(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up property")
	}

	// Display fields keep the submitter's casing; matching always goes
	// through the normalized key.
	p := &Property{
		ID:          id.NewPropertyID(),
		Address:     strings.TrimSpace(address),
		City:        strings.TrimSpace(city),
		State:       strings.TrimSpace(state),
		Country:     strings.TrimSpace(country),
		Status:      StatusActive,
		LastChecked: requestcontext.Now(ctx),
	}
	err = r.store.CreateIfAbsent(ctx, p)
	if err == nil {
		r.metrics.IncrementPropertiesCreated()
		r.logger.InfoContext(ctx, "property created",
			"property_id", p.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return p, nil
	}
	if !errors.Is(err, sentinel.ErrConflict) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create property")
	}

	// Lost the creation race; the winner's record is authoritative.
	winner, err := r.store.FindByKey(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to re-read property after create conflict")
	}
	return winner, nil
}

// Touch updates lastChecked and persists. Two concurrent touches may apply in
// either order; last writer wins is acceptable for this field.
func (r *Resolver) Touch(ctx context.Context, p *Property) error {
	p.LastChecked = requestcontext.Now(ctx)
	if err := r.store.Update(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "property not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to touch property")
	}
	return nil
}

// Get returns the property by ID.
func (r *Resolver) Get(ctx context.Context, propertyID id.PropertyID) (*Property, error) {
	p, err := r.store.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load property")
	}
	return p, nil
}

// RecordFlag applies report bookkeeping atomically: totalFlags += 1, and on
// the first report only, firstFlagged and status=flagged. The store holds the
// record lock across the whole read-modify-write, so concurrent reports
// cannot lose an increment.
func (r *Resolver) RecordFlag(ctx context.Context, propertyID id.PropertyID) (*Property, error) {
	now := requestcontext.Now(ctx)
	p, err := r.store.Execute(ctx, propertyID, nil, func(p *Property) {
		p.TotalFlags++
		if p.FirstFlagged == nil {
			t := now
			p.FirstFlagged = &t
			p.Status = StatusFlagged
		}
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record flag")
	}
	return p, nil
}

// MarkVerifiedScam is the trusted escalation path; anonymous reports can
// never set verifiedScam.
func (r *Resolver) MarkVerifiedScam(ctx context.Context, propertyID id.PropertyID) (*Property, error) {
	p, err := r.store.Execute(ctx, propertyID, nil, func(p *Property) {
		p.VerifiedScam = true
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "property not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark property verified")
	}
	return p, nil
}
