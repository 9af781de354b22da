package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"listingguard/internal/check"
	"listingguard/internal/property"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/httputil"
	"listingguard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks

// Service defines the check operations the handler exposes.
type Service interface {
	Check(ctx context.Context, req check.Request) (*check.Result, error)
}

// PropertyReader serves direct property lookups.
type PropertyReader interface {
	Get(ctx context.Context, propertyID id.PropertyID) (*property.Property, error)
}

// Handler wires property-check endpoints to the check orchestrator.
type Handler struct {
	service    Service
	properties PropertyReader
	logger     *slog.Logger
}

// New constructs a check handler with its dependencies.
func New(service Service, properties PropertyReader, logger *slog.Logger) *Handler {
	return &Handler{service: service, properties: properties, logger: logger}
}

// Register mounts check endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/properties/check", h.HandleCheck)
	r.Get("/properties/{propertyID}", h.HandleGet)
}

// HandleCheck handles POST /properties/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[check.Request](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "property check failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "property check served",
		"request_id", requestID,
		"user_id", userID,
		"property_id", result.Property.ID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleGet handles GET /properties/{propertyID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	propertyID, err := id.ParsePropertyID(chi.URLParam(r, "propertyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := h.properties.Get(ctx, propertyID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "property lookup failed",
				"request_id", requestID,
				"property_id", propertyID.String(),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}
