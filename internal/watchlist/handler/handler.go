package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"listingguard/internal/property"
	"listingguard/internal/watchlist"
	id "listingguard/pkg/domain"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/httputil"
	"listingguard/pkg/requestcontext"
)

// Service defines the watchlist operations the handler exposes.
type Service interface {
	Watch(ctx context.Context, userID id.UserID, propertyID id.PropertyID, notificationsEnabled bool) (*watchlist.PropertyWatch, error)
	WatchesFor(ctx context.Context, userID id.UserID) ([]watchlist.PropertyWatch, error)
	PropertiesFor(ctx context.Context, watches []watchlist.PropertyWatch) ([]property.Property, error)
}

// Handler wires watchlist endpoints to the watchlist manager.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a watchlist handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts watchlist endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/watchlist", h.HandleWatch)
	r.Get("/watchlist", h.HandleList)
}

type watchRequest struct {
	PropertyID string `json:"propertyId"`
	// NotificationsEnabled defaults to true when the field is absent.
	NotificationsEnabled *bool `json:"notificationsEnabled,omitempty"`
}

type listResponse struct {
	Watches    []watchlist.PropertyWatch `json:"watches"`
	Properties []property.Property       `json:"properties"`
}

// HandleWatch handles POST /watchlist requests.
func (h *Handler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[watchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	propertyID, err := id.ParsePropertyID(req.PropertyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	enabled := true
	if req.NotificationsEnabled != nil {
		enabled = *req.NotificationsEnabled
	}

	watch, err := h.service.Watch(ctx, userID, propertyID, enabled)
	if err != nil {
		h.logger.ErrorContext(ctx, "watch upsert failed",
			"request_id", requestID,
			"user_id", userID,
			"property_id", propertyID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"watch": watch})
}

// HandleList handles GET /watchlist requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	watches, err := h.service.WatchesFor(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	properties, err := h.service.PropertiesFor(ctx, watches)
	if err != nil {
		h.logger.ErrorContext(ctx, "watch property resolution failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if watches == nil {
		watches = []watchlist.PropertyWatch{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Watches: watches, Properties: properties})
}
