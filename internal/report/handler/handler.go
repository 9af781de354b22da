package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"listingguard/internal/report"
	dErrors "listingguard/pkg/domain-errors"
	"listingguard/pkg/platform/httputil"
	"listingguard/pkg/requestcontext"
)

// Service defines the report operations the handler exposes.
type Service interface {
	Submit(ctx context.Context, req report.SubmitRequest) (*report.SubmitResult, error)
}

// Handler wires scam-report endpoints to the report orchestrator.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a report handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts report endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reports", h.HandleSubmit)
}

// HandleSubmit handles POST /reports requests.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[report.SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Submit(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "report submission failed",
			"request_id", requestID,
			"user_id", userID,
			"scam_type", req.ScamType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "report submitted",
		"request_id", requestID,
		"user_id", userID,
		"report_id", result.ReportID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, result)
}
