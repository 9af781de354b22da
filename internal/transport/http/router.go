package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkhandler "listingguard/internal/check/handler"
	"listingguard/internal/platform/middleware"
	reporthandler "listingguard/internal/report/handler"
	watchhandler "listingguard/internal/watchlist/handler"
	"listingguard/pkg/platform/httputil"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router mounts. RateLimiter and Health entries
// may be nil when the deployment runs without Redis.
type Deps struct {
	Check       *checkhandler.Handler
	Report      *reporthandler.Handler
	Watchlist   *watchhandler.Handler
	Auth        middleware.JWTValidator
	RateLimiter *middleware.RateLimiter
	Health      map[string]HealthChecker
	Logger      *slog.Logger
}

// NewRouter wires middleware and endpoints. Operational endpoints (healthz,
// metrics) stay outside the authenticated API group.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))

	r.Get("/healthz", handleHealthz(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(15 * time.Second))
		api.Use(middleware.ContentTypeJSON)
		api.Use(middleware.RequireAuth(deps.Auth, deps.Logger))
		if deps.RateLimiter != nil {
			api.Use(deps.RateLimiter.Limit)
		}

		deps.Check.Register(api)
		deps.Report.Register(api)
		deps.Watchlist.Register(api)
	})
	return r
}

func handleHealthz(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
			} else {
				body[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, body)
	}
}
