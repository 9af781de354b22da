package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	platformredis "listingguard/internal/platform/redis"
	"listingguard/pkg/requestcontext"
)

// RateLimiter is a fixed-window per-caller limiter backed by redis INCR.
// The window key is (caller, window start); INCR is atomic so concurrent
// requests cannot undercount. When redis is down the limiter fails open:
// availability over strictness for a read-heavy public API.
type RateLimiter struct {
	client   *platformredis.Client
	logger   *slog.Logger
	requests int
	window   time.Duration
}

// NewRateLimiter builds a limiter. A nil client or non-positive request
// budget disables limiting entirely.
func NewRateLimiter(client *platformredis.Client, logger *slog.Logger, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, logger: logger, requests: requests, window: window}
}

// Limit is the middleware. Keys on authenticated user when present, client IP
// otherwise.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	if l == nil || l.client == nil || l.requests <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		caller := requestcontext.UserID(ctx).String()
		if userID := requestcontext.UserID(ctx); userID.IsNil() {
			caller = requestcontext.ClientIP(ctx)
			if caller == "" {
				caller = r.RemoteAddr
			}
		}

		windowStart := requestcontext.Now(ctx).Truncate(l.window).Unix()
		key := "ratelimit:" + caller + ":" + strconv.FormatInt(windowStart, 10)

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			l.logger.WarnContext(ctx, "rate limiter unavailable, failing open",
				"error", err,
				"request_id", GetRequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			// First hit owns the key; bound its lifetime to the window.
			if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
				l.logger.WarnContext(ctx, "failed to set rate limit key expiry",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
			}
		}

		if count > int64(l.requests) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited","message":"too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
