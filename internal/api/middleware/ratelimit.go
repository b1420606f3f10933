package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/shresthasriv/ecom-nexora/internal/errors"
	"github.com/shresthasriv/ecom-nexora/internal/utils/response"
)

// RateLimiter reports isAllowed, hits left, seconds to wait, error for one hit on key.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string) (bool, int, int, error)
}

type RateLimitMiddleware struct {
	limiter RateLimiter
}

func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {

	return &RateLimitMiddleware{limiter: limiter}

}

// Limit throttles next per client address within scope. When the limiter
// itself fails the request is let through.
func (m *RateLimitMiddleware) Limit(scope string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		client := ClientIP(r)

		allowed, remaining, retryAfter, err := m.limiter.CheckRateLimit(r.Context(), scope+":"+client)
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", slog.String("scope", scope), slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			logger.Warn("Too many requests", slog.String("scope", scope), slog.String("client", client), slog.Int("retry_after", retryAfter))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			response.Error(w, errors.TooManyRequestsError("Too many requests, please try again later"))
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		next.ServeHTTP(w, r)
	}
}

// ClientIP prefers the first X-Forwarded-For hop over the socket address.
func ClientIP(r *http.Request) string {

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
