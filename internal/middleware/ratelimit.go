// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ayazdoruck/pahiy-ai/internal/ratelimit"
)

// RateLimitMiddleware enforces a fixed-window limit for one named route.
// Windows are tracked per client IP and route name, so hammering the login
// endpoint never consumes the chat budget.
func RateLimitMiddleware(limiter *ratelimit.MemoryRateLimiter, name string, limit ratelimit.Limit) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.GetClientIP(r)

			info := limiter.Allow(clientIP, name, limit)

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit.MaxRequests))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))

			if !info.Allowed {
				log.Printf("[RateLimit] Blocked %s request from %s", name, clientIP)

				if info.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", info.RetryAfter.Seconds()))
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "Too many requests. Please try again later.",
					"code":       "RATE_LIMITED",
					"retryAfter": int(info.RetryAfter.Seconds()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
