package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// Per-IP request budgets for the unauthenticated write endpoints.
const (
	LoginRequestsPerMinute   = 10
	ContactRequestsPerMinute = 5
)

// RateLimit limits requests per client IP to requestsPerMinute, answering
// 429 with the JSON error envelope once the budget is spent.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeAuthError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
	)
}
