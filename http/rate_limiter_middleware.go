package http

import (
	"net"
	"net/http"
)

// RateLimitMiddleware keys the limiter on the client IP. Authenticated
// requests use the user id instead so clients behind a shared NAT do not
// starve each other.
func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := UserFromContext(r.Context())
		if key == "" {
			key, _, _ = net.SplitHostPort(r.RemoteAddr)
		}

		if !limiter.Allow(key) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
