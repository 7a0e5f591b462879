package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/linkboard-dev/linkboard/internal/middleware/ratelimiter"
	"github.com/linkboard-dev/linkboard/internal/utils"
)

// RateLimit limits requests per caller, where getCaller picks the bucket key.
func RateLimit(rl *ratelimiter.CallerRateLimiter, getCaller func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, err := getCaller(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(caller) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// EmailOrIP buckets internal identities by email and everyone else by IP.
// Must run after Identity.
func EmailOrIP(r *http.Request) (string, error) {
	if identity := GetIdentityFromContext(r); identity.Internal() {
		return identity.Email, nil
	}
	return GetIP(r)
}

// GetIP extracts the real client IP from RemoteAddr.
// Does NOT trust X-Real-IP or X-Forwarded-For headers.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}
