package handlers

import (
	"net"
	"net/http"
	"strings"

	"github.com/shortflix/backend/internal/logging"
)

// RateLimiter decides whether a keyed caller may perform another write.
type RateLimiter interface {
	Allow(key string) bool
}

// allowRequest charges the caller's write budget for scope. Callers are keyed
// per scope so catalog writes and snapshot requests are budgeted separately.
func allowRequest(limiter RateLimiter, r *http.Request, scope string) bool {
	if limiter == nil {
		return true
	}

	ip := clientIP(r)
	if limiter.Allow(limiterKey(scope, ip)) {
		return true
	}

	logging.FromContext(r.Context()).Warn("write rate limited", "scope", scope, "client_ip", ip)
	return false
}

func limiterKey(scope, ip string) string {
	if scope == "" {
		return ip
	}
	return scope + ":" + ip
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	remote := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	return remote
}
