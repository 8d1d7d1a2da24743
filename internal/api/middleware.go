// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/kvas-dev/pulseboard/internal/config"
)

// ChiMiddleware bundles the cross-cutting HTTP middleware built from the
// security configuration: CORS and per-client rate limiting.
type ChiMiddleware struct {
	cfg config.SecurityConfig
}

// NewChiMiddleware builds the middleware set from the security config.
func NewChiMiddleware(cfg config.SecurityConfig) *ChiMiddleware {
	return &ChiMiddleware{cfg: cfg}
}

// CORS returns the CORS middleware. With no configured origins the API is
// same-origin only and the middleware passes requests through unchanged.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	if len(m.cfg.CORSOrigins) == 0 {
		return passthrough
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   m.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns the default per-IP rate limiter for API routes.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return passthrough
	}
	return httprate.LimitByIP(m.cfg.RateLimitReqs, m.cfg.RateLimitWindow)
}

// RefreshRateLimit returns a tighter limiter for the manual refresh
// endpoint, which fans out to the upstream sources on every call.
func (m *ChiMiddleware) RefreshRateLimit() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return passthrough
	}
	return httprate.LimitByIP(10, time.Minute)
}

// SecurityHeaders sets baseline hardening headers on every API response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func passthrough(next http.Handler) http.Handler {
	return next
}
