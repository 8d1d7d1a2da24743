// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kvas-dev/pulseboard/internal/middleware"
)

// NewRouter assembles the full route tree. Health probes stay outside the
// rate-limited API group so orchestration checks never get throttled.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.Live)
		r.Get("/ready", h.Ready)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.RequestLogging)

		r.Get("/leaderboard", h.Leaderboard)
		r.Post("/leaderboard/state", h.UpdateState)
		r.Get("/users/{username}/posts", h.UserPosts)
		r.Get("/stats", h.Stats)
		r.Get("/analytics", h.Analytics)
		r.Get("/analytics/export/csv", h.ExportCSV)
		r.Get("/analytics/export/json", h.ExportJSON)

		r.Group(func(r chi.Router) {
			r.Use(mw.RefreshRateLimit())
			r.Post("/refresh", h.Refresh)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
