// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package api exposes the Pulseboard HTTP surface: the leaderboard and its
// view state, per-user post listings, the analytics report, CSV/JSON export
// and the manual refresh trigger. Every response uses the shared
// models.APIResponse envelope.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/kvas-dev/pulseboard/internal/aggregate"
	"github.com/kvas-dev/pulseboard/internal/analytics"
	"github.com/kvas-dev/pulseboard/internal/cache"
	"github.com/kvas-dev/pulseboard/internal/export"
	"github.com/kvas-dev/pulseboard/internal/metrics"
	"github.com/kvas-dev/pulseboard/internal/models"
	"github.com/kvas-dev/pulseboard/internal/ranking"
	"github.com/kvas-dev/pulseboard/internal/store"
	"github.com/kvas-dev/pulseboard/internal/validation"
)

// Refresher triggers an out-of-schedule refresh of both sources.
type Refresher interface {
	Refresh(ctx context.Context, trigger string) error
}

// Handler carries the dependencies shared by all endpoints.
type Handler struct {
	store     *store.ActivityStore
	state     *store.StateHolder
	cache     *cache.Cache
	refresher Refresher
	startTime time.Time
}

// NewHandler builds the endpoint handler. cache may be nil to disable
// analytics response caching; refresher may be nil to disable the manual
// refresh endpoint.
func NewHandler(st *store.ActivityStore, state *store.StateHolder, c *cache.Cache, refresher Refresher) *Handler {
	return &Handler{
		store:     st,
		state:     state,
		cache:     c,
		refresher: refresher,
		startTime: time.Now().UTC(),
	}
}

// Leaderboard serves the current page of the ranked leaderboard under the
// server-side view state.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.leaderboardPage(h.state.Get()), false)
}

// stateRequest is the body of POST /leaderboard/state. All fields are
// optional; absent fields leave the corresponding state untouched.
type stateRequest struct {
	SortKey *string `json:"sort_key" validate:"omitempty,oneof=posts likes retweets comments views"`
	Search  *string `json:"search" validate:"omitempty,max=64"`
	Page    *int    `json:"page" validate:"omitempty,gte=1"`
	Window  *string `json:"window"`
}

// UpdateState applies a partial view-state change and returns the page
// recomputed under the new state. Re-sending the active sort key flips the
// sort direction.
func (h *Handler) UpdateState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "Request body must be valid JSON",
		})
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondError(w, r, http.StatusBadRequest, validationError(ve))
		return
	}

	var window *models.Window
	if req.Window != nil {
		parsed, err := models.ParseWindow(*req.Window)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, &models.APIError{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			})
			return
		}
		window = &parsed
	}

	state := h.state.Update(func(s *models.RankingState) {
		if req.SortKey != nil {
			s.ApplySortKey(models.SortKey(*req.SortKey))
		}
		if req.Search != nil {
			s.ApplySearch(*req.Search)
		}
		if window != nil {
			s.ApplyWindow(*window)
		}
		if req.Page != nil {
			s.ApplyPage(*req.Page)
		}
	})

	respondJSON(w, r, http.StatusOK, h.leaderboardPage(state), false)
}

// leaderboardPage recomputes the windowed stats, ranks them under state and
// clamps the stored page to the resulting page count.
func (h *Handler) leaderboardPage(state models.RankingState) models.LeaderboardPage {
	stats := aggregate.Recompute(h.store.BaseStats(), state.Window, h.store.Posts(), time.Now().UTC())
	result := ranking.Rank(stats, state)
	state = h.state.ClampPage(result.Pagination.TotalPages)

	rows := result.Page
	if rows == nil {
		rows = []models.UserStat{}
	}
	return models.LeaderboardPage{
		Rows:       rows,
		Pagination: result.Pagination,
		State:      state,
	}
}

// UserPosts serves every stored post by one author, newest-first in feed
// order. Unknown authors yield an empty list rather than a 404 so the UI
// can link optimistically from leaderboard rows.
func (h *Handler) UserPosts(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	posts := h.store.PostsByAuthor(username)
	if posts == nil {
		posts = []models.PostRecord{}
	}
	respondJSON(w, r, http.StatusOK, models.UserPosts{Username: username, Posts: posts}, false)
}

// statsPayload is the GET /stats response body.
type statsPayload struct {
	Totals  models.Totals        `json:"totals"`
	Refresh models.RefreshStatus `json:"refresh"`
	Uptime  string               `json:"uptime"`
}

// Stats serves the summary totals and the last refresh outcome.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, statsPayload{
		Totals:  h.store.Totals(),
		Refresh: h.store.Status(),
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}, false)
}

// Analytics serves the full analytics report for the requested window,
// hour filter and metric choices. Reports are cached by parameter set
// until the next successful refresh clears the cache.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseAnalyticsQuery(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	var key string
	if h.cache != nil {
		key = cache.GenerateKey("analytics", req)
		if cached, ok := h.cache.Get(key); ok {
			metrics.CacheHits.WithLabelValues("analytics").Inc()
			if result, ok := cached.(models.AnalyticsResult); ok {
				respondJSON(w, r, http.StatusOK, result, true)
				return
			}
		}
		metrics.CacheMisses.WithLabelValues("analytics").Inc()
	}

	result := analytics.Analyze(h.store.Posts(), req, time.Now().UTC())
	if h.cache != nil {
		h.cache.Set(key, result)
	}
	respondJSON(w, r, http.StatusOK, result, false)
}

// ExportCSV serves the per-author aggregates of the requested analytics
// window as a CSV attachment.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseAnalyticsQuery(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	result := analytics.Analyze(h.store.Posts(), req, time.Now().UTC())
	body, err := export.CSV(&result)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    "EXPORT_FAILED",
			Message: "Failed to build CSV export",
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", exportDisposition("csv", result.Period))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// ExportJSON serves the filtered working set, per-author aggregates and
// period tag as a JSON attachment.
func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseAnalyticsQuery(r)
	if apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	now := time.Now().UTC()
	_, working := analytics.FilterWorkingSet(h.store.Posts(), req.Window, req.HourFilter, now)
	result := analytics.Analyze(h.store.Posts(), req, now)
	body, err := export.JSON(&result, working)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    "EXPORT_FAILED",
			Message: "Failed to build JSON export",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", exportDisposition("json", result.Period))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Refresh triggers an immediate refresh of both sources and reports the
// store state afterwards. A refresh that fails on both sources is a 502;
// a partial refresh still returns the (partially updated) status.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    "REFRESH_FAILED",
			Message: "Manual refresh is not available",
		})
		return
	}
	if err := h.refresher.Refresh(r.Context(), "manual"); err != nil {
		respondError(w, r, http.StatusBadGateway, &models.APIError{
			Code:    "REFRESH_FAILED",
			Message: "Refresh could not reach the upstream sources",
		})
		return
	}
	respondJSON(w, r, http.StatusOK, h.store.Status(), false)
}

// healthPayload is the GET /health response body.
type healthPayload struct {
	Status  string               `json:"status"`
	Uptime  string               `json:"uptime"`
	Refresh models.RefreshStatus `json:"refresh"`
	Cache   *cache.Stats         `json:"cache,omitempty"`
}

// Health is the general health summary: process uptime, last refresh
// outcome and cache statistics.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	payload := healthPayload{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Refresh: h.store.Status(),
	}
	if h.cache != nil {
		stats := h.cache.GetStats()
		payload.Cache = &stats
	}
	respondJSON(w, r, http.StatusOK, payload, false)
}

// Live is the liveness probe: the process is up.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"}, false)
}

// Ready is the readiness probe: ready once at least one source has loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	status := h.store.Status()
	if status.PostsLoaded == 0 && status.LeaderboardLoaded == 0 {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    "NOT_READY",
			Message: "No source data loaded yet",
		})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"}, false)
}

// NotFound is the JSON 404 for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, &models.APIError{
		Code:    "NOT_FOUND",
		Message: "Route not found",
	})
}

// MethodNotAllowed is the JSON 405 for known routes with the wrong verb.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, &models.APIError{
		Code:    "METHOD_NOT_ALLOWED",
		Message: "Method not allowed",
	})
}

// analyticsQuery carries the validated GET query of the analytics and
// export endpoints.
type analyticsQuery struct {
	AuthorMetric string `validate:"omitempty,oneof=posts likes views"`
	PostMetric   string `validate:"omitempty,oneof=likes views"`
}

// parseAnalyticsQuery reads window, hour, author_metric and post_metric
// from the query string. Absent parameters take the defaults (all-time
// window, no hour filter, posts/likes metrics).
func parseAnalyticsQuery(r *http.Request) (analytics.Request, *models.APIError) {
	req := analytics.DefaultRequest()
	q := r.URL.Query()

	window, err := models.ParseWindow(q.Get("window"))
	if err != nil {
		return req, &models.APIError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}
	req.Window = window

	hour, err := models.ParseHourFilter(q.Get("hour"))
	if err != nil {
		return req, &models.APIError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}
	req.HourFilter = hour

	query := analyticsQuery{
		AuthorMetric: q.Get("author_metric"),
		PostMetric:   q.Get("post_metric"),
	}
	if ve := validation.ValidateStruct(&query); ve != nil {
		return req, validationError(ve)
	}
	if query.AuthorMetric != "" {
		req.AuthorMetric = models.AuthorMetric(query.AuthorMetric)
	}
	if query.PostMetric != "" {
		req.PostMetric = models.PostMetric(query.PostMetric)
	}
	return req, nil
}

// exportDisposition builds the attachment filename for an export download.
func exportDisposition(format, period string) string {
	return fmt.Sprintf(`attachment; filename="pulseboard_%s_%s.%s"`,
		period, time.Now().UTC().Format("20060102"), format)
}
