// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by every HTTP
// endpoint. Status is "success" or "error"; Error is populated only on
// error responses.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"rows": [...], "pagination": {...}},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "invalid window"},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields: the server timestamp
// and whether the payload was served from the analytics cache.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Cached    bool      `json:"cached,omitempty"`
}

// APIError is the structured error detail inside an error APIResponse.
//
// Common codes:
//   - VALIDATION_ERROR: invalid query or body parameters
//   - NOT_FOUND: unknown route or resource
//   - REFRESH_FAILED: manual refresh could not reach either source
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Pagination is the page metadata returned with a leaderboard page. Page is
// already clamped to [1, TotalPages].
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	PageSize   int `json:"page_size"`
	TotalRows  int `json:"total_rows"`
}

// LeaderboardPage is one page of the ranked leaderboard plus the state it
// was computed under, so a client can render sort arrows and the pager
// without tracking state itself.
type LeaderboardPage struct {
	Rows       []UserStat   `json:"rows"`
	Pagination Pagination   `json:"pagination"`
	State      RankingState `json:"state"`
}

// Totals is the summary strip above the leaderboard: aggregate counts over
// the current windowed leaderboard rows.
type Totals struct {
	TotalPosts int `json:"total_posts"`
	TotalUsers int `json:"total_users"`
	TotalViews int `json:"total_views"`
}

// UserPosts is the per-user post listing payload.
type UserPosts struct {
	Username string       `json:"username"`
	Posts    []PostRecord `json:"posts"`
}

// RefreshStatus reports the outcome of a refresh cycle. PostsLoaded and
// LeaderboardLoaded are the record counts of the current snapshots; zero
// means that source has never loaded.
type RefreshStatus struct {
	PostsLoaded       int       `json:"posts_loaded"`
	LeaderboardLoaded int       `json:"leaderboard_loaded"`
	LastRefresh       time.Time `json:"last_refresh"`
}
