// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/kvas-dev/pulseboard/internal/logging"
	"github.com/kvas-dev/pulseboard/internal/middleware"
	"github.com/kvas-dev/pulseboard/internal/models"
	"github.com/kvas-dev/pulseboard/internal/validation"
)

// respondJSON writes a success envelope. Bodies get a weak ETag so polling
// dashboards can revalidate cheaply.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}, cached bool) {
	response := models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			Cached:    cached,
		},
	}

	body, err := json.Marshal(response)
	if err != nil {
		logging.Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("Failed to marshal response")
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", etagFor(body))
	w.WriteHeader(status)
	w.Write(body)
}

// respondError writes an error envelope with the given status code.
func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	logging.Warn().
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Str("code", apiErr.Code).
		Str("message", sanitizeLogValue(apiErr.Message)).
		Int("status", status).
		Msg("Request failed")

	response := models.APIResponse{
		Status:   "error",
		Error:    apiErr,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}

	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// validationError converts a validation failure to the wire error shape.
func validationError(ve *validation.RequestValidationError) *models.APIError {
	apiErr := ve.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// etagFor computes a weak ETag over the response body with FNV-1a.
func etagFor(body []byte) string {
	hash := uint32(2166136261)
	for _, b := range body {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return fmt.Sprintf(`W/"%08x"`, hash)
}

// sanitizeLogValue strips control characters so attacker-supplied strings
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return ' '
		}
		return r
	}, s)
}
