// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// numericOrZero coerces an arbitrary decoded JSON value to a non-negative
// integer. Unparseable or negative input collapses to 0; metric fields never
// carry NaN or negative counts.
func numericOrZero(v interface{}) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(f)
}

// stringOr returns the value as a string when it is a non-empty string,
// a stringified integer when numeric, else "". Numeric IDs arrive as JSON
// numbers in some exports.
func stringOr(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatFloat(s, 'f', 0, 64)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// firstString resolves an ordered alias list against a decoded object,
// returning the first non-empty string value.
func firstString(obj map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if s := stringOr(obj[key]); s != "" {
			return s
		}
	}
	return ""
}

// firstNumeric resolves an ordered alias list against a decoded object:
// first present non-nil key wins, coerced through numericOrZero, else zero.
func firstNumeric(obj map[string]interface{}, aliases []string) int {
	for _, key := range aliases {
		if v, ok := obj[key]; ok && v != nil {
			return numericOrZero(v)
		}
	}
	return 0
}

// timestampLayouts lists the accepted createdAt formats, most specific
// first. The ruby-date layout is the classic Twitter API format.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"Mon Jan 02 15:04:05 -0700 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp attempts each accepted layout and returns the parsed time
// in UTC, or nil when no layout matches. A nil result excludes the record
// from windowed computations without dropping it from the store.
func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
