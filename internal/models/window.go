// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package models

import (
	"fmt"
	"strconv"
	"time"
)

// Window restricts which posts contribute to an aggregate by age. Days == 0
// means unbounded ("all"); Days > 0 keeps posts whose age at evaluation time
// is at most that many days, boundary inclusive.
//
// The window is always evaluated against the reference "now" passed to the
// aggregation call, never against a time captured earlier, so the same
// stored posts can produce different aggregates as time advances.
type Window struct {
	Days int
}

// WindowAll is the unbounded window.
var WindowAll = Window{Days: 0}

// LastNDays returns a window of n days. n <= 0 degrades to the unbounded
// window rather than erroring, mirroring the numeric-or-zero ingestion rule.
func LastNDays(n int) Window {
	if n <= 0 {
		return WindowAll
	}
	return Window{Days: n}
}

// ParseWindow parses the wire form of a window: "all" (or empty) for
// unbounded, otherwise a positive integer day count.
func ParseWindow(s string) (Window, error) {
	if s == "" || s == "all" {
		return WindowAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return WindowAll, fmt.Errorf("invalid window %q: want \"all\" or a positive day count", s)
	}
	return Window{Days: n}, nil
}

// All reports whether the window is unbounded.
func (w Window) All() bool { return w.Days <= 0 }

// Contains reports whether a post created at t falls inside the window when
// evaluated at now. The day boundary is inclusive: a post exactly Days*24h
// old still counts. A nil timestamp never matches.
func (w Window) Contains(t *time.Time, now time.Time) bool {
	if w.All() {
		return true
	}
	if t == nil {
		return false
	}
	ageDays := now.Sub(*t).Hours() / 24
	return ageDays <= float64(w.Days)
}

// String returns the wire form: "all" or the day count.
func (w Window) String() string {
	if w.All() {
		return "all"
	}
	return strconv.Itoa(w.Days)
}

// HourFilterAll disables the hour-of-day restriction.
const HourFilterAll = -1

// HourFilter optionally restricts analytics to posts created at one exact
// UTC hour of day (0-23). HourFilterAll disables the restriction. The day
// window and the hour filter always apply together (AND).
type HourFilter int

// ParseHourFilter parses "all" (or empty) or an hour 0..23.
func ParseHourFilter(s string) (HourFilter, error) {
	if s == "" || s == "all" {
		return HourFilterAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 23 {
		return HourFilterAll, fmt.Errorf("invalid hour filter %q: want \"all\" or 0-23", s)
	}
	return HourFilter(n), nil
}

// All reports whether the filter is disabled.
func (h HourFilter) All() bool { return h < 0 || h > 23 }

// Matches reports whether a post created at t matches the filter. The hour
// is taken in UTC. A nil timestamp never matches an active filter.
func (h HourFilter) Matches(t *time.Time) bool {
	if h.All() {
		return true
	}
	if t == nil {
		return false
	}
	return t.UTC().Hour() == int(h)
}

// String returns the wire form: "all" or the hour.
func (h HourFilter) String() string {
	if h.All() {
		return "all"
	}
	return strconv.Itoa(int(h))
}
