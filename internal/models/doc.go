// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package models defines the shared data types for Pulseboard.
//
// The package contains three groups of types:
//
//   - Ingested records: PostRecord (raw, externally sourced posts) and
//     UserStat (the canonical per-user aggregate derived from them).
//   - View state: Window, HourFilter, SortKey, SortOrder, RankingState,
//     the selectable parameters of the leaderboard and analytics views.
//   - API payloads: APIResponse envelope, APIError, pagination metadata,
//     and the analytics result structures.
//
// Records are immutable once stored: every recomputation (window change,
// refresh, sort) produces a new slice rather than mutating in place. Two
// users are considered the same iff Identity() of their usernames is equal,
// i.e. usernames compare case-insensitively with a leading "@" stripped.
package models
