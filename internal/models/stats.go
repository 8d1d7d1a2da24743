// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package models

// UserStat is the canonical, schema-independent per-user aggregate shown on
// the leaderboard. Every numeric field is a non-negative integer: upstream
// values coerce through numeric-or-zero at ingestion, so a UserStat can
// never carry a NaN or a negative count.
//
// Username holds the display form (first non-empty source wins during
// normalization); identity comparisons use Identity(Username).
type UserStat struct {
	Username string `json:"username"`
	Posts    int    `json:"posts"`
	Likes    int    `json:"likes"`
	Retweets int    `json:"retweets"`
	Comments int    `json:"comments"`
	Views    int    `json:"views"`
}

// SortKey selects the UserStat metric a leaderboard view is ordered by.
type SortKey string

// Leaderboard sort keys. These are the only accepted values; anything else
// fails request validation.
const (
	SortByPosts    SortKey = "posts"
	SortByLikes    SortKey = "likes"
	SortByRetweets SortKey = "retweets"
	SortByComments SortKey = "comments"
	SortByViews    SortKey = "views"
)

// Valid reports whether k is one of the defined sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortByPosts, SortByLikes, SortByRetweets, SortByComments, SortByViews:
		return true
	}
	return false
}

// Metric returns the value of the metric selected by k. Unknown keys read
// as zero, matching the numeric-or-zero coercion rule everywhere else.
func (s *UserStat) Metric(k SortKey) int {
	switch k {
	case SortByPosts:
		return s.Posts
	case SortByLikes:
		return s.Likes
	case SortByRetweets:
		return s.Retweets
	case SortByComments:
		return s.Comments
	case SortByViews:
		return s.Views
	}
	return 0
}

// SortOrder is the direction of a leaderboard sort.
type SortOrder string

// Sort directions. Descending is the default for a freshly selected key.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}
