// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package models

// LeaderboardPageSize is the fixed number of rows per leaderboard page.
const LeaderboardPageSize = 15

// RankingState is the process-wide view state of the leaderboard: sort key
// and direction, search query, current page and the active time window. It
// is mutated only through its methods, which encode the view's state
// transitions, and it never persists across restarts.
type RankingState struct {
	SortKey     SortKey   `json:"sort_key"`
	SortOrder   SortOrder `json:"sort_order"`
	SearchQuery string    `json:"search_query"`
	Page        int       `json:"page"`
	Window      Window    `json:"window"`
}

// DefaultRankingState returns the initial view state: posts descending,
// no search, first page, unbounded window.
func DefaultRankingState() RankingState {
	return RankingState{
		SortKey:   SortByPosts,
		SortOrder: OrderDesc,
		Page:      1,
		Window:    WindowAll,
	}
}

// ApplySortKey applies the header-click rule: selecting the already-active
// key toggles the direction; selecting a new key makes it active and resets
// the direction to descending.
func (s *RankingState) ApplySortKey(key SortKey) {
	if s.SortKey == key {
		s.SortOrder = s.SortOrder.Toggle()
		return
	}
	s.SortKey = key
	s.SortOrder = OrderDesc
}

// ApplySearch sets the search query and resets to the first page.
func (s *RankingState) ApplySearch(query string) {
	s.SearchQuery = query
	s.Page = 1
}

// ApplyWindow sets the time window and resets to the first page.
func (s *RankingState) ApplyWindow(w Window) {
	s.Window = w
	s.Page = 1
}

// ApplyPage sets the requested page. Values below 1 clamp to 1; clamping
// against totalPages happens at ranking time, when the filtered count is
// known.
func (s *RankingState) ApplyPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}
