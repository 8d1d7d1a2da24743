// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package ranking

import (
	"fmt"
	"testing"

	"github.com/kvas-dev/pulseboard/internal/models"
)

func makeStats(n int) []models.UserStat {
	stats := make([]models.UserStat, n)
	for i := range stats {
		stats[i] = models.UserStat{
			Username: fmt.Sprintf("user%02d", i),
			Posts:    i,
			Likes:    (n - i) * 2,
		}
	}
	return stats
}

func state(mutate func(*models.RankingState)) models.RankingState {
	s := models.DefaultRankingState()
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestRankSortsDescendingByDefault(t *testing.T) {
	stats := makeStats(5)
	res := Rank(stats, state(nil))

	if res.Page[0].Posts != 4 {
		t.Errorf("first row posts = %d, want 4 (descending)", res.Page[0].Posts)
	}
	for i := 1; i < len(res.Page); i++ {
		if res.Page[i].Posts > res.Page[i-1].Posts {
			t.Fatalf("rows not descending at %d: %+v", i, res.Page)
		}
	}
}

func TestRankAscending(t *testing.T) {
	res := Rank(makeStats(5), state(func(s *models.RankingState) {
		s.SortOrder = models.OrderAsc
	}))
	if res.Page[0].Posts != 0 {
		t.Errorf("first row posts = %d, want 0 (ascending)", res.Page[0].Posts)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	stats := makeStats(5)
	firstBefore := stats[0].Username
	Rank(stats, state(nil))
	if stats[0].Username != firstBefore {
		t.Error("input slice was reordered")
	}
}

func TestRankStableOnTies(t *testing.T) {
	stats := []models.UserStat{
		{Username: "first", Likes: 5},
		{Username: "second", Likes: 5},
		{Username: "third", Likes: 5},
	}
	res := Rank(stats, state(func(s *models.RankingState) {
		s.SortKey = models.SortByLikes
	}))
	for i, want := range []string{"first", "second", "third"} {
		if res.Page[i].Username != want {
			t.Fatalf("tie order broken: %+v", res.Page)
		}
	}
}

func TestRankSearchFilter(t *testing.T) {
	stats := []models.UserStat{
		{Username: "Alice"},
		{Username: "alicia"},
		{Username: "bob"},
	}
	res := Rank(stats, state(func(s *models.RankingState) {
		s.SearchQuery = "ALI"
	}))
	if res.Pagination.TotalRows != 2 {
		t.Errorf("filtered rows = %d, want 2", res.Pagination.TotalRows)
	}
	for _, row := range res.Page {
		if row.Username == "bob" {
			t.Error("non-matching row survived the filter")
		}
	}
}

func TestRankPagination(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		page       int
		wantPage   int
		wantTotal  int
		wantOnPage int
	}{
		{"empty set still one page", 0, 1, 1, 1, 0},
		{"exact page boundary", 30, 2, 2, 2, 15},
		{"partial last page", 31, 3, 3, 3, 1},
		{"page beyond last clamps", 20, 9, 2, 2, 5},
		{"page below one clamps", 20, 0, 1, 2, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Rank(makeStats(tt.rows), state(func(s *models.RankingState) {
				s.Page = tt.page
			}))
			p := res.Pagination
			if p.Page != tt.wantPage || p.TotalPages != tt.wantTotal {
				t.Errorf("pagination = %+v, want page %d of %d", p, tt.wantPage, tt.wantTotal)
			}
			if len(res.Page) != tt.wantOnPage {
				t.Errorf("rows on page = %d, want %d", len(res.Page), tt.wantOnPage)
			}
			if p.Page < 1 || p.Page > p.TotalPages {
				t.Errorf("page invariant violated: %+v", p)
			}
		})
	}
}
