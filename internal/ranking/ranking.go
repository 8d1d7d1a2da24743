// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package ranking sorts, filters, and paginates canonical user stats. Rank
// is a pure function of its inputs; state transitions live on
// models.RankingState and the store's holder.
package ranking

import (
	"sort"
	"strings"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// Result is one leaderboard page plus its pagination metadata.
type Result struct {
	Page       []models.UserStat
	Pagination models.Pagination
}

// Rank filters stats by the state's search query, sorts by its sort key and
// order, and slices out the requested page. The input slice is never
// mutated. A page beyond the last clamps to the last page; totalPages is
// never below 1.
func Rank(stats []models.UserStat, state models.RankingState) Result {
	filtered := filter(stats, state.SearchQuery)

	// Stable sort: rows with equal keys keep their pre-sort relative order.
	asc := state.SortOrder == models.OrderAsc
	sort.SliceStable(filtered, func(i, j int) bool {
		a := filtered[i].Metric(state.SortKey)
		b := filtered[j].Metric(state.SortKey)
		if asc {
			return a < b
		}
		return a > b
	})

	totalRows := len(filtered)
	totalPages := (totalRows + models.LeaderboardPageSize - 1) / models.LeaderboardPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := state.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * models.LeaderboardPageSize
	end := start + models.LeaderboardPageSize
	if start > totalRows {
		start = totalRows
	}
	if end > totalRows {
		end = totalRows
	}

	return Result{
		Page: filtered[start:end],
		Pagination: models.Pagination{
			Page:       page,
			TotalPages: totalPages,
			PageSize:   models.LeaderboardPageSize,
			TotalRows:  totalRows,
		},
	}
}

// filter returns the stats whose username contains the query,
// case-insensitive. An empty query matches everything. Always copies so the
// caller's slice survives the sort.
func filter(stats []models.UserStat, query string) []models.UserStat {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]models.UserStat(nil), stats...)
	}
	matched := make([]models.UserStat, 0, len(stats))
	for _, stat := range stats {
		if strings.Contains(strings.ToLower(stat.Username), query) {
			matched = append(matched, stat)
		}
	}
	return matched
}
