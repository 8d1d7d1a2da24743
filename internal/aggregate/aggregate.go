// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package aggregate recomputes per-user leaderboard totals from raw posts
// under a selectable time window. Recomputation is a pure transform over
// its inputs, so repeated calls with the same window, posts, and reference
// time produce identical results.
package aggregate

import (
	"time"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// Recompute derives windowed user stats from the base leaderboard and the
// raw post list. The unbounded window is the identity transform, as is any
// base record with an empty username. For a bounded window each user's
// totals are rebuilt from their posts inside the window; a user with no
// matching posts keeps their username with all-zero metrics.
func Recompute(baseStats []models.UserStat, window models.Window, posts []models.PostRecord, now time.Time) []models.UserStat {
	if window.All() {
		return baseStats
	}

	// Bucket posts by author identity once instead of scanning the full
	// list per user.
	byIdentity := make(map[string][]models.PostRecord, len(baseStats))
	for _, post := range posts {
		if post.Author == "" || !window.Contains(post.CreatedAt, now) {
			continue
		}
		id := models.Identity(post.Author)
		byIdentity[id] = append(byIdentity[id], post)
	}

	out := make([]models.UserStat, len(baseStats))
	for i, base := range baseStats {
		if base.Username == "" {
			out[i] = base
			continue
		}
		out[i] = sumStats(base.Username, byIdentity[models.Identity(base.Username)])
	}
	return out
}

// sumStats rebuilds one user's totals from their windowed posts. The
// display username from the base record is preserved.
func sumStats(username string, posts []models.PostRecord) models.UserStat {
	stat := models.UserStat{
		Username: username,
		Posts:    len(posts),
	}
	for _, post := range posts {
		stat.Likes += post.LikeCount
		stat.Retweets += post.RetweetCount
		stat.Comments += post.ReplyCount
		stat.Views += post.ViewCount
	}
	return stat
}
