// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package store holds the in-memory ground truth: the raw post records and
// the base leaderboard stats from the most recent successful refresh.
// Replacement is wholesale; derived views are recomputed from snapshots and
// never mutated in place.
package store

import (
	"sync"
	"time"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// ActivityStore is the process-wide holder for raw posts and base stats.
// HTTP handlers read concurrently while the sync loop replaces, so access
// is guarded by a RWMutex.
type ActivityStore struct {
	mu sync.RWMutex

	posts     []models.PostRecord
	baseStats []models.UserStat

	postsLoaded       int
	leaderboardLoaded int
	lastRefresh       time.Time
}

// NewActivityStore returns an empty store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// Posts returns the current post snapshot. Callers must not mutate the
// returned slice.
func (s *ActivityStore) Posts() []models.PostRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

// ReplacePosts swaps in a new post snapshot and stamps the refresh time.
func (s *ActivityStore) ReplacePosts(posts []models.PostRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = posts
	s.postsLoaded = len(posts)
	s.lastRefresh = time.Now().UTC()
}

// BaseStats returns the current base leaderboard snapshot. Callers must not
// mutate the returned slice.
func (s *ActivityStore) BaseStats() []models.UserStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseStats
}

// ReplaceBaseStats swaps in a new base leaderboard snapshot.
func (s *ActivityStore) ReplaceBaseStats(stats []models.UserStat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseStats = stats
	s.leaderboardLoaded = len(stats)
	s.lastRefresh = time.Now().UTC()
}

// Status reports what the store currently holds.
func (s *ActivityStore) Status() models.RefreshStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.RefreshStatus{
		PostsLoaded:       s.postsLoaded,
		LeaderboardLoaded: s.leaderboardLoaded,
		LastRefresh:       s.lastRefresh,
	}
}

// Totals summarizes the base leaderboard for the overview endpoint.
func (s *ActivityStore) Totals() models.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := models.Totals{TotalUsers: len(s.baseStats)}
	for _, stat := range s.baseStats {
		totals.TotalPosts += stat.Posts
		totals.TotalViews += stat.Views
	}
	return totals
}

// PostsByAuthor returns the posts whose author identity matches the given
// username, preserving store order.
func (s *ActivityStore) PostsByAuthor(username string) []models.PostRecord {
	identity := models.Identity(username)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.PostRecord
	for _, post := range s.posts {
		if models.Identity(post.Author) == identity {
			matched = append(matched, post)
		}
	}
	return matched
}
