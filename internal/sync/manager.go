// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kvas-dev/pulseboard/internal/cache"
	"github.com/kvas-dev/pulseboard/internal/config"
	"github.com/kvas-dev/pulseboard/internal/ingest"
	"github.com/kvas-dev/pulseboard/internal/logging"
	"github.com/kvas-dev/pulseboard/internal/metrics"
	"github.com/kvas-dev/pulseboard/internal/models"
	"github.com/kvas-dev/pulseboard/internal/store"
)

// Manager drives the refresh cycle: an immediate refresh on start, then one
// per interval, plus manual triggers from the API. Concurrent refreshes are
// serialized by syncMu; the last writer wins on the store.
type Manager struct {
	client FeedClient
	store  *store.ActivityStore
	cache  *cache.Cache
	cfg    config.SyncConfig

	// syncMu serializes refresh cycles so a manual trigger racing the
	// ticker never interleaves partial store updates.
	syncMu sync.Mutex
}

// NewManager wires a refresh manager. cache may be nil when no response
// caching is configured.
func NewManager(client FeedClient, st *store.ActivityStore, c *cache.Cache, cfg config.SyncConfig) *Manager {
	return &Manager{
		client: client,
		store:  st,
		cache:  c,
		cfg:    cfg,
	}
}

// Run blocks, refreshing immediately and then on every interval tick, until
// ctx is canceled. The supervisor restarts it on unexpected return.
func (m *Manager) Run(ctx context.Context) error {
	logging.Info().Dur("interval", m.cfg.Interval).Msg("Sync manager started")

	if err := m.Refresh(ctx, "scheduled"); err != nil {
		logging.Warn().Err(err).Msg("Initial refresh incomplete")
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Sync manager stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := m.Refresh(ctx, "scheduled"); err != nil {
				logging.Warn().Err(err).Msg("Scheduled refresh incomplete")
			}
		}
	}
}

// Refresh runs one full cycle: fetch both feeds with retries, swap whatever
// succeeded into the store, and invalidate the analytics cache. A feed that
// fails every attempt leaves its prior snapshot untouched; the returned
// error joins the per-feed failures.
func (m *Manager) Refresh(ctx context.Context, trigger string) error {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	start := time.Now()
	postsErr := m.refreshPosts(ctx)
	leaderboardErr := m.refreshLeaderboard(ctx)

	result := "success"
	switch {
	case postsErr != nil && leaderboardErr != nil:
		result = "failure"
	case postsErr != nil || leaderboardErr != nil:
		result = "partial"
	}

	if postsErr == nil || leaderboardErr == nil {
		// At least one snapshot changed; cached derived views are stale.
		if m.cache != nil {
			m.cache.Clear()
		}
	}

	metrics.RecordRefresh(trigger, result, time.Since(start))
	logging.Info().
		Str("trigger", trigger).
		Str("result", result).
		Dur("duration", time.Since(start)).
		Msg("Refresh cycle finished")

	return errors.Join(postsErr, leaderboardErr)
}

func (m *Manager) refreshPosts(ctx context.Context) error {
	posts, err := withRetries(ctx, m.cfg, "posts", func() ([]models.PostRecord, error) {
		return m.client.FetchPosts(ctx)
	})
	if err != nil {
		return err
	}
	m.store.ReplacePosts(posts)
	metrics.RecordIngest("posts", len(posts))
	metrics.PostsStored.Set(float64(len(posts)))
	return nil
}

func (m *Manager) refreshLeaderboard(ctx context.Context) error {
	stats, err := withRetries(ctx, m.cfg, "leaderboard", func() ([]models.UserStat, error) {
		return m.client.FetchLeaderboard(ctx)
	})
	if err != nil {
		return err
	}
	m.store.ReplaceBaseStats(stats)
	metrics.RecordIngest("leaderboard", len(stats))
	metrics.UsersStored.Set(float64(len(stats)))
	return nil
}

// withRetries runs fn up to RetryAttempts+1 times with RetryDelay between
// attempts, honoring ctx cancellation.
func withRetries[T any](ctx context.Context, cfg config.SyncConfig, source string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	attempts := cfg.RetryAttempts + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(cfg.RetryDelay):
			}
		}
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		recordFeedError(source, err)
		logging.Warn().Err(err).Str("source", source).Int("attempt", attempt+1).Msg("Feed fetch failed")
	}
	return zero, lastErr
}

func recordFeedError(source string, err error) {
	op := "fetch"
	var ingestErr *ingest.IngestError
	if errors.As(err, &ingestErr) {
		op = ingestErr.Op
	}
	metrics.RecordIngestError(source, op)
}
