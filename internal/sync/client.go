// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package sync polls the upstream leaderboard and posts feeds on a fixed
// interval and on manual trigger, normalizes the payloads, and swaps the
// results into the activity store. A failed feed leaves the prior snapshot
// untouched.
package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/kvas-dev/pulseboard/internal/config"
	"github.com/kvas-dev/pulseboard/internal/ingest"
	"github.com/kvas-dev/pulseboard/internal/models"
)

// maxFeedBytes caps a single feed response to keep a misbehaving upstream
// from exhausting memory.
const maxFeedBytes = 64 << 20

// FeedClient fetches and normalizes the two upstream feeds. The manager
// depends on this interface so tests and the circuit breaker can wrap the
// concrete client.
type FeedClient interface {
	FetchLeaderboard(ctx context.Context) ([]models.UserStat, error)
	FetchPosts(ctx context.Context) ([]models.PostRecord, error)
}

// SourceClient is the concrete HTTP feed client with client-side rate
// limiting and optional bearer authentication.
type SourceClient struct {
	cfg        config.SourceConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSourceClient builds a client from the source configuration. A zero
// RequestsPerMinute disables the rate limiter.
func NewSourceClient(cfg config.SourceConfig) *SourceClient {
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}
	return &SourceClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}
}

// FetchLeaderboard retrieves and normalizes the leaderboard feed.
func (c *SourceClient) FetchLeaderboard(ctx context.Context) ([]models.UserStat, error) {
	raw, err := c.fetch(ctx, c.cfg.LeaderboardURL, "leaderboard")
	if err != nil {
		return nil, err
	}
	return ingest.ParseLeaderboard(raw)
}

// FetchPosts retrieves and normalizes the raw posts feed.
func (c *SourceClient) FetchPosts(ctx context.Context) ([]models.PostRecord, error) {
	raw, err := c.fetch(ctx, c.cfg.PostsURL, "posts")
	if err != nil {
		return nil, err
	}
	return ingest.ParsePosts(raw)
}

// fetch performs one rate-limited GET and returns the response body.
// Failures come back as typed ingest errors so the manager can separate
// transport faults from decode faults.
func (c *SourceClient) fetch(ctx context.Context, url, source string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &ingest.IngestError{Source: source, Op: "fetch", Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ingest.IngestError{Source: source, Op: "fetch", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ingest.IngestError{Source: source, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ingest.IngestError{
			Source: source,
			Op:     "fetch",
			Err:    fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, &ingest.IngestError{Source: source, Op: "fetch", Err: err}
	}
	return body, nil
}
