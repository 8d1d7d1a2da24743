// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/kvas-dev/pulseboard/internal/logging"
	"github.com/kvas-dev/pulseboard/internal/metrics"
	"github.com/kvas-dev/pulseboard/internal/models"
)

// breakerName labels the upstream feed breaker in logs and metrics.
const breakerName = "upstream-feed"

// CircuitBreakerClient wraps a FeedClient so a failing or slow upstream
// stops being hammered. Both feeds share one breaker: they live on the same
// origin, so an outage affects them together.
//
// The breaker uses real time for its interval and timeout; tests exercise
// the wrapped client directly.
type CircuitBreakerClient struct {
	client FeedClient
	cb     *gobreaker.CircuitBreaker[interface{}]
}

// NewCircuitBreakerClient wraps client with a circuit breaker that opens at
// a 60% failure rate over at least 10 requests, allows 3 probe requests
// half-open, and retries the open state after 2 minutes.
func NewCircuitBreakerClient(client FeedClient) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb}
}

// FetchLeaderboard fetches the leaderboard feed with breaker protection.
func (cbc *CircuitBreakerClient) FetchLeaderboard(ctx context.Context) ([]models.UserStat, error) {
	return castResult[[]models.UserStat](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchLeaderboard(ctx)
	}))
}

// FetchPosts fetches the posts feed with breaker protection.
func (cbc *CircuitBreakerClient) FetchPosts(ctx context.Context) ([]models.PostRecord, error) {
	return castResult[[]models.PostRecord](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchPosts(ctx)
	}))
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return result, nil
}

// castResult type-casts the breaker result, which is always the slice type
// the wrapped call returned.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
