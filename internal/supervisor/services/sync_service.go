// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package services

import (
	"context"
)

// Runner matches sync.Manager's blocking Run lifecycle.
type Runner interface {
	Run(ctx context.Context) error
}

// SyncService runs the source refresh loop under supervision. Run blocks
// until the context is canceled, so the wrapper is a straight delegation;
// a non-context error return makes suture restart the loop with backoff.
type SyncService struct {
	runner Runner
}

// NewSyncService wraps the refresh loop runner.
func NewSyncService(runner Runner) *SyncService {
	return &SyncService{runner: runner}
}

// Serve implements suture.Service.
func (s *SyncService) Serve(ctx context.Context) error {
	return s.runner.Run(ctx)
}

// String identifies the service in supervisor logs.
func (s *SyncService) String() string {
	return "sync-refresher"
}
