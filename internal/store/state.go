// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package store

import (
	"sync"

	"github.com/kvas-dev/pulseboard/internal/models"
)

// StateHolder guards the process-wide ranking state. Transitions go through
// the models.RankingState apply helpers under the lock so concurrent
// requests observe consistent snapshots.
type StateHolder struct {
	mu    sync.Mutex
	state models.RankingState
}

// NewStateHolder returns a holder seeded with the default ranking state.
func NewStateHolder() *StateHolder {
	return &StateHolder{state: models.DefaultRankingState()}
}

// Get returns a copy of the current state.
func (h *StateHolder) Get() models.RankingState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Update applies fn to the current state under the lock and returns the
// resulting state.
func (h *StateHolder) Update(fn func(*models.RankingState)) models.RankingState {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.state)
	return h.state
}

// ClampPage bounds the stored page to totalPages after a filter or sort
// change shrank the result set.
func (h *StateHolder) ClampPage(totalPages int) models.RankingState {
	h.mu.Lock()
	defer h.mu.Unlock()
	if totalPages >= 1 && h.state.Page > totalPages {
		h.state.Page = totalPages
	}
	if h.state.Page < 1 {
		h.state.Page = 1
	}
	return h.state
}
