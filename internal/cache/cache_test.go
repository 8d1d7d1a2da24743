// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("analytics:7", "payload")
	got, ok := c.Get("analytics:7")
	if !ok || got != "payload" {
		t.Fatalf("Get = (%v, %v)", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("missing key reported as hit")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.SetWithTTL("short", "x", -time.Second)
	if _, ok := c.Get("short"); ok {
		t.Error("expired entry returned")
	}
	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("entry survived Clear")
	}
	if stats := c.GetStats(); stats.TotalKeys != 0 || stats.Evictions != 2 {
		t.Errorf("stats after clear = %+v", stats)
	}
}

func TestHitRate(t *testing.T) {
	c := New(time.Minute)
	defer c.Stop()

	if c.HitRate() != 0.0 {
		t.Error("hit rate with no lookups should be 0")
	}
	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("nope")
	if got := c.HitRate(); got < 66.0 || got > 67.0 {
		t.Errorf("hit rate = %v, want ~66.7", got)
	}
}

func TestGenerateKeyDeterministic(t *testing.T) {
	type params struct {
		Window string
		Hour   int
	}
	a := GenerateKey("analytics", params{"7", 10})
	b := GenerateKey("analytics", params{"7", 10})
	other := GenerateKey("analytics", params{"30", 10})

	if a != b {
		t.Error("same params produced different keys")
	}
	if a == other {
		t.Error("different params produced the same key")
	}
}
