// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package config holds the application configuration, loaded via Koanf v2
// from three layered sources (highest priority wins):
//
//  1. Environment variables (see the mapping table in koanf.go)
//  2. Optional YAML config file (config.yaml)
//  3. Built-in defaults
//
// Load() returns a validated *Config or an error describing the first
// problem found.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Source   SourceConfig   `koanf:"source"`
	Sync     SyncConfig     `koanf:"sync"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// SourceConfig describes the two upstream JSON documents Pulseboard polls:
// the leaderboard document and the raw post feed. Both are read-only.
type SourceConfig struct {
	// LeaderboardURL is the location of the leaderboard JSON document.
	LeaderboardURL string `koanf:"leaderboard_url"`

	// PostsURL is the location of the raw post feed JSON document.
	PostsURL string `koanf:"posts_url"`

	// APIKey, when set, is sent as a bearer token with every upstream
	// request.
	APIKey string `koanf:"api_key"`

	// Timeout bounds a single upstream request.
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerMinute paces upstream requests. Zero disables pacing.
	RequestsPerMinute int `koanf:"requests_per_minute"`
}

// SyncConfig controls the periodic refresh of both sources.
type SyncConfig struct {
	// Interval between scheduled refreshes.
	Interval time.Duration `koanf:"interval"`

	// RetryAttempts is how many times a failed source fetch is retried
	// within one refresh cycle before giving up on that source.
	RetryAttempts int `koanf:"retry_attempts"`

	// RetryDelay is the base delay between retry attempts.
	RetryDelay time.Duration `koanf:"retry_delay"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// SecurityConfig holds the request-hardening settings. Pulseboard has no
// authentication layer; these cover CORS and rate limiting only.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// CacheConfig controls the analytics response cache.
type CacheConfig struct {
	// TTL is how long a computed analytics payload is served from cache.
	TTL time.Duration `koanf:"ttl"`
}

// LoggingConfig holds log settings, passed through to internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for consistency. It returns an error
// describing the first problem found.
func (c *Config) Validate() error {
	if c.Source.LeaderboardURL == "" {
		return fmt.Errorf("source.leaderboard_url is required")
	}
	if err := validateURL("source.leaderboard_url", c.Source.LeaderboardURL); err != nil {
		return err
	}
	if c.Source.PostsURL == "" {
		return fmt.Errorf("source.posts_url is required")
	}
	if err := validateURL("source.posts_url", c.Source.PostsURL); err != nil {
		return err
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout)
	}
	if c.Source.RequestsPerMinute < 0 {
		return fmt.Errorf("source.requests_per_minute must not be negative, got %d", c.Source.RequestsPerMinute)
	}
	if c.Sync.Interval < time.Second {
		return fmt.Errorf("sync.interval must be at least 1s, got %s", c.Sync.Interval)
	}
	if c.Sync.RetryAttempts < 0 {
		return fmt.Errorf("sync.retry_attempts must not be negative, got %d", c.Sync.RetryAttempts)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// validateURL checks that value parses as an absolute http(s) URL.
func validateURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https URL, got %q", field, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", field, value)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
