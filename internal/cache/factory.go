// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL      time.Duration
	MaxSize         int
	CleanupInterval time.Duration
}

// NewCache creates the Redis backend when RedisURL is set and reachable,
// otherwise an in-memory cache. An unreachable Redis is logged and the
// memory cache is used so the site keeps serving.
func NewCache(cfg Config) Cacher {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			slog.Info("content cache using redis", "prefix", cfg.Prefix)
			return rc
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err, "category", "cache")
	}

	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Minute
	}
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}
