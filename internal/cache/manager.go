// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// ContentPrefix namespaces every public content entry so a single prefix
// delete drops them all after a mutation.
const ContentPrefix = "content:"

// Manager owns the content cache backend.
type Manager struct {
	backend Cacher
	ttl     time.Duration
}

// NewManager wraps backend. ttl applies to every content entry.
func NewManager(backend Cacher, ttl time.Duration) *Manager {
	return &Manager{backend: backend, ttl: ttl}
}

// Backend returns the underlying cache.
func (m *Manager) Backend() Cacher {
	return m.backend
}

// Remember reads key from the content cache or loads and stores it.
func Remember[T any](ctx context.Context, m *Manager, key string, load func(context.Context) (T, error)) (T, error) {
	if m == nil {
		return load(ctx)
	}
	return NewTypedCache[T](m.backend, m.ttl).GetOrLoad(ctx, ContentPrefix+key, load)
}

// InvalidateContent drops every cached public content entry. Failures are
// logged; stale entries then expire with their TTL.
func (m *Manager) InvalidateContent(ctx context.Context) {
	if m == nil {
		return
	}
	if err := m.backend.DeleteByPrefix(ctx, ContentPrefix); err != nil {
		slog.Error("content cache invalidation failed", "error", err, "category", "cache")
	}
}

// Stats returns backend statistics when the backend reports them.
func (m *Manager) Stats() (Stats, bool) {
	if m == nil {
		return Stats{}, false
	}
	sp, ok := m.backend.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	return sp.Stats(), true
}

// Ping reports whether the backend is reachable. The memory cache always is.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.backend.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
