// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedItem struct {
	Title string
	Price sql.NullString
	When  time.Time
}

func TestRemember_LoadsOnceThenHits(t *testing.T) {
	m := NewManager(NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute}), time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]cachedItem, error) {
		calls++
		return []cachedItem{{Title: "Web", Price: sql.NullString{String: "$500", Valid: true}, When: time.Unix(1700000000, 0).UTC()}}, nil
	}

	first, err := Remember(ctx, m, "services:active", load)
	require.NoError(t, err)
	second, err := Remember(ctx, m, "services:active", load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "$500", second[0].Price.String)
	assert.True(t, second[0].When.Equal(first[0].When))
}

func TestRemember_LoadErrorNotCached(t *testing.T) {
	m := NewManager(NewMemoryCache(MemoryCacheOptions{}), time.Minute)
	ctx := context.Background()
	boom := errors.New("db down")

	_, err := Remember(ctx, m, "k", func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	got, err := Remember(ctx, m, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestRemember_NilManagerLoadsDirectly(t *testing.T) {
	var m *Manager
	got, err := Remember(context.Background(), m, "k", func(context.Context) (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	m.InvalidateContent(context.Background())
}

func TestManager_InvalidateContent(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{})
	m := NewManager(backend, time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (int, error) { calls++; return calls, nil }

	_, _ = Remember(ctx, m, "home", load)
	_ = backend.Set(ctx, "unrelated", []byte("1"), 0)
	m.InvalidateContent(ctx)

	got, err := Remember(ctx, m, "home", load)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	has, _ := backend.Has(ctx, "unrelated")
	assert.True(t, has)
}

func TestManager_StatsAndPing(t *testing.T) {
	m := NewManager(NewMemoryCache(MemoryCacheOptions{}), time.Minute)
	s, ok := m.Stats()
	require.True(t, ok)
	assert.Equal(t, "memory", s.Backend)
	assert.NoError(t, m.Ping(context.Background()))
	assert.NoError(t, m.Close())
}

func TestTypedCache_UndecodableEntryIsMiss(t *testing.T) {
	backend := NewMemoryCache(MemoryCacheOptions{})
	ctx := context.Background()
	_ = backend.Set(ctx, "k", []byte("{not json"), 0)

	tc := NewTypedCache[cachedItem](backend, time.Minute)
	_, ok := tc.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewCache_FallsBackToMemory(t *testing.T) {
	c := NewCache(Config{DefaultTTL: time.Minute})
	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
	_ = c.Close()

	c = NewCache(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute})
	_, ok = c.(*MemoryCache)
	assert.True(t, ok, "unreachable redis should fall back to memory")
	_ = c.Close()
}
