// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/session"
)

type stubReader struct {
	tok   session.Token
	err   error
	calls int
}

func (s *stubReader) Read(*http.Request) (session.Token, error) {
	s.calls++
	return s.tok, s.err
}

func validToken() session.Token {
	return session.Token{
		UserID:    "user-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Role:      "ADMIN",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestState_Resolve(t *testing.T) {
	assert.Equal(t, Authenticated, Pending.Resolve(true))
	assert.Equal(t, Unauthenticated, Pending.Resolve(false))

	// Resolved states are final.
	assert.Equal(t, Authenticated, Authenticated.Resolve(false))
	assert.Equal(t, Unauthenticated, Unauthenticated.Resolve(true))
}

func TestState_Behaviour(t *testing.T) {
	tests := []struct {
		state    State
		name     string
		content  bool
		work     bool
		redirect bool
	}{
		{Pending, "pending", false, false, false},
		{Unauthenticated, "unauthenticated", false, false, true},
		{Authenticated, "authenticated", true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.state.String())
			assert.Equal(t, tt.content, tt.state.ShowsContent())
			assert.Equal(t, tt.work, tt.state.AllowsWork())
			assert.Equal(t, tt.redirect, tt.state.RedirectsToLogin())
		})
	}
}

func TestGate_RedirectsWithoutSession(t *testing.T) {
	for name, err := range map[string]error{
		"no cookie":  session.ErrNoSession,
		"bad token":  session.ErrInvalidToken,
		"read error": errors.New("boom"),
	} {
		t.Run(name, func(t *testing.T) {
			called := false
			gate := NewGate(&stubReader{err: err}, false)
			h := gate.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			req := httptest.NewRequest(http.MethodGet, "http://site.test/admin/orders", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/auth/login?callbackUrl=http%3A%2F%2Fsite.test%2Fadmin%2Forders", rec.Header().Get("Location"))
		})
	}
}

func TestGate_RereadsCookieIgnoringContext(t *testing.T) {
	reader := &stubReader{err: session.ErrInvalidToken}
	gate := NewGate(reader, false)
	called := false
	h := gate.Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	// A stale token in the context does not satisfy the gate.
	req := middleware.WithSession(httptest.NewRequest(http.MethodGet, "/admin", nil), validToken())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, 1, reader.calls)
	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestGate_PassesAuthenticated(t *testing.T) {
	gate := NewGate(&stubReader{tok: validToken()}, false)
	var seen session.Token
	h := gate.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = middleware.GetSession(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", seen.UserID)
}

func TestPage(t *testing.T) {
	req := middleware.WithSession(httptest.NewRequest(http.MethodGet, "/admin", nil), validToken())
	td := Page(req, "Dashboard", 42)

	assert.Equal(t, "Dashboard", td.Title)
	assert.Equal(t, 42, td.Data)
	assert.Equal(t, "pending", td.ShellState)
	require.NotNil(t, td.User)
	assert.Equal(t, "Ada", td.User.Name)
	assert.Equal(t, "ADMIN", td.User.Role)

	anon := Page(httptest.NewRequest(http.MethodGet, "/admin", nil), "x", nil)
	assert.Nil(t, anon.User)
}
