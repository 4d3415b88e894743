// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedjora/kedjora-go/internal/session"
)

// stubReader returns a fixed token or error.
type stubReader struct {
	tok   session.Token
	err   error
	calls int
}

func (s *stubReader) Read(*http.Request) (session.Token, error) {
	s.calls++
	return s.tok, s.err
}

func validReader() *stubReader {
	return &stubReader{tok: session.Token{
		UserID:    "user-1",
		Role:      RoleAdmin,
		Email:     "admin@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
}

func absentReader() *stubReader {
	return &stubReader{err: session.ErrNoSession}
}

// okHandler records whether it ran and what session it saw.
type okHandler struct {
	called bool
	tok    session.Token
	hasTok bool
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.tok, h.hasTok = GetSession(r)
	w.WriteHeader(http.StatusOK)
}

func serveGuard(reader SessionReader, cfg GuardConfig, req *http.Request) (*httptest.ResponseRecorder, *okHandler) {
	next := &okHandler{}
	rec := httptest.NewRecorder()
	Guard(reader, cfg)(next).ServeHTTP(rec, req)
	return rec, next
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want PathClass
	}{
		{"/login", LegacyLogin},
		{"/login/", OtherPath},
		{"/admin", AdminPath},
		{"/admin/", AdminPath},
		{"/admin/services/new", AdminPath},
		{"/administrator", OtherPath},
		{"/auth", AuthPath},
		{"/auth/login", AuthPath},
		{"/auth/logout", AuthPath},
		{"/authors", OtherPath},
		{"/", OtherPath},
		{"/services/web", OtherPath},
		{"/api/services", OtherPath},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestGuard_LegacyLoginAlwaysRedirects(t *testing.T) {
	for name, reader := range map[string]*stubReader{"no session": absentReader(), "valid session": validReader()} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/login?callbackUrl=%2Fadmin", nil)
			rec, next := serveGuard(reader, GuardConfig{}, req)

			assert.False(t, next.called)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/auth/login?callbackUrl=%2Fadmin", rec.Header().Get("Location"))
			assert.Zero(t, reader.calls, "the alias is resolved before any session check")
		})
	}
}

func TestGuard_AdminWithoutSessionRedirectsWithCallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/admin/services?page=2", nil)
	rec, next := serveGuard(absentReader(), GuardConfig{}, req)

	assert.False(t, next.called)
	require.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, LoginPath, loc.Path)
	assert.Equal(t, "http://example.com/admin/services?page=2", loc.Query().Get(CallbackParam))
}

func TestGuard_AdminRootWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/admin", nil)
	rec, next := serveGuard(absentReader(), GuardConfig{}, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?callbackUrl=http%3A%2F%2Fexample.com%2Fadmin", rec.Header().Get("Location"))
}

func TestGuard_AdminWithSessionPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec, next := serveGuard(validReader(), GuardConfig{}, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	require.True(t, next.hasTok)
	assert.Equal(t, "user-1", next.tok.UserID)
}

func TestGuard_InvalidTokenIsAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec, next := serveGuard(&stubReader{err: session.ErrInvalidToken}, GuardConfig{}, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestGuard_FailsClosedOnUnexpectedError(t *testing.T) {
	reader := &stubReader{err: errors.New("signing key unavailable")}

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	rec, next := serveGuard(reader, GuardConfig{}, req)

	assert.False(t, next.called, "an admin request must never pass through on a read error")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), LoginPath+"?"+CallbackParam+"=")

	// The login page stays reachable so the user can sign in again.
	req = httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec, next = serveGuard(reader, GuardConfig{}, req)
	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_LoginPageWithSessionRedirectsToAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec, next := serveGuard(validReader(), GuardConfig{}, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, AdminRoot, rec.Header().Get("Location"))
}

func TestGuard_LoginPageWithoutSessionPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/login?callbackUrl=%2Fadmin", nil)
	rec, next := serveGuard(absentReader(), GuardConfig{}, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_OtherAuthPathsPassThrough(t *testing.T) {
	reader := validReader()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec, next := serveGuard(reader, GuardConfig{}, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_PublicPathsUntouched(t *testing.T) {
	reader := absentReader()
	for _, path := range []string{"/", "/services", "/api/services", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec, next := serveGuard(reader, GuardConfig{}, req)
		assert.True(t, next.called, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Zero(t, reader.calls, "public paths never read the session")
}

func TestRequestURL(t *testing.T) {
	t.Run("plain http", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://site.test/admin?x=1", nil)
		assert.Equal(t, "http://site.test/admin?x=1", RequestURL(req, false))
	})

	t.Run("tls", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://site.test/admin", nil)
		req.TLS = &tls.ConnectionState{}
		assert.Equal(t, "https://site.test/admin", RequestURL(req, false))
	})

	t.Run("forwarded proto ignored unless trusted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://site.test/admin", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		assert.Equal(t, "http://site.test/admin", RequestURL(req, false))
		assert.Equal(t, "https://site.test/admin", RequestURL(req, true))
	})

	t.Run("site url", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://site.test/blog/post?x=1", nil)
		assert.Equal(t, "http://site.test", SiteURL(req, false))
	})
}

func TestLoginURL_EncodesOnce(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://site.test/admin/services?q=a%20b", nil)
	loc, err := url.Parse(LoginURL(req, false))
	require.NoError(t, err)

	// A single decode yields the original URL unchanged.
	assert.Equal(t, "http://site.test/admin/services?q=a%20b", loc.Query().Get(CallbackParam))
}

func TestSafeCallback(t *testing.T) {
	const host = "site.test"
	tests := []struct {
		name     string
		callback string
		want     string
	}{
		{"empty", "", "/admin"},
		{"relative", "/admin/orders?page=2", "/admin/orders?page=2"},
		{"absolute same host", "http://site.test/admin/services", "/admin/services"},
		{"absolute https same host", "https://site.test/admin", "/admin"},
		{"other host", "https://evil.test/admin", "/admin"},
		{"protocol relative", "//evil.test/admin", "/admin"},
		{"backslash", "/\\evil.test", "/admin"},
		{"javascript", "javascript:alert(1)", "/admin"},
		{"no leading slash", "admin", "/admin"},
		{"userinfo", "http://user@site.test/admin", "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeCallback(tt.callback, host, "/admin"))
		})
	}
}
