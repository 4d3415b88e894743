// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedjora/kedjora-go/internal/auth"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/service"
	"github.com/kedjora/kedjora-go/internal/session"
	"github.com/kedjora/kedjora-go/internal/store"
	"github.com/kedjora/kedjora-go/internal/testutil"
	"github.com/kedjora/kedjora-go/web"
)

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	r, err := render.New(render.Config{TemplatesFS: templatesFS, IsDev: true})
	require.NoError(t, err)
	return r
}

type authEnv struct {
	db       *sql.DB
	sessions *session.Manager
	handler  *AuthHandler
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	db := testutil.TestDB(t)
	testutil.CreateUser(t, db, "admin@example.com", "Admin123!", "Admin", "ADMIN")

	sm, err := session.NewManager(session.Options{Secret: testutil.TestSecret})
	require.NoError(t, err)
	verifier, err := auth.NewVerifier(store.New(db), 5*time.Second)
	require.NoError(t, err)

	h := NewAuthHandler(db, testRenderer(t), sm, verifier, service.NewEventService(db), nil)
	return &authEnv{db: db, sessions: sm, handler: h}
}

func formLogin(email, password, callback string) *http.Request {
	form := url.Values{"email": {email}, "password": {password}}
	if callback != "" {
		form.Set("callbackUrl", callback)
	}
	req := httptest.NewRequest(http.MethodPost, "http://site.test/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	e := newAuthEnv(t)

	rec := httptest.NewRecorder()
	e.handler.Login(rec, formLogin("admin@example.com", "Admin123!", "/admin/orders"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/orders", rec.Header().Get("Location"))

	c := sessionCookie(rec, e.sessions.CookieName())
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	tok, err := e.sessions.Parse(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", tok.Email)
	assert.Equal(t, "ADMIN", tok.Role)

	u, err := store.New(e.db).GetUserByEmail(t.Context(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, u.LastLoginAt.Valid)
}

func TestLogin_EmailIsTrimmed(t *testing.T) {
	e := newAuthEnv(t)

	rec := httptest.NewRecorder()
	e.handler.Login(rec, formLogin("  admin@example.com ", "Admin123!", ""))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(rec, e.sessions.CookieName()))
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	e := newAuthEnv(t)

	cases := map[string]*http.Request{
		"unknown user":   formLogin("nobody@example.com", "Admin123!", "/admin/services"),
		"wrong password": formLogin("admin@example.com", "wrong-password", "/admin/services"),
		"empty password": formLogin("admin@example.com", "", "/admin/services"),
	}

	var locations []string
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.handler.Login(rec, req)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Nil(t, sessionCookie(rec, e.sessions.CookieName()))
			locations = append(locations, rec.Header().Get("Location"))
		})
	}

	require.Len(t, locations, len(cases))
	for _, loc := range locations {
		assert.Equal(t, "/auth/login?callbackUrl=%2Fadmin%2Fservices", loc)
	}
}

func TestLogin_JSONClient(t *testing.T) {
	e := newAuthEnv(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "http://site.test/auth/login", strings.NewReader(body))
		req.Header.Set(HeaderContentType, "application/json")
		rec := httptest.NewRecorder()
		e.handler.Login(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		rec := post(`{"email":"admin@example.com","password":"Admin123!","callbackUrl":"https://evil.test/x"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "/admin", body["url"])
		assert.NotNil(t, sessionCookie(rec, e.sessions.CookieName()))
	})

	t.Run("failure bodies match", func(t *testing.T) {
		unknown := post(`{"email":"nobody@example.com","password":"Admin123!"}`)
		wrong := post(`{"email":"admin@example.com","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, unknown.Code, wrong.Code)
		assert.JSONEq(t, unknown.Body.String(), wrong.Body.String())
		assert.JSONEq(t, `{"success":false,"error":"Invalid email or password"}`, wrong.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := post(`{"email":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginForm_KeepsCallback(t *testing.T) {
	e := newAuthEnv(t)

	rec := httptest.NewRecorder()
	e.handler.LoginForm(rec, httptest.NewRequest(http.MethodGet, "/auth/login?callbackUrl=%2Fadmin%2Fsettings", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/auth/login"`)
	assert.Contains(t, rec.Body.String(), `name="callbackUrl" value="/admin/settings"`)
}

func TestLogout_ClearsCookie(t *testing.T) {
	e := newAuthEnv(t)

	raw, _, err := e.sessions.Issue(auth.Identity{ID: "u1", Email: "admin@example.com", Role: "ADMIN"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: e.sessions.CookieName(), Value: raw})
	rec := httptest.NewRecorder()
	e.handler.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	c := sessionCookie(rec, e.sessions.CookieName())
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestSession_Status(t *testing.T) {
	e := newAuthEnv(t)

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.handler.Session(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: e.sessions.CookieName(), Value: "not.a.token"})
		rec := httptest.NewRecorder()
		e.handler.Session(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("signed in", func(t *testing.T) {
		raw, _, err := e.sessions.Issue(auth.Identity{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: "ADMIN"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: e.sessions.CookieName(), Value: raw})
		rec := httptest.NewRecorder()
		e.handler.Session(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body SessionStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Authenticated)
		require.NotNil(t, body.User)
		assert.Equal(t, "u1", body.User.ID)
		assert.Equal(t, "Admin", body.User.Name)
		require.NotNil(t, body.Expires)
		assert.True(t, body.Expires.After(time.Now()))
	})
}
