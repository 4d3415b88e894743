// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kedjora/kedjora-go/internal/session"
)

func TestGetSession(t *testing.T) {
	t.Run("no session in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := GetSession(req)
		assert.False(t, ok)
		assert.Empty(t, GetUserID(req))
		assert.Nil(t, GetUserIDPtr(req))
	})

	t.Run("session in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = WithSession(req, session.Token{UserID: "u-1", Email: "a@example.com", Role: RoleEditor})

		tok, ok := GetSession(req)
		require.True(t, ok)
		assert.Equal(t, RoleEditor, tok.Role)
		assert.Equal(t, "u-1", GetUserID(req))
		require.NotNil(t, GetUserIDPtr(req))
		assert.Equal(t, "u-1", *GetUserIDPtr(req))
	})
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		reader     *stubReader
		wantStatus int
		wantCalled bool
	}{
		{"valid session", validReader(), http.StatusOK, true},
		{"no cookie", absentReader(), http.StatusUnauthorized, false},
		{"invalid token", &stubReader{err: session.ErrInvalidToken}, http.StatusUnauthorized, false},
		{"unexpected error", &stubReader{err: errors.New("boom")}, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &okHandler{}
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/services/abc", nil)

			RequireSession(tt.reader)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, next.called)
			if tt.wantCalled {
				assert.True(t, next.hasTok)
				assert.Equal(t, "user-1", next.tok.UserID)
				return
			}

			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
			var body map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Unauthorized", body["error"])
		})
	}
}

func TestRoleLevel(t *testing.T) {
	tests := []struct {
		role     string
		expected int
	}{
		{RoleAdmin, 2},
		{RoleEditor, 1},
		{"admin", 0},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.expected, roleLevel(tt.role))
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		minRole    string
		userRole   string
		noSession  bool
		wantStatus int
	}{
		{"admin accessing admin route", RoleAdmin, RoleAdmin, false, http.StatusOK},
		{"admin accessing editor route", RoleEditor, RoleAdmin, false, http.StatusOK},
		{"editor accessing editor route", RoleEditor, RoleEditor, false, http.StatusOK},
		{"editor accessing admin route", RoleAdmin, RoleEditor, false, http.StatusForbidden},
		{"unknown role", RoleEditor, "VIEWER", false, http.StatusForbidden},
		{"no session", RoleEditor, "", true, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &okHandler{}
			req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
			if !tt.noSession {
				req = WithSession(req, session.Token{UserID: "u-1", Role: tt.userRole})
			}
			rr := httptest.NewRecorder()

			RequireRole(tt.minRole)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, next.called)
		})
	}
}

func TestRequireRole_APIPathsGetJSON(t *testing.T) {
	next := &okHandler{}
	req := httptest.NewRequest(http.MethodPost, "/api/settings", nil)
	req = WithSession(req, session.Token{UserID: "u-2", Role: RoleEditor})
	rr := httptest.NewRecorder()

	RequireRole(RoleAdmin)(next).ServeHTTP(rr, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"Forbidden"}`, rr.Body.String())
}

func TestRequestPath(t *testing.T) {
	var got string
	handler := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/services/web", nil))

	assert.Equal(t, "/services/web", got)
	assert.Empty(t, GetRequestPath(context.Background()))
}
