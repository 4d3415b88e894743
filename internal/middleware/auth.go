// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for route protection,
// session authorization and request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kedjora/kedjora-go/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeySession     ContextKey = "session"
	ContextKeyRequestPath ContextKey = "request_path"
)

// SessionReader reads and verifies the session token carried by a request.
type SessionReader interface {
	Read(r *http.Request) (session.Token, error)
}

// WithSession returns a copy of r carrying tok in its context.
func WithSession(r *http.Request, tok session.Token) *http.Request {
	ctx := context.WithValue(r.Context(), ContextKeySession, tok)
	return r.WithContext(ctx)
}

// GetSession retrieves the verified session token from the request context.
func GetSession(r *http.Request) (session.Token, bool) {
	tok, ok := r.Context().Value(ContextKeySession).(session.Token)
	return tok, ok
}

// GetUserID returns the current user's ID from context, or "" if there is none.
func GetUserID(r *http.Request) string {
	if tok, ok := GetSession(r); ok {
		return tok.UserID
	}
	return ""
}

// GetUserIDPtr returns a pointer to the current user's ID, or nil.
// Useful for optional user ID parameters in event logging.
func GetUserIDPtr(r *http.Request) *string {
	if tok, ok := GetSession(r); ok && tok.UserID != "" {
		id := tok.UserID
		return &id
	}
	return nil
}

// readSession reads the session and reports whether it is usable. Expected
// failures (no cookie, bad token) are silent; anything else is logged. Every
// failure counts as "no session".
func readSession(reader SessionReader, r *http.Request) (session.Token, bool) {
	tok, err := reader.Read(r)
	if err == nil {
		return tok, true
	}
	if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrInvalidToken) {
		slog.ErrorContext(r.Context(), "session read failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"category", "auth",
		)
	}
	return session.Token{}, false
}

// RequireSession rejects requests without a valid session with a JSON 401
// before the wrapped handler runs. On success the token is stored in the
// request context.
func RequireSession(reader SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := readSession(reader, r)
			if !ok {
				WriteUnauthorized(w)
				return
			}
			next.ServeHTTP(w, WithSession(r, tok))
		})
	}
}

// WriteUnauthorized writes the JSON 401 response used for session failures.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Unauthorized",
	})
}

// RequestPath stores the request path in the context. The event log handler
// records it with warnings and errors logged through the *Context slog calls.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// User roles, matching store.RoleAdmin and store.RoleEditor.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions.
func roleLevel(role string) int {
	switch role {
	case RoleAdmin:
		return 2
	case RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole requires a minimum role on an already authenticated request.
// Roles are hierarchical: ADMIN > EDITOR. It must run after the shell gate
// or RequireSession. API paths get a JSON 403, pages a plain one.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := GetSession(r)
			if !ok {
				WriteUnauthorized(w)
				return
			}

			if roleLevel(tok.Role) < minLevel {
				slog.WarnContext(r.Context(), "access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", tok.UserID,
					"user_role", tok.Role,
					"required_role", minRole,
					"category", "auth",
				)
				if strings.HasPrefix(r.URL.Path, "/api/") {
					writeForbidden(w)
					return
				}
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Forbidden",
	})
}
