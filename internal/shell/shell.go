// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package shell implements the admin shell gate. Every admin page passes
// through it after the route guard. The rendered layout repeats the check in
// the browser so an expired session bounces the user back to the login page.
package shell

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/session"
)

// State is the resolution state of the admin shell.
type State int

const (
	// Pending shows a loading indicator. No content is visible and no
	// fetches or navigation happen.
	Pending State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "pending"
	}
}

// Resolve moves a pending shell to its final state. Resolved states never
// change again.
func (s State) Resolve(authenticated bool) State {
	if s != Pending {
		return s
	}
	if authenticated {
		return Authenticated
	}
	return Unauthenticated
}

// ShowsContent reports whether the page content is visible.
func (s State) ShowsContent() bool { return s == Authenticated }

// AllowsWork reports whether the page may fetch data or navigate.
func (s State) AllowsWork() bool { return s == Authenticated }

// RedirectsToLogin reports whether the shell sends the user to the login page.
func (s State) RedirectsToLogin() bool { return s == Unauthenticated }

// Gate re-reads the session from the request cookie on every admin page,
// independently of any session already stored in the request context.
type Gate struct {
	reader         middleware.SessionReader
	trustForwarded bool
}

// NewGate creates a Gate reading sessions with reader.
func NewGate(reader middleware.SessionReader, trustForwarded bool) *Gate {
	return &Gate{reader: reader, trustForwarded: trustForwarded}
}

// Check resolves the shell state for r.
func (g *Gate) Check(r *http.Request) (State, session.Token) {
	tok, err := g.reader.Read(r)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrInvalidToken) {
			slog.ErrorContext(r.Context(), "admin shell session read failed", "error", err, "path", r.URL.Path, "category", "auth")
		}
		return Pending.Resolve(false), session.Token{}
	}
	return Pending.Resolve(true), tok
}

// Wrap redirects unauthenticated requests to the login page, keeping the
// original URL as callback, and passes authenticated ones on with the fresh
// token in the request context.
func (g *Gate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, tok := g.Check(r)
		if state.RedirectsToLogin() {
			http.Redirect(w, r, middleware.LoginURL(r, g.trustForwarded), http.StatusFound)
			return
		}
		next.ServeHTTP(w, middleware.WithSession(r, tok))
	})
}

// Page returns the template data for an admin page. The layout starts in
// the pending state and the browser resolves it against the session API.
func Page(r *http.Request, title string, data any) render.TemplateData {
	td := render.TemplateData{
		Title:      title,
		Data:       data,
		ShellState: Pending.String(),
	}
	if tok, ok := middleware.GetSession(r); ok {
		td.User = &render.User{ID: tok.UserID, Name: tok.Name, Email: tok.Email, Role: tok.Role}
	}
	return td
}
