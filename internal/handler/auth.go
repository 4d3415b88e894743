// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kedjora/kedjora-go/internal/auth"
	"github.com/kedjora/kedjora-go/internal/middleware"
	"github.com/kedjora/kedjora-go/internal/model"
	"github.com/kedjora/kedjora-go/internal/render"
	"github.com/kedjora/kedjora-go/internal/service"
	"github.com/kedjora/kedjora-go/internal/session"
	"github.com/kedjora/kedjora-go/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessions        *session.Manager
	verifier        *auth.Verifier
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
	now             func() time.Time
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *session.Manager, verifier *auth.Verifier, events *service.EventService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessions:        sm,
		verifier:        verifier,
		eventService:    events,
		loginProtection: lp,
		now:             time.Now,
	}
}

// LoginData is the template data of the login page.
type LoginData struct {
	CallbackURL string
	Email       string
}

// LoginForm renders the login page. The guard redirects signed-in users away
// before this runs.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, r, "auth/login", render.TemplateData{
		Title: "Sign in",
		Data: LoginData{
			CallbackURL: r.URL.Query().Get(middleware.CallbackParam),
		},
	})
}

// loginRequest is the JSON body of POST /auth/login.
type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackUrl"`
}

// Login handles the login form or JSON submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	jsonClient := isJSONRequest(r)

	var req loginRequest
	if jsonClient {
		r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			flashError(w, r, h.renderer, redirectLogin, "Invalid form data")
			return
		}
		req = loginRequest{
			Email:       r.PostFormValue("email"),
			Password:    r.PostFormValue("password"),
			CallbackURL: r.PostFormValue(middleware.CallbackParam),
		}
	}
	req.Email = strings.TrimSpace(req.Email)

	clientIP := middleware.ClientIP(r)
	fail := func(status int, message string) {
		if jsonClient {
			writeJSONError(w, status, message)
			return
		}
		flashError(w, r, h.renderer, loginPageURL(req.CallbackURL), message)
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(req.Email); locked {
			h.logAuth(r, model.EventLevelWarning, "Login attempt on locked account", nil, clientIP, map[string]any{"email": req.Email})
			fail(http.StatusTooManyRequests, fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(remaining)))
			return
		}
	}

	identity, err := h.verifier.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Debug("login failed", "email", req.Email, "error", err)
		h.logAuth(r, model.EventLevelWarning, "Login failed", nil, clientIP, map[string]any{"email": req.Email})
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(req.Email); locked {
				h.logAuth(r, model.EventLevelWarning, "Account locked due to failed attempts", nil, clientIP, map[string]any{"email": req.Email, "duration": lockDuration.String()})
			}
		}
		fail(http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Email)
	}
	h.afterLogin(r, identity, req.Password)

	raw, tok, err := h.sessions.Issue(identity)
	if err != nil {
		slog.ErrorContext(r.Context(), "issuing session token failed", "error", err, "user_id", identity.ID, "category", "auth")
		fail(http.StatusUnauthorized, msgInvalidCredentials)
		return
	}
	h.sessions.SetCookie(w, raw, tok)

	slog.Info("user logged in", "user_id", identity.ID, "email", identity.Email)
	h.logAuth(r, model.EventLevelInfo, "User logged in", &identity.ID, clientIP, map[string]any{"email": identity.Email})

	target := middleware.SafeCallback(req.CallbackURL, r.Host, redirectAdmin)
	if jsonClient {
		writeJSONSuccess(w, map[string]any{"url": target})
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// afterLogin upgrades outdated password hashes and records the login time.
// Failures are logged and never block the login.
func (h *AuthHandler) afterLogin(r *http.Request, identity auth.Identity, password string) {
	now := h.now()
	if auth.NeedsRehash(identity.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    now,
				ID:           identity.ID,
			}); err != nil {
				slog.ErrorContext(r.Context(), "failed to re-hash password", "error", err, "user_id", identity.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", identity.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: now, Valid: true},
		ID:          identity.ID,
	}); err != nil {
		slog.ErrorContext(r.Context(), "failed to update last login time", "error", err, "user_id", identity.ID)
	}
}

// Logout clears the session cookie. Copies of the token stay valid until
// they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if tok, err := h.sessions.Read(r); err == nil {
		h.logAuth(r, model.EventLevelInfo, "User logged out", &tok.UserID, middleware.ClientIP(r), nil)
		slog.Info("user logged out", "user_id", tok.UserID)
	}
	h.sessions.ClearCookie(w)
	flashAndRedirect(w, r, h.renderer, redirectLogin, msgLoggedOut, render.FlashInfo)
}

// SessionUser is the user part of the session status response.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionStatus is the response of GET /api/auth/session.
type SessionStatus struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	Expires       *time.Time   `json:"expires,omitempty"`
}

// Session handles GET /api/auth/session for the admin shell.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	tok, err := h.sessions.Read(r)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrInvalidToken) {
			slog.ErrorContext(r.Context(), "session status read failed", "error", err, "category", "auth")
		}
		writeJSON(w, http.StatusUnauthorized, SessionStatus{Authenticated: false})
		return
	}

	expires := tok.ExpiresAt.UTC()
	writeJSON(w, http.StatusOK, SessionStatus{
		Authenticated: true,
		User: &SessionUser{
			ID:    tok.UserID,
			Name:  tok.Name,
			Email: tok.Email,
			Role:  tok.Role,
		},
		Expires: &expires,
	})
}

func (h *AuthHandler) logAuth(r *http.Request, level, message string, userID *string, ip string, metadata map[string]any) {
	if h.eventService == nil {
		return
	}
	_ = h.eventService.LogAuthEvent(r.Context(), level, message, userID, ip, metadata)
}

// loginPageURL returns the login page URL keeping callback.
func loginPageURL(callback string) string {
	if callback == "" {
		return redirectLogin
	}
	q := url.Values{}
	q.Set(middleware.CallbackParam, callback)
	return redirectLogin + "?" + q.Encode()
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
