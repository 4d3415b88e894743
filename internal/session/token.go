// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session issues and reads the signed, stateless session token
// carried in the admin cookie, and provides the flash message store.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kedjora/kedjora-go/internal/auth"
	"github.com/kedjora/kedjora-go/internal/config"
)

var (
	// ErrNoSession means the request carries no session cookie.
	ErrNoSession = errors.New("no session")
	// ErrInvalidToken covers malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrMisconfiguredSecret is returned by NewManager for an unusable signing key.
	ErrMisconfiguredSecret = config.ErrMisconfiguredSecret
)

// Defaults for the session cookie.
const (
	DefaultCookieName = "kedjora_session"
	DefaultTTL        = 30 * 24 * time.Hour
)

// Token is the verified content of a session cookie.
type Token struct {
	UserID    string
	Role      string
	Name      string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the token is no longer valid at now.
func (t Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type claims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Options configures a Manager.
type Options struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

// Manager signs and verifies session tokens with a key loaded once at startup.
type Manager struct {
	key        []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

// NewManager validates the signing secret and returns a Manager.
func NewManager(opts Options) (*Manager, error) {
	if err := config.ValidateSecret(opts.Secret); err != nil {
		return nil, err
	}

	m := &Manager{
		key:        []byte(opts.Secret),
		ttl:        opts.TTL,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		now:        opts.Now,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.cookieName == "" {
		m.cookieName = DefaultCookieName
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// TTL returns the lifetime of issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed token for id, valid for the configured TTL.
func (m *Manager) Issue(id auth.Identity) (string, Token, error) {
	if id.ID == "" {
		return "", Token{}, errors.New("issuing session: empty user id")
	}

	now := m.now()
	c := claims{
		Role:  id.Role,
		Name:  id.Name,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.key)
	if err != nil {
		return "", Token{}, fmt.Errorf("signing session token: %w", err)
	}

	return raw, tokenFromClaims(&c), nil
}

// Parse verifies raw and returns its content. Every failure is ErrInvalidToken.
func (m *Manager) Parse(raw string) (Token, error) {
	if raw == "" {
		return Token{}, ErrInvalidToken
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (any, error) { return m.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || c.Subject == "" || c.IssuedAt == nil {
		return Token{}, ErrInvalidToken
	}

	return tokenFromClaims(&c), nil
}

// Read extracts and verifies the session token from the request cookie.
func (m *Manager) Read(r *http.Request) (Token, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return Token{}, ErrNoSession
	}
	return m.Parse(cookie.Value)
}

// SetCookie writes the session cookie for a freshly issued token.
func (m *Manager) SetCookie(w http.ResponseWriter, raw string, t Token) {
	maxAge := int(t.ExpiresAt.Sub(m.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    raw,
		Path:     "/",
		Expires:  t.ExpiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie in the browser. Copies of the
// token held elsewhere stay valid until they expire.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokenFromClaims(c *claims) Token {
	t := Token{
		UserID: c.Subject,
		Role:   c.Role,
		Name:   c.Name,
		Email:  c.Email,
	}
	if c.IssuedAt != nil {
		t.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		t.ExpiresAt = c.ExpiresAt.Time
	}
	return t
}
