// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// Canonical paths used by the route guard.
const (
	LegacyLoginPath = "/login"
	LoginPath       = "/auth/login"
	AdminRoot       = "/admin"
	CallbackParam   = "callbackUrl"
)

// PathClass is the routing class of a request path.
type PathClass int

const (
	OtherPath PathClass = iota
	LegacyLogin
	AdminPath
	AuthPath
)

func (c PathClass) String() string {
	switch c {
	case LegacyLogin:
		return "legacy-login"
	case AdminPath:
		return "admin"
	case AuthPath:
		return "auth"
	default:
		return "other"
	}
}

// Classify maps a URL path to its PathClass.
func Classify(path string) PathClass {
	switch {
	case path == LegacyLoginPath:
		return LegacyLogin
	case path == AdminRoot || strings.HasPrefix(path, AdminRoot+"/"):
		return AdminPath
	case path == "/auth" || strings.HasPrefix(path, "/auth/"):
		return AuthPath
	default:
		return OtherPath
	}
}

// GuardConfig configures the route guard.
type GuardConfig struct {
	// TrustForwardedProto honours X-Forwarded-Proto when building the
	// callback URL. Enable only behind a reverse proxy that sets it.
	TrustForwardedProto bool
}

// Guard protects the admin area. It runs on every request:
//   - /login always redirects to /auth/login.
//   - /admin and /admin/... without a valid session redirect to the login
//     page with the original absolute URL as callbackUrl.
//   - /auth/login with a valid session redirects to /admin.
//
// Any failure to read the session is treated as no session.
func Guard(reader SessionReader, cfg GuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch Classify(r.URL.Path) {
			case LegacyLogin:
				target := LoginPath
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusFound)
				return

			case AdminPath:
				tok, ok := readSession(reader, r)
				if !ok {
					http.Redirect(w, r, LoginURL(r, cfg.TrustForwardedProto), http.StatusFound)
					return
				}
				next.ServeHTTP(w, WithSession(r, tok))
				return

			case AuthPath:
				if r.URL.Path == LoginPath {
					if _, ok := readSession(reader, r); ok {
						http.Redirect(w, r, AdminRoot, http.StatusFound)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoginURL returns the login URL carrying the absolute URL of r as callbackUrl.
// The callback is query-encoded exactly once.
func LoginURL(r *http.Request, trustForwarded bool) string {
	q := url.Values{}
	q.Set(CallbackParam, RequestURL(r, trustForwarded))
	return LoginPath + "?" + q.Encode()
}

// RequestURL reconstructs the absolute URL the client requested.
func RequestURL(r *http.Request, trustForwarded bool) string {
	u := url.URL{
		Scheme:   requestScheme(r, trustForwarded),
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
	return u.String()
}

// SiteURL returns scheme://host of the site the client addressed.
func SiteURL(r *http.Request, trustForwarded bool) string {
	return requestScheme(r, trustForwarded) + "://" + r.Host
}

func requestScheme(r *http.Request, trustForwarded bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if trustForwarded {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" || proto == "http" {
			scheme = proto
		}
	}
	return scheme
}

// SafeCallback returns callback when it points at this site (a relative path
// or an absolute URL on host), and fallback otherwise.
func SafeCallback(callback, host, fallback string) string {
	if callback == "" {
		return fallback
	}
	u, err := url.Parse(callback)
	if err != nil {
		return fallback
	}

	if u.Scheme == "" && u.Host == "" {
		// Reject protocol-relative and backslash tricks such as //evil or /\evil.
		if !strings.HasPrefix(callback, "/") || strings.HasPrefix(callback, "//") || strings.HasPrefix(callback, "/\\") {
			return fallback
		}
		return u.RequestURI()
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host != host {
		return fallback
	}
	if u.User != nil {
		return fallback
	}
	return u.RequestURI()
}
