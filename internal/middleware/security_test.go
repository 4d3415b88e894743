// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveSecurity(cfg SecurityHeadersConfig, path string) http.Header {
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestSecurityHeaders_Production(t *testing.T) {
	h := serveSecurity(DefaultSecurityHeadersConfig(false), "/")

	if got := h.Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("HSTS = %q", got)
	}
	if got := h.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := h.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	csp := h.Get("Content-Security-Policy")
	if !strings.HasPrefix(csp, "default-src 'self'; script-src 'self'") {
		t.Errorf("CSP = %q", csp)
	}
	if !strings.Contains(csp, "frame-ancestors 'none'") {
		t.Errorf("CSP missing frame-ancestors: %q", csp)
	}
	if h.Get("Cache-Control") != "" {
		t.Error("public pages should not be marked no-store")
	}
}

func TestSecurityHeaders_DevelopmentSkipsHSTS(t *testing.T) {
	h := serveSecurity(DefaultSecurityHeadersConfig(true), "/")
	if got := h.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS = %q, want empty in development", got)
	}
}

func TestSecurityHeaders_NoStore(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(true)
	tests := []struct {
		path string
		want string
	}{
		{"/admin", "no-store"},
		{"/admin/orders", "no-store"},
		{"/auth/login", "no-store"},
		{"/api/auth/session", "no-store"},
		{"/api/services", ""},
		{"/administrator", ""},
	}
	for _, tt := range tests {
		if got := serveSecurity(cfg, tt.path).Get("Cache-Control"); got != tt.want {
			t.Errorf("%s: Cache-Control = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBuildPermissionsPolicy_Sorted(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"})
	if got != "camera=(), usb=()" {
		t.Errorf("buildPermissionsPolicy = %q", got)
	}
}

func TestBuildCSP_ExtraDirectivesSorted(t *testing.T) {
	got := buildCSP(map[string]string{
		"default-src":  "'self'",
		"worker-src":   "'self'",
		"manifest-src": "'self'",
		"script-src":   "'none'",
	})
	want := "default-src 'self'; script-src 'none'; manifest-src 'self'; worker-src 'self'"
	if got != want {
		t.Errorf("buildCSP = %q, want %q", got, want)
	}
}
