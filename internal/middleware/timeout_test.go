// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func slowHandler(w http.ResponseWriter, r *http.Request) {
	select {
	case <-time.After(5 * time.Second):
		w.WriteHeader(http.StatusOK)
	case <-r.Context().Done():
	}
}

func TestTimeoutMiddlewareNormalRequest(t *testing.T) {
	handler := Timeout(5 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := rr.Body.String(); body != "success" {
		t.Errorf("Body = %q, want %q", body, "success")
	}
}

func TestTimeoutMiddlewareSlowRequest(t *testing.T) {
	handler := Timeout(50 * time.Millisecond)(http.HandlerFunc(slowHandler))

	rr := httptest.NewRecorder()
	start := time.Now()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/services", nil))

	if time.Since(start) > 2*time.Second {
		t.Error("timeout did not fire promptly")
	}
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if body := rr.Body.String(); body != "Request timeout" {
		t.Errorf("Body = %q", body)
	}
}

func TestTimeoutMiddlewareSlowAPIRequest(t *testing.T) {
	handler := Timeout(50 * time.Millisecond)(http.HandlerFunc(slowHandler))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rr.Body.String(), `"success":false`) {
		t.Errorf("Body = %q", rr.Body.String())
	}
}

func TestTimeoutWriterDropsLateWrites(t *testing.T) {
	rr := httptest.NewRecorder()
	tw := &timeoutWriter{ResponseWriter: rr}
	tw.timedOut = true

	tw.WriteHeader(http.StatusTeapot)
	_, err := tw.Write([]byte("late"))

	if !errors.Is(err, http.ErrHandlerTimeout) {
		t.Errorf("Write err = %v, want ErrHandlerTimeout", err)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("late body written: %q", rr.Body.String())
	}
}

func TestTimeoutWriterImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	tw := &timeoutWriter{ResponseWriter: rr}

	_, _ = tw.Write([]byte("x"))
	tw.WriteHeader(http.StatusInternalServerError)

	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", rr.Code)
	}
}
