// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testLoginProtection returns a LoginProtection suitable for fast testing.
func testLoginProtection(t *testing.T, maxAttempts int, lockoutDuration, attemptWindow time.Duration) *LoginProtection {
	t.Helper()
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       10,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockoutDuration,
		AttemptWindow:     attemptWindow,
	})
	t.Cleanup(lp.Stop)
	return lp
}

func TestNewLoginProtectionDefaultValues(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{})
	defer lp.Stop()

	def := DefaultLoginProtectionConfig()
	if lp.maxFailedAttempts != def.MaxFailedAttempts {
		t.Errorf("maxFailedAttempts = %d, want %d", lp.maxFailedAttempts, def.MaxFailedAttempts)
	}
	if lp.lockoutDuration != def.LockoutDuration {
		t.Errorf("lockoutDuration = %v, want %v", lp.lockoutDuration, def.LockoutDuration)
	}
	if lp.attemptWindow != def.AttemptWindow {
		t.Errorf("attemptWindow = %v, want %v", lp.attemptWindow, def.AttemptWindow)
	}
}

func TestLoginProtectionLockout(t *testing.T) {
	lp := testLoginProtection(t, 3, time.Minute, time.Minute)
	email := "admin@example.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("account should not start locked")
	}

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("attempt %d should not lock", i+1)
		}
	}

	locked, d := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("third attempt should lock the account")
	}
	if d != time.Minute {
		t.Errorf("lock duration = %v, want 1m", d)
	}

	if locked, _ := lp.IsAccountLocked("ADMIN@example.com"); !locked {
		t.Error("lockout should ignore email case")
	}
}

func TestLoginProtectionUnknownAccountsAreTracked(t *testing.T) {
	lp := testLoginProtection(t, 2, time.Minute, time.Minute)

	lp.RecordFailedAttempt("ghost@example.com")
	if locked, _ := lp.RecordFailedAttempt("ghost@example.com"); !locked {
		t.Error("unknown accounts should lock like real ones")
	}
}

func TestLoginProtectionRecordSuccessfulLogin(t *testing.T) {
	lp := testLoginProtection(t, 5, time.Minute, time.Minute)
	email := "admin@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}

	lp.RecordSuccessfulLogin(email)
	if got := lp.GetRemainingAttempts(email); got != 5 {
		t.Errorf("remaining after success = %d, want 5", got)
	}
}

func TestLoginProtectionExponentialBackoff(t *testing.T) {
	lp := testLoginProtection(t, 1, time.Minute, time.Hour)
	email := "admin@example.com"

	// With maxAttempts=1 the first attempt creates the entry and the second locks.
	lp.RecordFailedAttempt(email)
	_, first := lp.RecordFailedAttempt(email)
	_, second := lp.RecordFailedAttempt(email)

	if first != time.Minute {
		t.Errorf("first lockout = %v, want 1m", first)
	}
	if second != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", second)
	}
}

func TestLoginProtectionAttemptWindowReset(t *testing.T) {
	lp := testLoginProtection(t, 3, time.Minute, 10*time.Millisecond)
	email := "admin@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	time.Sleep(20 * time.Millisecond)

	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("counter should reset after the attempt window")
	}
	if got := lp.GetRemainingAttempts(email); got != 2 {
		t.Errorf("remaining = %d, want 2", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.5"}, "10.0.0.1:1", "203.0.113.5"},
		{"x-forwarded-for first", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"}, "10.0.0.1:1", "198.51.100.7"},
		{"remote without port", nil, "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	defer lp.Stop()

	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(method string) int {
		req := httptest.NewRequest(method, "/auth/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(http.MethodPost); code != http.StatusOK {
		t.Errorf("first POST = %d, want 200", code)
	}
	if code := do(http.MethodPost); code != http.StatusTooManyRequests {
		t.Errorf("second POST = %d, want 429", code)
	}
	if code := do(http.MethodGet); code != http.StatusOK {
		t.Errorf("GET = %d, want 200 (only POST is limited)", code)
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
		req.RemoteAddr = "192.0.2.50:999"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	want := []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("request %d = %d, want %d", i+1, codes[i], want[i])
		}
	}
}
