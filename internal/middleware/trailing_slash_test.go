// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		target       string
		wantStatus   int
		wantLocation string
	}{
		{"/", http.StatusOK, ""},
		{"/services", http.StatusOK, ""},
		{"/services/", http.StatusMovedPermanently, "/services"},
		{"/admin/orders/?page=2", http.StatusMovedPermanently, "/admin/orders?page=2"},
		{"//evil.example/", http.StatusMovedPermanently, "/evil.example"},
		{"/api/services/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			next := &okHandler{}
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "http://example.com"+tt.target, nil)

			StripTrailingSlash(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
		})
	}
}
