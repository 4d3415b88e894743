// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// StaticCache sets Cache-Control for files under /static. In development
// assets are always revalidated so template and script edits show up at once.
func StaticCache(maxAge int, isDev bool) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(maxAge)
	if isDev || maxAge <= 0 {
		value = "no-cache"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
