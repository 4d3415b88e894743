// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Flash cookie names. The __Host- prefix requires Secure, so it is only
// used outside development.
const (
	FlashCookieName       = "kedjora_flash"
	SecureFlashCookieName = "__Host-kedjora_flash"
)

// FlashLifetime bounds how long an unread flash message survives.
const FlashLifetime = 24 * time.Hour

// NewFlash creates the server-side session manager used for one-shot UI
// messages. It never carries authentication state.
func NewFlash(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = FlashLifetime
	sm.Cookie.Name = FlashCookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = SecureFlashCookieName
	}

	return sm
}
