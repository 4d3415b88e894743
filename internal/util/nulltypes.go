// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strings"
)

// NullStringFromValue creates a sql.NullString that is valid only for a
// non-blank string. Surrounding whitespace is trimmed.
func NullStringFromValue(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringFromPtr converts an optional request field into sql.NullString.
// A nil pointer or a blank value yields NULL.
func NullStringFromPtr(ptr *string) sql.NullString {
	if ptr == nil {
		return sql.NullString{}
	}
	return NullStringFromValue(*ptr)
}

// PtrFromNullString returns nil for NULL, otherwise a pointer to the value.
func PtrFromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// BoolOr resolves a tri-state request flag: nil means "not provided" and
// yields def, otherwise the provided value wins, including an explicit false.
func BoolOr(ptr *bool, def bool) bool {
	if ptr == nil {
		return def
	}
	return *ptr
}
