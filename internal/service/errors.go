// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrServiceNotFound is returned when an order references an unknown service.
	ErrServiceNotFound = fmt.Errorf("service %w", ErrNotFound)
	// ErrInUse is returned when deleting a record other records still reference.
	ErrInUse = errors.New("record is still referenced")
)

// Validation messages shared by the JSON API and the HTML forms.
const (
	MsgMissingFields = "Missing required fields"
	MsgSlugTaken     = "Slug already exists"
	MsgInvalidSlug   = "Invalid slug format (use lowercase letters, numbers, and hyphens)"
	MsgInvalidEmail  = "Invalid email address"
	MsgInvalidRating = "Rating must be between 1 and 5"
	MsgInvalidStatus = "Invalid status"
	MsgSectionNeeded = "Section is required"
	MsgInvalidKey    = "Invalid section key"
)

// ValidationError reports input that was rejected before any write. Its
// message is safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError and returns its message.
func IsValidation(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}

// isForeignKeyViolation matches the SQLite error raised by a RESTRICT
// foreign key.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// isUniqueViolation matches the SQLite error raised by a UNIQUE index.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
