// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kedjora/kedjora-go/internal/store"
)

// ErrInvalidCredentials is returned for every rejected login: unknown email,
// wrong password, store failures and timeouts alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultTimeout bounds a single verification when none is configured.
const DefaultTimeout = 5 * time.Second

// DefaultName is used when the matched user has no display name.
const DefaultName = "Admin"

// UserStore looks up users by email.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
}

// Identity is the authenticated principal returned by Verify.
type Identity struct {
	ID    string
	Name  string
	Email string
	Role  string

	// PasswordHash is the stored hash that matched. Callers use it to decide
	// whether the password should be rehashed.
	PasswordHash string
}

// Verifier checks an email and password against stored users.
type Verifier struct {
	users     UserStore
	timeout   time.Duration
	dummyHash string
}

// NewVerifier creates a Verifier. A non-positive timeout uses DefaultTimeout.
func NewVerifier(users UserStore, timeout time.Duration) (*Verifier, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dummy, err := HashPassword("kedjora-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("creating dummy hash: %w", err)
	}
	return &Verifier{users: users, timeout: timeout, dummyHash: dummy}, nil
}

type verifyResult struct {
	identity Identity
	err      error
}

// Verify returns the Identity for a matching email and password. Any failure
// yields an error for which errors.Is(err, ErrInvalidCredentials) holds.
func (v *Verifier) Verify(ctx context.Context, email, password string) (Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	done := make(chan verifyResult, 1)
	go func() {
		id, err := v.verify(ctx, email, password)
		done <- verifyResult{identity: id, err: err}
	}()

	select {
	case res := <-done:
		return res.identity, res.err
	case <-ctx.Done():
		slog.ErrorContext(ctx, "credential verification aborted", "error", ctx.Err(), "category", "auth")
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, ctx.Err())
	}
}

func (v *Verifier) verify(ctx context.Context, email, password string) (Identity, error) {
	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same work as a real comparison so response time does not reveal the account.
			_, _ = CheckPassword(password, v.dummyHash)
			return Identity{}, ErrInvalidCredentials
		}
		slog.ErrorContext(ctx, "credential lookup failed", "error", err, "category", "auth")
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	valid, err := CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.ErrorContext(ctx, "stored password hash is unreadable", "error", err, "user_id", user.ID, "category", "auth")
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if !valid {
		return Identity{}, ErrInvalidCredentials
	}

	name := user.Name
	if name == "" {
		name = DefaultName
	}

	return Identity{
		ID:           user.ID,
		Name:         name,
		Email:        user.Email,
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
	}, nil
}
